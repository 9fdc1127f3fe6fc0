package deployer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/rimed/internal/adapters/fs"
	"github.com/bft-labs/rimed/internal/adapters/rimeconfig"
	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/pkg/log"
)

const (
	installationFile = "installation.yaml"
	defaultConfig    = "default.yaml"
	configVersionKey = "config_version"
)

// StartMaintenance updates the installation record and, on a full check or
// a distribution change, redeploys default.yaml. It reports success.
func (b *Binding) StartMaintenance(fullCheck bool) bool {
	traits, ok := b.ready()
	if !ok {
		b.logger.Warn("maintenance requested before initialize")
		return false
	}

	b.notify(0, "deploy", "start")
	start := b.now()
	err := b.maintain(traits, fullCheck)
	if err != nil {
		b.logger.Error("maintenance failed", log.Err(err))
		b.notify(0, "deploy", "failure")
		return false
	}

	b.logger.Info("maintenance finished",
		log.Bool("full_check", fullCheck),
		log.Duration("took", b.now().Sub(start)),
	)
	b.notify(0, "deploy", "success")
	return true
}

func (b *Binding) maintain(traits domain.Traits, fullCheck bool) error {
	changed, err := b.updateInstallation(traits)
	if err != nil {
		return fmt.Errorf("installation update: %w", err)
	}
	if !fullCheck && !changed {
		b.logger.Debug("no modifications detected")
		return nil
	}

	if err := deployConfigFile(traits, defaultConfig, configVersionKey); err != nil && !errors.Is(err, errSourceMissing) {
		return fmt.Errorf("deploy %s: %w", defaultConfig, err)
	}
	return nil
}

// updateInstallation writes the installation record and reports whether the
// distribution changed since the last run.
func (b *Binding) updateInstallation(traits domain.Traits) (bool, error) {
	path := filepath.Join(traits.UserDataDir, installationFile)

	inst, err := rimeconfig.LoadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		inst = rimeconfig.New()
	case err != nil:
		return false, err
	}

	stamp := b.now().Format(time.ANSIC)
	dirty := false
	if _, ok := inst.GetString("installation_id"); !ok {
		_ = inst.Set("installation_id", uuid.NewString())
		_ = inst.Set("install_time", stamp)
		dirty = true
	}

	prevName, _ := inst.GetString("distribution_code_name")
	prevVersion, _ := inst.GetString("distribution_version")
	changed := prevName != traits.DistributionCodeName || prevVersion != traits.DistributionVersion
	if changed {
		_ = inst.Set("distribution_code_name", traits.DistributionCodeName)
		_ = inst.Set("distribution_name", traits.DistributionName)
		_ = inst.Set("distribution_version", traits.DistributionVersion)
		_ = inst.Set("update_time", stamp)
		dirty = true
		b.logger.Info("distribution changed",
			log.String("from", prevVersion),
			log.String("to", traits.DistributionVersion),
		)
	}

	if !dirty {
		return false, nil
	}
	data, err := inst.Bytes()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(traits.UserDataDir, 0o755); err != nil {
		return false, err
	}
	return changed, fs.WriteFileAtomic(path, data, 0o644)
}
