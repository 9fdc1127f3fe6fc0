package deployer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bft-labs/rimed/internal/adapters/fs"
	"github.com/bft-labs/rimed/internal/adapters/rimeconfig"
	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/pkg/log"
)

const buildInfoKey = "__build_info/timestamps"

var errSourceMissing = errors.New("config source missing")

// DeployConfigFile compiles name into the build directory when its version
// or any of its sources changed. It reports success.
func (b *Binding) DeployConfigFile(name, versionKey string) bool {
	traits, ok := b.ready()
	if !ok {
		b.logger.Warn("config deploy requested before initialize", log.String("file", name))
		return false
	}

	if err := deployConfigFile(traits, name, versionKey); err != nil {
		b.logger.Error("config deploy failed", log.String("file", name), log.Err(err))
		return false
	}
	return true
}

// deployConfigFile merges <shared>/name (or <user>/name) with the "patch"
// mapping of <user>/<stem>.custom.yaml and writes <user>/build/name.
func deployConfigFile(traits domain.Traits, name, versionKey string) error {
	src := filepath.Join(traits.SharedDataDir, name)
	if !fileExists(src) {
		src = filepath.Join(traits.UserDataDir, name)
	}
	if !fileExists(src) {
		return fmt.Errorf("%w: %s", errSourceMissing, name)
	}
	custom := filepath.Join(traits.UserDataDir, strings.TrimSuffix(name, filepath.Ext(name))+".custom.yaml")
	dest := filepath.Join(traits.UserDataDir, rimeconfig.BuildDir, name)

	sources := []string{src}
	if fileExists(custom) {
		sources = append(sources, custom)
	}
	stamps, err := modTimes(sources)
	if err != nil {
		return err
	}

	cfg, err := rimeconfig.LoadFile(src)
	if err != nil {
		return err
	}
	if upToDate(dest, cfg, versionKey, stamps) {
		return nil
	}

	if len(sources) > 1 {
		if err := applyPatch(cfg, custom); err != nil {
			return err
		}
	}
	if err := cfg.Set(buildInfoKey, stamps); err != nil {
		return err
	}

	data, err := cfg.Bytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return fs.WriteFileAtomic(dest, data, 0o644)
}

// upToDate reports whether dest was built from the same version and sources.
func upToDate(dest string, src *rimeconfig.Config, versionKey string, stamps map[string]interface{}) bool {
	built, err := rimeconfig.LoadFile(dest)
	if err != nil {
		return false
	}
	want, _ := src.GetString(versionKey)
	if got, ok := built.GetString(versionKey); !ok || got != want {
		return false
	}
	recorded, ok := built.GetMap(buildInfoKey)
	if !ok || len(recorded) != len(stamps) {
		return false
	}
	for file, ts := range stamps {
		got, ok := built.GetInt(buildInfoKey + "/" + file)
		if !ok || got != ts.(int) {
			return false
		}
	}
	return true
}

// applyPatch sets every "patch" entry of the customization file on cfg.
// Keys are applied in sorted order so nested paths land deterministically.
func applyPatch(cfg *rimeconfig.Config, customPath string) error {
	custom, err := rimeconfig.LoadFile(customPath)
	if err != nil {
		return err
	}
	patch, ok := custom.GetMap("patch")
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := cfg.Set(k, patch[k]); err != nil {
			return fmt.Errorf("patch %s: %w", k, err)
		}
	}
	return nil
}

func modTimes(paths []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		out[filepath.Base(p)] = int(info.ModTime().Unix())
	}
	return out, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
