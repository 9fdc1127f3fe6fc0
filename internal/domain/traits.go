package domain

import "fmt"

// Traits describes the host distribution to the engine.
// It is populated once at setup and never modified afterwards.
type Traits struct {
	SharedDataDir        string
	UserDataDir          string
	LogDir               string
	DistributionCodeName string
	DistributionName     string
	DistributionVersion  string
	AppName              string
}

// Validate checks that the engine can locate its data.
func (t Traits) Validate() error {
	if t.SharedDataDir == "" {
		return fmt.Errorf("%w: shared data dir is required", ErrInvalidTraits)
	}
	if t.UserDataDir == "" {
		return fmt.Errorf("%w: user data dir is required", ErrInvalidTraits)
	}
	if t.AppName == "" {
		return fmt.Errorf("%w: app name is required", ErrInvalidTraits)
	}
	return nil
}
