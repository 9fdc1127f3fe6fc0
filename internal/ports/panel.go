package ports

import "github.com/bft-labs/rimed/internal/domain"

// Panel is the presentation surface fed by the lifecycle controller.
type Panel interface {
	// Load projects the configuration for one appearance mode.
	Load(config Configuration, mode domain.AppearanceMode)

	// Hide takes the surface off screen.
	Hide()
}

// PanelFactory creates the presentation surface at launch.
type PanelFactory func() Panel
