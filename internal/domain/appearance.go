package domain

// AppearanceMode selects the light or dark projection of the base configuration.
type AppearanceMode int

const (
	Light AppearanceMode = iota
	Dark
)

// AppearanceModes lists every mode in load order.
var AppearanceModes = []AppearanceMode{Light, Dark}

// String returns a human-readable representation of the mode.
func (m AppearanceMode) String() string {
	switch m {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "unknown"
	}
}
