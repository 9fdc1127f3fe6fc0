// Package panel is the headless presentation surface. It projects the
// engine configuration into one Theme per appearance mode.
package panel

import (
	"fmt"
	"sync"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/internal/ports"
	"github.com/bft-labs/rimed/pkg/log"
)

// Candidate list layouts.
const (
	LayoutStacked = "stacked"
	LayoutLinear  = "linear"
)

// Theme is the projected style for one appearance mode.
// Colors are "#RRGGBB"; an empty color means the scheme does not set it.
type Theme struct {
	Mode          domain.AppearanceMode `json:"mode"`
	ColorScheme   string                `json:"color_scheme"`
	SchemeName    string                `json:"scheme_name,omitempty"`
	BackColor     string                `json:"back_color,omitempty"`
	TextColor     string                `json:"text_color,omitempty"`
	CandidateText string                `json:"candidate_text_color,omitempty"`
	HilitedBack   string                `json:"hilited_candidate_back_color,omitempty"`
	BorderColor   string                `json:"border_color,omitempty"`
	FontFace      string                `json:"font_face,omitempty"`
	FontPoint     float64               `json:"font_point,omitempty"`
	Layout        string                `json:"candidate_list_layout"`
	InlinePreedit bool                  `json:"inline_preedit"`
}

// Panel implements ports.Panel.
type Panel struct {
	mu     sync.RWMutex
	themes map[domain.AppearanceMode]Theme
	hidden bool
	logger log.Logger
}

// New creates an empty, visible panel.
func New(logger log.Logger) *Panel {
	return &Panel{
		themes: make(map[domain.AppearanceMode]Theme),
		logger: logger,
	}
}

// Factory returns a ports.PanelFactory producing panels that share logger.
func Factory(logger log.Logger) ports.PanelFactory {
	return func() ports.Panel {
		return New(logger)
	}
}

// Load replaces the theme for mode with a projection of config.
func (p *Panel) Load(config ports.Configuration, mode domain.AppearanceMode) {
	if config == nil {
		p.logger.Warn("panel load without configuration", log.String("mode", mode.String()))
		return
	}

	theme := project(config, mode)
	if theme.ColorScheme != "" && theme.SchemeName == "" {
		p.logger.Warn("color scheme not found",
			log.String("scheme", theme.ColorScheme),
			log.String("mode", mode.String()),
		)
	}

	p.mu.Lock()
	p.themes[mode] = theme
	p.mu.Unlock()

	p.logger.Debug("panel theme loaded",
		log.String("mode", mode.String()),
		log.String("scheme", theme.ColorScheme),
	)
}

// Hide takes the panel off screen.
func (p *Panel) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hidden = true
}

// Hidden reports whether Hide was called.
func (p *Panel) Hidden() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hidden
}

// Theme returns the theme loaded for mode.
func (p *Panel) Theme(mode domain.AppearanceMode) (Theme, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.themes[mode]
	return t, ok
}

// Themes returns a copy of every loaded theme.
func (p *Panel) Themes() map[domain.AppearanceMode]Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[domain.AppearanceMode]Theme, len(p.themes))
	for m, t := range p.themes {
		out[m] = t
	}
	return out
}

func project(config ports.Configuration, mode domain.AppearanceMode) Theme {
	t := Theme{Mode: mode, Layout: LayoutStacked}

	t.ColorScheme, _ = config.GetString("style/color_scheme")
	if mode == domain.Dark {
		if dark, ok := config.GetString("style/color_scheme_dark"); ok && dark != "" {
			t.ColorScheme = dark
		}
	}

	t.FontFace, _ = config.GetString("style/font_face")
	t.FontPoint, _ = config.GetDouble("style/font_point")
	t.InlinePreedit, _ = config.GetBool("style/inline_preedit")
	if layout, ok := config.GetString("style/candidate_list_layout"); ok && layout == LayoutLinear {
		t.Layout = LayoutLinear
	}
	// Older configs use a boolean instead of a layout name.
	if horizontal, ok := config.GetBool("style/horizontal"); ok && horizontal {
		t.Layout = LayoutLinear
	}

	if t.ColorScheme == "" {
		return t
	}
	prefix := "preset_color_schemes/" + t.ColorScheme + "/"
	if _, ok := config.GetMap("preset_color_schemes/" + t.ColorScheme); !ok {
		return t
	}
	t.SchemeName, _ = config.GetString(prefix + "name")
	if t.SchemeName == "" {
		t.SchemeName = t.ColorScheme
	}
	t.BackColor = color(config, prefix+"back_color")
	t.TextColor = color(config, prefix+"text_color")
	t.CandidateText = color(config, prefix+"candidate_text_color")
	t.HilitedBack = color(config, prefix+"hilited_candidate_back_color")
	t.BorderColor = color(config, prefix+"border_color")
	return t
}

// color converts an engine color (0xBBGGRR, optionally with an alpha byte
// on top) to "#RRGGBB".
func color(config ports.Configuration, path string) string {
	v, ok := config.GetInt(path)
	if !ok {
		return ""
	}
	r := v & 0xff
	g := (v >> 8) & 0xff
	b := (v >> 16) & 0xff
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
