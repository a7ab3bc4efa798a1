package uix

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/segmentio/encoding/json"
)

// GlobalConfig is the project-wide settings document loaded at startup.
type GlobalConfig struct {
	CodeMode  string
	BuildType string
	AppType   string

	// PixelsPerUnit is the reference density applied to images created
	// through Global.NewImage.
	PixelsPerUnit float64

	ClickAreaMode  ClickAreaMode
	ClickAreaColor Color
	GizmoColor     Color
	ClearColor     Color
}

// jsonGlobalConfig is the on-disk form. Colors are hex strings.
type jsonGlobalConfig struct {
	CodeMode       string   `json:"codeMode"`
	BuildType      string   `json:"buildType"`
	AppType        string   `json:"appType"`
	PixelsPerUnit  float64  `json:"pixelsPerUnit"`
	ClickAreaMode  string   `json:"clickAreaMode"`
	ClickAreaColor string   `json:"clickAreaColor"`
	ClickAreaAlpha *float64 `json:"clickAreaAlpha"`
	GizmoColor     string   `json:"gizmoColor"`
	ClearColor     string   `json:"clearColor"`
}

// DefaultGlobalConfig returns the settings used for missing fields.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		CodeMode:       "client",
		BuildType:      "debug",
		AppType:        "app",
		PixelsPerUnit:  1,
		ClickAreaMode:  ClickAreaHidden,
		ClickAreaColor: Color{1, 0, 0, 0.35},
		GizmoColor:     ColorYellow,
		ClearColor:     Color{0, 0, 0, 1},
	}
}

// LoadGlobalConfig parses a JSON settings document on top of the defaults.
func LoadGlobalConfig(data []byte) (*GlobalConfig, error) {
	var raw jsonGlobalConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("uix: parse global config: %w", err)
	}

	cfg := DefaultGlobalConfig()
	if raw.CodeMode != "" {
		cfg.CodeMode = raw.CodeMode
	}
	if raw.BuildType != "" {
		cfg.BuildType = raw.BuildType
	}
	if raw.AppType != "" {
		cfg.AppType = raw.AppType
	}
	if raw.PixelsPerUnit < 0 {
		return nil, fmt.Errorf("uix: global config: pixelsPerUnit %v is negative", raw.PixelsPerUnit)
	}
	if raw.PixelsPerUnit > 0 {
		cfg.PixelsPerUnit = raw.PixelsPerUnit
	}

	if raw.ClickAreaMode != "" {
		mode, err := ParseClickAreaMode(raw.ClickAreaMode)
		if err != nil {
			return nil, fmt.Errorf("uix: global config: %w", err)
		}
		cfg.ClickAreaMode = mode
	}

	for _, c := range []struct {
		field string
		hex   string
		dst   *Color
	}{
		{"clickAreaColor", raw.ClickAreaColor, &cfg.ClickAreaColor},
		{"gizmoColor", raw.GizmoColor, &cfg.GizmoColor},
		{"clearColor", raw.ClearColor, &cfg.ClearColor},
	} {
		if c.hex == "" {
			continue
		}
		parsed, err := parseHexColor(c.hex)
		if err != nil {
			return nil, fmt.Errorf("uix: global config: %s: %w", c.field, err)
		}
		parsed.A = c.dst.A
		*c.dst = parsed
	}
	if raw.ClickAreaAlpha != nil {
		cfg.ClickAreaColor.A = clamp01(*raw.ClickAreaAlpha)
	}
	return cfg, nil
}

// Apply installs the configured click-area overlay and clear color on s.
func (c *GlobalConfig) Apply(s *Scene) {
	s.ClearColor = c.ClearColor
	o := s.ClickArea()
	o.Color = c.ClickAreaColor
	o.GizmoColor = c.GizmoColor
	s.SetClickAreaMode(c.ClickAreaMode)
}

// ParseClickAreaMode is the inverse of ClickAreaMode.String. Matching is
// case-insensitive.
func ParseClickAreaMode(s string) (ClickAreaMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hidden", "none", "":
		return ClickAreaHidden, nil
	case "selection":
		return ClickAreaSelection, nil
	case "all":
		return ClickAreaAll, nil
	}
	return ClickAreaHidden, fmt.Errorf("unknown click area mode %q", s)
}

// parseHexColor accepts "#rrggbb" or "#rgb". Alpha is always 1.
func parseHexColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}
