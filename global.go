package uix

import "fmt"

// Well-known paths and camera names resolved by AwakeGlobal.
const (
	GlobalPath     = "/Global"
	GlobalUnitPath = "/Global/Unit"
	GlobalUIPath   = "/Global/UI"
	MainCameraName = "MainCamera"
	UICameraName   = "UICamera"
)

// Global gives game code direct handles on the long-lived scene anchors:
// the global root, the unit and UI layers, both cameras and the settings.
type Global struct {
	Root *Node
	Unit *Node
	UI   *Node

	MainCamera *Camera
	UICamera   *Camera

	Config *GlobalConfig
}

// AwakeGlobal resolves the anchors in s. A nil cfg uses
// DefaultGlobalConfig. The first missing anchor is reported as an error
// wrapping ErrNotFound; cfg is applied to s only on success.
func AwakeGlobal(s *Scene, cfg *GlobalConfig) (*Global, error) {
	if cfg == nil {
		cfg = DefaultGlobalConfig()
	}
	g := &Global{Config: cfg}

	var err error
	for _, a := range []struct {
		path string
		dst  **Node
	}{
		{GlobalPath, &g.Root},
		{GlobalUnitPath, &g.Unit},
		{GlobalUIPath, &g.UI},
	} {
		if *a.dst, err = s.Find(a.path); err != nil {
			return nil, fmt.Errorf("uix: awake global: %w", err)
		}
	}
	if g.MainCamera, err = s.Camera(MainCameraName); err != nil {
		return nil, fmt.Errorf("uix: awake global: %w", err)
	}
	if g.UICamera, err = s.Camera(UICameraName); err != nil {
		return nil, fmt.Errorf("uix: awake global: %w", err)
	}

	cfg.Apply(s)
	return g, nil
}

// NewImage creates an image node at the configured pixel density.
func (g *Global) NewImage(name string, sprite *Sprite) *Node {
	n := NewImage(name, sprite)
	if ppu := g.Config.PixelsPerUnit; ppu > 0 && ppu != 1 {
		img := n.Image
		img.PixelsPerUnit = ppu
		if sprite != nil {
			w, h := sprite.Size()
			p := img.pixelsPerUnit()
			img.SetSize(w/p, h/p)
		}
	}
	return n
}
