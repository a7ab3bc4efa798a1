package uix

import "testing"

func TestDefaultGlobalConfig(t *testing.T) {
	cfg := DefaultGlobalConfig()
	if cfg.CodeMode != "client" || cfg.BuildType != "debug" || cfg.AppType != "app" {
		t.Errorf("modes = %q %q %q", cfg.CodeMode, cfg.BuildType, cfg.AppType)
	}
	if cfg.PixelsPerUnit != 1 || cfg.ClickAreaMode != ClickAreaHidden {
		t.Errorf("ppu %v, mode %v", cfg.PixelsPerUnit, cfg.ClickAreaMode)
	}
}

func TestLoadGlobalConfig(t *testing.T) {
	cfg, err := LoadGlobalConfig([]byte(`{
		"buildType": "release",
		"pixelsPerUnit": 100,
		"clickAreaMode": "Selection",
		"clickAreaColor": "#00ff00",
		"clickAreaAlpha": 0.5,
		"clearColor": "#fff"
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BuildType != "release" || cfg.CodeMode != "client" {
		t.Errorf("buildType %q, codeMode %q", cfg.BuildType, cfg.CodeMode)
	}
	if cfg.PixelsPerUnit != 100 {
		t.Errorf("ppu = %v", cfg.PixelsPerUnit)
	}
	if cfg.ClickAreaMode != ClickAreaSelection {
		t.Errorf("mode = %v", cfg.ClickAreaMode)
	}
	if cfg.ClickAreaColor != (Color{0, 1, 0, 0.5}) {
		t.Errorf("clickAreaColor = %v", cfg.ClickAreaColor)
	}
	if cfg.ClearColor != (Color{1, 1, 1, 1}) {
		t.Errorf("clearColor = %v", cfg.ClearColor)
	}
	if cfg.GizmoColor != ColorYellow {
		t.Errorf("gizmoColor = %v, want default", cfg.GizmoColor)
	}
}

func TestLoadGlobalConfigKeepsDefaultAlpha(t *testing.T) {
	cfg, err := LoadGlobalConfig([]byte(`{"clickAreaColor": "#0000ff"}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ClickAreaColor != (Color{0, 0, 1, 0.35}) {
		t.Errorf("clickAreaColor = %v, want blue at the default alpha", cfg.ClickAreaColor)
	}

	cfg, err = LoadGlobalConfig([]byte(`{"clickAreaAlpha": 4}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ClickAreaColor.A != 1 {
		t.Errorf("alpha = %v, want clamped to 1", cfg.ClickAreaColor.A)
	}
}

func TestLoadGlobalConfigErrors(t *testing.T) {
	for _, doc := range []string{
		`{`,
		`{"pixelsPerUnit": -1}`,
		`{"clickAreaMode": "sometimes"}`,
		`{"gizmoColor": "yellow"}`,
	} {
		if _, err := LoadGlobalConfig([]byte(doc)); err == nil {
			t.Errorf("LoadGlobalConfig(%s) succeeded, want error", doc)
		}
	}
}
