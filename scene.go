package uix

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNotFound is returned, wrapped, when a path, camera or location lookup
// misses.
var ErrNotFound = errors.New("not found")

// EntityStore is the optional ECS bridge. When set on a Scene, interaction
// events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

const defaultCommandCap = 1024

// Scene owns the node tree, cameras, input state and render buffers.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	cameras []*Camera

	// Render state
	commands   []RenderCommand
	sortBuf    []RenderCommand
	batchVerts []ebiten.Vertex
	batchInds  []uint16
	pages      []*ebiten.Image
	nextPage   int
	cullBounds Rect
	cullActive bool

	// Input state
	handlers    handlerRegistry
	captured    [maxPointers]*Node
	pointers    [maxPointers]pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent
	touchIDs    []ebiten.TouchID
	touchMap    [maxPointers]ebiten.TouchID
	touchUsed   [maxPointers]bool

	clickArea *ClickAreaOverlay
	script    *Script

	// ClearColor fills the screen before each frame when run through Run.
	// A zero alpha leaves the screen untouched.
	ClearColor Color
	updateFunc func() error

	// ScreenshotDir is where Screenshot writes its files.
	ScreenshotDir   string
	ScreenshotWebP  bool
	screenshotQueue []string
}

// NewScene creates a scene with an empty root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
		clickArea:     newClickAreaOverlay(ClickAreaHidden),
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes world transforms, advances camera animations and any
// attached Script, and processes pointer input.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	updateWorldTransform(s.root, identityTransform, 1, false)
	for _, cam := range s.cameras {
		cam.update(dt)
	}
	if s.script != nil {
		s.script.step(s)
	}
	s.processInput()
}

// Draw renders the tree once per camera into its viewport, then the
// click-area overlay if one is installed.
func (s *Scene) Draw(screen *ebiten.Image) {
	updateWorldTransform(s.root, identityTransform, 1, false)

	var stats debugStats
	if len(s.cameras) == 0 {
		s.drawWithCamera(screen, nil, &stats)
	}
	for _, cam := range s.cameras {
		vp := cam.Viewport
		sub := screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
		s.drawWithCamera(sub, cam, &stats)
	}

	if s.clickArea.Mode != ClickAreaHidden {
		t0 := time.Now()
		s.clickArea.Collect(s)
		s.clickArea.Draw(screen)
		s.clickArea.DrawGizmos(screen)
		stats.overlayTime = time.Since(t0)
	}

	if s.debug {
		stats.imageRebuilt = countImageRebuilds(s.root)
		s.debugLog(stats)
	}
	s.flushScreenshots(screen)
}

// drawWithCamera renders the scene from cam; nil means an identity view
// without culling.
func (s *Scene) drawWithCamera(target *ebiten.Image, cam *Camera, stats *debugStats) {
	s.commands = s.commands[:0]

	view := identityTransform
	s.cullActive = false
	if cam != nil {
		view = cam.computeViewMatrix()
		s.cullActive = cam.CullEnabled
		if cam.CullEnabled {
			s.cullBounds = cam.VisibleBounds()
		}
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	treeOrder := 0
	s.traverse(s.root, view, &treeOrder)
	if s.debug {
		stats.traverseTime += time.Since(t0)
		t0 = time.Now()
	}
	s.mergeSort()
	if s.debug {
		stats.sortTime += time.Since(t0)
		stats.commandCount += len(s.commands)
		stats.batchCount += countBatches(s.commands)
		t0 = time.Now()
	}
	s.submitBatches(target)
	if s.debug {
		stats.submitTime += time.Since(t0)
	}
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes cam from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's cameras. The caller must not mutate it.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// Camera returns the first camera with the given name.
func (s *Scene) Camera(name string) (*Camera, error) {
	for _, c := range s.cameras {
		if c.Name == name {
			return c, nil
		}
	}
	if globalDebug {
		log.Printf("uix: camera %q not found", name)
	}
	return nil, fmt.Errorf("uix: camera %q: %w", name, ErrNotFound)
}

// Find resolves an absolute path such as "/Global/UI" from the root.
func (s *Scene) Find(path string) (*Node, error) {
	if n := s.root.Find(path); n != nil {
		return n, nil
	}
	if globalDebug {
		log.Printf("uix: node %q not found", path)
	}
	return nil, fmt.Errorf("uix: node %q: %w", path, ErrNotFound)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables disposed-node panics, tree-shape warnings and
// per-frame stats on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recent SetDebugMode so node operations,
// which have no Scene pointer, can check it. With several scenes the last
// call wins.
var globalDebug bool

// RegisterPage stores an atlas page image at index for sprite nodes.
func (s *Scene) RegisterPage(index int, img *ebiten.Image) {
	for len(s.pages) <= index {
		s.pages = append(s.pages, nil)
	}
	s.pages[index] = img
}

// LoadAtlas parses TexturePacker JSON, registers the pages after any
// already loaded and returns the Atlas for region and sprite lookups.
func (s *Scene) LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	atlas, err := LoadAtlas(jsonData, pages)
	if err != nil {
		return nil, err
	}
	start := s.nextPage
	for i, page := range pages {
		s.RegisterPage(start+i, page)
	}
	s.nextPage = start + len(pages)
	if start > 0 {
		atlas.pageBase = uint16(start)
		for name, r := range atlas.regions {
			r.Page += uint16(start)
			atlas.regions[name] = r
		}
	}
	return atlas, nil
}
