package uix

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// HitRect is an axis-aligned hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node
	button    MouseButton
}

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointer [EventPointerLeave + 1][]pointerHandler
	click   []clickHandler
	nextID  uint32
}

// CallbackHandle removes a scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the callback.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.event == EventClick {
		h.reg.click = removeHandler(h.reg.click, func(c clickHandler) bool { return c.id == h.id })
		return
	}
	list := &h.reg.pointer[h.event]
	*list = removeHandler(*list, func(p pointerHandler) bool { return p.id == h.id })
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

func (s *Scene) onPointer(event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointer[event] = append(s.handlers.pointer[event], pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level pointer down callback.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.onPointer(EventPointerDown, fn)
}

// OnPointerUp registers a scene-level pointer up callback.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.onPointer(EventPointerUp, fn)
}

// OnPointerMove registers a scene-level hover move callback.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.onPointer(EventPointerMove, fn)
}

// OnPointerEnter registers a callback fired when the hovered node changes
// to a node.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.onPointer(EventPointerEnter, fn)
}

// OnPointerLeave registers a callback fired when the pointer leaves the
// hovered node.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.onPointer(EventPointerLeave, fn)
}

// OnClick registers a scene-level click callback.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// CapturePointer routes every event of pointerID to node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer ends a capture started with CapturePointer.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// --- Hit testing ---

// nodeContainsLocal tests (lx, ly) against the node's HitShape, or its
// local bounds when no shape is set.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	b := n.localBounds()
	if b.Width == 0 && b.Height == 0 {
		return false
	}
	return b.Contains(lx, ly)
}

// collectInteractable appends raycast targets below n in painter order.
// Invisible subtrees are skipped entirely.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable && (n.HitShape != nil || n.Type != NodeTypeContainer) && raycastable(n) {
		buf = append(buf, n)
	}
	if len(n.children) == 0 {
		return buf
	}
	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest returns the topmost raycast target at (wx, wy), or nil.
func (s *Scene) hitTest(wx, wy float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(wx, wy)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// HitTest returns the topmost raycast target under a screen point, using
// the primary camera.
func (s *Scene) HitTest(sx, sy float64) *Node {
	wx, wy := screenToWorld(s.primaryCamera(), sx, sy)
	return s.hitTest(wx, wy)
}

// --- Input processing ---

func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

func (s *Scene) primaryCamera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

func screenToWorld(cam *Camera, sx, sy float64) (float64, float64) {
	if cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

// processInput is called from Scene.Update after transforms are refreshed.
// An injected event replaces real mouse input for that frame.
func (s *Scene) processInput() {
	mods := readModifiers()
	cam := s.primaryCamera()
	if s.processInjectedInput(cam, mods) {
		return
	}

	mx, my := ebiten.CursorPosition()
	wx, wy := screenToWorld(cam, float64(mx), float64(my))
	pressed, button := true, MouseButtonLeft
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		button = MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		button = MouseButtonMiddle
	default:
		pressed = false
	}
	s.processPointer(0, wx, wy, pressed, button, mods)
	s.processTouches(cam, mods)
}

// processTouches maps active touches onto pointers 1-9 and releases the
// pointers of touches that ended.
func (s *Scene) processTouches(cam *Camera, mods KeyModifiers) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range s.touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		wx, wy := screenToWorld(cam, float64(tx), float64(ty))
		s.processPointer(slot, wx, wy, true, MouseButtonLeft, mods)
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] || active[i] {
			continue
		}
		if ps := &s.pointers[i]; ps.down {
			s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
		}
		s.touchUsed[i] = false
	}
}

// touchSlot returns the pointer slot of tid, allocating one if needed.
// Returns -1 when every slot is taken.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	free := -1
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
		if !s.touchUsed[i] && free < 0 {
			free = i
		}
	}
	if free > 0 {
		s.touchUsed[free] = true
		s.touchMap[free] = tid
	}
	return free
}

// processPointer runs the pointer state machine for one pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]

	target := s.captured[pointerID]
	if target == nil {
		target = s.hitTest(wx, wy)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointer(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button, mods)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, pointerID, wx, wy, button, mods)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.firePointer(EventPointerDown, target, pointerID, wx, wy, button, mods)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button, mods)
		}
		s.firePointer(EventPointerUp, target, pointerID, wx, wy, ps.button, mods)
		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
	case !pressed && (wx != ps.lastX || wy != ps.lastY):
		s.firePointer(EventPointerMove, target, pointerID, wx, wy, button, mods)
	}
	ps.lastX = wx
	ps.lastY = wy
}

// --- Event dispatch ---

func (s *Scene) firePointer(event EventType, node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}
	for _, h := range s.handlers.pointer[event] {
		h.fn(ctx)
	}
	if node != nil {
		var cb func(PointerContext)
		switch event {
		case EventPointerDown:
			cb = node.OnPointerDown
		case EventPointerUp:
			cb = node.OnPointerUp
		case EventPointerMove:
			cb = node.OnPointerMove
		case EventPointerEnter:
			cb = node.OnPointerEnter
		case EventPointerLeave:
			cb = node.OnPointerLeave
		}
		if cb != nil {
			cb(ctx)
		}
	}
	s.emitInteractionEvent(event, node, wx, wy, ctx.LocalX, ctx.LocalY, button, mods)
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := ClickContext{
		Node: node, EntityID: node.EntityID, UserData: node.UserData,
		GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitInteractionEvent(EventClick, node, wx, wy, ctx.LocalX, ctx.LocalY, button, mods)
}

// emitInteractionEvent forwards events on nodes with an EntityID to the
// ECS bridge.
func (s *Scene) emitInteractionEvent(event EventType, node *Node, wx, wy, lx, ly float64, button MouseButton, mods KeyModifiers) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      event,
		EntityID:  node.EntityID,
		GlobalX:   wx,
		GlobalY:   wy,
		LocalX:    lx,
		LocalY:    ly,
		Button:    button,
		Modifiers: mods,
	})
}
