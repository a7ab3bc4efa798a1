// Package uix adds UI building blocks to a retained-mode [Ebitengine] scene
// graph: nine-sliced and partially filled images, raycast rules for UI
// canvases, a debug overlay of clickable areas, named locations and a
// global bootstrap.
//
// # Quick start
//
//	scene := uix.NewScene()
//	atlas, err := scene.LoadAtlas(jsonData, pages)
//	if err != nil { ... }
//
//	bar := uix.NewImage("hp", atlas.Sprite("bar_frame"))
//	bar.Image.SetType(uix.ImageFilled)
//	bar.Image.SetSize(200, 24)
//	bar.Image.SetFillAmount(0.75)
//	scene.Root().AddChild(bar)
//
//	uix.Run(scene, uix.RunConfig{Title: "HUD", Width: 640, Height: 480})
//
// # Sliced fill
//
// [GenerateSlicedFill] is the geometry core. It splits a rect into the nine
// cells of a bordered sprite and clips them against a fill fraction along
// one axis, so border caps keep their size while a bar fills. It works in a
// Y-up space that matches texture V, and writes into a reusable
// [MeshBuffer]. [Image] calls it lazily and converts the result to ebiten
// vertices; sprites without a border fall back to [GenerateFilled],
// [GenerateSliced] or [GenerateSimple].
//
// Borders come from TexturePacker's scale9Borders, from [Atlas.SetBorder],
// or from a .9.png via [LoadNinePatch].
//
// # Raycasts and the click-area overlay
//
// A [Canvas] on a node makes its subtree a UI canvas rendered by a
// [Camera]. [IsBlockRaycast] decides whether a graphic intercepts pointer
// input, honoring [CanvasGroup] blocking. [Scene.SetClickAreaMode] installs
// a [ClickAreaOverlay] that paints every blocking rect, for all graphics or
// only the selection, and outlines selected raycast targets.
//
// # Global anchors
//
// [AwakeGlobal] resolves /Global, /Global/Unit, /Global/UI and the
// MainCamera and UICamera cameras, and applies a [GlobalConfig] loaded with
// [LoadGlobalConfig]. [MarkLocation] tags nodes for lookup by name through
// [Scene.Location].
//
// Interaction events can be forwarded to an ECS through [EntityStore]; see
// the uix/ecs package for a [Donburi] adapter.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package uix
