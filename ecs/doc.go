// Package ecs bridges uix into a [Donburi] world.
//
// [NewDonburiStore] publishes uix interaction events (pointer and click) as
// typed Donburi events; subscribe to [InteractionEventType] in your systems.
// [AddGlobal] stores the resolved [uix.Global] anchors on a singleton entity
// so systems can reach the UI root and cameras through [GlobalOf].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
//	g, err := uix.AwakeGlobal(scene, cfg)
//	if err != nil { ... }
//	ecs.AddGlobal(world, g)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
