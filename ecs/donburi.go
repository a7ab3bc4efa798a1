package ecs

import (
	"github.com/etclient/uix"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for uix interaction events.
var InteractionEventType = events.NewEventType[uix.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued on InteractionEventType until ProcessEvents runs.
func NewDonburiStore(world donburi.World) uix.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event uix.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// GlobalData is the component holding the scene anchors.
type GlobalData struct {
	Global *uix.Global
}

// GlobalComponent tags the singleton entity created by AddGlobal.
var GlobalComponent = donburi.NewComponentType[GlobalData]()

var globalQuery = donburi.NewQuery(filter.Contains(GlobalComponent))

// AddGlobal stores g on the world's global entity, creating it on first
// use, and returns that entity.
func AddGlobal(world donburi.World, g *uix.Global) donburi.Entity {
	if entry, ok := globalQuery.First(world); ok {
		GlobalComponent.SetValue(entry, GlobalData{Global: g})
		return entry.Entity()
	}
	e := world.Create(GlobalComponent)
	GlobalComponent.SetValue(world.Entry(e), GlobalData{Global: g})
	return e
}

// GlobalOf returns the anchors stored by AddGlobal.
func GlobalOf(world donburi.World) (*uix.Global, bool) {
	entry, ok := globalQuery.First(world)
	if !ok {
		return nil, false
	}
	return GlobalComponent.Get(entry).Global, true
}
