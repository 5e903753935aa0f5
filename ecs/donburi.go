package ecs

import (
	"github.com/phanxgames/tilekit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CellEventType is the Donburi event type for tilekit cell events.
var CellEventType = events.NewEventType[tilekit.CellEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a CellEventSink backed by a Donburi world. Events
// are queued on CellEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) tilekit.CellEventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitCellEvent(event tilekit.CellEvent) {
	CellEventType.Publish(s.world, event)
}
