// Package ecs provides ECS adapters for tilekit's cell event system.
//
// The primary adapter is [NewDonburiSink], which bridges grid cell events
// (press, click) into a [Donburi] world as typed events. Subscribe to
// [CellEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	board.Events = sink
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
