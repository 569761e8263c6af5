// Package control maps pointer input onto the simulated bodies.
//
// [Interaction] is a two-state machine:
//
//	Idle      no body is bound to the pointer
//	Selected  one body, held by handle
//
// A press on either button picks the first body under the pointer (storage
// order, no nearest-match tie-break). Holding the primary button drags the
// selection, releasing it drops the body with no added velocity. Releasing
// the secondary button throws the selection away from the pointer.
//
// # Usage
//
//	ctl := control.NewInteraction(params.ThrowScale)
//	ctl.Apply(store, input) // once per tick, before integration
package control
