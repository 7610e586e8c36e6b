// Package nav coordinates which view is active and which application mode
// is current.
//
// Core abstractions:
//   - Stack: hierarchical push/pop navigation over factory-built instances,
//     sequencing hide/show transitions and create/destroy
//   - Mode and Machine: mutually-exclusive application modes with
//     exit-before-enter ordering and rollback on failure
//   - Navigator: the single facade application code (and modes themselves)
//     hold; composes the stack and the machine
//
// All operations are context-aware: template loads, mode hooks and
// transitions are the suspension points, and cancelling any of them leaves
// the coordinator in the state it had before the operation began. Callers
// are expected not to issue overlapping operations against one Navigator.
package nav
