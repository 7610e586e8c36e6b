// Package view defines the lifecycle contracts shared by the pool, factory
// and navigation layers.
//
// Core abstractions:
//   - Instance: a pooled or on-screen unit of UI content with a kind identity,
//     visibility state and an attached view-model
//   - Model: the business-logic object bound 1:1 to an Instance while shown
//   - Template: materializes new Instances of a single concrete kind
//   - Poolable: optional acquire/release callbacks for pool-aware views
//
// Concrete views embed Base to get the common state handling and implement
// whatever optional contracts they need.
package view
