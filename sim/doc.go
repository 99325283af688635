// Package sim provides the timed-resource-accounting core of a discrete-event
// cloud-infrastructure simulator.
//
// # Reading Guide
//
// Start with these files to understand the accounting core:
//   - capacity.go: the integral capacity ledger every other component builds on
//   - storage.go: storage devices that register files and price access in simulated seconds
//   - lifecycle.go: clock-relative startup/shutdown delay state machine
//
// # Architecture
//
// The core components (Capacity, Processor, FileRecord, StorageDevice,
// Lifecycle) are pure bookkeeping: every call returns immediately with a
// result or an error, and any "waiting" is expressed as a computed future
// clock value for an external event engine to schedule against. The thin
// driver in event.go and simulator.go is one such engine; it depends on the
// core components, never the other way around.
//
// All state is single-writer per simulated instant: the surrounding engine
// serializes mutations, so the core performs no locking.
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - Clock: the simulated time source queried by Lifecycle
//   - ContinuousSampler: seek-time jitter injection for StorageDevice
//   - PlacementPolicy: choose a device for an arriving file (implementations in sim/policy)
package sim
