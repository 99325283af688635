package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events. Each event has a
// timestamp in simulated seconds and an Execute method that advances
// simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// UnitStartEvent powers on a compute unit. If the unit has a startup delay, a
// StartupCompleteEvent is scheduled at its completion time; otherwise the
// unit is operational immediately.
type UnitStartEvent struct {
	time float64
	Unit *ComputeUnit
}

// Timestamp returns the scheduled time of the UnitStartEvent.
func (e *UnitStartEvent) Timestamp() float64 {
	return e.time
}

// Execute starts the unit and schedules its startup completion.
func (e *UnitStartEvent) Execute(sim *Simulator) {
	logrus.Infof("<< UnitStart: %s at %.3fs", e.Unit.ID(), e.time)
	if err := e.Unit.Start(e.time); err != nil {
		logrus.Errorf("unit %s failed to start: %v", e.Unit.ID(), err)
		return
	}
	sim.Metrics.UnitsStarted++

	if e.Unit.Lifecycle().HasStartupDelay() {
		sim.Schedule(&StartupCompleteEvent{
			time: e.Unit.Lifecycle().StartupCompletionTime(),
			Unit: e.Unit,
		})
		return
	}
	sim.Metrics.StartupsCompleted++
}

// StartupCompleteEvent marks the instant a delayed compute unit becomes
// operational. The transition itself is lazy (Lifecycle predicates read the
// live clock); this event only exists so the engine observes it.
type StartupCompleteEvent struct {
	time float64
	Unit *ComputeUnit
}

// Timestamp returns the scheduled time of the StartupCompleteEvent.
func (e *StartupCompleteEvent) Timestamp() float64 {
	return e.time
}

// Execute records the completed startup.
func (e *StartupCompleteEvent) Execute(sim *Simulator) {
	logrus.Infof("<< StartupComplete: %s at %.3fs (operational=%v)",
		e.Unit.ID(), e.time, e.Unit.IsOperational())
	sim.Metrics.StartupsCompleted++
}

// FileArrivalEvent represents a file arriving for placement. The placement
// policy picks a device; on success the device's time cost is recorded on the
// file as its transaction time.
type FileArrivalEvent struct {
	time float64
	File *FileRecord
}

// Timestamp returns the scheduled time of the FileArrivalEvent.
func (e *FileArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute places the file on a device chosen by the placement policy.
func (e *FileArrivalEvent) Execute(sim *Simulator) {
	logrus.Infof("<< FileArrival: %s (%d MB) at %.3fs", e.File.Name(), e.File.SizeMB(), e.time)

	device, err := sim.Placement.Place(e.File, sim.Devices)
	if err != nil {
		logrus.Warnf("no placement for %q: %v", e.File.Name(), err)
		sim.Metrics.FilesRejected++
		return
	}
	if device == nil {
		// Trivial placement policy declined without error.
		sim.Metrics.FilesRejected++
		return
	}

	cost, err := device.AddFile(e.File)
	if err != nil {
		logrus.Warnf("placement of %q on %q failed: %v", e.File.Name(), device.Name(), err)
		sim.Metrics.FilesRejected++
		return
	}
	// The device prices the operation; the caller owns the timestamping.
	_ = e.File.SetTransactionTime(cost)
	_ = e.File.SetUpdateTime(e.time)
	sim.Metrics.FilesPlaced++
	sim.Metrics.StorageOpSeconds += cost
}

// FileRemovalEvent removes a named file from whichever device holds it.
type FileRemovalEvent struct {
	time float64
	Name string
}

// Timestamp returns the scheduled time of the FileRemovalEvent.
func (e *FileRemovalEvent) Timestamp() float64 {
	return e.time
}

// Execute removes the file, pricing the removal like an addition.
func (e *FileRemovalEvent) Execute(sim *Simulator) {
	logrus.Infof("<< FileRemoval: %s at %.3fs", e.Name, e.time)

	for _, device := range sim.Devices {
		if !device.HasFile(e.Name) {
			continue
		}
		file, cost, err := device.RemoveFile(e.Name)
		if err != nil {
			logrus.Errorf("removal of %q from %q failed: %v", e.Name, device.Name(), err)
			return
		}
		_ = file.SetTransactionTime(cost)
		sim.Metrics.FilesRemoved++
		sim.Metrics.StorageOpSeconds += cost
		return
	}
	logrus.Warnf("removal of %q: no device holds it", e.Name)
}
