package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// PlacementPolicy chooses a storage device for an arriving file.
// Implementations live in sim/policy; this interface matches
// policy.PlacementPolicy for duck-typing compatibility. A trivial policy may
// return (nil, nil) to decline placement without treating it as an error.
type PlacementPolicy interface {
	Place(file *FileRecord, devices []*StorageDevice) (*StorageDevice, error)
}

// eventEntry pairs an event with its insertion sequence number so that
// same-timestamp events pop in scheduling order, keeping runs deterministic.
type eventEntry struct {
	event Event
	seq   uint64
}

// EventQueue implements heap.Interface and orders events by timestamp, then
// by scheduling order for ties.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []eventEntry

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].event.Timestamp() != eq[j].event.Timestamp() {
		return eq[i].event.Timestamp() < eq[j].event.Timestamp()
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(eventEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	entry := old[n-1]
	*eq = old[:n-1]
	return entry
}

// Simulator is the thin event engine driving the accounting core: a virtual
// clock, a heap-ordered event queue, and the fleet of devices and compute
// units the events operate on. The core components never depend on it.
type Simulator struct {
	Clock   *VirtualClock
	Horizon float64 // simulated seconds; events beyond it are dropped

	Devices   []*StorageDevice
	Units     []*ComputeUnit
	Placement PlacementPolicy
	Metrics   *Metrics

	events EventQueue
	seq    uint64
}

// NewSimulator creates a simulator with an empty fleet.
func NewSimulator(horizon float64, placement PlacementPolicy) *Simulator {
	return &Simulator{
		Clock:     &VirtualClock{},
		Horizon:   horizon,
		Placement: placement,
		Metrics:   NewMetrics(),
	}
}

// AddDevice appends a storage device to the fleet. Device slice order is the
// deterministic tie-break placement policies rely on.
func (s *Simulator) AddDevice(d *StorageDevice) {
	s.Devices = append(s.Devices, d)
}

// AddUnit appends a compute unit to the fleet.
func (s *Simulator) AddUnit(u *ComputeUnit) {
	s.Units = append(s.Units, u)
}

// Device returns the named device from the fleet.
func (s *Simulator) Device(name string) (*StorageDevice, error) {
	for _, d := range s.Devices {
		if d.Name() == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no device named %q", name)
}

// Schedule enqueues an event. Events past the horizon are dropped.
func (s *Simulator) Schedule(e Event) {
	if s.Horizon > 0 && e.Timestamp() > s.Horizon {
		logrus.Debugf("dropping event at %.3fs beyond horizon %.3fs", e.Timestamp(), s.Horizon)
		return
	}
	heap.Push(&s.events, eventEntry{event: e, seq: s.seq})
	s.seq++
}

// ScheduleUnitStart schedules a compute unit power-on.
func (s *Simulator) ScheduleUnitStart(at float64, u *ComputeUnit) {
	s.Schedule(&UnitStartEvent{time: at, Unit: u})
}

// ScheduleFileArrival schedules a file for placement.
func (s *Simulator) ScheduleFileArrival(at float64, f *FileRecord) {
	s.Schedule(&FileArrivalEvent{time: at, File: f})
}

// ScheduleFileRemoval schedules removal of a named file.
func (s *Simulator) ScheduleFileRemoval(at float64, name string) {
	s.Schedule(&FileRemovalEvent{time: at, Name: name})
}

// Run drains the event queue in timestamp order, advancing the virtual clock
// to each event before executing it. Ledger diagnostics are collected into
// Metrics when the run ends.
func (s *Simulator) Run() {
	for s.events.Len() > 0 {
		entry := heap.Pop(&s.events).(eventEntry)
		s.Clock.AdvanceTo(entry.event.Timestamp())
		entry.event.Execute(s)
	}
	s.Metrics.CollectLedgerDiagnostics(s.Devices)
	logrus.Infof("simulation drained at %.3fs", s.Clock.Now())
}
