package policy

import (
	"fmt"

	"github.com/stratus-sim/stratus-sim/sim"
)

// PlacementPolicy chooses a storage device for an arriving file.
// This interface matches sim.PlacementPolicy for duck-typing compatibility.
type PlacementPolicy interface {
	Place(file *sim.FileRecord, devices []*sim.StorageDevice) (*sim.StorageDevice, error)
}

// FirstFit places a file on the first device, in fleet order, with enough
// free capacity.
type FirstFit struct{}

func (FirstFit) Place(file *sim.FileRecord, devices []*sim.StorageDevice) (*sim.StorageDevice, error) {
	for _, d := range devices {
		if d.IsAvailable(file.SizeMB()) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no device fits %q (%d MB): %w", file.Name(), file.SizeMB(), sim.ErrInsufficientCapacity)
}

// BestFit places a file on the device with the most free capacity, balancing
// utilization across the fleet. Ties break on fleet order so placement stays
// deterministic.
type BestFit struct{}

func (BestFit) Place(file *sim.FileRecord, devices []*sim.StorageDevice) (*sim.StorageDevice, error) {
	var best *sim.StorageDevice
	for _, d := range devices {
		if !d.IsAvailable(file.SizeMB()) {
			continue
		}
		if best == nil || d.Available() > best.Available() {
			best = d
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no device fits %q (%d MB): %w", file.Name(), file.SizeMB(), sim.ErrInsufficientCapacity)
	}
	return best, nil
}

// NoPlacement declines every file with a neutral (nil, nil) result. It is an
// ordinary interchangeable implementation, not a sentinel: callers treat a
// nil device as "not placed" without identity checks.
type NoPlacement struct{}

func (NoPlacement) Place(_ *sim.FileRecord, _ []*sim.StorageDevice) (*sim.StorageDevice, error) {
	return nil, nil
}

// NewPlacementPolicy creates a placement policy by name.
// Valid names: "first-fit", "best-fit", "none".
func NewPlacementPolicy(name string) PlacementPolicy {
	switch name {
	case "first-fit":
		return FirstFit{}
	case "best-fit":
		return BestFit{}
	case "none":
		return NoPlacement{}
	default:
		panic(fmt.Sprintf("unknown placement policy %q; valid policies: [first-fit, best-fit, none]", name))
	}
}
