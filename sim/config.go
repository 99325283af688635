package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioSpec is a full simulation scenario, loadable from a YAML file.
// Nil pointer fields on devices mean "not set in YAML" — the named defaults
// (DefaultLatency, DefaultAvgSeekTime, DefaultMaxTransferRate) apply.
type ScenarioSpec struct {
	Horizon      float64           `yaml:"horizon"`
	Seed         int64             `yaml:"seed"`
	Devices      []DeviceSpec      `yaml:"devices"`
	ComputeUnits []ComputeUnitSpec `yaml:"compute_units"`
	Files        []FileSpec        `yaml:"files"`
	Removals     []RemovalSpec     `yaml:"removals"`
}

// DeviceSpec configures one storage device.
type DeviceSpec struct {
	Name            string     `yaml:"name"`
	CapacityMB      int64      `yaml:"capacity_mb"`
	Latency         *float64   `yaml:"latency"`
	AvgSeekTime     *float64   `yaml:"avg_seek_time"`
	MaxTransferRate *float64   `yaml:"max_transfer_rate"`
	Jitter          JitterSpec `yaml:"jitter"`
}

// ComputeUnitSpec configures one compute unit and when it powers on.
type ComputeUnitSpec struct {
	ID            string  `yaml:"id"`
	PEs           int64   `yaml:"pes"`
	SlotSpeed     float64 `yaml:"slot_speed"`
	StartupDelay  float64 `yaml:"startup_delay"`
	ShutdownDelay float64 `yaml:"shutdown_delay"`
	StartAt       float64 `yaml:"start_at"`
}

// FileSpec configures one file arrival.
type FileSpec struct {
	Name     string  `yaml:"name"`
	SizeMB   int64   `yaml:"size_mb"`
	Owner    string  `yaml:"owner"`
	ArriveAt float64 `yaml:"arrive_at"`
}

// RemovalSpec configures one file removal.
type RemovalSpec struct {
	Name string  `yaml:"name"`
	At   float64 `yaml:"at"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &spec, nil
}

// Validate checks the scenario before any fleet state is built, so a bad
// file fails as one error instead of a half-built simulator.
func (s *ScenarioSpec) Validate() error {
	if s.Horizon < 0 {
		return fmt.Errorf("horizon must be >= 0, got %v: %w", s.Horizon, ErrValidation)
	}
	seen := make(map[string]bool, len(s.Devices))
	for _, d := range s.Devices {
		if err := ValidateFileName(d.Name); err != nil {
			return fmt.Errorf("device name: %w", err)
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate device name %q: %w", d.Name, ErrValidation)
		}
		seen[d.Name] = true
		if d.CapacityMB < 0 {
			return fmt.Errorf("device %q capacity must be >= 0, got %d: %w", d.Name, d.CapacityMB, ErrValidation)
		}
		if d.Latency != nil && *d.Latency < 0 {
			return fmt.Errorf("device %q latency must be >= 0: %w", d.Name, ErrValidation)
		}
		if d.AvgSeekTime != nil && *d.AvgSeekTime < 0 {
			return fmt.Errorf("device %q avg_seek_time must be >= 0: %w", d.Name, ErrValidation)
		}
		if d.MaxTransferRate != nil && *d.MaxTransferRate <= 0 {
			return fmt.Errorf("device %q max_transfer_rate must be > 0: %w", d.Name, ErrValidation)
		}
	}
	for _, u := range s.ComputeUnits {
		if u.PEs <= 0 {
			return fmt.Errorf("compute unit %q must have at least one PE: %w", u.ID, ErrInvalidCapacity)
		}
		if u.SlotSpeed < 0 || u.StartupDelay < 0 || u.ShutdownDelay < 0 || u.StartAt < 0 {
			return fmt.Errorf("compute unit %q has a negative parameter: %w", u.ID, ErrValidation)
		}
	}
	for _, f := range s.Files {
		if err := ValidateFileName(f.Name); err != nil {
			return err
		}
		if f.SizeMB <= 0 {
			return fmt.Errorf("file %q size must be > 0 MB: %w", f.Name, ErrValidation)
		}
		if f.ArriveAt < 0 {
			return fmt.Errorf("file %q arrive_at must be >= 0: %w", f.Name, ErrValidation)
		}
	}
	return nil
}

// BuildSimulator turns a validated scenario into a ready-to-run simulator.
// Each device gets its own jitter source derived from the scenario seed and
// the device name, so device order never perturbs the sample streams.
func (s *ScenarioSpec) BuildSimulator(placement PlacementPolicy) (*Simulator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	simulator := NewSimulator(s.Horizon, placement)
	rng := NewPartitionedRNG(NewSimulationKey(s.Seed))

	for _, spec := range s.Devices {
		device, err := NewStorageDevice(spec.Name, spec.CapacityMB)
		if err != nil {
			return nil, err
		}
		if spec.Latency != nil {
			if err := device.SetLatency(*spec.Latency); err != nil {
				return nil, err
			}
		}
		if spec.AvgSeekTime != nil {
			if err := device.SetAvgSeekTime(*spec.AvgSeekTime); err != nil {
				return nil, err
			}
		}
		if spec.MaxTransferRate != nil {
			if err := device.SetMaxTransferRate(*spec.MaxTransferRate); err != nil {
				return nil, err
			}
		}
		sampler, err := NewSamplerFromSpec(spec.Jitter, rng.ForSubsystem(spec.Name))
		if err != nil {
			return nil, fmt.Errorf("device %q: %w", spec.Name, err)
		}
		device.SetSampler(sampler)
		simulator.AddDevice(device)
	}

	for _, spec := range s.ComputeUnits {
		unit, err := NewComputeUnit(spec.ID, spec.PEs, spec.SlotSpeed, simulator.Clock)
		if err != nil {
			return nil, err
		}
		if err := unit.Lifecycle().SetStartupDelay(spec.StartupDelay); err != nil {
			return nil, err
		}
		if err := unit.Lifecycle().SetShutdownDelay(spec.ShutdownDelay); err != nil {
			return nil, err
		}
		simulator.AddUnit(unit)
		simulator.ScheduleUnitStart(spec.StartAt, unit)
	}

	for _, spec := range s.Files {
		file, err := NewFileRecord(spec.Name, spec.SizeMB)
		if err != nil {
			return nil, err
		}
		file.SetOwnerName(spec.Owner)
		simulator.ScheduleFileArrival(spec.ArriveAt, file)
	}
	for _, spec := range s.Removals {
		simulator.ScheduleFileRemoval(spec.At, spec.Name)
	}
	return simulator, nil
}
