// Tracks run-wide accounting metrics: placements, rejections, removals,
// simulated seconds spent on storage operations, and over-release diagnostics.

package sim

import (
	"fmt"
	"sort"
)

// Metrics aggregates statistics about a simulation run for final reporting.
// Useful for evaluating placement behavior and catching bookkeeping drift
// (over-releases) over time.
type Metrics struct {
	FilesPlaced       int // Files successfully placed on a device
	FilesRejected     int // Files no device could hold (or the policy declined)
	FilesRemoved      int // Files removed from a device
	UnitsStarted      int // Compute units that began starting up
	StartupsCompleted int // Compute units that finished their startup delay

	StorageOpSeconds float64 // Sum of simulated seconds of seek + transfer across file ops

	// PerDeviceOverReleases is collected from the device ledgers at report
	// time; a nonzero value means some caller released capacity it never held.
	PerDeviceOverReleases map[string]int64
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{PerDeviceOverReleases: make(map[string]int64)}
}

// CollectLedgerDiagnostics snapshots the over-release counters of the given
// devices into the metrics.
func (m *Metrics) CollectLedgerDiagnostics(devices []*StorageDevice) {
	for _, d := range devices {
		if n := d.OverReleases(); n > 0 {
			m.PerDeviceOverReleases[d.Name()] = n
		}
	}
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Files Placed        : %d\n", m.FilesPlaced)
	fmt.Printf("Files Rejected      : %d\n", m.FilesRejected)
	fmt.Printf("Files Removed       : %d\n", m.FilesRemoved)
	fmt.Printf("Units Started       : %d\n", m.UnitsStarted)
	fmt.Printf("Startups Completed  : %d\n", m.StartupsCompleted)
	fmt.Printf("Storage Op Seconds  : %.6f\n", m.StorageOpSeconds)
	devices := make([]string, 0, len(m.PerDeviceOverReleases))
	for device := range m.PerDeviceOverReleases {
		devices = append(devices, device)
	}
	sort.Strings(devices)
	for _, device := range devices {
		fmt.Printf("Over-releases on %s : %d\n", device, m.PerDeviceOverReleases[device])
	}
}
