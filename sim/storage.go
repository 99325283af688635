package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Default physical parameters, matching a Maxtor DiamondMax 10 ATA disk.
// Exposed as named configuration defaults so scenarios and tests can override
// them deterministically.
const (
	// DefaultLatency is the fixed access latency in seconds (4.17 ms).
	DefaultLatency = 0.00417

	// DefaultAvgSeekTime is the average seek time in seconds (9 ms).
	DefaultAvgSeekTime = 0.009

	// DefaultMaxTransferRate is the rated throughput in Mbit/s (133 MB/s).
	DefaultMaxTransferRate = 1064

	// mbitsPerMB converts a size in MB to megabits for transfer pricing.
	mbitsPerMB = 8
)

// StorageDevice models a storage medium with finite capacity in MB. It
// registers FileRecords, owns their capacity accounting, and prices access in
// simulated seconds from seek time, transfer rate and fixed latency.
//
// Both adding and removing a file cost seek + transfer: locating the data and
// streaming it on or off the medium. The seek term scales inversely with
// total capacity, a deliberate simplification approximating how larger disks
// amortize seek over more data, not a physical head-movement model.
type StorageDevice struct {
	name    string
	storage *Capacity // unit "MB"; sum of registered file sizes == allocated

	latency         float64 // seconds, >= 0
	avgSeekTime     float64 // seconds, >= 0
	maxTransferRate float64 // Mbit/s, > 0

	sampler ContinuousSampler
	files   map[string]*FileRecord
}

// NewStorageDevice creates a device with the given name and capacity in MB,
// using the default disk parameters and no seek jitter. Blank names fail with
// ErrValidation.
func NewStorageDevice(name string, capacityMB int64) (*StorageDevice, error) {
	if err := ValidateFileName(name); err != nil {
		return nil, fmt.Errorf("storage device name: %w", err)
	}
	storage, err := NewCapacity(capacityMB, "MB")
	if err != nil {
		return nil, err
	}
	d := &StorageDevice{
		name:            name,
		storage:         storage,
		latency:         DefaultLatency,
		avgSeekTime:     DefaultAvgSeekTime,
		maxTransferRate: DefaultMaxTransferRate,
		sampler:         ZeroSampler{},
		files:           make(map[string]*FileRecord),
	}
	return d, nil
}

// Name returns the device name.
func (d *StorageDevice) Name() string { return d.name }

// SetLatency sets the fixed access latency in seconds. Negative values fail
// with ErrValidation.
func (d *StorageDevice) SetLatency(latency float64) error {
	if latency < 0 {
		return fmt.Errorf("latency must be >= 0, got %v: %w", latency, ErrValidation)
	}
	d.latency = latency
	return nil
}

// Latency returns the fixed access latency in seconds.
func (d *StorageDevice) Latency() float64 { return d.latency }

// SetAvgSeekTime sets the average seek time in seconds. Negative values fail
// with ErrValidation.
func (d *StorageDevice) SetAvgSeekTime(seekTime float64) error {
	if seekTime < 0 {
		return fmt.Errorf("avg seek time must be >= 0, got %v: %w", seekTime, ErrValidation)
	}
	d.avgSeekTime = seekTime
	return nil
}

// AvgSeekTime returns the average seek time in seconds.
func (d *StorageDevice) AvgSeekTime() float64 { return d.avgSeekTime }

// SetMaxTransferRate sets the rated throughput in Mbit/s. Non-positive rates
// fail with ErrValidation, which is what keeps TransferTime division-safe.
func (d *StorageDevice) SetMaxTransferRate(rateMbits float64) error {
	if rateMbits <= 0 {
		return fmt.Errorf("max transfer rate must be > 0, got %v: %w", rateMbits, ErrValidation)
	}
	d.maxTransferRate = rateMbits
	return nil
}

// MaxTransferRate returns the rated throughput in Mbit/s.
func (d *StorageDevice) MaxTransferRate() float64 { return d.maxTransferRate }

// SetSampler injects the seek-jitter sampler. Passing nil restores the
// deterministic ZeroSampler.
func (d *StorageDevice) SetSampler(sampler ContinuousSampler) {
	if sampler == nil {
		sampler = ZeroSampler{}
	}
	d.sampler = sampler
}

// TransferTime returns the simulated seconds to stream a file of the given
// size at the device's rated throughput, plus the fixed latency.
func (d *StorageDevice) TransferTime(sizeMB int64) float64 {
	return d.TransferTimeAt(sizeMB, d.maxTransferRate) + d.latency
}

// TransferTimeAt returns the simulated seconds to stream a file of the given
// size at an arbitrary throughput in Mbit/s, without the fixed latency.
func (d *StorageDevice) TransferTimeAt(sizeMB int64, rateMbits float64) float64 {
	return float64(sizeMB*mbitsPerMB) / rateMbits
}

// SeekTime returns the simulated seconds to locate a file of the given size,
// including one jitter sample. Non-positive sizes and zero-capacity devices
// seek for free.
func (d *StorageDevice) SeekTime(sizeMB int64) float64 {
	if sizeMB > 0 && d.storage.Cap() != 0 {
		return d.sampler.Sample() + float64(sizeMB)/float64(d.storage.Cap())
	}
	return 0
}

// AddFile registers a file on the device, allocates its size and sets the
// file's device back-reference. It returns the total simulated seconds the
// operation costs (seek + transfer), which the caller is expected to record
// via SetTransactionTime. Duplicate names fail with ErrValidation; a file
// that does not fit fails with ErrInsufficientCapacity, leaving both the
// device and the file untouched.
func (d *StorageDevice) AddFile(file *FileRecord) (float64, error) {
	if file == nil {
		return 0, fmt.Errorf("nil file: %w", ErrValidation)
	}
	if _, exists := d.files[file.Name()]; exists {
		return 0, fmt.Errorf("file %q already on device %q: %w", file.Name(), d.name, ErrValidation)
	}
	if err := d.storage.Allocate(file.SizeMB()); err != nil {
		return 0, fmt.Errorf("add file %q to device %q: %w", file.Name(), d.name, err)
	}
	d.files[file.Name()] = file
	file.setDevice(d.name)

	cost := d.SeekTime(file.SizeMB()) + d.TransferTime(file.SizeMB())
	logrus.Debugf("device %q: added %q (%d MB) in %.6fs, %d MB free",
		d.name, file.Name(), file.SizeMB(), cost, d.storage.Available())
	return cost, nil
}

// RemoveFile unregisters the named file, releases its capacity and clears its
// device back-reference. Removal is priced identically to addition: it
// returns the removed record plus the seek + transfer cost for its size.
// Unknown names fail with ErrFileNotFound.
func (d *StorageDevice) RemoveFile(name string) (*FileRecord, float64, error) {
	file, ok := d.files[name]
	if !ok {
		return nil, 0, fmt.Errorf("remove %q from device %q: %w", name, d.name, ErrFileNotFound)
	}
	cost := d.SeekTime(file.SizeMB()) + d.TransferTime(file.SizeMB())
	d.storage.Deallocate(file.SizeMB())
	delete(d.files, name)
	file.setDevice("")

	logrus.Debugf("device %q: removed %q (%d MB) in %.6fs, %d MB free",
		d.name, name, file.SizeMB(), cost, d.storage.Available())
	return file, cost, nil
}

// GetFile returns the named record without touching capacity or timing.
// Unknown names fail with ErrFileNotFound.
func (d *StorageDevice) GetFile(name string) (*FileRecord, error) {
	file, ok := d.files[name]
	if !ok {
		return nil, fmt.Errorf("get %q from device %q: %w", name, d.name, ErrFileNotFound)
	}
	return file, nil
}

// HasFile reports whether a file with the given name is registered.
func (d *StorageDevice) HasFile(name string) bool {
	_, ok := d.files[name]
	return ok
}

// FileCount returns the number of registered files.
func (d *StorageDevice) FileCount() int { return len(d.files) }

// FileNames returns the registered file names in sorted order, so iteration
// over a device is deterministic.
func (d *StorageDevice) FileNames() []string {
	names := make([]string, 0, len(d.files))
	for name := range d.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capacity ledger surface. Allocation moves only through AddFile/RemoveFile
// so the sum of registered file sizes always equals the allocated amount.

// Cap returns the total capacity in MB.
func (d *StorageDevice) Cap() int64 { return d.storage.Cap() }

// Allocated returns the MB occupied by registered files.
func (d *StorageDevice) Allocated() int64 { return d.storage.Allocated() }

// Available returns the free MB.
func (d *StorageDevice) Available() int64 { return d.storage.Available() }

// IsAvailable reports whether a file of the given size would fit.
func (d *StorageDevice) IsAvailable(sizeMB int64) bool { return d.storage.IsAvailable(sizeMB) }

// IsFull reports whether no capacity remains.
func (d *StorageDevice) IsFull() bool { return d.storage.IsFull() }

// Unit returns the ledger unit label ("MB").
func (d *StorageDevice) Unit() string { return d.storage.Unit() }

// UtilizationPercent returns occupied/capacity in [0, 100].
func (d *StorageDevice) UtilizationPercent() float64 { return d.storage.UtilizationPercent() }

// OverReleases returns the device ledger's over-release diagnostic count.
func (d *StorageDevice) OverReleases() int64 { return d.storage.OverReleases() }

// Resize changes the device capacity, failing with ErrCapacityTooSmall if the
// registered files would no longer fit.
func (d *StorageDevice) Resize(capacityMB int64) error { return d.storage.Resize(capacityMB) }
