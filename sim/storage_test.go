package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSampler returns the same jitter value on every call.
type fixedSampler struct {
	value float64
}

func (s fixedSampler) Sample() float64 { return s.value }

// newTestDevice builds the reference disk used across these tests:
// 100 MB capacity, 4.17 ms latency, 9 ms avg seek, 1064 Mbit/s, no jitter.
func newTestDevice(t *testing.T) *StorageDevice {
	t.Helper()
	d, err := NewStorageDevice("disk-0", 100)
	require.NoError(t, err)
	return d
}

func TestNewStorageDevice_AppliesDefaults(t *testing.T) {
	d := newTestDevice(t)

	assert.Equal(t, DefaultLatency, d.Latency())
	assert.Equal(t, DefaultAvgSeekTime, d.AvgSeekTime())
	assert.Equal(t, float64(DefaultMaxTransferRate), d.MaxTransferRate())
	assert.Equal(t, "MB", d.Unit())
	assert.Equal(t, int64(100), d.Cap())
}

func TestNewStorageDevice_BlankName_Fails(t *testing.T) {
	_, err := NewStorageDevice("  ", 100)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStorageDevice_ParameterValidation(t *testing.T) {
	d := newTestDevice(t)

	assert.ErrorIs(t, d.SetLatency(-0.001), ErrValidation)
	assert.ErrorIs(t, d.SetAvgSeekTime(-1), ErrValidation)
	assert.ErrorIs(t, d.SetMaxTransferRate(0), ErrValidation)
	assert.ErrorIs(t, d.SetMaxTransferRate(-10), ErrValidation)

	// Failed setters leave the defaults in place
	assert.Equal(t, DefaultLatency, d.Latency())
	assert.Equal(t, float64(DefaultMaxTransferRate), d.MaxTransferRate())
}

func TestStorageDevice_TransferTime(t *testing.T) {
	d := newTestDevice(t)

	// 50 MB = 400 Mbit at 1064 Mbit/s, plus 4.17 ms latency
	got := d.TransferTime(50)
	assert.InDelta(t, 400.0/1064.0+0.00417, got, 1e-12)
}

func TestStorageDevice_SeekTime(t *testing.T) {
	d := newTestDevice(t)

	// Zero jitter by default: seek is just size/capacity
	assert.Equal(t, 0.5, d.SeekTime(50))

	// Non-positive sizes seek for free
	assert.Equal(t, float64(0), d.SeekTime(0))
	assert.Equal(t, float64(0), d.SeekTime(-10))
}

func TestStorageDevice_SeekTime_ZeroCapacityDevice(t *testing.T) {
	d, err := NewStorageDevice("null-disk", 0)
	require.NoError(t, err)
	assert.Equal(t, float64(0), d.SeekTime(50))
}

func TestStorageDevice_SeekTime_WithJitter(t *testing.T) {
	// GIVEN a device with a deterministic 5 ms jitter sampler
	d := newTestDevice(t)
	d.SetSampler(fixedSampler{value: 0.005})

	// THEN every seek includes exactly one sample
	assert.InDelta(t, 0.005+0.5, d.SeekTime(50), 1e-12)
}

func TestStorageDevice_SetSampler_NilRestoresZero(t *testing.T) {
	d := newTestDevice(t)
	d.SetSampler(fixedSampler{value: 1})
	d.SetSampler(nil)
	assert.Equal(t, 0.5, d.SeekTime(50))
}

func TestStorageDevice_AddFile_AccountsAndPrices(t *testing.T) {
	// GIVEN the reference disk and a 50 MB file
	d := newTestDevice(t)
	f, err := NewFileRecord("data.bin", 50)
	require.NoError(t, err)

	// WHEN the file is added
	cost, err := d.AddFile(f)
	require.NoError(t, err)

	// THEN capacity and registry reflect it
	assert.Equal(t, int64(50), d.Available())
	assert.Equal(t, int64(50), d.Allocated())
	assert.True(t, d.HasFile("data.bin"))
	assert.Equal(t, "disk-0", f.DeviceName())

	// AND the time cost equals seek + transfer computed independently
	want := d.SeekTime(50) + d.TransferTime(50)
	assert.Equal(t, want, cost)
	assert.InDelta(t, 0.5+400.0/1064.0+0.00417, cost, 1e-12)
}

func TestStorageDevice_AddFile_InsufficientCapacity_Unchanged(t *testing.T) {
	// GIVEN a device with only 10 MB free
	d := newTestDevice(t)
	big, err := NewFileRecord("big.bin", 90)
	require.NoError(t, err)
	_, err = d.AddFile(big)
	require.NoError(t, err)

	// WHEN a 20 MB file arrives
	f, err := NewFileRecord("late.bin", 20)
	require.NoError(t, err)
	_, err = d.AddFile(f)

	// THEN the add fails and nothing changed
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, int64(90), d.Allocated())
	assert.False(t, d.HasFile("late.bin"))
	assert.Empty(t, f.DeviceName())
}

func TestStorageDevice_AddFile_DuplicateName_Fails(t *testing.T) {
	d := newTestDevice(t)
	f1, _ := NewFileRecord("data.bin", 10)
	f2, _ := NewFileRecord("data.bin", 10)

	_, err := d.AddFile(f1)
	require.NoError(t, err)
	_, err = d.AddFile(f2)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(10), d.Allocated(), "duplicate add must not double-book capacity")
}

func TestStorageDevice_AddFile_Nil_Fails(t *testing.T) {
	d := newTestDevice(t)
	_, err := d.AddFile(nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStorageDevice_RemoveFile_ReleasesAndPricesLikeAdd(t *testing.T) {
	// GIVEN a device holding a 50 MB file
	d := newTestDevice(t)
	f, _ := NewFileRecord("data.bin", 50)
	addCost, err := d.AddFile(f)
	require.NoError(t, err)

	// WHEN the file is removed
	removed, removeCost, err := d.RemoveFile("data.bin")
	require.NoError(t, err)

	// THEN the same record comes back, detached, and capacity is free again
	assert.Same(t, f, removed)
	assert.Empty(t, removed.DeviceName())
	assert.Equal(t, int64(0), d.Allocated())
	assert.False(t, d.HasFile("data.bin"))

	// AND removal is priced identically to addition
	assert.Equal(t, addCost, removeCost)
}

func TestStorageDevice_RemoveFile_Unknown_Fails(t *testing.T) {
	d := newTestDevice(t)
	_, _, err := d.RemoveFile("never-added.bin")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestStorageDevice_GetFile(t *testing.T) {
	d := newTestDevice(t)
	f, _ := NewFileRecord("data.bin", 50)
	_, err := d.AddFile(f)
	require.NoError(t, err)

	got, err := d.GetFile("data.bin")
	require.NoError(t, err)
	assert.Same(t, f, got)
	assert.Equal(t, int64(50), d.Allocated(), "GetFile must not touch capacity")

	_, err = d.GetFile("missing.bin")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestStorageDevice_FileNames_Sorted(t *testing.T) {
	d := newTestDevice(t)
	for _, name := range []string{"c.bin", "a.bin", "b.bin"} {
		f, _ := NewFileRecord(name, 10)
		_, err := d.AddFile(f)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"a.bin", "b.bin", "c.bin"}, d.FileNames())
	assert.Equal(t, 3, d.FileCount())
}

func TestStorageDevice_Resize_RespectsRegisteredFiles(t *testing.T) {
	d := newTestDevice(t)
	f, _ := NewFileRecord("data.bin", 60)
	_, err := d.AddFile(f)
	require.NoError(t, err)

	assert.ErrorIs(t, d.Resize(50), ErrCapacityTooSmall)
	require.NoError(t, d.Resize(60))
	assert.True(t, d.IsFull())
}
