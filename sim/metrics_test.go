package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CollectLedgerDiagnostics(t *testing.T) {
	// GIVEN one clean device and one whose ledger saw over-releases
	clean, err := NewStorageDevice("clean", 100)
	require.NoError(t, err)
	drifted, err := NewStorageDevice("drifted", 100)
	require.NoError(t, err)
	f, _ := NewFileRecord("data.bin", 10)
	_, err = drifted.AddFile(f)
	require.NoError(t, err)
	_, _, err = drifted.RemoveFile("data.bin")
	require.NoError(t, err)
	drifted.storage.Deallocate(1)
	drifted.storage.Deallocate(1)

	// WHEN diagnostics are collected
	m := NewMetrics()
	m.CollectLedgerDiagnostics([]*StorageDevice{clean, drifted})

	// THEN only the drifted device appears
	assert.NotContains(t, m.PerDeviceOverReleases, "clean")
	assert.Equal(t, int64(2), m.PerDeviceOverReleases["drifted"])
}
