package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComputeUnit_Validation(t *testing.T) {
	clock := &manualClock{}

	_, err := NewComputeUnit("", 4, 1000, clock)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewComputeUnit("vm-0", 0, 1000, clock)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestComputeUnit_ProcessorBackReference(t *testing.T) {
	u, err := NewComputeUnit("vm-0", 4, 2500, &manualClock{})
	require.NoError(t, err)

	assert.Equal(t, "vm-0", u.ID())
	assert.Equal(t, "vm-0", u.Processor().OwnerID())
	assert.Equal(t, float64(10000), u.Processor().TotalCapacitySpeed())
}

func TestComputeUnit_OperationalWindow(t *testing.T) {
	// GIVEN a unit with a 30s startup delay
	clock := &manualClock{}
	u, err := NewComputeUnit("vm-0", 4, 1000, clock)
	require.NoError(t, err)
	require.NoError(t, u.Lifecycle().SetStartupDelay(30))

	// Before starting it is not operational
	assert.False(t, u.IsOperational())

	// WHEN it starts at t=10
	require.NoError(t, u.Start(10))

	// THEN it stays starting until t=40, then becomes operational
	clock.now = 25
	assert.False(t, u.IsOperational())
	assert.True(t, u.Lifecycle().IsStartingUp())

	clock.now = 40
	assert.True(t, u.IsOperational())

	// AND stopping ends the operational window
	clock.now = 60
	require.NoError(t, u.Stop(60))
	assert.False(t, u.IsOperational())
}
