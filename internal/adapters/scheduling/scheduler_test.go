package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerScheduler_RunsOnceAfterDelay(t *testing.T) {
	fired := make(chan time.Time, 2)
	start := time.Now()

	NewTimerScheduler().After(20*time.Millisecond, func() { fired <- time.Now() })

	select {
	case at := <-fired:
		assert.GreaterOrEqual(t, at.Sub(start), 20*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never ran")
	}

	select {
	case <-fired:
		t.Fatal("callback ran twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestImmediateScheduler_RunsInline(t *testing.T) {
	ran := false
	NewImmediateScheduler().After(time.Hour, func() { ran = true })
	require.True(t, ran)
}

func TestForDelay(t *testing.T) {
	assert.IsType(t, TimerScheduler{}, ForDelay(time.Second))
	assert.IsType(t, ImmediateScheduler{}, ForDelay(0))
}
