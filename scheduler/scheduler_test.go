// scheduler/scheduler_test.go
package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleNextRefreshFires(t *testing.T) {
	fired := make(chan struct{}, 1)
	s := NewRefreshScheduler(func() { fired <- struct{}{} }, logger.NewNopLogger())

	s.ScheduleNextRefresh(10 * time.Millisecond)

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

// TestRescheduleReplacesTimer verifies arming twice leaves exactly one pending timer:
// the first schedule is cancelled and only the later one fires.
func TestRescheduleReplacesTimer(t *testing.T) {
	var fires int32
	s := NewRefreshScheduler(func() { atomic.AddInt32(&fires, 1) }, logger.NewNopLogger())

	s.ScheduleNextRefresh(30 * time.Millisecond)
	s.ScheduleNextRefresh(60 * time.Millisecond)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fires))
}

func TestNonPositiveDelayStillFires(t *testing.T) {
	tests := []struct {
		name  string
		delay time.Duration
	}{
		{"ZeroDelay", 0},
		{"NegativeDelay", -5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fired := make(chan struct{}, 1)
			s := NewRefreshScheduler(func() { fired <- struct{}{} }, logger.NewNopLogger())

			s.ScheduleNextRefresh(tt.delay)

			select {
			case <-fired:
			case <-time.After(time.Second):
				t.Fatal("timer never fired for non-positive delay")
			}
		})
	}
}

// TestRescheduleFromCallbackDoesNotDeadlock verifies the callback runs outside the
// scheduler's lock, so a refresh can re-arm the timer that triggered it.
func TestRescheduleFromCallbackDoesNotDeadlock(t *testing.T) {
	var calls int32
	done := make(chan struct{}, 1)

	var s *RefreshScheduler
	s = NewRefreshScheduler(func() {
		if atomic.AddInt32(&calls, 1) == 1 {
			s.ScheduleNextRefresh(10 * time.Millisecond)
			return
		}
		done <- struct{}{}
	}, logger.NewNopLogger())

	s.ScheduleNextRefresh(10 * time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("re-armed timer never fired")
	}
}

func TestStopPreventsFire(t *testing.T) {
	var fires int32
	s := NewRefreshScheduler(func() { atomic.AddInt32(&fires, 1) }, logger.NewNopLogger())

	s.ScheduleNextRefresh(30 * time.Millisecond)
	s.Stop()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fires))
}

func TestStopWithoutScheduleIsSafe(t *testing.T) {
	s := NewRefreshScheduler(func() {}, logger.NewNopLogger())
	require.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}

// TestCallbackPanicIsContained verifies a panicking callback neither crashes the process
// nor poisons the scheduler for later schedules.
func TestCallbackPanicIsContained(t *testing.T) {
	var calls int32
	s := NewRefreshScheduler(func() {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("refresh blew up")
		}
	}, logger.NewNopLogger())

	s.ScheduleNextRefresh(10 * time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	s.ScheduleNextRefresh(10 * time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
