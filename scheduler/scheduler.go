// scheduler/scheduler.go
/* The scheduler package arms the one-shot timer that drives proactive token refreshes.
A RefreshScheduler owns at most one outstanding timer: arming a new one always cancels
the previous one, so refresh callbacks never pile up no matter how often the connector
re-schedules. */
package scheduler

import (
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RefreshScheduler invokes a fixed zero-argument callback after a programmable delay.
// Scheduling is fire-and-forget: the scheduler does not track callback completion, and a
// slow or failing callback never blocks a subsequent ScheduleNextRefresh call.
type RefreshScheduler struct {
	callback func()
	logger   logger.Logger

	lock       sync.Mutex
	timer      *time.Timer
	generation uuid.UUID // identifies the currently armed timer; stale fires are dropped
}

// NewRefreshScheduler creates a scheduler that will invoke callback each time an armed
// timer fires.
func NewRefreshScheduler(callback func(), log logger.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		callback: callback,
		logger:   log,
	}
}

// ScheduleNextRefresh arms the timer to fire once after delay, replacing any previously
// armed timer so that only the most recent schedule ever fires. A zero or negative delay
// is clamped to zero: the callback still fires, asynchronously and as soon as possible,
// rather than being skipped or invoked inline.
func (s *RefreshScheduler) ScheduleNextRefresh(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	timerID := uuid.New()
	s.generation = timerID
	s.timer = time.AfterFunc(delay, func() {
		s.fire(timerID)
	})

	s.logger.Debug("Armed refresh timer",
		zap.String("TimerID", timerID.String()),
		zap.Duration("Delay", delay),
	)
}

// Stop cancels any armed timer. A callback already started keeps running; one not yet
// started will never fire. Safe to call repeatedly.
func (s *RefreshScheduler) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
		s.generation = uuid.UUID{}
		s.logger.Debug("Cancelled refresh timer")
	}
}

// fire runs the callback for the timer identified by timerID. Timer.Stop cannot stop a
// function already handed to the runtime, so the generation check drops fires belonging
// to a timer that was replaced or cancelled in that window. Callback panics are contained
// and logged; no caller is waiting on a timer-triggered refresh, so crashing the process
// would help nobody.
func (s *RefreshScheduler) fire(timerID uuid.UUID) {
	s.lock.Lock()
	if s.generation != timerID {
		s.lock.Unlock()
		s.logger.Debug("Dropped stale refresh timer fire", zap.String("TimerID", timerID.String()))
		return
	}
	s.lock.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Refresh callback panicked", zap.Any("Panic", r))
		}
	}()

	s.logger.Debug("Refresh timer fired", zap.String("TimerID", timerID.String()))
	s.callback()
}
