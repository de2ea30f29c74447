package planservice

import (
	"context"

	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/shared"
)

// eventBufferSize is generous enough that PlanForTarget's progress
// emissions never block on a slow consumer for long; the stream is
// still single-producer/single-consumer (spec §5).
const eventBufferSize = 32

// Stream is a single request's progress/result channel plus its
// lifecycle and a consumer-initiated cancel (spec §5 "Cancellation",
// §6.2). Exactly one goroutine drives Events; Cancel may be called from
// any goroutine, any number of times.
type Stream struct {
	Events <-chan planner.Event
	Cancel context.CancelFunc

	lifecycle *shared.LifecycleStateMachine
}

// Status reports the stream's current lifecycle state.
func (s *Stream) Status() shared.LifecycleStatus {
	return s.lifecycle.Status()
}

// StreamPlanForTarget runs PlanForTarget on a background goroutine and
// returns a Stream carrying its progress events, honoring cancellation
// at the suspension points PlanForTarget itself checks: each MILP solve
// and the loot-data fetch (spec §5 "Suspension points").
//
// A cancelled request emits no result and no trailing progress: the
// channel is simply closed once PlanForTarget observes ctx.Done().
func (s *Service) StreamPlanForTarget(ctx context.Context, profile *planner.Profile, targetItemID string, quantity int, priorityTime float64, opts Options) *Stream {
	runCtx, cancel := context.WithCancel(ctx)
	events := make(chan planner.Event, eventBufferSize)
	lifecycle := shared.NewLifecycleStateMachine()
	clock := shared.NewRealClock()
	start := clock.Now()

	userOnProgress := opts.OnProgress
	opts.OnProgress = func(e planner.Event) {
		if runCtx.Err() != nil {
			return
		}
		if e.Type == planner.EventProgress && e.Progress != nil {
			e.Progress.ElapsedMs = clock.Now().Sub(start).Milliseconds()
		}
		if userOnProgress != nil {
			userOnProgress(e)
		}
		select {
		case events <- e:
		case <-runCtx.Done():
		}
	}

	_ = lifecycle.Start()

	go func() {
		defer close(events)

		_, err := s.PlanForTarget(runCtx, profile, targetItemID, quantity, priorityTime, opts)

		if runCtx.Err() != nil {
			_ = lifecycle.Stop()
			return
		}
		if err != nil {
			_ = lifecycle.Fail(err)
			return
		}
		_ = lifecycle.Complete()
	}()

	return &Stream{Events: events, Cancel: cancel, lifecycle: lifecycle}
}
