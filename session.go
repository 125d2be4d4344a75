package mandelview

import (
	"context"
	"image"
	"sync"
)

// Session drives "recompute when the viewport changes". Hosts call
// Invalidate after mutating the controller; the session snapshots the
// controller, renders through the engine and hands the finished frame to
// the Frame callback. An invalidation arriving mid-pass cancels the pass
// and restarts against the newest snapshot, so the last delivered frame
// always corresponds to the most recent view state.
type Session struct {
	Engine     *Engine
	Controller *Controller
	// Frame receives each completed pass. It is called from the session
	// goroutine and never after Run returns.
	Frame func(*image.RGBA)

	initOnce   sync.Once
	kick       chan struct{}
	mu         sync.Mutex
	passCancel context.CancelFunc
}

func (s *Session) init() {
	s.initOnce.Do(func() {
		s.kick = make(chan struct{}, 1)
	})
}

// Invalidate requests a re-render against the latest controller state.
// Safe to call from any goroutine; a pass already in flight is cancelled.
// Invalidations coalesce: many calls during one pass cause one new pass.
func (s *Session) Invalidate() {
	s.init()
	s.mu.Lock()
	if s.passCancel != nil {
		s.passCancel()
	}
	s.mu.Unlock()
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Run blocks, rendering on every invalidation, until ctx is cancelled.
// Cancelling ctx also cancels an in-flight pass; no work outlives the
// session.
func (s *Session) Run(ctx context.Context) error {
	s.init()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.kick:
		}

		vp, maxIter := s.Controller.Snapshot()

		passCtx, cancel := context.WithCancel(ctx)
		s.mu.Lock()
		s.passCancel = cancel
		s.mu.Unlock()

		img, err := s.Engine.Render(passCtx, vp, maxIter)

		s.mu.Lock()
		s.passCancel = nil
		s.mu.Unlock()
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// pass superseded; the kick for the newer state is pending
			continue
		}
		if s.Frame != nil {
			s.Frame(img)
		}
	}
}
