package mandelview

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"
)

func waitFrame(t *testing.T, ch <-chan *image.RGBA) *image.RGBA {
	t.Helper()
	select {
	case img := <-ch:
		return img
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return nil
	}
}

func TestSessionRendersOnInvalidate(t *testing.T) {
	ctrl := NewController(16, 12)
	frames := make(chan *image.RGBA, 8)
	s := &Session{
		Engine:     &Engine{},
		Controller: ctrl,
		Frame:      func(img *image.RGBA) { frames <- img },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	s.Invalidate()
	img := waitFrame(t, frames)
	if got := img.Bounds(); got != image.Rect(0, 0, 16, 12) {
		t.Errorf("frame bounds = %v, want 16x12", got)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestSessionDeliversNewestState(t *testing.T) {
	ctrl := NewController(8, 8)
	frames := make(chan *image.RGBA, 32)
	s := &Session{
		Engine:     &Engine{},
		Controller: ctrl,
		Frame:      func(img *image.RGBA) { frames <- img },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	s.Invalidate()
	ctrl.Apply(Resize{Width: 24, Height: 24, DevicePixelRatio: 1})
	s.Invalidate()

	// frames may arrive for either state, but the newest state must be the
	// last one delivered
	deadline := time.After(5 * time.Second)
	for {
		select {
		case img := <-frames:
			if img.Bounds() == image.Rect(0, 0, 24, 24) {
				return
			}
		case <-deadline:
			t.Fatal("newest state was never rendered")
		}
	}
}

func TestSessionCancelsStalePass(t *testing.T) {
	ctrl := NewController(256, 256)

	started := make(chan struct{}, 1)
	gate := make(chan struct{})
	kernel := KernelFunc(func(c complex128, maxIter int) EscapeResult {
		select {
		case started <- struct{}{}:
		default:
		}
		<-gate
		return Escape(c, maxIter)
	})

	frames := make(chan *image.RGBA, 32)
	s := &Session{
		Engine:     &Engine{Kernel: kernel, TileSize: 32, Workers: 2},
		Controller: ctrl,
		Frame:      func(img *image.RGBA) { frames <- img },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	s.Invalidate()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first pass never started")
	}

	// supersede the blocked pass, then let the kernel run
	ctrl.Apply(Resize{Width: 16, Height: 16, DevicePixelRatio: 1})
	s.Invalidate()
	close(gate)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case img := <-frames:
			if img.Bounds() == image.Rect(0, 0, 16, 16) {
				return
			}
		case <-deadline:
			t.Fatal("superseding state was never rendered")
		}
	}
}

func TestSessionTeardownStopsWork(t *testing.T) {
	ctrl := NewController(64, 64)
	s := &Session{
		Engine:     &Engine{},
		Controller: ctrl,
		Frame:      func(*image.RGBA) {},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	s.Invalidate()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	// invalidations after teardown must be harmless no-ops
	s.Invalidate()
}
