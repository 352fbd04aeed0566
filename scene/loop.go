package scene

import (
	"context"
	"log/slog"
)

// Loop drives a scene from its backend's frame signal on the calling
// goroutine. raylib requires that goroutine to be the main thread.
type Loop struct {
	Scene    *Scene
	MaxTicks int64 // 0 = unlimited
}

// Run polls input, updates and draws once per frame until the backend asks
// to close, ctx is cancelled or MaxTicks is reached. It returns ctx.Err()
// on cancellation and nil otherwise. Run does not unload the scene.
func (l *Loop) Run(ctx context.Context) error {
	s := l.Scene
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b := s.Backend()
		if b.ShouldClose() {
			return nil
		}

		s.HandleInput(b.Poll())
		s.Update(b.FrameTime())
		s.Draw()

		if l.MaxTicks > 0 && s.Tick() >= l.MaxTicks {
			slog.Info("max ticks reached", "tick", s.Tick())
			return nil
		}
	}
}
