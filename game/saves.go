package game

import (
	"context"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rubiks/storage"
	"go.uber.org/zap"
)

// snapshot captures the committed cube on the calling goroutine.
func (g *game) snapshot() storage.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return storage.Snapshot{
		State:   g.cube.State(),
		History: g.cube.History(),
		Elapsed: g.currentTime,
	}
}

// submitSave writes snap on the worker pool. done receives the result when non-nil.
func (g *game) submitSave(ctx context.Context, name string, snap storage.Snapshot, done chan<- error) {
	g.mu.Lock()
	id := g.taskID
	g.taskID++
	g.mu.Unlock()

	g.saves.Add(1)
	g.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer g.saves.Done()

			start := time.Now()
			info, err := g.repo.Save(ctx, name, snap)
			if err != nil {
				g.logger.Error("save failed", zap.String("name", name), zap.Error(err))
			} else {
				g.logger.Info("game saved",
					zap.String("name", info.Name),
					zap.String("id", info.ID),
					zap.Int("moves", info.MoveCount),
					zap.Duration("took", time.Since(start)),
				)
			}
			if done != nil {
				done <- err
			}
			return info, err
		},
	})
}

func (g *game) Save(ctx context.Context, name string) error {
	if g.repo == nil {
		return ErrNoRepository
	}
	done := make(chan error, 1)
	g.submitSave(ctx, name, g.snapshot(), done)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *game) SaveAsync(name string) {
	if g.repo == nil {
		g.logger.Warn("save ignored", zap.String("name", name), zap.Error(ErrNoRepository))
		return
	}
	g.submitSave(context.Background(), name, g.snapshot(), nil)
}

func (g *game) Load(ctx context.Context, name string) error {
	if g.repo == nil {
		return ErrNoRepository
	}
	snap, err := g.repo.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}

	g.animator.Clear()
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.cube.SetState(snap.State); err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}
	g.cube.SetHistory(snap.History)
	g.currentTime = snap.Elapsed
	g.logger.Info("game loaded", zap.String("name", name), zap.Int("moves", len(snap.History)))
	return nil
}
