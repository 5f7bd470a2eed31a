// Package seeder runs idempotent data seeders against the configured store.
package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/philly/member-admin/internal/platform/logger"
)

// Seeder fills one part of the store. Implementations hold their own
// repositories and must be safe to run more than once.
type Seeder interface {
	Name() string
	Seed(ctx context.Context) error
}

// Orchestrator runs seeders in the order given.
type Orchestrator struct {
	seeders []Seeder
	logger  logger.Logger
}

func NewOrchestrator(logger logger.Logger, seeders []Seeder) *Orchestrator {
	return &Orchestrator{
		seeders: seeders,
		logger:  logger,
	}
}

// RunAll stops at the first failing seeder or when ctx is cancelled.
// Seeders that already ran are not rolled back.
func (o *Orchestrator) RunAll(ctx context.Context) error {
	started := time.Now()
	o.logger.Info(ctx, "seeding started", "seeders", len(o.seeders))

	for i, s := range o.seeders {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("seeding interrupted before %s: %w", s.Name(), err)
		}

		step := time.Now()
		if err := s.Seed(ctx); err != nil {
			o.logger.Error(ctx, "seeder failed",
				"seeder", s.Name(),
				"position", i+1,
				"error", err,
			)
			return fmt.Errorf("seeder %s failed: %w", s.Name(), err)
		}

		o.logger.Info(ctx, "seeder done",
			"seeder", s.Name(),
			"duration_ms", time.Since(step).Milliseconds(),
		)
	}

	o.logger.Info(ctx, "seeding finished", "duration_ms", time.Since(started).Milliseconds())
	return nil
}
