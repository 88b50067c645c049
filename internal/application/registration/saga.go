// Package registration implements the vendor sign-up flow as an explicit
// saga: ordered steps with compensations that undo completed work when a
// later step fails.
package registration

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Step is a named unit of saga work. Compensate undoes the step's effects
// and may be nil when there is nothing to undo.
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga runs steps in order. On the first failure it runs the compensations
// of the completed steps in reverse order. Compensation failures are logged
// and swallowed so every completed step gets a chance to roll back.
type Saga struct {
	steps  []Step
	logger *zap.Logger
}

// NewSaga creates a saga over the given steps
func NewSaga(logger *zap.Logger, steps ...Step) *Saga {
	return &Saga{
		steps:  steps,
		logger: logger,
	}
}

// Execute runs the saga. The returned error is the failing step's error,
// wrapped with the step name.
func (s *Saga) Execute(ctx context.Context) error {
	completed := make([]Step, 0, len(s.steps))

	for _, step := range s.steps {
		if err := step.Action(ctx); err != nil {
			s.logger.Warn("Saga step failed, rolling back",
				zap.String("step", step.Name),
				zap.Int("completed_steps", len(completed)),
				zap.Error(err))
			s.rollback(ctx, completed)
			return fmt.Errorf("step %s: %w", step.Name, err)
		}
		completed = append(completed, step)
	}

	return nil
}

func (s *Saga) rollback(ctx context.Context, completed []Step) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("Saga compensation failed",
				zap.String("step", step.Name),
				zap.Error(err))
		}
	}
}
