package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaga_Execute_RunsStepsInOrder(t *testing.T) {
	var order []string

	saga := NewSaga(zap.NewNop(),
		Step{Name: "first", Action: func(ctx context.Context) error {
			order = append(order, "first")
			return nil
		}},
		Step{Name: "second", Action: func(ctx context.Context) error {
			order = append(order, "second")
			return nil
		}},
		Step{Name: "third", Action: func(ctx context.Context) error {
			order = append(order, "third")
			return nil
		}},
	)

	err := saga.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSaga_Execute_CompensatesInReverseOrder(t *testing.T) {
	var compensated []string
	boom := errors.New("boom")

	saga := NewSaga(zap.NewNop(),
		Step{
			Name:   "first",
			Action: func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error {
				compensated = append(compensated, "first")
				return nil
			},
		},
		Step{
			Name:   "second",
			Action: func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error {
				compensated = append(compensated, "second")
				return nil
			},
		},
		Step{
			Name:   "third",
			Action: func(ctx context.Context) error { return boom },
			Compensate: func(ctx context.Context) error {
				compensated = append(compensated, "third")
				return nil
			},
		},
	)

	err := saga.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "third")

	// The failing step is not compensated, only the completed ones are.
	assert.Equal(t, []string{"second", "first"}, compensated)
}

func TestSaga_Execute_CompensationFailureDoesNotStopRollback(t *testing.T) {
	var compensated []string

	saga := NewSaga(zap.NewNop(),
		Step{
			Name:   "first",
			Action: func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error {
				compensated = append(compensated, "first")
				return nil
			},
		},
		Step{
			Name:   "second",
			Action: func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error {
				compensated = append(compensated, "second")
				return errors.New("undo failed")
			},
		},
		Step{
			Name:   "third",
			Action: func(ctx context.Context) error { return errors.New("boom") },
		},
	)

	err := saga.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"second", "first"}, compensated)
}

func TestSaga_Execute_NilCompensationIsSkipped(t *testing.T) {
	saga := NewSaga(zap.NewNop(),
		Step{
			Name:   "first",
			Action: func(ctx context.Context) error { return nil },
		},
		Step{
			Name:   "second",
			Action: func(ctx context.Context) error { return errors.New("boom") },
		},
	)

	assert.Error(t, saga.Execute(context.Background()))
}
