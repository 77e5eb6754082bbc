package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUp(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 2, time.Millisecond, func(context.Context) error {
		calls++
		return errors.New("down")
	})
	assert.EqualError(t, err, "down")
	assert.Equal(t, 3, calls)
}

func TestDoIfStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("reverted")
	calls := 0
	err := DoIf(context.Background(), 5, time.Millisecond, func(err error) bool { return !errors.Is(err, permanent) }, func(context.Context) error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, 5, time.Hour, func(context.Context) error { return errors.New("down") })
	assert.ErrorIs(t, err, context.Canceled)
}
