package xrun

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRounds(t *testing.T) {
	var got []int
	err := Rounds(3, func(_ context.Context, round int) error {
		got = append(got, round)
		return nil
	})(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestRounds_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Rounds(5, func(_ context.Context, round int) error {
		calls++
		if round == 1 {
			return boom
		}
		return nil
	})(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestRounds_InvalidArgs(t *testing.T) {
	assert.ErrorIs(t, Rounds(0, func(context.Context, int) error { return nil })(context.Background()), ErrInvalidRounds)
	assert.ErrorIs(t, Rounds(1, nil)(context.Background()), ErrNilFunc)
}

func TestRounds_CanceledBetweenRounds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Rounds(5, func(context.Context, int) error {
		calls++
		cancel()
		return nil
	})(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRounds_SignalUnderRun(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	ctx := withTestSigChan(context.Background(), sigc)

	calls := 0
	err := Run(ctx, Rounds(100, func(ctx context.Context, round int) error {
		calls++
		if round == 0 {
			sigc <- syscall.SIGTERM
			<-ctx.Done()
		}
		return nil
	}))

	assert.ErrorIs(t, err, ErrSignal)
	assert.Equal(t, 1, calls)
}
