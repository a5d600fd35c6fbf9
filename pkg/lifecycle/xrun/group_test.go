package xrun

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// signal.Notify 启动的运行时 goroutine 常驻进程
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("os/signal.signal_recv"))
}

func TestGroup_AllSucceed(t *testing.T) {
	g, _ := NewGroup(context.Background())
	for range 3 {
		g.Go(func(context.Context) error { return nil })
	}
	assert.NoError(t, g.Wait())
}

func TestGroup_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	g, _ := NewGroup(context.Background(), WithName("test"))

	g.Go(func(context.Context) error { return boom })
	g.GoWithName("waiter", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, g.Wait(), boom)
}

func TestGroup_NilFunc(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(nil)
	assert.ErrorIs(t, g.Wait(), ErrNilFunc)

	g, _ = NewGroup(context.Background())
	g.GoWithName("nil", nil)
	assert.ErrorIs(t, g.Wait(), ErrNilFunc)
}

func TestGroup_CancelCause(t *testing.T) {
	stop := errors.New("stop requested")
	g, ctx := NewGroup(context.Background())

	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	g.Cancel(stop)

	assert.ErrorIs(t, g.Wait(), stop)
	assert.Error(t, ctx.Err())
}

func TestGroup_CancelCauseWhenServicesReturnNil(t *testing.T) {
	stop := errors.New("stop requested")
	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	g.Cancel(stop)
	assert.ErrorIs(t, g.Wait(), stop)
}

func TestGroup_CancelWithoutCause(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	g.Cancel(nil)
	assert.NoError(t, g.Wait())
}

func TestGroup_InternalCanceledNotFiltered(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(func(context.Context) error { return context.Canceled })
	assert.ErrorIs(t, g.Wait(), context.Canceled)
}

func TestNewGroup_NilContext(t *testing.T) {
	//nolint:staticcheck // 验证 nil context 被归一化
	g, ctx := NewGroup(nil)
	require.NotNil(t, ctx)
	assert.Equal(t, ctx, g.Context())
	assert.NoError(t, g.Wait())
}

func TestRun_ReturnsWhenServicesFinish(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), func(context.Context) error { return nil })
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after services finished")
	}
}

func TestRun_NoServices(t *testing.T) {
	assert.NoError(t, Run(context.Background()))
}

func TestRun_ServiceError(t *testing.T) {
	boom := errors.New("boom")
	err := RunWithOptions(context.Background(), []Option{WithName("bench")},
		func(context.Context) error { return boom },
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)
	assert.ErrorIs(t, err, boom)
}

func TestRun_NilService(t *testing.T) {
	err := Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilFunc)
}

func TestRun_Signal(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	ctx := withTestSigChan(context.Background(), sigc)

	started := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		errc <- RunWithOptions(ctx, []Option{WithSignals([]os.Signal{syscall.SIGUSR1})},
			func(ctx context.Context) error {
				close(started)
				<-ctx.Done()
				return ctx.Err()
			})
	}()

	<-started
	sigc <- syscall.SIGINT

	err := <-errc
	require.ErrorIs(t, err, ErrSignal)
	var sigErr *SignalError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, syscall.SIGINT, sigErr.Signal)
}

func TestRun_WithoutSignalHandler(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	sigc <- syscall.SIGINT
	ctx := withTestSigChan(context.Background(), sigc)

	err := RunWithOptions(ctx, []Option{WithoutSignalHandler()},
		func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestSignalError(t *testing.T) {
	err := &SignalError{Signal: syscall.SIGTERM}
	assert.Equal(t, "received signal terminated", err.Error())
	assert.ErrorIs(t, err, ErrSignal)
	assert.Equal(t, "received signal <nil>", (&SignalError{}).Error())
}

func TestDefaultSignals(t *testing.T) {
	a := DefaultSignals()
	a[0] = syscall.SIGUSR2
	assert.Equal(t, syscall.SIGHUP, DefaultSignals()[0])
	assert.Len(t, DefaultSignals(), 4)
}

func TestOptions(t *testing.T) {
	o := defaultOptions()
	WithName("")(o)
	WithLogger(nil)(o)
	assert.Equal(t, "xrun", o.name)
	assert.NotNil(t, o.logger)

	signals := []os.Signal{syscall.SIGINT}
	opt := WithSignals(signals)
	signals[0] = syscall.SIGTERM
	opt(o)
	assert.Equal(t, []os.Signal{syscall.SIGINT}, o.signals)
}
