package xpool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandle_FulfilOnce(t *testing.T) {
	h := newHandle()
	assert.NoError(t, h.Err())

	select {
	case <-h.Done():
		t.Fatal("handle done before fulfil")
	default:
	}

	first := errors.New("first")
	h.fulfil(first)
	h.fulfil(errors.New("second"))

	assert.ErrorIs(t, h.Wait(), first)
	assert.ErrorIs(t, h.Err(), first)
	<-h.Done()
}

func TestHandle_FulfilNil(t *testing.T) {
	h := newHandle()
	h.fulfil(nil)
	assert.NoError(t, h.Wait())
	assert.NoError(t, h.Err())
}

func TestFailedHandle(t *testing.T) {
	h := failedHandle(ErrPoolStopped)
	<-h.Done()
	assert.ErrorIs(t, h.Wait(), ErrPoolStopped)
}

func TestPanicError(t *testing.T) {
	t.Run("non-error value", func(t *testing.T) {
		err := &PanicError{Value: "boom"}
		assert.Equal(t, "xpool: task panicked: boom", err.Error())
		assert.ErrorIs(t, err, ErrTaskPanicked)
	})

	t.Run("error value", func(t *testing.T) {
		cause := errors.New("cause")
		err := &PanicError{Value: cause}
		assert.ErrorIs(t, err, ErrTaskPanicked)
		assert.ErrorIs(t, err, cause)
	})
}
