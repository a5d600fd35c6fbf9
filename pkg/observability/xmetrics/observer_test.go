package xmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nilObserver struct{}

func (nilObserver) Start(context.Context, SpanOptions) (context.Context, Span) {
	return nil, nil //nolint:staticcheck // 模拟不规范的自定义实现
}

func TestStart_NilObserver(t *testing.T) {
	ctx, span := Start(context.Background(), nil, SpanOptions{Component: "xpool"})
	assert.NotNil(t, ctx)
	assert.IsType(t, NoopSpan{}, span)
	span.End(Result{})
}

func TestStart_NilContext(t *testing.T) {
	//nolint:staticcheck // 测试 nil ctx 归一化
	ctx, span := Start(nil, NoopObserver{}, SpanOptions{})
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
}

func TestStart_ObserverReturnsNil(t *testing.T) {
	parent := context.WithValue(context.Background(), struct{}{}, "v")
	ctx, span := Start(parent, nilObserver{}, SpanOptions{})
	assert.Equal(t, parent, ctx)
	assert.IsType(t, NoopSpan{}, span)
}

func TestResolveStatus(t *testing.T) {
	assert.Equal(t, StatusOK, resolveStatus(Result{}))
	assert.Equal(t, StatusError, resolveStatus(Result{Err: assert.AnError}))
	assert.Equal(t, StatusOK, resolveStatus(Result{Status: StatusOK, Err: assert.AnError}))
	assert.Equal(t, StatusError, resolveStatus(Result{Status: StatusError}))
}
