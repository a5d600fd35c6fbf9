package xpool

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/omeyang/xsortpool/pkg/observability/xmetrics"
)

// MockObserver 是 xmetrics.Observer 的 mock 实现（mockgen 风格）。
type MockObserver struct {
	ctrl     *gomock.Controller
	recorder *MockObserverMockRecorder
}

// MockObserverMockRecorder 记录 MockObserver 的期望调用。
type MockObserverMockRecorder struct {
	mock *MockObserver
}

// NewMockObserver 创建 MockObserver。
func NewMockObserver(ctrl *gomock.Controller) *MockObserver {
	mock := &MockObserver{ctrl: ctrl}
	mock.recorder = &MockObserverMockRecorder{mock}
	return mock
}

// EXPECT 返回用于设置期望的 recorder。
func (m *MockObserver) EXPECT() *MockObserverMockRecorder {
	return m.recorder
}

// Start mocks base method.
func (m *MockObserver) Start(ctx context.Context, opts xmetrics.SpanOptions) (context.Context, xmetrics.Span) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Start", ctx, opts)
	ret0, _ := ret[0].(context.Context)
	ret1, _ := ret[1].(xmetrics.Span)
	return ret0, ret1
}

// Start indicates an expected call of Start.
func (mr *MockObserverMockRecorder) Start(ctx, opts any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Start", reflect.TypeOf((*MockObserver)(nil).Start), ctx, opts)
}

// MockSpan 是 xmetrics.Span 的 mock 实现（mockgen 风格）。
type MockSpan struct {
	ctrl     *gomock.Controller
	recorder *MockSpanMockRecorder
}

// MockSpanMockRecorder 记录 MockSpan 的期望调用。
type MockSpanMockRecorder struct {
	mock *MockSpan
}

// NewMockSpan 创建 MockSpan。
func NewMockSpan(ctrl *gomock.Controller) *MockSpan {
	mock := &MockSpan{ctrl: ctrl}
	mock.recorder = &MockSpanMockRecorder{mock}
	return mock
}

// EXPECT 返回用于设置期望的 recorder。
func (m *MockSpan) EXPECT() *MockSpanMockRecorder {
	return m.recorder
}

// End mocks base method.
func (m *MockSpan) End(result xmetrics.Result) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "End", result)
}

// End indicates an expected call of End.
func (mr *MockSpanMockRecorder) End(result any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "End", reflect.TypeOf((*MockSpan)(nil).End), result)
}
