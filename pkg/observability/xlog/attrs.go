package xlog

import (
	"log/slog"
	"runtime/debug"
	"time"
)

// 常用属性 Key
const (
	KeyError     = "error"
	KeyStack     = "stack"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyComponent = "component"
	KeyWorker    = "worker"
)

// Err 创建错误属性，err 为 nil 时返回空属性（slog 会忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建人类可读的耗时属性（如 "1.5ms"）。
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 创建组件名称属性。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Worker 创建 worker 编号属性。
func Worker(index int) slog.Attr {
	return slog.Int(KeyWorker, index)
}

// Count 创建计数属性。
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Stack 创建当前 goroutine 堆栈属性；传入 stack 非空时直接使用。
func Stack(stack []byte) slog.Attr {
	if len(stack) == 0 {
		stack = debug.Stack()
	}
	return slog.String(KeyStack, string(stack))
}
