package xrotate

import "io"

var _ io.WriteCloser = (Rotator)(nil)

// Rotator 日志轮转器接口，实现必须并发安全。
type Rotator interface {
	// Write 写入日志数据，达到大小上限时自动轮转。
	Write(p []byte) (n int, err error)

	// Close 关闭轮转器，重复调用返回 [ErrClosed]。
	Close() error

	// Rotate 手动触发轮转。
	Rotate() error
}
