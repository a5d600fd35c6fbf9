package xsys

import "errors"

var (
	// ErrInvalidCPU 表示 CPU 编号无效。
	ErrInvalidCPU = errors.New("xsys: cpu index must be >= 0")

	// ErrUnsupportedPlatform 表示当前平台不支持此操作。
	ErrUnsupportedPlatform = errors.New("xsys: unsupported platform")
)
