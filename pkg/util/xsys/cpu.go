package xsys

import "runtime"

// DefaultHardwareThreads 是无法探测硬件线程数时使用的默认值。
const DefaultHardwareThreads = 4

// numCPU 支持测试替换。
var numCPU = runtime.NumCPU

// HardwareThreads 返回当前进程可用的硬件线程数。
// 探测结果小于 1 时返回 DefaultHardwareThreads。
func HardwareThreads() int {
	if n := platformHardwareThreads(); n > 0 {
		return n
	}
	if n := numCPU(); n > 0 {
		return n
	}
	return DefaultHardwareThreads
}

// validateCPU 校验 CPU 编号，跨平台共享。
func validateCPU(cpu int) error {
	if cpu < 0 {
		return ErrInvalidCPU
	}
	return nil
}
