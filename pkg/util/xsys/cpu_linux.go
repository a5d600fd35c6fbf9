//go:build linux

package xsys

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// 系统调用函数变量，支持测试中替换以覆盖错误路径。
// 注意：替换测试不可使用 t.Parallel()。
var (
	schedGetaffinity = unix.SchedGetaffinity
	schedSetaffinity = unix.SchedSetaffinity
)

// platformHardwareThreads 返回进程 CPU 亲和掩码中的 CPU 数，失败返回 0。
func platformHardwareThreads() int {
	var set unix.CPUSet
	if err := schedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}

// AllowedCPUs 返回进程 CPU 亲和掩码中的 CPU 编号（升序）。
func AllowedCPUs() ([]int, error) {
	var set unix.CPUSet
	if err := schedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("xsys: sched_getaffinity: %w", err)
	}
	count := set.Count()
	cpus := make([]int, 0, count)
	for i := 0; i < len(set)*64 && len(cpus) < count; i++ {
		if set.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus, nil
}

// PinCurrentThread 将当前 goroutine 锁定到 OS 线程，并把该线程绑定到 cpu。
//
// cpu 超出亲和掩码范围时由内核返回错误。绑定失败时线程仍保持锁定，
// 调用方（通常是 worker 循环）应在退出前自行 runtime.UnlockOSThread。
func PinCurrentThread(cpu int) error {
	if err := validateCPU(cpu); err != nil {
		return err
	}
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Set(cpu)
	// pid 0 表示调用线程
	if err := schedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("xsys: sched_setaffinity cpu %d: %w", cpu, err)
	}
	return nil
}
