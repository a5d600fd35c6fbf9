// Package xsys 提供 worker pool 需要的系统资源探测与线程绑定工具。
//
// # 功能概览
//
//   - [HardwareThreads]: 返回当前进程可用的硬件线程数，探测失败时返回 [DefaultHardwareThreads]
//   - [AllowedCPUs]: 返回进程 CPU 亲和掩码中的 CPU 编号（仅 Linux 生效）
//   - [PinCurrentThread]: 将当前 goroutine 锁定到 OS 线程并绑定到指定 CPU（仅 Linux 生效）
//
// # 平台支持
//
// Linux 上 HardwareThreads 通过 sched_getaffinity 统计进程 CPU 亲和掩码中的 CPU 数，
// 因此在 taskset/cgroup cpuset 限制下也能得到实际可用的线程数；
// 其他平台退化为 runtime.NumCPU()。
//
// PinCurrentThread 在 Linux 上通过 sched_setaffinity 实现，
// 在其他平台上返回 [ErrUnsupportedPlatform]。参数校验在所有平台上行为一致。
package xsys
