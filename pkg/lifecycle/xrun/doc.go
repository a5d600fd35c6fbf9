// Package xrun 提供基于 errgroup + context 的进程生命周期管理。
//
// 主要能力：
//   - [Group]：并发运行多个函数，任一出错或被取消时协调关闭
//   - [Run]/[RunWithOptions]：在 Group 之上自动监听系统信号，收到信号时返回 [SignalError]
//   - [Rounds]：把"执行 n 轮、轮间响应取消"包装为服务函数
//
// # 退出原因
//
// Group.Cancel(cause) 或信号触发的取消会保留原因：Wait 返回该原因而不是 context.Canceled。
// 判断是否因信号退出：
//
//	if errors.Is(err, xrun.ErrSignal) { ... }
//
// # 有限任务
//
// Run 中的信号监听在所有 services 返回后自动退出，因此 Run 也适用于
// 基准测试、批处理这类会自然结束的任务：
//
//	err := xrun.Run(ctx, xrun.Rounds(5, func(ctx context.Context, round int) error {
//	    return runOnce(ctx, round)
//	}))
package xrun
