// Package xpool 提供固定大小的工作窃取 worker pool。
//
// pool 为每个 worker 维护一个私有的无界队列（xqueue.BlockingQueue），
// 提交按轮询分配到各队列，空闲 worker 依次扫描所有队列窃取任务。
// 支持以下特性：
//   - 每个任务返回一次性的 [Handle]，可阻塞等待或非阻塞查询结果
//   - [Executor.Await] 在等待期间代为执行排队任务，嵌套等待不会占满 pool
//   - panic 恢复：任务 panic 被捕获为 [PanicError]，worker 继续运行
//   - 优雅关闭：哨兵排在已入队任务之后，Close 返回前所有已接受的任务都已执行
//   - 可选 CPU 绑定（WithPinning，仅 Linux）
//   - 可注入日志记录器（WithLogger）与观测器（WithObserver）
//
// # Worker 循环
//
// worker i 的每一轮：
//  1. 对队列 i, i+1, ..., i+N-1 (mod N) 依次 TryPop，首个命中的任务胜出
//  2. 扫到其他 worker 的哨兵：放回原队列，继续扫描剩余队列
//  3. 一轮扫描没有可执行的 job 时阻塞在自己的队列上（worker 唯一的睡眠点）
//  4. 取到自己的哨兵：退出
//  5. 其他任务：执行恰好一次，然后兑现 handle
//
// [Executor.Await] 使用同样的扫描规则，所有哨兵都放回原队列，
// 因此关闭过程中仍在排队的嵌套任务总能被等待方取到执行。
//
// # 注意事项
//
//   - New 创建后自动启动 worker，无需手动 Start
//   - Close 之后的 Submit 返回以 ErrPoolStopped 兑现的 handle，不会挂起
//   - Close 不可在任务内部调用，否则会死锁
//   - 在任务内部等待其他任务时使用 Await，而不是 Handle.Wait
//   - 不支持任务取消、优先级与动态扩缩容，队列无界没有背压
package xpool
