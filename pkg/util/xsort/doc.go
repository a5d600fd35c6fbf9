// Package xsort 提供按区间递归拆分的并行归并排序。
//
// 每一层把区间复制到私有缓冲区，排序两半后稳定地归并回原区间。
// 区间长度超过阈值（默认 10000）时，两半的执行方式由 [Policy] 决定：
//   - [PolicySequential]：顺序执行
//   - [PolicyConcurrent]：每一半一个 goroutine（errgroup），可用 WithMaxFanout 限流
//   - [PolicyPooled]：左半提交到 [Submitter]（通常是 *xpool.Executor），右半就地执行
//
// 长度不超过阈值的区间始终顺序处理。
//
// # 错误
//
// 比较函数的 panic 在所有策略下都会被恢复并以 *xpool.PanicError 返回，
// errors.Is(err, xpool.ErrTaskPanicked) 为 true。
// PolicyPooled 的执行器已关闭时返回 xpool.ErrPoolStopped。
// 返回错误时 data 的内容未定义。
//
// # 注意事项
//
//   - ctx 只用于观测（WithObserver），排序不可取消
//   - PolicyPooled 必须提供 WithExecutor，否则返回 ErrNilExecutor
//   - 每层复制会额外分配 O(n log n) 的临时内存
package xsort
