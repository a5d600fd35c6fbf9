// Package xqueue 提供无界阻塞 FIFO 队列。
//
// BlockingQueue 是 xpool 每个 worker 私有的任务队列，支持三种操作：
//   - [BlockingQueue.Push]：尾部插入，永远成功，最多唤醒一个阻塞的 Pop
//   - [BlockingQueue.Pop]：头部取出，队列为空时阻塞直到有元素可取
//   - [BlockingQueue.TryPop]：头部取出，队列为空时立即返回 false（用于窃取）
//
// # 并发模型
//
// 所有操作共享一把互斥锁，锁只在修改内部序列时持有，不会跨越调用方对元素的使用。
// 阻塞等待基于 sync.Cond，被唤醒后会重新检查队列是否为空，
// 因此虚假唤醒不会导致 Pop 返回零值。
//
// 底层存储使用 github.com/eapache/queue 的环形缓冲区，
// 出队为 O(1) 且不会像切片头部截断那样长期持有已出队元素。
//
// # 注意事项
//
//   - 队列无界：Push 从不阻塞，也不做背压
//   - Pop 在没有任何 Push 的情况下会永久阻塞，调用方需自行保证最终会有元素到达
//     （xpool 通过在关闭时向每个队列推送哨兵任务保证这一点）
//   - 零值不可用，必须通过 [New] 创建
package xqueue
