package xqueue

import (
	"sync"

	"github.com/eapache/queue"
)

// BlockingQueue 是并发安全的无界 FIFO 队列。
type BlockingQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	items    *queue.Queue
}

// New 创建空队列。
func New[T any]() *BlockingQueue[T] {
	q := &BlockingQueue[T]{items: queue.New()}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push 将 item 追加到队尾，并唤醒至多一个阻塞在 Pop 上的调用方。
func (q *BlockingQueue[T]) Push(item T) {
	q.mu.Lock()
	q.items.Add(item)
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// Pop 取出队头元素。队列为空时阻塞，直到其他 goroutine Push。
func (q *BlockingQueue[T]) Pop() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	// 循环检查：Wait 返回不代表队列非空（虚假唤醒、被其他 Pop 抢先）
	for q.items.Length() == 0 {
		q.notEmpty.Wait()
	}
	return q.items.Remove().(T)
}

// TryPop 尝试取出队头元素，队列为空时立即返回 (零值, false)。
func (q *BlockingQueue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Length() == 0 {
		var zero T
		return zero, false
	}
	return q.items.Remove().(T), true
}

// Len 返回当前队列长度的快照。
func (q *BlockingQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}
