package xpool

import "sync"

// Handle 是单个任务的一次性完成信号。
//
// 任务执行完毕（或被拒绝）时 Handle 被兑现且只兑现一次，
// 此后 Wait 立即返回，Done 返回的 channel 已关闭。
type Handle struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func failedHandle(err error) *Handle {
	h := newHandle()
	h.fulfil(err)
	return h
}

// fulfil 兑现 handle，重复调用无效果。
func (h *Handle) fulfil(err error) {
	h.once.Do(func() {
		h.err = err
		close(h.done)
	})
}

// Wait 阻塞直到任务完成，返回任务结果。
//
// 在 worker goroutine 内等待另一个任务时应使用 [Executor.Await]，
// 直接调用 Wait 可能占住 worker 导致池内死锁。
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Done 返回任务完成时关闭的 channel。
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err 非阻塞地返回任务结果，未完成时返回 nil。
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}
