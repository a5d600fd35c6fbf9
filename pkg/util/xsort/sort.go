package xsort

import (
	"cmp"
	"context"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/omeyang/xsortpool/pkg/observability/xmetrics"
	"github.com/omeyang/xsortpool/pkg/util/xpool"
)

// Sort 将 data 原地升序排序。
//
// ctx 只用于传递观测上下文，不会取消排序。
// 比较过程中的 panic 会被恢复并以 *xpool.PanicError 返回，此时 data 的内容未定义。
func Sort[T cmp.Ordered](ctx context.Context, data []T, opts ...Option) error {
	return SortFunc(ctx, data, cmp.Compare[T], opts...)
}

// SortFunc 使用 compare 将 data 原地升序排序，排序稳定。
//
// compare(a, b) 在 a < b 时返回负数，a > b 时返回正数，相等时返回 0。
// 其余语义与 [Sort] 相同。
func SortFunc[T any](ctx context.Context, data []T, compare func(a, b T) int, opts ...Option) error {
	if compare == nil {
		return ErrNilCompare
	}
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	_, span := xmetrics.Start(ctx, o.observer, xmetrics.SpanOptions{
		Component: "xsort",
		Operation: "sort",
		Attrs: []xmetrics.Attr{
			xmetrics.String("policy", o.policy.String()),
			xmetrics.Int("size", len(data)),
			xmetrics.Int("threshold", o.threshold),
		},
	})

	s := &sorter[T]{
		compare:   compare,
		policy:    o.policy,
		threshold: o.threshold,
		executor:  o.executor,
	}
	if o.maxFanout > 0 {
		s.fanout = semaphore.NewWeighted(int64(o.maxFanout))
	}

	err = s.guarded(data)
	span.End(xmetrics.Result{Err: err})
	return err
}

type sorter[T any] struct {
	compare   func(a, b T) int
	policy    Policy
	threshold int
	executor  Submitter
	fanout    *semaphore.Weighted
}

// sort 对 data 做归并排序：复制到本次调用私有的缓冲区，
// 排序两半后归并回 data。
func (s *sorter[T]) sort(data []T) error {
	n := len(data)
	if n < 2 {
		return nil
	}

	buf := make([]T, n)
	copy(buf, data)
	mid := n / 2
	left, right := buf[:mid], buf[mid:]

	var err error
	if n > s.threshold {
		switch s.policy {
		case PolicyConcurrent:
			err = s.concurrent(left, right)
		case PolicyPooled:
			err = s.pooled(left, right)
		default:
			err = s.sequential(left, right)
		}
	} else {
		err = s.sequential(left, right)
	}
	if err != nil {
		return err
	}

	merge(data, left, right, s.compare)
	return nil
}

// guarded 与 sort 相同，但把 panic 转换为 *xpool.PanicError。
func (s *sorter[T]) guarded(data []T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &xpool.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return s.sort(data)
}

func (s *sorter[T]) sequential(left, right []T) error {
	if err := s.sort(left); err != nil {
		return err
	}
	return s.sort(right)
}

// concurrent 每一半各起一个 goroutine 并等待两者完成。
// 设置了并发上限且拿不到配额时，该半在当前 goroutine 中执行。
func (s *sorter[T]) concurrent(left, right []T) error {
	var (
		g         errgroup.Group
		inlineErr error
	)
	for _, half := range [2][]T{left, right} {
		if s.fanout != nil && !s.fanout.TryAcquire(1) {
			if err := s.guarded(half); err != nil && inlineErr == nil {
				inlineErr = err
			}
			continue
		}
		g.Go(func() error {
			if s.fanout != nil {
				defer s.fanout.Release(1)
			}
			return s.guarded(half)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return inlineErr
}

// pooled 左半提交到执行器，右半在当前 goroutine 排序，然后等待左半。
// 等待使用 Await，嵌套在 worker 内部时不会占住 worker。
func (s *sorter[T]) pooled(left, right []T) error {
	var leftErr error
	h := s.executor.Submit(func() {
		leftErr = s.sort(left)
	})
	rightErr := s.guarded(right)

	if err := s.executor.Await(h); err != nil {
		return err
	}
	if leftErr != nil {
		return leftErr
	}
	return rightErr
}

// merge 将有序的 left 与 right 归并到 dst，相等时 left 的元素优先。
// len(dst) 必须等于 len(left)+len(right)，且 dst 不与两者重叠。
func merge[T any](dst, left, right []T, compare func(a, b T) int) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if compare(right[j], left[i]) < 0 {
			dst[k] = right[j]
			j++
		} else {
			dst[k] = left[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}
