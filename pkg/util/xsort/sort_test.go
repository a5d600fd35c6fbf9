package xsort

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xsortpool/pkg/observability/xmetrics"
	"github.com/omeyang/xsortpool/pkg/util/xpool"
)

func newExecutor(tb testing.TB, workers int) *xpool.Executor {
	tb.Helper()
	e, err := xpool.New(
		xpool.WithWorkers(workers),
		xpool.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = e.Close() })
	return e
}

func shuffled(n int, seed uint64) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i % (n/3 + 1)
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(n, func(i, j int) { data[i], data[j] = data[j], data[i] })
	return data
}

func policyOptions(p Policy, exec Submitter) []Option {
	opts := []Option{WithPolicy(p)}
	if p == PolicyPooled {
		opts = append(opts, WithExecutor(exec))
	}
	return opts
}

func TestSort_MatchesReference(t *testing.T) {
	exec := newExecutor(t, 4)
	sizes := []int{0, 1, 2, 3, 5, 17, 100, 1000}
	thresholds := []int{0, 1, 16, DefaultThreshold}

	for _, p := range Policies() {
		for _, n := range sizes {
			for _, threshold := range thresholds {
				t.Run(fmt.Sprintf("%s/n=%d/t=%d", p, n, threshold), func(t *testing.T) {
					data := shuffled(n, uint64(n))
					want := slices.Clone(data)
					slices.Sort(want)

					opts := append(policyOptions(p, exec), WithThreshold(threshold))
					require.NoError(t, Sort(context.Background(), data, opts...))
					assert.Equal(t, want, data)
				})
			}
		}
	}
}

func TestSort_LargeAllPoliciesAgree(t *testing.T) {
	exec := newExecutor(t, 4)
	const n = 50_000
	base := shuffled(n, 42)
	want := slices.Clone(base)
	slices.Sort(want)

	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			data := slices.Clone(base)
			opts := append(policyOptions(p, exec), WithThreshold(1000))
			require.NoError(t, Sort(context.Background(), data, opts...))
			assert.Equal(t, want, data)
		})
	}
}

func TestSort_SortedAndReversed(t *testing.T) {
	exec := newExecutor(t, 2)
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			sorted := make([]int, 300)
			for i := range sorted {
				sorted[i] = i
			}
			opts := append(policyOptions(p, exec), WithThreshold(8))

			data := slices.Clone(sorted)
			require.NoError(t, Sort(context.Background(), data, opts...))
			assert.Equal(t, sorted, data)

			slices.Reverse(data)
			require.NoError(t, Sort(context.Background(), data, opts...))
			assert.Equal(t, sorted, data)
		})
	}
}

func TestSortFunc_Stable(t *testing.T) {
	type item struct {
		key, seq int
	}
	exec := newExecutor(t, 3)

	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			r := rand.New(rand.NewPCG(7, 11))
			data := make([]item, 2000)
			for i := range data {
				data[i] = item{key: r.IntN(20), seq: i}
			}
			opts := append(policyOptions(p, exec), WithThreshold(50))

			err := SortFunc(context.Background(), data, func(a, b item) int {
				return a.key - b.key
			}, opts...)
			require.NoError(t, err)

			for i := 1; i < len(data); i++ {
				prev, cur := data[i-1], data[i]
				require.LessOrEqual(t, prev.key, cur.key)
				if prev.key == cur.key {
					require.Less(t, prev.seq, cur.seq, "equal keys must keep input order")
				}
			}
		})
	}
}

func TestSort_Strings(t *testing.T) {
	data := []string{"pear", "apple", "fig", "banana", "apple"}
	require.NoError(t, Sort(context.Background(), data, WithPolicy(PolicyConcurrent), WithThreshold(0)))
	assert.Equal(t, []string{"apple", "apple", "banana", "fig", "pear"}, data)
}

func TestSort_PooledSubmissionCount(t *testing.T) {
	exec := newExecutor(t, 2)
	data := []int{5, 3, 4, 1, 2}

	require.NoError(t, Sort(context.Background(), data,
		WithPolicy(PolicyPooled), WithExecutor(exec), WithThreshold(0)))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, data)
	assert.Equal(t, int64(4), exec.Stats().Submitted)
}

func TestSort_ThresholdGatesParallelism(t *testing.T) {
	tests := []struct {
		threshold int
		want      int64
	}{
		{threshold: 100, want: 0},
		{threshold: 99, want: 1},
		{threshold: 49, want: 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("t=%d", tt.threshold), func(t *testing.T) {
			exec := newExecutor(t, 2)
			data := shuffled(100, 3)

			require.NoError(t, Sort(context.Background(), data,
				WithPolicy(PolicyPooled), WithExecutor(exec), WithThreshold(tt.threshold)))

			assert.True(t, slices.IsSorted(data))
			assert.Equal(t, tt.want, exec.Stats().Submitted)
		})
	}
}

func TestSort_MaxFanout(t *testing.T) {
	for _, fanout := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("fanout=%d", fanout), func(t *testing.T) {
			data := shuffled(5000, 9)
			want := slices.Clone(data)
			slices.Sort(want)

			require.NoError(t, Sort(context.Background(), data,
				WithPolicy(PolicyConcurrent), WithThreshold(0), WithMaxFanout(fanout)))
			assert.Equal(t, want, data)
		})
	}
}

func TestSort_InvalidOptions(t *testing.T) {
	data := []int{2, 1}
	ctx := context.Background()

	assert.ErrorIs(t, Sort(ctx, data, WithPolicy(PolicyPooled)), ErrNilExecutor)
	assert.ErrorIs(t, Sort(ctx, data, WithThreshold(-1)), ErrInvalidThreshold)
	assert.ErrorIs(t, Sort(ctx, data, WithMaxFanout(-1)), ErrInvalidFanout)
	assert.ErrorIs(t, Sort(ctx, data, WithPolicy(Policy(9))), ErrUnknownPolicy)
	assert.ErrorIs(t, SortFunc[int](ctx, data, nil), ErrNilCompare)

	// 参数错误时不修改数据
	assert.Equal(t, []int{2, 1}, data)
}

func TestSort_PooledExecutorClosed(t *testing.T) {
	exec := newExecutor(t, 2)
	require.NoError(t, exec.Close())

	data := shuffled(100, 5)
	err := Sort(context.Background(), data,
		WithPolicy(PolicyPooled), WithExecutor(exec), WithThreshold(10))
	assert.ErrorIs(t, err, xpool.ErrPoolStopped)
}

func TestSort_ComparePanicReported(t *testing.T) {
	exec := newExecutor(t, 2)
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			data := []int{8, 7, 6, 5, 4, 3, 2, 1}
			opts := append(policyOptions(p, exec), WithThreshold(0))

			err := SortFunc(context.Background(), data, func(a, b int) int {
				panic("bad compare")
			}, opts...)
			require.ErrorIs(t, err, xpool.ErrTaskPanicked)

			var pe *xpool.PanicError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "bad compare", pe.Value)
		})
	}
}

// 池内嵌套排序：任务内部再以 PolicyPooled 排序，不应死锁。
func TestSort_PooledNestedInsideTask(t *testing.T) {
	exec := newExecutor(t, 1)
	data := shuffled(2000, 13)
	want := slices.Clone(data)
	slices.Sort(want)

	var sortErr error
	h := exec.Submit(func() {
		sortErr = Sort(context.Background(), data,
			WithPolicy(PolicyPooled), WithExecutor(exec), WithThreshold(64))
	})
	require.NoError(t, exec.Await(h))
	require.NoError(t, sortErr)
	assert.Equal(t, want, data)
}

type recordingObserver struct {
	mu      sync.Mutex
	opts    []xmetrics.SpanOptions
	results []xmetrics.Result
}

func (o *recordingObserver) Start(ctx context.Context, opts xmetrics.SpanOptions) (context.Context, xmetrics.Span) {
	o.mu.Lock()
	o.opts = append(o.opts, opts)
	o.mu.Unlock()
	return ctx, recordingSpan{o}
}

type recordingSpan struct {
	o *recordingObserver
}

func (s recordingSpan) End(result xmetrics.Result) {
	s.o.mu.Lock()
	s.o.results = append(s.o.results, result)
	s.o.mu.Unlock()
}

func TestSort_Observer(t *testing.T) {
	obs := &recordingObserver{}
	data := shuffled(64, 1)

	require.NoError(t, Sort(context.Background(), data,
		WithPolicy(PolicyConcurrent), WithThreshold(8), WithObserver(obs)))

	require.Len(t, obs.opts, 1)
	assert.Equal(t, "xsort", obs.opts[0].Component)
	assert.Equal(t, "sort", obs.opts[0].Operation)
	assert.Contains(t, obs.opts[0].Attrs, xmetrics.String("policy", "concurrent"))
	assert.Contains(t, obs.opts[0].Attrs, xmetrics.Int("size", 64))
	require.Len(t, obs.results, 1)
	assert.NoError(t, obs.results[0].Err)
}

func TestMerge(t *testing.T) {
	dst := make([]int, 7)
	merge(dst, []int{1, 4, 4, 9}, []int{2, 4, 10}, func(a, b int) int { return a - b })
	assert.Equal(t, []int{1, 2, 4, 4, 4, 9, 10}, dst)

	dst = make([]int, 3)
	merge(dst, nil, []int{1, 2, 3}, func(a, b int) int { return a - b })
	assert.Equal(t, []int{1, 2, 3}, dst)
}
