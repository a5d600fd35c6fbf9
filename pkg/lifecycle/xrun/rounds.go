package xrun

import (
	"context"
	"fmt"
)

// Rounds 返回执行 fn 共 n 轮的服务函数，round 从 0 开始。
//
// 每轮开始前检查 ctx，已取消时返回 ctx.Err()（在 Group 中会被替换为取消原因）。
// fn 返回错误时立即停止。n 必须为正数，否则服务返回 ErrInvalidRounds。
func Rounds(n int, fn func(ctx context.Context, round int) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if fn == nil {
			return ErrNilFunc
		}
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidRounds, n)
		}
		for round := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, round); err != nil {
				return err
			}
		}
		return nil
	}
}
