// Package xmetrics 提供 xsortpool 的可观测性接口（metrics + tracing）。
//
// # 设计理念
//
// xmetrics 仅定义最小化接口：Observer/Span/Attr。
// xpool 和 xsort 只依赖接口，默认使用 [NoopObserver]，
// 需要观测时注入 [NewOTelObserver] 返回的 OpenTelemetry 实现。
//
// # 使用示例
//
//	obs, _ := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(mp))
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xsort",
//		Operation: "sort",
//	})
//	defer func() { span.End(xmetrics.Result{Err: err}) }()
//
// # 指标命名
//
//   - xsortpool.operation.total：操作计数（按 component/operation/status 维度）
//   - xsortpool.operation.duration：操作耗时（秒）
//   - xsortpool.operation.active：正在进行中的操作数
//
// 统一属性：component / operation / status（active 不含 status）。
package xmetrics
