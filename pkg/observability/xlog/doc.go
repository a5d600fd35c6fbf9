// Package xlog 基于 log/slog 构建结构化 Logger。
//
// xsortpool 的各个包直接接受 *slog.Logger（通过 WithLogger 选项注入），
// xlog 只负责按配置构建它：输出目标、级别、格式、文件轮转。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，后续 Set 操作的结果被忽略）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xsortbench.log").
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// [Builder.LevelVar] 返回的级别变量可用于运行时调整级别。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// Level 实现 encoding.TextMarshaler/TextUnmarshaler，可直接用于配置反序列化。
//
// # 便捷属性
//
// [Err]、[Duration]、[Component]、[Worker]、[Count]、[Stack]。
package xlog
