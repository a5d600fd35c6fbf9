// Package xconf 提供基于 koanf 的配置加载与反序列化。
//
// 工厂函数 New（按扩展名识别格式）与 NewFromBytes（显式指定格式）返回 [Config]，
// Client() 暴露底层 koanf 实例。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # Unmarshal
//
// 反序列化基于 mapstructure，默认允许弱类型转换（字符串 "8" 可转为 int 8），
// 并通过 [DecodeHook] 支持：
//   - 实现 encoding.TextUnmarshaler 的类型（如日志级别、排序策略）直接从字符串解析
//   - time.Duration 从 "250ms" 形式解析
//   - 逗号分隔的字符串解码为切片
//
// target 中已有的值在配置缺失对应键时保持不变，调用方可以先填充默认值再 Unmarshal。
// WithStrict(true) 会把配置中多余的键视为错误。
//
// Config 加载后只读，可在多个 goroutine 中并发 Unmarshal。
package xconf
