package xconf

import "github.com/go-viper/mapstructure/v2"

// DecodeHook 返回 Unmarshal 使用的类型转换钩子：
// 实现 encoding.TextUnmarshaler 的类型从字符串解析，
// time.Duration 接受 "1.5s" 形式，逗号分隔的字符串可解码为切片。
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
