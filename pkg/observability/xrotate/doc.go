// Package xrotate 提供基于文件大小的日志轮转输出，供 xlog 的文件输出使用。
//
// 底层基于 gopkg.in/natefinch/lumberjack.v2：按大小轮转、按数量/天数清理备份、
// 可选 gzip 压缩。[Rotator] 是 io.WriteCloser 的超集，可直接作为 slog handler 的输出。
//
// # 注意事项
//
//   - 父目录不存在时会自动创建（权限 0750）
//   - MaxBackups 和 MaxAgeDays 不能同时为 0，否则备份文件无限增长
//   - Close 后 Write/Rotate 返回 [ErrClosed]
package xrotate
