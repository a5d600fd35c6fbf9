// Package util 提供排序与并发执行相关的子包。
//
// 子包列表：
//   - xqueue: 泛型无界阻塞队列，支持非阻塞 TryPop
//   - xsys: 硬件线程数查询与线程 CPU 绑定
//   - xpool: 固定大小的工作窃取 worker pool，支持等待时代为执行
//   - xsort: 泛型归并排序，支持顺序、goroutine 并发与 pool 三种策略
//
// 依赖方向：xsort → xpool → xqueue/xsys，下层包不感知上层。
package util
