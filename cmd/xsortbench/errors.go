package main

import "errors"

// errMismatch 表示某个策略的排序结果与参考结果不一致。
var errMismatch = errors.New("sorted output does not match reference")

// usageError 表示参数或配置错误，对应退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }
