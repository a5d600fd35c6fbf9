package xsort

import (
	"fmt"
	"strconv"
	"strings"
)

// Policy 决定区间长度超过阈值时两半如何执行。
type Policy int

const (
	// PolicySequential 两半都在当前 goroutine 中顺序排序。
	PolicySequential Policy = iota
	// PolicyConcurrent 每一半各起一个不受管理的 goroutine。
	PolicyConcurrent
	// PolicyPooled 左半提交到执行器，右半在当前 goroutine 排序。
	PolicyPooled
)

var policyNames = [...]string{
	PolicySequential: "sequential",
	PolicyConcurrent: "concurrent",
	PolicyPooled:     "pooled",
}

// Policies 返回所有已定义的策略。
func Policies() []Policy {
	return []Policy{PolicySequential, PolicyConcurrent, PolicyPooled}
}

func (p Policy) valid() bool {
	return p >= PolicySequential && p <= PolicyPooled
}

func (p Policy) String() string {
	if p.valid() {
		return policyNames[p]
	}
	return "Policy(" + strconv.Itoa(int(p)) + ")"
}

// ParsePolicy 解析策略名称（大小写不敏感）。
// "unmanaged" 是 "concurrent" 的别名。
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential":
		return PolicySequential, nil
	case "concurrent", "unmanaged":
		return PolicyConcurrent, nil
	case "pooled":
		return PolicyPooled, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// MarshalText 实现 encoding.TextMarshaler。
func (p Policy) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler。
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
