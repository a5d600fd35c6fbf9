//go:build !linux

package xsys

func platformHardwareThreads() int {
	return 0
}

// AllowedCPUs 在非 Linux 平台上返回 [ErrUnsupportedPlatform]。
func AllowedCPUs() ([]int, error) {
	return nil, ErrUnsupportedPlatform
}

// PinCurrentThread 在非 Linux 平台上返回 [ErrUnsupportedPlatform]。
// 参数校验仍然执行，以保持跨平台行为一致。
func PinCurrentThread(cpu int) error {
	if err := validateCPU(cpu); err != nil {
		return err
	}
	return ErrUnsupportedPlatform
}
