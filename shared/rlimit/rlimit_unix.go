//go:build linux || darwin

// Package rlimit raises the open file limit before many concurrent calls.
package rlimit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Desired comfortably exceeds services times regions.
const Desired = 6000

// Raise lifts the soft RLIMIT_NOFILE to min(Desired, hard). It returns a
// warning when the hard limit is lower than Desired.
func Raise() (warning string, err error) {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return "", fmt.Errorf("failed to read open file limit: %w", err)
	}
	if lim.Max < Desired {
		warning = fmt.Sprintf("open file hard limit is %d, below %d; queries may fail, raise it in /etc/security/limits.conf", lim.Max, Desired)
	}
	target := min(uint64(Desired), uint64(lim.Max))
	if target <= uint64(lim.Cur) {
		return warning, nil
	}
	lim.Cur = target
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return warning, fmt.Errorf("failed to raise open file limit: %w", err)
	}
	return warning, nil
}
