// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

// Package memstat reads the current process's resident memory for the
// ringpoolctl diagnostic CLI. It is a read-only observability aid, never
// a dependency of the pool/stream core.
package memstat

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// RSS returns the process's maximum resident set size in bytes, or an
// error if the underlying getrusage call fails.
func RSS() (int64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	// Darwin and iOS report Maxrss in bytes; Linux reports KiB, and the
	// other unix systems are treated the same way. Normalize to bytes.
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return int64(ru.Maxrss), nil
	}
	return int64(ru.Maxrss) * 1024, nil
}
