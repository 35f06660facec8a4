// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !unix

package memstat

// RSS always returns 0 on non-unix platforms: there is no portable
// getrusage equivalent wired up here.
func RSS() (int64, error) {
	return 0, nil
}
