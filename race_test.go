// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package ringpool_test

// raceEnabled is true when the race detector is active. Concurrency
// stress tests use it to shrink iteration counts: the race detector's
// instrumentation overhead makes the full counts impractically slow.
const raceEnabled = true
