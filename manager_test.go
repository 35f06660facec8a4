// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringpool_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/ringpool"
	"code.hybscloud.com/ringpool/internal/ringerr"
)

func TestNewManager_DefaultsAreValid(t *testing.T) {
	mgr := ringpool.NewManagerDefault()
	if got, want := mgr.BlockSize(), int64(ringpool.DefaultBlockSize); got != want {
		t.Fatalf("BlockSize() = %d, want %d", got, want)
	}
	if mgr.UseExponentialLargeBuffer() {
		t.Fatalf("default manager should be linear mode")
	}
}

func TestNewManager_RejectsBadSizing(t *testing.T) {
	cases := []struct {
		name                      string
		blockSize, multiple, max  int64
		exponential               bool
	}{
		{"zero block size", 0, 1 << 20, 8 << 20, false},
		{"negative block size", -1, 1 << 20, 8 << 20, false},
		{"zero multiple", 16384, 0, 8 << 20, false},
		{"max below block size", 1 << 20, 1 << 20, 1024, false},
		{"max not exact linear multiple", 16384, 1 << 20, 8<<20 + 1, false},
		{"max not exact power of two", 16384, 1000, 8000 + 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ringpool.NewManager(tc.blockSize, tc.multiple, tc.max, tc.exponential)
			if err == nil {
				t.Fatalf("expected construction to fail")
			}
		})
	}
}

func TestManager_SmallPoolFreeCap(t *testing.T) {
	mgr, err := ringpool.NewManager(100, 1<<20, 8<<20, false)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	mgr.SetSmallPoolMaxFree(200)

	blocks := make([][]byte, 3)
	for i := range blocks {
		blocks[i] = mgr.GetBlock()
	}
	if err := mgr.ReturnBlocks(blocks); err != nil {
		t.Fatalf("ReturnBlocks: %v", err)
	}
	if got, want := mgr.SmallPoolFreeSize(), int64(200); got != want {
		t.Fatalf("SmallPoolFreeSize() = %d, want %d", got, want)
	}
	if got, want := mgr.SmallPoolInUseSize(), int64(0); got != want {
		t.Fatalf("SmallPoolInUseSize() = %d, want %d", got, want)
	}
}

func TestManager_ReturnBlocks_RejectsWrongSizeWithoutPartialCommit(t *testing.T) {
	mgr, err := ringpool.NewManager(100, 1<<20, 8<<20, false)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	good := mgr.GetBlock()
	bad := make([]byte, 50)
	before := mgr.SmallPoolInUseSize()

	if err := mgr.ReturnBlocks([][]byte{good, bad}); err == nil {
		t.Fatalf("expected error for wrong-sized block in batch")
	}
	if got := mgr.SmallPoolInUseSize(); got != before {
		t.Fatalf("in-use size changed on failed batch: got %d, want %d", got, before)
	}
	if got := mgr.SmallPoolFreeSize(); got != 0 {
		t.Fatalf("free size changed on failed batch: got %d", got)
	}
}

func TestManager_ReturnBlocks_NullBatch(t *testing.T) {
	mgr, err := ringpool.NewManager(100, 1<<20, 8<<20, false)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := mgr.ReturnBlocks(nil); err == nil {
		t.Fatalf("expected argument-null error for nil batch")
	}
}

// TestManager_LargePoolLinearSizing is scenario 2 from spec.md §8: request
// one byte above MaximumBufferSize and observe the oversize rounding.
func TestManager_LargePoolLinearSizing(t *testing.T) {
	mgr, err := ringpool.NewManager(16384, 1048576, 8388608, false)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	buf, err := mgr.GetLargeBuffer(8388609)
	if err != nil {
		t.Fatalf("GetLargeBuffer: %v", err)
	}
	if got, want := int64(len(buf)), int64(9437184); got != want {
		t.Fatalf("len(buf) = %d, want %d", got, want)
	}
	if got, want := mgr.LargePoolInUseSize(), int64(9437184); got != want {
		t.Fatalf("LargePoolInUseSize() = %d, want %d", got, want)
	}

	if err := mgr.ReturnLargeBuffer(buf); err != nil {
		t.Fatalf("ReturnLargeBuffer: %v", err)
	}
	if got := mgr.LargePoolInUseSize(); got != 0 {
		t.Fatalf("LargePoolInUseSize() after return = %d, want 0", got)
	}
	if got := mgr.LargePoolFreeSize(); got != 0 {
		t.Fatalf("LargePoolFreeSize() after return = %d, want 0 (oversize buffer must not be pooled)", got)
	}
}

// TestManager_LargePoolExponentialSizing is scenario 3 from spec.md §8.
func TestManager_LargePoolExponentialSizing(t *testing.T) {
	mgr, err := ringpool.NewManager(64, 1000, 8000, true)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	cases := []struct{ request, want int64 }{
		{1000, 1000},
		{2000, 2000},
		{4000, 4000},
		{8000, 8000},
		{5000, 8000},
	}
	for _, tc := range cases {
		buf, err := mgr.GetLargeBuffer(tc.request)
		if err != nil {
			t.Fatalf("GetLargeBuffer(%d): %v", tc.request, err)
		}
		if got := int64(len(buf)); got != tc.want {
			t.Fatalf("GetLargeBuffer(%d) len = %d, want %d", tc.request, got, tc.want)
		}
		if err := mgr.ReturnLargeBuffer(buf); err != nil {
			t.Fatalf("ReturnLargeBuffer: %v", err)
		}
	}
}

func TestManager_ReturnLargeBuffer_RejectsNilAndZeroLength(t *testing.T) {
	mgr := ringpool.NewManagerDefault()
	if err := mgr.ReturnLargeBuffer(nil); err == nil {
		t.Fatalf("expected error for nil buffer")
	}
	if err := mgr.ReturnLargeBuffer([]byte{}); err == nil {
		t.Fatalf("expected error for zero-length buffer")
	}
}

func TestManager_GetStreamFromBytes_DoesNotAliasSource(t *testing.T) {
	mgr := ringpool.NewManagerDefault()
	src := []byte("hello, ringpool")
	s, err := mgr.GetStreamFromBytes("copy", src, 0, len(src))
	if err != nil {
		t.Fatalf("GetStreamFromBytes: %v", err)
	}
	defer s.Dispose()

	buf, err := s.GetBuffer()
	if err != nil {
		t.Fatalf("GetBuffer: %v", err)
	}
	src[0] = 'X'
	if buf[0] == 'X' {
		t.Fatalf("stream storage aliases source slice")
	}

	out, err := s.ToArray()
	if err != nil {
		t.Fatalf("ToArray: %v", err)
	}
	if string(out) != "hello, ringpool" {
		t.Fatalf("ToArray() = %q, want %q", out, "hello, ringpool")
	}
}

func TestManager_GetStreamContiguous_StartsInLargeMode(t *testing.T) {
	mgr := ringpool.NewManagerDefault()
	s, err := mgr.GetStreamContiguous("contig", 1024, true)
	if err != nil {
		t.Fatalf("GetStreamContiguous: %v", err)
	}
	defer s.Dispose()

	capacity, err := s.Capacity()
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	if capacity < 1024 {
		t.Fatalf("Capacity() = %d, want >= 1024", capacity)
	}
	buf, err := s.GetBuffer()
	if err != nil {
		t.Fatalf("GetBuffer: %v", err)
	}
	if int64(len(buf)) != capacity {
		t.Fatalf("GetBuffer() length = %d, want %d (already contiguous)", len(buf), capacity)
	}
}

func TestManager_GetStreamContiguous_RespectsMaximumStreamCapacity(t *testing.T) {
	mgr := ringpool.NewManagerDefault()
	mgr.SetMaximumStreamCapacity(1024)
	_, err := mgr.GetStreamContiguous("too-big", 2048, true)
	if err == nil {
		t.Fatalf("expected error exceeding MaximumStreamCapacity")
	}
	if !errors.Is(err, ringerr.ErrInvalidOperation) {
		t.Fatalf("error = %v, want wrapping ErrInvalidOperation", err)
	}
}
