// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringpool

import (
	"fmt"
	"sync"
	"sync/atomic"

	"code.hybscloud.com/ringpool/internal"
	"code.hybscloud.com/ringpool/internal/ringerr"
)

// largePool is a set of free lists of contiguous byte slices, one list
// per permitted bucket size. Bucket sizes are derived from multiple and
// maximumSize: either linear multiples of multiple, or powers of two
// times multiple, whichever useExponential selects.
type largePool struct {
	_ noCopy

	multiple       int64
	maximumSize    int64
	useExponential bool

	mu      sync.Mutex
	buckets map[int64][][]byte

	_          [internal.CacheLineSize]byte
	inUseBytes atomic.Int64
	freeBytes  atomic.Int64

	maxFreeBytes int64 // 0 = unbounded

	sink EventSink
}

func newLargePool(multiple, maximumSize int64, useExponential bool, maxFreeBytes int64, sink EventSink) *largePool {
	return &largePool{
		multiple:       multiple,
		maximumSize:    maximumSize,
		useExponential: useExponential,
		buckets:        make(map[int64][][]byte),
		maxFreeBytes:   maxFreeBytes,
		sink:           sink,
	}
}

// bucketSize computes the smallest value in the pool's size progression
// (linear multiples, or powers of two times multiple) that is >=
// required. This is used both to choose a pooled bucket (when the result
// fits within maximumSize) and to size an oversize, unpooled buffer (when
// it doesn't) — the sizing rule is the same either way, only the "does it
// fit" question differs.
func bucketSize(required, multiple int64, exponential bool) int64 {
	if required <= 0 {
		return multiple
	}
	if exponential {
		size := multiple
		for size < required {
			size *= 2
		}
		return size
	}
	k := (required + multiple - 1) / multiple
	if k < 1 {
		k = 1
	}
	return k * multiple
}

// isPermittedSize reports whether size is exactly one of the pool's
// pooled bucket sizes (i.e. not an oversize/unpooled length).
func isPermittedSize(size, multiple, maximumSize int64, exponential bool) bool {
	if size <= 0 || size > maximumSize {
		return false
	}
	return bucketSize(size, multiple, exponential) == size
}

// acquireLarge returns a buffer of at least required bytes: the smallest
// permitted bucket size that fits, or (if required exceeds the pool's
// maximumSize) a same-sizing-rule oversize buffer that is rented but
// never pooled on return.
func (p *largePool) acquireLarge(required int64) (buf []byte, oversize bool, err error) {
	if required <= 0 {
		return nil, false, fmt.Errorf("%w: requiredSize must be positive", ringerr.ErrArgumentRange)
	}

	size := bucketSize(required, p.multiple, p.useExponential)
	if size > p.maximumSize {
		p.inUseBytes.Add(size)
		p.sink.NonPooledLargeBufferCreated(size)
		return make([]byte, size), true, nil
	}

	p.mu.Lock()
	list := p.buckets[size]
	if n := len(list); n > 0 {
		buf = list[n-1]
		p.buckets[size] = list[:n-1]
		p.freeBytes.Add(-size)
		p.mu.Unlock()
		p.inUseBytes.Add(size)
		return buf, false, nil
	}
	p.mu.Unlock()

	p.inUseBytes.Add(size)
	p.sink.LargeBufferCreated(size)
	return make([]byte, size), false, nil
}

// returnLarge validates and returns buf to the pool. An oversize buffer
// (one whose length isn't a permitted bucket size) is always dropped: it
// has no bucket to go back to. A permitted-size buffer is dropped only
// when pooling it would exceed the pool's free-byte cap.
func (p *largePool) returnLarge(buf []byte) error {
	if buf == nil {
		return fmt.Errorf("%w: buffer", ringerr.ErrNullArgument)
	}
	size := int64(len(buf))
	if size == 0 {
		return fmt.Errorf("%w: buffer length must be positive", ringerr.ErrArgumentInvalid)
	}

	p.inUseBytes.Add(-size)

	if !isPermittedSize(size, p.multiple, p.maximumSize, p.useExponential) {
		p.sink.LargeBufferDiscarded(size, ReasonTooLarge)
		return nil
	}

	clear(buf)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxFreeBytes != 0 && p.freeBytes.Load()+size > p.maxFreeBytes {
		p.sink.LargeBufferDiscarded(size, ReasonOverCapacity)
		return nil
	}
	p.buckets[size] = append(p.buckets[size], buf)
	p.freeBytes.Add(size)
	return nil
}

func (p *largePool) inUseSize() int64 { return p.inUseBytes.Load() }
func (p *largePool) freeSize() int64  { return p.freeBytes.Load() }
