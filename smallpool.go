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

// smallPool is a free list of fixed BlockSize byte slices. Blocks are
// handed out LIFO for cache locality: the most recently returned block is
// the most likely to still be warm in cache.
type smallPool struct {
	_ noCopy

	blockSize int

	mu   sync.Mutex
	free [][]byte

	// inUseBytes and freeBytes are read far more often than they are
	// written (every counter getter on the manager touches them), so
	// keep them on their own cache line away from the mutex and slice
	// header above.
	_          [internal.CacheLineSize]byte
	inUseBytes atomic.Int64
	freeBytes  atomic.Int64

	maxFreeBytes int64 // 0 = unbounded

	sink EventSink
}

func newSmallPool(blockSize int, maxFreeBytes int64, sink EventSink) *smallPool {
	return &smallPool{
		blockSize:    blockSize,
		maxFreeBytes: maxFreeBytes,
		sink:         sink,
	}
}

// acquire pops a free block if one is available, otherwise allocates a
// fresh BlockSize slice. The returned slice is always exactly blockSize
// bytes and always zeroed (either fresh from make, or zeroed by release
// before it was pooled).
func (p *smallPool) acquire() []byte {
	p.mu.Lock()
	n := len(p.free)
	if n > 0 {
		blk := p.free[n-1]
		p.free = p.free[:n-1]
		p.freeBytes.Add(-int64(p.blockSize))
		p.mu.Unlock()
		p.inUseBytes.Add(int64(p.blockSize))
		return blk
	}
	p.mu.Unlock()

	p.inUseBytes.Add(int64(p.blockSize))
	p.sink.BlockCreated()
	return make([]byte, p.blockSize)
}

// release validates the entire batch before mutating any state: either
// every block in the batch is accepted (to the free list or dropped for
// being over the free-byte cap) or none are, and the in-use counter is
// only adjusted once validation has fully passed.
func (p *smallPool) release(blocks [][]byte) error {
	if blocks == nil {
		return fmt.Errorf("%w: blocks", ringerr.ErrNullArgument)
	}
	for i, blk := range blocks {
		if len(blk) != p.blockSize {
			return fmt.Errorf("%w: block %d has length %d, want %d",
				ringerr.ErrArgumentInvalid, i, len(blk), p.blockSize)
		}
	}

	p.inUseBytes.Add(-int64(p.blockSize) * int64(len(blocks)))

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, blk := range blocks {
		clear(blk)
		if p.maxFreeBytes != 0 && p.freeBytes.Load()+int64(p.blockSize) > p.maxFreeBytes {
			p.sink.BlockDiscarded()
			continue
		}
		p.free = append(p.free, blk)
		p.freeBytes.Add(int64(p.blockSize))
	}
	return nil
}

func (p *smallPool) inUseSize() int64 { return p.inUseBytes.Load() }
func (p *smallPool) freeSize() int64  { return p.freeBytes.Load() }

// setMaxFreeBytes changes the free-byte cap. It does not evict blocks
// already on the free list if the new cap is lower; the cap is only
// enforced on the next release.
func (p *smallPool) setMaxFreeBytes(v int64) {
	p.mu.Lock()
	p.maxFreeBytes = v
	p.mu.Unlock()
}
