// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringpool

import (
	"fmt"
	"sync/atomic"

	"code.hybscloud.com/ringpool/internal/ringerr"
	"github.com/google/uuid"
)

const (
	// DefaultBlockSize is 128 KiB, the teacher-default block size.
	DefaultBlockSize = 1 << 17
	// DefaultLargeBufferMultiple is 1 MiB.
	DefaultLargeBufferMultiple = 1 << 20
	// DefaultMaximumBufferSize is 128 MiB.
	DefaultMaximumBufferSize = 128 << 20
)

// Manager owns a SmallPool and a LargePool, enforces the sizing
// invariants relating the two, and is the single entry point for
// obtaining pooled buffers or Streams.
//
// Sizing configuration (BlockSize, LargeBufferMultiple, MaximumBufferSize,
// UseExponentialLargeBuffer) is immutable after construction.
// AggressiveBufferReturn, MaximumStreamCapacity, and GenerateCallStacks
// may be changed at any time and are read atomically by Streams.
type Manager struct {
	_ noCopy

	blockSize                 int
	largeBufferMultiple       int64
	maximumBufferSize         int64
	useExponentialLargeBuffer bool

	small *smallPool
	large *largePool

	aggressiveBufferReturn atomic.Bool
	maximumStreamCapacity  atomic.Int64 // 0 = unbounded
	generateCallStacks     atomic.Bool

	sink atomic.Pointer[EventSink]
}

// NewManager constructs a Manager, validating the sizing rule relating
// maximumBufferSize to largeBufferMultiple under the selected mode.
//
// blockSize and largeBufferMultiple must be positive. maximumBufferSize
// must be at least blockSize and must be an exact multiple of
// largeBufferMultiple (linear mode) or an exact power-of-two multiple of
// it (exponential mode).
func NewManager(blockSize, largeBufferMultiple, maximumBufferSize int64, useExponentialLargeBuffer bool) (*Manager, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: blockSize must be positive", ringerr.ErrArgumentRange)
	}
	if largeBufferMultiple <= 0 {
		return nil, fmt.Errorf("%w: largeBufferMultiple must be positive", ringerr.ErrArgumentRange)
	}
	if maximumBufferSize < blockSize {
		return nil, fmt.Errorf("%w: maximumBufferSize must be >= blockSize", ringerr.ErrArgumentInvalid)
	}
	if !isPermittedSize(maximumBufferSize, largeBufferMultiple, maximumBufferSize, useExponentialLargeBuffer) {
		return nil, fmt.Errorf(
			"%w: maximumBufferSize must be an exact multiple (linear) or power-of-two multiple (exponential) of largeBufferMultiple",
			ringerr.ErrArgumentInvalid)
	}

	m := &Manager{
		blockSize:                 int(blockSize),
		largeBufferMultiple:       largeBufferMultiple,
		maximumBufferSize:         maximumBufferSize,
		useExponentialLargeBuffer: useExponentialLargeBuffer,
	}
	var sink EventSink = NopEventSink{}
	m.sink.Store(&sink)
	m.small = newSmallPool(int(blockSize), 0, m)
	m.large = newLargePool(largeBufferMultiple, maximumBufferSize, useExponentialLargeBuffer, 0, m)
	return m, nil
}

// NewManagerDefault constructs a Manager using the package defaults:
// BlockSize=128KiB, LargeBufferMultiple=1MiB, MaximumBufferSize=128MiB,
// linear mode.
func NewManagerDefault() *Manager {
	m, err := NewManager(DefaultBlockSize, DefaultLargeBufferMultiple, DefaultMaximumBufferSize, false)
	if err != nil {
		// The defaults are constants chosen to satisfy the invariant;
		// a failure here means the constants themselves are broken.
		panic(fmt.Sprintf("ringpool: default configuration is invalid: %v", err))
	}
	return m
}

// manager implements the EventSink interface itself, forwarding to the
// currently configured sink. This lets internal components (smallPool,
// largePool) hold a stable EventSink reference even though the
// manager's actual sink can be swapped at runtime via SetEventSink.

func (m *Manager) currentSink() EventSink { return *m.sink.Load() }

func (m *Manager) BlockCreated()                 { m.currentSink().BlockCreated() }
func (m *Manager) BlockDiscarded()                { m.currentSink().BlockDiscarded() }
func (m *Manager) LargeBufferCreated(size int64)  { m.currentSink().LargeBufferCreated(size) }
func (m *Manager) NonPooledLargeBufferCreated(size int64) {
	m.currentSink().NonPooledLargeBufferCreated(size)
}
func (m *Manager) LargeBufferDiscarded(size int64, reason DiscardReason) {
	m.currentSink().LargeBufferDiscarded(size, reason)
}

var _ EventSink = (*Manager)(nil)

// The five stream-lifecycle EventSink methods are required to satisfy
// the EventSink interface used for delegation above. Streams call the
// current sink directly; the manager itself uses only StreamOverCapacity,
// from GetStreamContiguous.
func (m *Manager) StreamCreated(id uuid.UUID, tag string)  { m.currentSink().StreamCreated(id, tag) }
func (m *Manager) StreamDisposed(id uuid.UUID, tag string) { m.currentSink().StreamDisposed(id, tag) }
func (m *Manager) StreamDoubleDispose(id uuid.UUID, tag string) {
	m.currentSink().StreamDoubleDispose(id, tag)
}
func (m *Manager) StreamConvertedToArray(id uuid.UUID, tag string, length int64) {
	m.currentSink().StreamConvertedToArray(id, tag, length)
}
func (m *Manager) StreamOverCapacity(id uuid.UUID, tag string, requested, maximum int64) {
	m.currentSink().StreamOverCapacity(id, tag, requested, maximum)
}

// SetEventSink replaces the manager's event sink. Pass nil to restore
// NopEventSink. Safe to call concurrently with any other manager
// operation.
func (m *Manager) SetEventSink(sink EventSink) {
	if sink == nil {
		sink = NopEventSink{}
	}
	m.sink.Store(&sink)
}

// --- configuration accessors ---

func (m *Manager) BlockSize() int64               { return int64(m.blockSize) }
func (m *Manager) LargeBufferMultiple() int64      { return m.largeBufferMultiple }
func (m *Manager) MaximumBufferSize() int64        { return m.maximumBufferSize }
func (m *Manager) UseExponentialLargeBuffer() bool { return m.useExponentialLargeBuffer }
func (m *Manager) AggressiveBufferReturn() bool     { return m.aggressiveBufferReturn.Load() }
func (m *Manager) SetAggressiveBufferReturn(v bool) { m.aggressiveBufferReturn.Store(v) }
func (m *Manager) MaximumStreamCapacity() int64     { return m.maximumStreamCapacity.Load() }
func (m *Manager) SetMaximumStreamCapacity(v int64) { m.maximumStreamCapacity.Store(v) }
func (m *Manager) GenerateCallStacks() bool         { return m.generateCallStacks.Load() }
func (m *Manager) SetGenerateCallStacks(v bool)     { m.generateCallStacks.Store(v) }

// --- pool counters ---

func (m *Manager) SmallPoolFreeSize() int64  { return m.small.freeSize() }
func (m *Manager) SmallPoolInUseSize() int64 { return m.small.inUseSize() }
func (m *Manager) LargePoolFreeSize() int64  { return m.large.freeSize() }
func (m *Manager) LargePoolInUseSize() int64 { return m.large.inUseSize() }

// SetSmallPoolMaxFree bounds how many bytes of freed blocks the small
// pool retains; blocks returned beyond the cap are discarded instead of
// pooled. A cap of 0 means unbounded (the default).
func (m *Manager) SetSmallPoolMaxFree(maxFreeBytes int64) {
	m.small.setMaxFreeBytes(maxFreeBytes)
}

// --- raw pool operations ---

// GetBlock acquires one BlockSize byte slice from the small pool.
func (m *Manager) GetBlock() []byte {
	return m.small.acquire()
}

// ReturnBlocks returns a batch of blocks to the small pool. The entire
// batch is validated before any pool state changes: either every block
// is accepted (pooled or dropped for exceeding the free-byte cap) or the
// call fails and nothing changes.
func (m *Manager) ReturnBlocks(blocks [][]byte) error {
	return m.small.release(blocks)
}

// GetLargeBuffer acquires a contiguous buffer of at least requiredSize
// bytes from the large pool.
func (m *Manager) GetLargeBuffer(requiredSize int64) ([]byte, error) {
	buf, _, err := m.large.acquireLarge(requiredSize)
	return buf, err
}

// ReturnLargeBuffer returns buf to the large pool, or drops it if its
// length is not a permitted bucket size. The large pool is created
// without a free-byte cap and the Manager offers no way to set one, so
// every permitted-size buffer returned here is pooled.
func (m *Manager) ReturnLargeBuffer(buf []byte) error {
	return m.large.returnLarge(buf)
}

// --- stream factories ---

// GetStream returns a new, empty Stream with no tag.
func (m *Manager) GetStream() *Stream {
	return newStream(m, "")
}

// GetStreamTag returns a new, empty Stream with the given diagnostic tag.
func (m *Manager) GetStreamTag(tag string) *Stream {
	return newStream(m, tag)
}

// GetStreamCapacity returns a new Stream with the given tag, pre-grown
// in block mode to at least requiredSize bytes of capacity (the blocks
// are acquired before it returns).
func (m *Manager) GetStreamCapacity(tag string, requiredSize int64) (*Stream, error) {
	s := newStream(m, tag)
	if requiredSize > 0 {
		if err := s.SetCapacity(requiredSize); err != nil {
			s.Dispose()
			return nil, err
		}
	}
	return s, nil
}

// GetStreamContiguous returns a new Stream with the given tag and at
// least requiredSize bytes of capacity. When contiguous is true, the
// stream's initial backing storage is already a single LargeBuffer
// (never lazily acquired blocks); when false, capacity is still grown
// eagerly but via the normal block-mode path.
func (m *Manager) GetStreamContiguous(tag string, requiredSize int64, contiguous bool) (*Stream, error) {
	s := newStream(m, tag)
	if !contiguous {
		if requiredSize > 0 {
			if err := s.SetCapacity(requiredSize); err != nil {
				s.Dispose()
				return nil, err
			}
		}
		return s, nil
	}

	size := requiredSize
	if size <= 0 {
		size = 1
	}
	if max := m.MaximumStreamCapacity(); max > 0 && size > max {
		m.StreamOverCapacity(s.id, s.tag, size, max)
		s.Dispose()
		return nil, fmt.Errorf("%w: requiredSize %d exceeds MaximumStreamCapacity %d",
			ringerr.ErrInvalidOperation, size, max)
	}
	buf, err := m.GetLargeBuffer(size)
	if err != nil {
		s.Dispose()
		return nil, err
	}
	s.large = buf
	s.inLarge = true
	return s, nil
}

// GetStreamFromBytes returns a new Stream whose initial content is a copy
// of source[offset:offset+count]. source is not retained: the returned
// stream's storage never aliases it.
func (m *Manager) GetStreamFromBytes(tag string, source []byte, offset, count int) (*Stream, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: source", ringerr.ErrNullArgument)
	}
	if offset < 0 || count < 0 {
		return nil, fmt.Errorf("%w: offset=%d count=%d", ringerr.ErrArgumentRange, offset, count)
	}
	if offset+count > len(source) {
		return nil, fmt.Errorf("%w: offset/count out of range for source of length %d",
			ringerr.ErrArgumentInvalid, len(source))
	}

	s, err := m.GetStreamCapacity(tag, int64(count))
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if _, err := s.Write(source[offset:offset+count], 0, count); err != nil {
			s.Dispose()
			return nil, err
		}
		s.position = 0
	}
	return s, nil
}
