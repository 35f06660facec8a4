// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringpool

import "github.com/google/uuid"

// EventSink receives lifecycle notifications from a Manager and the
// Streams it creates. Implementations must be safe for concurrent use;
// the manager and its streams may call these methods from any goroutine
// and never block waiting for the sink to return.
//
// A nil method set is never invoked directly: Manager always wraps a
// caller-supplied sink, falling back to NopEventSink when none is set.
type EventSink interface {
	// BlockCreated fires when SmallPool allocates a fresh block because
	// its free list was empty.
	BlockCreated()
	// BlockDiscarded fires once per block dropped by ReturnBlocks
	// because the small pool's free-byte cap would otherwise be
	// exceeded.
	BlockDiscarded()
	// LargeBufferCreated fires when LargePool allocates a fresh
	// permitted-size buffer because its bucket's free list was empty.
	LargeBufferCreated(size int64)
	// NonPooledLargeBufferCreated fires when a requested size exceeds
	// MaximumBufferSize and an oversize, unpooled buffer is allocated.
	NonPooledLargeBufferCreated(size int64)
	// LargeBufferDiscarded fires when ReturnLargeBuffer drops a buffer
	// instead of pooling it.
	LargeBufferDiscarded(size int64, reason DiscardReason)
	// StreamCreated fires when a new Stream is constructed.
	StreamCreated(id uuid.UUID, tag string)
	// StreamDisposed fires on the first, effective Dispose of a Stream.
	StreamDisposed(id uuid.UUID, tag string)
	// StreamDoubleDispose fires on every Dispose call after the first,
	// including a racing concurrent call that lost the dispose CAS.
	StreamDoubleDispose(id uuid.UUID, tag string)
	// StreamConvertedToArray fires when ToArray is called.
	StreamConvertedToArray(id uuid.UUID, tag string, length int64)
	// StreamOverCapacity fires when a capacity growth is rejected
	// because it would exceed MaximumStreamCapacity.
	StreamOverCapacity(id uuid.UUID, tag string, requested, maximum int64)
}

// NopEventSink is an EventSink whose methods do nothing. It is the
// default sink for a Manager that hasn't been given one explicitly.
type NopEventSink struct{}

func (NopEventSink) BlockCreated()                                      {}
func (NopEventSink) BlockDiscarded()                                    {}
func (NopEventSink) LargeBufferCreated(int64)                           {}
func (NopEventSink) NonPooledLargeBufferCreated(int64)                  {}
func (NopEventSink) LargeBufferDiscarded(int64, DiscardReason)          {}
func (NopEventSink) StreamCreated(uuid.UUID, string)                    {}
func (NopEventSink) StreamDisposed(uuid.UUID, string)                   {}
func (NopEventSink) StreamDoubleDispose(uuid.UUID, string)              {}
func (NopEventSink) StreamConvertedToArray(uuid.UUID, string, int64)    {}
func (NopEventSink) StreamOverCapacity(uuid.UUID, string, int64, int64) {}

var _ EventSink = NopEventSink{}
