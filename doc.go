// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringpool provides a pooled, seekable byte-stream allocator: a
// pair of free-list pools (fixed-size blocks and power-of-multiple large
// contiguous buffers) and a Stream type that draws its backing storage
// from them and returns it on disposal.
//
// # Pools
//
// SmallPool hands out fixed BlockSize byte slices from a LIFO free list,
// falling back to a fresh allocation on miss. LargePool hands out
// contiguous buffers sized to one of a set of permitted bucket sizes,
// computed either linearly (multiples of LargeBufferMultiple) or
// exponentially (powers of two times LargeBufferMultiple). The small pool
// can cap how many free bytes it retains (Manager.SetSmallPoolMaxFree);
// blocks that would exceed the cap are dropped instead of pooled. The
// large pool has no configurable cap: it retains every permitted-size
// buffer returned to it and drops only oversize ones.
//
// # Manager
//
//	mgr, err := ringpool.NewManager(16384, 1<<20, 8<<20, false)
//	s := mgr.GetStream()
//	defer s.Dispose()
//	s.Write(data, 0, len(data))
//	buf, _ := s.GetBuffer()
//
// A Manager owns both pools, validates the sizing rules at construction,
// and is the only supported way to obtain a Stream or raw pooled buffer.
//
// # Stream
//
// Stream is a seekable byte sink/source. It starts out backed by a list of
// blocks and transparently migrates to a single large buffer the first
// time a contiguous view is requested via GetBuffer while it holds more
// than one block, or immediately if the caller asked for a contiguous
// stream up front. GetBuffer on a stream with at most one block returns
// that block without migrating. The migration is one-way:
// a Stream never moves back from large-buffer to block representation.
//
// # Concurrency
//
// Manager and its pools are safe for concurrent use. A single Stream is
// not safe for concurrent mutation, except Dispose (idempotent and safe to
// call from multiple goroutines) and the SafeRead/SafeReadByte family,
// which read an externally supplied position instead of the Stream's own
// and may be called concurrently provided nothing mutates the Stream at
// the same time.
//
// # Diagnostics
//
// Lifecycle events (block/large-buffer creation and discard, stream
// creation, disposal, double-dispose, buffer materialization, over-capacity
// rejection) are reported through the EventSink interface. Call-stack
// capture on allocation and disposal is an opt-in diagnostic aid enabled
// per Manager via SetGenerateCallStacks.
package ringpool
