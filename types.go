// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringpool

import "math"

// noCopy is a sentinel used to prevent copying of synchronization primitives.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// maxStreamExtent is the largest value Length, Position, or a requested
// size may take: 2^31-1, matching the host stream contract's signed
// 32-bit addressable range.
const maxStreamExtent = math.MaxInt32

// DiscardReason explains why a pool dropped a buffer on return instead of
// retaining it for reuse.
type DiscardReason int

const (
	// ReasonOverCapacity means the pool's free-byte cap would have been
	// exceeded by retaining the buffer.
	ReasonOverCapacity DiscardReason = iota
	// ReasonTooLarge means the buffer's length is not one of the pool's
	// permitted bucket sizes (an oversize large buffer rented above
	// MaximumBufferSize).
	ReasonTooLarge
)

// String implements fmt.Stringer.
func (r DiscardReason) String() string {
	switch r {
	case ReasonOverCapacity:
		return "over-capacity"
	case ReasonTooLarge:
		return "too-large"
	default:
		return "unknown"
	}
}
