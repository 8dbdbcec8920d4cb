// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package highway

import (
	"math/bits"
)

// mixTail folds the final 0..31 input bytes into the state. The input
// length is scrambled into v0 and v1 first, then the tail is padded into
// a synthetic packet and mixed as an ordinary round; reordering those two
// steps breaks reference compatibility. A zero-length tail is a no-op.
//
// The tail must be shorter than one packet.
func (e *Engine) mixTail(tail []byte) {
	n := len(tail)
	if n >= PacketSize {
		panic("highway: tail must be shorter than one packet")
	}
	if n == 0 {
		return
	}
	size := uint64(n)
	for i := range e.v0 {
		e.v0[i] += size<<32 | size
	}
	rotateHalves(&e.v1, n)
	var q [PacketSize]byte
	remainderPacket(&q, tail)
	e.WriteBytes(&q)
}

// rotateHalves rotates both 32-bit halves of every lane of v left by k,
// independently. k is in 1..31.
func rotateHalves(v *Lanes, k int) {
	for i, x := range v {
		lo := bits.RotateLeft32(uint32(x), k)
		hi := bits.RotateLeft32(uint32(x>>32), k)
		v[i] = uint64(hi)<<32 | uint64(lo)
	}
}

// remainderPacket fills the zeroed packet q from the 1..31 tail bytes r.
// The 4-byte-aligned prefix is copied verbatim. The placement of the
// ragged 1..3 trailing bytes depends on bit 4 of the length: lengths with
// a 16s bit land their last four bytes at the end of the packet, shorter
// ragged tails scatter three sentinel bytes into the third 64-bit word.
func remainderPacket(q *[PacketSize]byte, r []byte) {
	n := len(r)
	mod4 := n & 3
	aligned := n &^ 3
	copy(q[:aligned], r[:aligned])
	if n&16 != 0 {
		// n >= 16 here, so the last four bytes always exist.
		copy(q[PacketSize-4:], r[n-4:n])
	} else if mod4 != 0 {
		rag := r[aligned:]
		q[16] = rag[0]
		q[17] = rag[mod4>>1]
		q[18] = rag[mod4-1]
	}
}
