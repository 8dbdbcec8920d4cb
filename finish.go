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

// Round counts for the permute-and-feed finalization. Wider outputs need
// more mixing before the extra lanes are read.
const (
	rounds64  = 4
	rounds128 = 6
	rounds256 = 10
)

func (e *Engine) finalize(rounds int) {
	for i := 0; i < rounds; i++ {
		e.WritePacket(permute(&e.v0))
	}
}

// Finish64 consumes the state and returns the 64-bit hash. tail holds the
// final 0..31 bytes of the input that did not fill a whole packet; it
// must be shorter than one packet. The Engine must not be used again
// after a Finish call.
func (e *Engine) Finish64(tail []byte) uint64 {
	e.mixTail(tail)
	e.finalize(rounds64)
	return e.v0[0] + e.v1[0] + e.mul0[0] + e.mul1[0]
}

// Finish128 consumes the state and returns the 128-bit hash as two 64-bit
// words, low word first. See Finish64 for the tail contract.
func (e *Engine) Finish128(tail []byte) [2]uint64 {
	e.mixTail(tail)
	e.finalize(rounds128)
	return [2]uint64{
		e.v0[0] + e.mul0[0] + e.v1[2] + e.mul1[2],
		e.v0[1] + e.mul0[1] + e.v1[3] + e.mul1[3],
	}
}

// Finish256 consumes the state and returns the 256-bit hash as four
// 64-bit words, low word first. See Finish64 for the tail contract.
func (e *Engine) Finish256(tail []byte) [4]uint64 {
	e.mixTail(tail)
	e.finalize(rounds256)
	m0, m1 := modularReduction(
		e.v1[1]+e.mul1[1], e.v1[0]+e.mul1[0],
		e.v0[1]+e.mul0[1], e.v0[0]+e.mul0[0])
	m2, m3 := modularReduction(
		e.v1[3]+e.mul1[3], e.v1[2]+e.mul1[2],
		e.v0[3]+e.mul0[3], e.v0[2]+e.mul0[2])
	return [4]uint64{m0, m1, m2, m3}
}

// modularReduction folds the 256-bit value a3:a2:a1:a0 into 128 bits
// without carry propagation: the top word is masked to its low 62 bits,
// then the two top words are doubled and quadrupled across the word
// boundary and XORed into the bottom two.
func modularReduction(a3, a2, a1, a0 uint64) (lo, hi uint64) {
	a3 &= 0x3fffffffffffffff
	hi = a1 ^ (a3<<1 | a2>>63) ^ (a3<<2 | a2>>62)
	lo = a0 ^ a2<<1 ^ a2<<2
	return lo, hi
}
