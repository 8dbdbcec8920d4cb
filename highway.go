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

// Package highway implements HighwayHash, a keyed, high-throughput,
// non-cryptographic hash over 32-byte packets with 64-, 128-, and 256-bit
// outputs. The output is bit-for-bit compatible with the reference
// implementation for every input and key.
//
// The package is a Level-2 hash per the
// http://nohatcoder.dk/2019-05-19-1.html#level3 taxonomy: the 256-bit key
// is part of the input, so distinct keys yield unrelated hash families,
// but no resistance against adaptive adversaries should be assumed.
// Callers that need a stable identity for on-disk or cross-machine data
// should fix a key; callers hardening in-memory tables against flooding
// should draw the key from a random source at startup.
package highway

import (
	"encoding/binary"
)

const (
	// NumLanes is the number of 64-bit lanes in each state register.
	NumLanes = 4
	// PacketSize is the number of input bytes consumed by one update round.
	PacketSize = 8 * NumLanes
)

// Lanes is a 256-bit vector viewed as four 64-bit lanes. It serves as the
// key, the parsed packet, and the widest result type.
type Lanes [NumLanes]uint64

var (
	init0 = Lanes{0xdbe6d5d5fe4cce2f, 0xa4093822299f31d0, 0x13198a2e03707344, 0x243f6a8885a308d3}
	init1 = Lanes{0x3bd39e10cb0ef593, 0xc0acf169b5f18a8c, 0xbe5466cf34e90c6c, 0x452821e638d01377}
)

// Engine is the hashing state: two accumulator registers and two
// multiplier registers of four 64-bit lanes each. An Engine is a plain
// value; copying it forks the hash state. The zero Engine is not keyed,
// use New.
type Engine struct {
	v0, v1     Lanes
	mul0, mul1 Lanes
}

// New returns an Engine keyed with key.
func New(key Lanes) Engine {
	var e Engine
	for i, k := range key {
		e.v0[i] = init0[i] ^ k
		e.v1[i] = init1[i] ^ rot32(k)
		e.mul0[i] = init0[i]
		e.mul1[i] = init1[i]
	}
	return e
}

// rot32 swaps the 32-bit halves of x.
func rot32(x uint64) uint64 {
	return x>>32 | x<<32
}

// WritePacket mixes one 32-byte packet, already parsed into four
// little-endian 64-bit words, into the state. All lane arithmetic wraps
// modulo 2^64; the multiplies take the low 32 bits of one operand and
// the high 32 bits of the other, widened to a full 64-bit product.
func (e *Engine) WritePacket(p Lanes) {
	for i := 0; i < NumLanes; i++ {
		e.v1[i] += e.mul0[i] + p[i]
		e.mul0[i] ^= (e.v1[i] & 0xffffffff) * (e.v0[i] >> 32)
		e.v0[i] += e.mul1[i]
		e.mul1[i] ^= (e.v0[i] & 0xffffffff) * (e.v1[i] >> 32)
	}
	zm := zipperMerge(&e.v1)
	for i := 0; i < NumLanes; i++ {
		e.v0[i] += zm[i]
	}
	zm = zipperMerge(&e.v0)
	for i := 0; i < NumLanes; i++ {
		e.v1[i] += zm[i]
	}
}

// WriteBytes parses a 32-byte packet as four little-endian 64-bit words
// and mixes it into the state.
func (e *Engine) WriteBytes(p *[PacketSize]byte) {
	e.WritePacket(Lanes{
		binary.LittleEndian.Uint64(p[0:]),
		binary.LittleEndian.Uint64(p[8:]),
		binary.LittleEndian.Uint64(p[16:]),
		binary.LittleEndian.Uint64(p[24:]),
	})
}

// zipperMergeIndex is the byte source table applied independently to each
// 16-byte half of a register: output byte i of a half is input byte
// zipperMergeIndex[i] of the same half. The lane/byte view is strictly
// little-endian; no cross-half motion occurs.
var zipperMergeIndex = [PacketSize / 2]byte{
	3, 12, 2, 5, 14, 1, 15, 0, 11, 4, 10, 13, 9, 6, 8, 7,
}

func zipperMerge(x *Lanes) Lanes {
	var src, dst [PacketSize]byte
	binary.LittleEndian.PutUint64(src[0:], x[0])
	binary.LittleEndian.PutUint64(src[8:], x[1])
	binary.LittleEndian.PutUint64(src[16:], x[2])
	binary.LittleEndian.PutUint64(src[24:], x[3])
	for half := 0; half < PacketSize; half += PacketSize / 2 {
		for i, j := range zipperMergeIndex {
			dst[half+i] = src[half+int(j)]
		}
	}
	return Lanes{
		binary.LittleEndian.Uint64(dst[0:]),
		binary.LittleEndian.Uint64(dst[8:]),
		binary.LittleEndian.Uint64(dst[16:]),
		binary.LittleEndian.Uint64(dst[24:]),
	}
}

// permute applies the 32-bit-lane permutation [5 4 7 6 1 0 3 2]: each
// 64-bit lane has its halves swapped, and the two 128-bit halves of the
// register trade places (lane 0 with lane 2, lane 1 with lane 3).
func permute(x *Lanes) Lanes {
	return Lanes{
		rot32(x[2]),
		rot32(x[3]),
		rot32(x[0]),
		rot32(x[1]),
	}
}
