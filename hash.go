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
	"encoding/binary"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// writeBody mixes every complete packet of b into e and returns the
// remaining 0..31 tail bytes.
func writeBody(e *Engine, b []byte) []byte {
	for len(b) >= PacketSize {
		e.WritePacket(Lanes{
			binary.LittleEndian.Uint64(b[0:]),
			binary.LittleEndian.Uint64(b[8:]),
			binary.LittleEndian.Uint64(b[16:]),
			binary.LittleEndian.Uint64(b[24:]),
		})
		b = b[PacketSize:]
	}
	return b
}

// Hash64 returns the 64-bit HighwayHash of b under key. It does not
// allocate, for any input length including zero.
func Hash64(b []byte, key Lanes) uint64 {
	e := New(key)
	return e.Finish64(writeBody(&e, b))
}

// Hash128 returns the 128-bit HighwayHash of b under key as two 64-bit
// words, low word first.
func Hash128(b []byte, key Lanes) [2]uint64 {
	e := New(key)
	return e.Finish128(writeBody(&e, b))
}

// Hash256 returns the 256-bit HighwayHash of b under key as four 64-bit
// words, low word first.
func Hash256(b []byte, key Lanes) [4]uint64 {
	e := New(key)
	return e.Finish256(writeBody(&e, b))
}

// HashUint returns the 64-bit HighwayHash of the little-endian bytes of
// v at its native width, so HashUint(uint16(7), k) hashes two bytes and
// HashUint(uint64(7), k) hashes eight.
func HashUint[T constraints.Integer](v T, key Lanes) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	e := New(key)
	return e.Finish64(buf[:unsafe.Sizeof(v)])
}
