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
	"hash"
)

// digest64 adapts the packet engine to the hash.Hash interface with a
// 32-byte block buffer, in the manner of the crypto digests.
type digest64 struct {
	state Engine
	key   Lanes
	buf   [PacketSize]byte
	off   int
}

// New64 returns a hash.Hash computing a 64-bit keyed digest.
//
// To honor hash.Hash sequencing, Sum always mixes a zero-padded final
// block as an ordinary packet, even when the written length is an exact
// multiple of the block size. The tail scrambling of the Finish entry
// points never runs, so for the same byte stream this digest differs
// from Hash64; only Hash64 and Engine.Finish64 produce the reference
// HighwayHash value.
func New64(key Lanes) hash.Hash {
	d := &digest64{key: key}
	d.Reset()
	return d
}

func (d *digest64) Reset() {
	d.state = New(d.key)
	d.off = 0
}

func (d *digest64) Size() int { return 8 }

func (d *digest64) BlockSize() int { return PacketSize }

func (d *digest64) Write(p []byte) (int, error) {
	n := len(p)
	if d.off > 0 {
		c := copy(d.buf[d.off:], p)
		d.off += c
		p = p[c:]
		if d.off == PacketSize {
			d.state.WriteBytes(&d.buf)
			d.off = 0
		}
	}
	for len(p) >= PacketSize {
		d.state.WriteBytes((*[PacketSize]byte)(p))
		p = p[PacketSize:]
	}
	d.off += copy(d.buf[d.off:], p)
	return n, nil
}

func (d *digest64) Sum(b []byte) []byte {
	// Finalize a copy so the caller can keep writing.
	s := d.state
	var block [PacketSize]byte
	copy(block[:], d.buf[:d.off])
	s.WriteBytes(&block)
	h := s.Finish64(nil)
	return append(b,
		byte(h>>56), byte(h>>48), byte(h>>40), byte(h>>32),
		byte(h>>24), byte(h>>16), byte(h>>8), byte(h))
}
