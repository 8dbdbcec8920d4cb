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
	"bytes"
	"math/rand"
	"testing"
)

func TestDigestWriteSplit(t *testing.T) {
	rnd := rand.New(rand.NewSource(0xd16e))
	key := randLanes(rnd)
	data := make([]byte, 555)
	rnd.Read(data)

	whole := New64(key)
	whole.Write(data)
	want := whole.Sum(nil)

	for trial := 0; trial < 50; trial++ {
		d := New64(key)
		rest := data
		for len(rest) > 0 {
			n := rnd.Intn(len(rest)) + 1
			wrote, err := d.Write(rest[:n])
			if wrote != n || err != nil {
				t.Fatalf("Write: (%d, %v)", wrote, err)
			}
			rest = rest[n:]
		}
		if got := d.Sum(nil); !bytes.Equal(got, want) {
			t.Fatalf("split write: got %x, want %x", got, want)
		}
	}
}

// TestDigestPadsAlignedInput: the adapter writes a padded final block
// unconditionally, so even packet-aligned streams diverge from the
// one-shot entry points. Only Hash64 produces the reference digest.
func TestDigestPadsAlignedInput(t *testing.T) {
	key := Lanes{3, 1, 4, 1}
	for _, n := range []int{0, 5, 32, 64, 100} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i + 1)
		}
		d := New64(key)
		d.Write(data)
		got := d.Sum(nil)
		ref := Hash64(data, key)
		var refb [8]byte
		for i := 0; i < 8; i++ {
			refb[i] = byte(ref >> (56 - 8*i))
		}
		if bytes.Equal(got, refb[:]) {
			t.Errorf("length %d: adapter digest equals reference digest", n)
		}
	}
}

func TestDigestSumNonDestructive(t *testing.T) {
	key := Lanes{8, 8, 8, 8}
	d := New64(key)
	d.Write([]byte("hello, "))
	first := d.Sum(nil)
	if again := d.Sum(nil); !bytes.Equal(first, again) {
		t.Fatalf("repeated Sum: %x then %x", first, again)
	}
	d.Write([]byte("world"))
	after := d.Sum(nil)
	if bytes.Equal(first, after) {
		t.Fatal("Sum after more writes did not change")
	}

	cont := New64(key)
	cont.Write([]byte("hello, world"))
	if want := cont.Sum(nil); !bytes.Equal(after, want) {
		t.Fatalf("continued digest: got %x, want %x", after, want)
	}
}

func TestDigestReset(t *testing.T) {
	key := Lanes{1, 2, 3, 4}
	d := New64(key)
	empty := d.Sum(nil)
	d.Write(make([]byte, 77))
	d.Reset()
	if got := d.Sum(nil); !bytes.Equal(got, empty) {
		t.Fatalf("Reset: got %x, want %x", got, empty)
	}
}

func TestDigestSumAppends(t *testing.T) {
	d := New64(Lanes{})
	d.Write([]byte("x"))
	prefix := []byte("prefix")
	out := d.Sum(prefix)
	if !bytes.HasPrefix(out, prefix) || len(out) != len(prefix)+d.Size() {
		t.Fatalf("Sum append broken: %q", out)
	}
}

func TestDigestSizes(t *testing.T) {
	d := New64(Lanes{})
	if d.Size() != 8 {
		t.Errorf("Size = %d", d.Size())
	}
	if d.BlockSize() != PacketSize {
		t.Errorf("BlockSize = %d", d.BlockSize())
	}
}
