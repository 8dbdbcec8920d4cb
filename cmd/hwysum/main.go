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

// hwysum prints keyed HighwayHash digests of files, in the spirit of
// sha256sum: one line of lowercase hex plus the file name per input.
// Digest words are serialized little-endian, low word first, so output
// is comparable across tools and architectures.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/SnellerInc/highway"
	"github.com/klauspost/compress/zstd"
)

var (
	dashk string
	dashw int
	dashz bool
)

func init() {
	flag.StringVar(&dashk, "k", "", "256-bit key as 64 hex digits (default: zero key)")
	flag.IntVar(&dashw, "w", 64, "digest width in bits (64, 128, or 256)")
	flag.BoolVar(&dashz, "z", false, "decompress zstd input before hashing")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

var zstdDecoder *zstd.Decoder

func decoder() *zstd.Decoder {
	if zstdDecoder == nil {
		z, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
		if err != nil {
			exitf("hwysum: zstd: %s\n", err)
		}
		zstdDecoder = z
	}
	return zstdDecoder
}

func parseKey(s string) (highway.Lanes, error) {
	var key highway.Lanes
	if s == "" {
		return key, nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("bad key %q: %w", s, err)
	}
	if len(raw) != 32 {
		return key, fmt.Errorf("bad key %q: want 64 hex digits, have %d", s, 2*len(raw))
	}
	for i := range key {
		key[i] = binary.LittleEndian.Uint64(raw[8*i:])
	}
	return key, nil
}

// sum streams src through the packet engine: full 32-byte blocks are
// body packets, the final partial block (possibly empty) is the tail.
func sum(src io.Reader, key highway.Lanes, width int) ([]uint64, error) {
	e := highway.New(key)
	br := bufio.NewReaderSize(src, 1<<16)
	var block [highway.PacketSize]byte
	for {
		n, err := io.ReadFull(br, block[:])
		switch err {
		case nil:
			e.WriteBytes(&block)
		case io.EOF:
			return finish(&e, nil, width), nil
		case io.ErrUnexpectedEOF:
			return finish(&e, block[:n], width), nil
		default:
			return nil, err
		}
	}
}

func finish(e *highway.Engine, tail []byte, width int) []uint64 {
	switch width {
	case 64:
		return []uint64{e.Finish64(tail)}
	case 128:
		h := e.Finish128(tail)
		return h[:]
	default:
		h := e.Finish256(tail)
		return h[:]
	}
}

func formatDigest(words []uint64) string {
	raw := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(raw[8*i:], w)
	}
	return hex.EncodeToString(raw)
}

func sumFile(name string, key highway.Lanes, width int) ([]uint64, error) {
	var src io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}
	if dashz {
		d := decoder()
		if err := d.Reset(src); err != nil {
			return nil, err
		}
		src = d
	}
	return sum(src, key, width)
}

func main() {
	flag.Parse()
	if dashw != 64 && dashw != 128 && dashw != 256 {
		exitf("hwysum: bad width %d: want 64, 128, or 256\n", dashw)
	}
	key, err := parseKey(dashk)
	if err != nil {
		exitf("hwysum: %s\n", err)
	}
	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		words, err := sumFile(name, key, dashw)
		if err != nil {
			exitf("hwysum: %s: %s\n", name, err)
		}
		fmt.Printf("%s  %s\n", formatDigest(words), name)
	}
}
