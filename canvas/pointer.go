package canvas

import (
	"encoding/binary"
	"math/bits"
	"unsafe"

	"falsecolor/colormap"
)

// The pointer strategies validate the destination length once and then
// write through unsafe.Add without per-element bounds checks.

var littleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// native converts a layout B word so that storing it in host byte order
// puts R, G, B, A in memory.
func native(c uint32) uint32 {
	if littleEndian {
		return c
	}
	return bits.ReverseBytes32(c)
}

func checkLen(pix []byte, n int) {
	if len(pix) < 4*n {
		panic("canvas: pixel buffer too small")
	}
}

type bytePointer struct{}

func (bytePointer) Encode8(pix []byte, samples []uint8, t *colormap.Table) {
	checkLen(pix, len(samples))
	if len(samples) == 0 {
		return
	}
	r, g, b := t.Channels()
	p := unsafe.Pointer(unsafe.SliceData(pix))
	s := unsafe.Pointer(unsafe.SliceData(samples))
	for i := range len(samples) {
		v := *(*uint8)(unsafe.Add(s, i))
		*(*byte)(p) = r[v]
		*(*byte)(unsafe.Add(p, 1)) = g[v]
		*(*byte)(unsafe.Add(p, 2)) = b[v]
		*(*byte)(unsafe.Add(p, 3)) = 0xFF
		p = unsafe.Add(p, 4)
	}
}

func (bytePointer) Encode16(pix []byte, samples []uint16, t *colormap.Table) {
	checkLen(pix, len(samples))
	if len(samples) == 0 {
		return
	}
	r, g, b := t.Channels()
	p := unsafe.Pointer(unsafe.SliceData(pix))
	s := unsafe.Pointer(unsafe.SliceData(samples))
	for i := range len(samples) {
		v := uint8(*(*uint16)(unsafe.Add(s, 2*i)) >> 8)
		*(*byte)(p) = r[v]
		*(*byte)(unsafe.Add(p, 1)) = g[v]
		*(*byte)(unsafe.Add(p, 2)) = b[v]
		*(*byte)(unsafe.Add(p, 3)) = 0xFF
		p = unsafe.Add(p, 4)
	}
}

func (bytePointer) Put(pix []byte, off int, c uint32) {
	if off < 0 || off+4 > len(pix) {
		panic("canvas: pixel offset out of range")
	}
	p := unsafe.Add(unsafe.Pointer(unsafe.SliceData(pix)), off)
	*(*byte)(p) = uint8(c)
	*(*byte)(unsafe.Add(p, 1)) = uint8(c >> 8)
	*(*byte)(unsafe.Add(p, 2)) = uint8(c >> 16)
	*(*byte)(unsafe.Add(p, 3)) = uint8(c >> 24)
}

func (bytePointer) Fill(pix []byte, c uint32) {
	n := len(pix) / 4
	if n == 0 {
		return
	}
	r, g, b, a := uint8(c), uint8(c>>8), uint8(c>>16), uint8(c>>24)
	p := unsafe.Pointer(unsafe.SliceData(pix))
	for range n {
		*(*byte)(p) = r
		*(*byte)(unsafe.Add(p, 1)) = g
		*(*byte)(unsafe.Add(p, 2)) = b
		*(*byte)(unsafe.Add(p, 3)) = a
		p = unsafe.Add(p, 4)
	}
}

type wordPointer struct{}

// lut returns t's layout B table converted to host order.
func (wordPointer) lut(t *colormap.Table) *[colormap.Size]uint32 {
	abgr := t.ABGR()
	if littleEndian {
		return abgr
	}
	var host [colormap.Size]uint32
	for i, c := range abgr {
		host[i] = native(c)
	}
	return &host
}

func (e wordPointer) Encode8(pix []byte, samples []uint8, t *colormap.Table) {
	checkLen(pix, len(samples))
	if len(samples) == 0 {
		return
	}
	lut := e.lut(t)
	p := unsafe.Pointer(unsafe.SliceData(pix))
	s := unsafe.Pointer(unsafe.SliceData(samples))
	for i := range len(samples) {
		*(*uint32)(unsafe.Add(p, 4*i)) = lut[*(*uint8)(unsafe.Add(s, i))]
	}
}

func (e wordPointer) Encode16(pix []byte, samples []uint16, t *colormap.Table) {
	checkLen(pix, len(samples))
	if len(samples) == 0 {
		return
	}
	lut := e.lut(t)
	p := unsafe.Pointer(unsafe.SliceData(pix))
	s := unsafe.Pointer(unsafe.SliceData(samples))
	for i := range len(samples) {
		*(*uint32)(unsafe.Add(p, 4*i)) = lut[uint8(*(*uint16)(unsafe.Add(s, 2*i))>>8)]
	}
}

func (wordPointer) Put(pix []byte, off int, c uint32) {
	if off < 0 || off+4 > len(pix) {
		panic("canvas: pixel offset out of range")
	}
	*(*uint32)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(pix)), off)) = native(c)
}

func (wordPointer) Fill(pix []byte, c uint32) {
	n := len(pix) / 4
	if n == 0 {
		return
	}
	c = native(c)
	p := unsafe.Pointer(unsafe.SliceData(pix))
	for i := range n {
		*(*uint32)(unsafe.Add(p, 4*i)) = c
	}
}
