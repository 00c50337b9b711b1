// Package unpack decodes packed multi-byte sensor sample streams.
package unpack

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Unpack12 decodes pairs of 12-bit samples packed into 3 byte groups.
// Bytes 0 and 1 carry the low 8 bits of samples A and B, byte 2 carries
// their upper nibbles: A in the high nibble, B in the low nibble.
//
//	{0x21, 0x54, 0x36} => {0x321, 0x654}
//
// A trailing group shorter than 3 bytes is dropped.
func Unpack12(src []byte) []uint16 {
	n := len(src) / 3
	dst := make([]uint16, 0, 2*n)
	for i := 0; i < n*3; i += 3 {
		lo0, lo1, hi := src[i], src[i+1], src[i+2]
		dst = append(dst,
			uint16(hi>>4)<<8|uint16(lo0),
			uint16(hi&0x0F)<<8|uint16(lo1))
	}
	return dst
}

// Pack12 is the inverse of Unpack12. Only the low 12 bits of each sample
// are kept and an odd trailing sample is paired with zero.
func Pack12(samples []uint16) []byte {
	dst := make([]byte, 0, (len(samples)+1)/2*3)
	for i := 0; i < len(samples); i += 2 {
		a := samples[i] & 0x0FFF
		var b uint16
		if i+1 < len(samples) {
			b = samples[i+1] & 0x0FFF
		}
		dst = append(dst, byte(a), byte(b), byte(a>>8)<<4|byte(b>>8))
	}
	return dst
}

// Unpack16 decodes 16-bit samples. binary.LittleEndian reads the low byte
// first, binary.BigEndian the high byte. A trailing odd byte is dropped.
func Unpack16(src []byte, order binary.ByteOrder) []uint16 {
	n := len(src) / 2
	dst := make([]uint16, n)
	for i := range dst {
		dst[i] = order.Uint16(src[2*i:])
	}
	return dst
}

func Pack16(samples []uint16, order binary.ByteOrder) []byte {
	dst := make([]byte, 2*len(samples))
	for i, s := range samples {
		order.PutUint16(dst[2*i:], s)
	}
	return dst
}

// Format names a raw frame encoding.
type Format uint8

const (
	Raw8 Format = iota
	Raw12
	Raw16LE
	Raw16BE
)

var ErrUnknownFormat = errors.New("unknown raw format")

var formatNames = [...]string{
	Raw8:    "raw8",
	Raw12:   "raw12",
	Raw16LE: "raw16le",
	Raw16BE: "raw16be",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Wide reports whether the format decodes to 16-bit samples.
func (f Format) Wide() bool {
	return f != Raw8
}

// Decode unpacks src into 16-bit samples. Raw8 bytes are widened without
// scaling.
func (f Format) Decode(src []byte) ([]uint16, error) {
	switch f {
	case Raw8:
		dst := make([]uint16, len(src))
		for i, b := range src {
			dst[i] = uint16(b)
		}
		return dst, nil
	case Raw12:
		return Unpack12(src), nil
	case Raw16LE:
		return Unpack16(src, binary.LittleEndian), nil
	case Raw16BE:
		return Unpack16(src, binary.BigEndian), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Bits is the number of significant bits per decoded sample.
func (f Format) Bits() int {
	switch f {
	case Raw8:
		return 8
	case Raw12:
		return 12
	}
	return 16
}
