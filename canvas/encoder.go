package canvas

import (
	"fmt"
	"strings"

	"falsecolor/colormap"
)

// Strategy selects how samples and colours are written into a buffer. All
// strategies produce byte-identical output; Indexed is the reference.
type Strategy uint8

const (
	// Indexed writes each channel through bounds-checked slice indexing.
	Indexed Strategy = iota
	// BytePointer writes each channel through raw pointer arithmetic.
	BytePointer
	// WordPointer writes one packed 32-bit word per pixel.
	WordPointer
)

var strategyNames = [...]string{
	Indexed:     "indexed",
	BytePointer: "byte",
	WordPointer: "word",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", s)
}

func ParseStrategy(s string) (Strategy, error) {
	for i, name := range strategyNames {
		if strings.EqualFold(s, name) {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown write strategy %q", s)
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Encoder converts samples to RGBA bytes and writes packed colours. pix
// holds 4 bytes per pixel in R, G, B, A order and colours are packed in
// layout B (see package pixel). Offsets are byte offsets of a pixel.
type Encoder interface {
	Encode8(pix []byte, samples []uint8, t *colormap.Table)
	// Encode16 maps each sample by its most significant byte.
	Encode16(pix []byte, samples []uint16, t *colormap.Table)
	Put(pix []byte, off int, c uint32)
	Fill(pix []byte, c uint32)
}

// EncoderFor returns the encoder implementing s. Unknown strategies fall
// back to Indexed.
func EncoderFor(s Strategy) Encoder {
	switch s {
	case BytePointer:
		return bytePointer{}
	case WordPointer:
		return wordPointer{}
	}
	return indexed{}
}

type indexed struct{}

func (indexed) Encode8(pix []byte, samples []uint8, t *colormap.Table) {
	r, g, b := t.Channels()
	for i, v := range samples {
		o := i * 4
		pix[o] = r[v]
		pix[o+1] = g[v]
		pix[o+2] = b[v]
		pix[o+3] = 0xFF
	}
}

func (indexed) Encode16(pix []byte, samples []uint16, t *colormap.Table) {
	r, g, b := t.Channels()
	for i, v := range samples {
		o := i * 4
		l := uint8(v >> 8)
		pix[o] = r[l]
		pix[o+1] = g[l]
		pix[o+2] = b[l]
		pix[o+3] = 0xFF
	}
}

func (indexed) Put(pix []byte, off int, c uint32) {
	pix[off] = uint8(c)
	pix[off+1] = uint8(c >> 8)
	pix[off+2] = uint8(c >> 16)
	pix[off+3] = uint8(c >> 24)
}

func (e indexed) Fill(pix []byte, c uint32) {
	if len(pix) < 4 {
		return
	}
	e.Put(pix, 0, c)
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}
