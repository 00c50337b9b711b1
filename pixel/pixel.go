// Package pixel converts between the two packed 32-bit colour layouts used
// by the colour tables and the coloured pixel buffer.
//
// Layout A (ARGB) keeps alpha in the most significant byte followed by red,
// green and blue:
//
//	| bit 31                         bit 0 |
//	  aaaaaaaa rrrrrrrr gggggggg bbbbbbbb
//
// Layout B (ABGR) swaps red and blue:
//
//	  aaaaaaaa bbbbbbbb gggggggg rrrrrrrr
//
// Stored least significant byte first, a layout B word occupies memory as
// R, G, B, A, the order expected by canvas style RGBA consumers.
package pixel

import "image/color"

// Opaque is the alpha value written by every drawing operation.
const Opaque = 0xFF

func PackARGB(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func UnpackARGB(c uint32) (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

func PackABGR(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

func UnpackABGR(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// ARGBToABGR swaps the red and blue bytes. Alpha and green keep their
// positions, so the conversion is its own inverse.
func ARGBToABGR(c uint32) uint32 {
	return c&0xFF00FF00 | (c>>16)&0xFF | (c&0xFF)<<16
}

func ABGRToARGB(c uint32) uint32 {
	return c&0xFF00FF00 | (c>>16)&0xFF | (c&0xFF)<<16
}

// FromColor packs c into layout B with alpha forced to Opaque.
func FromColor(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return PackABGR(uint8(r>>8), uint8(g>>8), uint8(b>>8), Opaque)
}

// ToRGBA unpacks a layout B word.
func ToRGBA(c uint32) color.RGBA {
	r, g, b, a := UnpackABGR(c)
	return color.RGBA{R: r, G: g, B: b, A: a}
}
