// based on:
// https://bottosson.github.io/posts/colorwrong/#what-can-we-do%3F

package okcolor

import "math"

// LinearRGB holds linear light components in [0, 1].
type LinearRGB struct {
	R float64
	G float64
	B float64
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	} else {
		return x / 12.92
	}
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	} else {
		return x * 12.92
	}
}
