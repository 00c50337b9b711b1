// based on:
// https://bottosson.github.io/posts/oklab/

package okcolor

import "math"

type Lab struct {
	L float64 // perceived lightness
	A float64 // how green/red the color is
	B float64 // how blue/yellow the color is
}

// FromSRGB converts gamma encoded sRGB components in [0, 1].
func FromSRGB(r, g, b float64) Lab {
	return fromLinearRGB(toLinear(r), toLinear(g), toLinear(b))
}

func fromLinearRGB(r, g, b float64) Lab {
	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	return Lab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

// LinearRGB converts back to linear light. Components outside the sRGB
// gamut are clamped.
func (lc Lab) LinearRGB() LinearRGB {
	l := lc.L + 0.3963377774*lc.A + 0.2158037573*lc.B
	l = l * l * l
	m := lc.L - 0.1055613458*lc.A - 0.0638541728*lc.B
	m = m * m * m
	s := lc.L - 0.0894841775*lc.A - 1.2914855480*lc.B
	s = s * s * s

	return LinearRGB{
		R: clamp(+4.0767416621*l-3.3077115913*m+0.2309699292*s, 0, 1),
		G: clamp(-1.2684380046*l+2.6097574011*m-0.3413193965*s, 0, 1),
		B: clamp(-0.0041960863*l-0.7034186147*m+1.7076147010*s, 0, 1),
	}
}

// SRGB returns gamma encoded components in [0, 1].
func (lc Lab) SRGB() (r, g, b float64) {
	c := lc.LinearRGB()
	return fromLinear(c.R), fromLinear(c.G), fromLinear(c.B)
}

// Lerp interpolates linearly between a and b in OKLab space.
func Lerp(a, b Lab, t float64) Lab {
	return Lab{
		L: a.L + t*(b.L-a.L),
		A: a.A + t*(b.A-a.A),
		B: a.B + t*(b.B-a.B),
	}
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	} else if x > max {
		return max
	} else {
		return x
	}
}
