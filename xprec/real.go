// Package xprec provides an extended-precision real number for Julian
// date arithmetic.
//
// A float64 Julian date near 2.45e6 keeps about 40 microseconds of
// resolution. Real keeps the whole days in an int64 and the fraction in a
// float64, so sub-nanosecond resolution survives additions, subtractions
// and scaling by ordinary floats.
package xprec

import (
	"fmt"
	"math"
)

// Real is Int + Frac with 0 <= Frac < 1.
type Real struct {
	Int  int64
	Frac float64
}

// New returns i + f renormalized so that the fraction lies in [0,1).
func New(i int64, f float64) Real {
	return normalize(i, f)
}

// FromFloat splits x exactly into integer and fractional parts.
func FromFloat(x float64) Real {
	ip := math.Floor(x)
	return Real{Int: int64(ip), Frac: x - ip}
}

// FromInt returns n as a Real.
func FromInt(n int64) Real {
	return Real{Int: n}
}

func normalize(i int64, f float64) Real {
	if f >= 0 && f < 1 {
		return Real{Int: i, Frac: f}
	}
	fl := math.Floor(f)
	f -= fl
	// a tiny negative fraction rounds up to exactly 1
	if f >= 1 {
		f = 0
		fl++
	}
	return Real{Int: i + int64(fl), Frac: f}
}

// Float64 returns the nearest float64.
func (r Real) Float64() float64 {
	return float64(r.Int) + r.Frac
}

func (r Real) Add(o Real) Real {
	return normalize(r.Int+o.Int, r.Frac+o.Frac)
}

func (r Real) Sub(o Real) Real {
	return normalize(r.Int-o.Int, r.Frac-o.Frac)
}

func (r Real) Neg() Real {
	return normalize(-r.Int, -r.Frac)
}

// AddFloat returns r + x without rounding x's integer part into the fraction.
func (r Real) AddFloat(x float64) Real {
	ip := math.Floor(x)
	return normalize(r.Int+int64(ip), r.Frac+(x-ip))
}

func (r Real) SubFloat(x float64) Real {
	return r.AddFloat(-x)
}

// MulInt returns r * n. The integer product is exact.
func (r Real) MulInt(n int64) Real {
	return normalize(r.Int*n, r.Frac*float64(n))
}

// MulFloat returns r * k. The rounding error of Int*k is recovered with a
// fused multiply-add and carried in the fraction.
func (r Real) MulFloat(k float64) Real {
	hi := float64(r.Int) * k
	lo := math.FMA(float64(r.Int), k, -hi)
	return FromFloat(hi).AddFloat(lo + r.Frac*k)
}

// Mul returns r * o, expanded into r*o.Int + r*o.Frac.
func (r Real) Mul(o Real) Real {
	return r.MulInt(o.Int).Add(r.MulFloat(o.Frac))
}

// DivFloat returns r / k. The remainder of Int/k is computed exactly and
// divided together with the fraction.
func (r Real) DivFloat(k float64) Real {
	qi := float64(r.Int) / k
	rem := math.FMA(-qi, k, float64(r.Int))
	return FromFloat(qi).AddFloat((rem + r.Frac) / k)
}

// Div returns r / o. The divisor is rounded to float64 first, so the result
// is not a full double-double quotient.
func (r Real) Div(o Real) Real {
	return r.DivFloat(o.Float64())
}

// Mod returns the remainder of r / m truncated toward zero, so the result
// has the sign of r, like math.Mod. Integral moduli are reduced exactly.
func (r Real) Mod(m float64) Real {
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return Real{Frac: math.NaN()}
	}
	m = math.Abs(m)
	if m == math.Trunc(m) && m < 1<<62 {
		mi := int64(m)
		res := normalize(r.Int%mi, r.Frac)
		if r.IsNegative() {
			if res.CmpFloat(0) > 0 {
				res = res.SubFloat(m)
			}
		} else if res.CmpFloat(m) >= 0 {
			res = res.SubFloat(m)
		}
		return res
	}
	q := math.Trunc(r.Float64() / m)
	return r.Sub(FromFloat(q).MulFloat(m))
}

// Floor returns the integer part as a Real.
func (r Real) Floor() Real {
	return Real{Int: r.Int}
}

func (r Real) IsNegative() bool {
	return r.Int < 0
}

// Cmp compares integer parts first and fractions second. It returns -1, 0
// or +1.
func (r Real) Cmp(o Real) int {
	switch {
	case r.Int < o.Int:
		return -1
	case r.Int > o.Int:
		return 1
	case r.Frac < o.Frac:
		return -1
	case r.Frac > o.Frac:
		return 1
	}
	return 0
}

func (r Real) CmpFloat(x float64) int {
	return r.Cmp(FromFloat(x))
}

func (r Real) CmpInt(n int64) int {
	return r.Cmp(FromInt(n))
}

func (r Real) Less(o Real) bool {
	return r.Cmp(o) < 0
}

func (r Real) Equal(o Real) bool {
	return r.Cmp(o) == 0
}

func (r Real) String() string {
	return fmt.Sprintf("%d+%.17g", r.Int, r.Frac)
}
