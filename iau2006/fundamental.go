package iau2006

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/echoflaresat/earthframes/xprec"
)

const (
	turn          = 2 * math.Pi
	arcsecPerTurn = 1296000.0

	// arcseconds to radians, split in two so the product can be carried
	// in extended precision
	arcsecToRadHi = 4.84813681109e-6
	arcsecToRadLo = 5.359935899141e-18
)

// Arguments are the fundamental arguments of the IERS 2003 conventions.
// All values are radians.
type Arguments struct {
	L      unit.Angle // mean anomaly of the Moon
	LPrime unit.Angle // mean anomaly of the Sun
	F      unit.Angle // mean longitude of the Moon minus that of its node
	D      unit.Angle // mean elongation of the Moon from the Sun
	Omega  unit.Angle // mean longitude of the Moon's ascending node

	Me, Ve, Ea, Ma, Ju, Sa, Ur, Ne unit.Angle // planetary mean longitudes

	Pa unit.Angle // general accumulated precession in longitude
}

// FundamentalArguments evaluates every argument at t, in Julian centuries
// of TT since J2000.0.
func FundamentalArguments(t float64) Arguments {
	return Arguments{
		L:      MeanAnomalyOfMoon(t),
		LPrime: MeanAnomalyOfSun(t),
		F:      MeanArgumentOfLatitudeOfMoon(t),
		D:      MeanElongationOfMoonFromSun(t),
		Omega:  MeanLongitudeOfMoonsAscendingNode(t),
		Me:     MeanLongitudeOfMercury(t),
		Ve:     MeanLongitudeOfVenus(t),
		Ea:     MeanLongitudeOfEarth(t),
		Ma:     MeanLongitudeOfMars(t),
		Ju:     MeanLongitudeOfJupiter(t),
		Sa:     MeanLongitudeOfSaturn(t),
		Ur:     MeanLongitudeOfUranus(t),
		Ne:     MeanLongitudeOfNeptune(t),
		Pa:     GeneralPrecessionInLongitude(t),
	}
}

func MeanAnomalyOfMoon(t float64) unit.Angle {
	return lunarArgument(t, 485868.249036, 1717915923.2178, 31.8792, 0.051635, -0.00024470)
}

func MeanAnomalyOfSun(t float64) unit.Angle {
	return lunarArgument(t, 1287104.793048, 129596581.0481, -0.5532, 0.000136, -0.00001149)
}

func MeanArgumentOfLatitudeOfMoon(t float64) unit.Angle {
	return lunarArgument(t, 335779.526232, 1739527262.8478, -12.7512, -0.001037, 0.00000417)
}

func MeanElongationOfMoonFromSun(t float64) unit.Angle {
	return lunarArgument(t, 1072260.703692, 1602961601.2090, -6.3706, 0.006593, -0.00003169)
}

func MeanLongitudeOfMoonsAscendingNode(t float64) unit.Angle {
	return lunarArgument(t, 450160.398036, -6962890.5431, 7.4722, 0.007702, -0.00005939)
}

func MeanLongitudeOfMercury(t float64) unit.Angle {
	return planetaryArgument(t, 4.402608842, 2608.7903141574)
}

func MeanLongitudeOfVenus(t float64) unit.Angle {
	return planetaryArgument(t, 3.176146697, 1021.3285546211)
}

func MeanLongitudeOfEarth(t float64) unit.Angle {
	return planetaryArgument(t, 1.753470314, 628.3075849991)
}

func MeanLongitudeOfMars(t float64) unit.Angle {
	return planetaryArgument(t, 6.203480913, 334.0612426700)
}

func MeanLongitudeOfJupiter(t float64) unit.Angle {
	return planetaryArgument(t, 0.599546497, 52.9690962641)
}

func MeanLongitudeOfSaturn(t float64) unit.Angle {
	return planetaryArgument(t, 0.874016757, 21.3299104960)
}

func MeanLongitudeOfUranus(t float64) unit.Angle {
	return planetaryArgument(t, 5.481293872, 7.4781598567)
}

func MeanLongitudeOfNeptune(t float64) unit.Angle {
	return planetaryArgument(t, 5.311886287, 3.8133035638)
}

// GeneralPrecessionInLongitude is not reduced to one turn.
func GeneralPrecessionInLongitude(t float64) unit.Angle {
	return unit.Angle((0.024381750 + 0.00000538691*t) * t)
}

// lunarArgument evaluates a polynomial in arcseconds in extended precision,
// reduces it modulo a full turn with the sign of the polynomial, and
// converts it to radians.
func lunarArgument(t float64, coeffs ...float64) unit.Angle {
	return arcsecToRad(hornerReal(t, coeffs).Mod(arcsecPerTurn))
}

func planetaryArgument(t, c0, c1 float64) unit.Angle {
	return unit.Angle(math.Mod(c0+c1*t, turn))
}

func hornerReal(t float64, coeffs []float64) xprec.Real {
	r := xprec.FromFloat(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		r = r.MulFloat(t).AddFloat(coeffs[i])
	}
	return r
}

func horner(t float64, coeffs ...float64) float64 {
	r := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		r = r*t + coeffs[i]
	}
	return r
}

func arcsecToRad(a xprec.Real) unit.Angle {
	return unit.Angle(a.MulFloat(arcsecToRadHi).AddFloat(a.Float64() * arcsecToRadLo).Float64())
}

// arcsec converts a plain float64 arcsecond value.
func arcsec(a float64) unit.Angle {
	return unit.AngleFromSec(a)
}
