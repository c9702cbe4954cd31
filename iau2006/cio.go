package iau2006

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/echoflaresat/earthframes/linalg"
)

type cioTerm struct {
	n    [8]int
	s, c float64
}

// cioSeries is a polynomial with one trigonometric series per power of t
// up to t^4.
type cioSeries struct {
	poly  [6]float64
	terms [5][]cioTerm
}

// CIOLocator returns s, the position of the Celestial Intermediate Origin
// on the equator of the CIP, given t in Julian centuries of TT since
// J2000.0 and the CIP coordinates x, y.
func (m *Model) CIOLocator(t, x, y float64) unit.Angle {
	fa := [8]float64{
		MeanAnomalyOfMoon(t).Rad(),
		MeanAnomalyOfSun(t).Rad(),
		MeanArgumentOfLatitudeOfMoon(t).Rad(),
		MeanElongationOfMoonFromSun(t).Rad(),
		MeanLongitudeOfMoonsAscendingNode(t).Rad(),
		MeanLongitudeOfVenus(t).Rad(),
		MeanLongitudeOfEarth(t).Rad(),
		GeneralPrecessionInLongitude(t).Rad(),
	}

	w := m.cio.poly
	for k, terms := range m.cio.terms {
		for i := len(terms) - 1; i >= 0; i-- {
			var arg float64
			for j, n := range terms[i].n {
				arg += float64(n) * fa[j]
			}
			s, c := math.Sincos(arg)
			w[k] += terms[i].s*s + terms[i].c*c
		}
	}

	sxy2 := w[0] + (w[1]+(w[2]+(w[3]+(w[4]+w[5]*t)*t)*t)*t)*t
	return arcsec(sxy2) - unit.Angle(x*y/2)
}

// CelestialToIntermediate builds the GCRS to CIRS matrix from the CIP
// coordinates and the CIO locator.
func CelestialToIntermediate(x, y float64, s unit.Angle) (linalg.Matrix, error) {
	r2 := x*x + y*y
	var e float64
	if r2 > 0 {
		e = math.Atan2(y, x)
	}
	d := math.Atan(math.Sqrt(r2 / (1 - r2)))

	return linalg.Compose(linalg.Identity(3),
		linalg.Rotation{Angle: e, Axis: linalg.Z},
		linalg.Rotation{Angle: d, Axis: linalg.Y},
		linalg.Rotation{Angle: -(e + s.Rad()), Axis: linalg.Z},
	)
}

// CelestialToIntermediateMatrix evaluates the full GCRS to CIRS matrix at
// t: precession-nutation, CIP extraction, CIO locator.
func (m *Model) CelestialToIntermediateMatrix(t float64) (linalg.Matrix, error) {
	pn, err := m.PrecessionNutationMatrix(t)
	if err != nil {
		return linalg.Matrix{}, err
	}
	x, y := CIP(pn)
	return CelestialToIntermediate(x, y, m.CIOLocator(t, x, y))
}
