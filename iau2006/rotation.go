package iau2006

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"

	"github.com/echoflaresat/earthframes/linalg"
	"github.com/echoflaresat/earthframes/timescale"
)

// EarthRotationAngle returns the IAU 2000 Earth Rotation Angle for a UT1
// instant, in [0, 2π).
func EarthRotationAngle(ut1 timescale.Instant) unit.Angle {
	jd := ut1.JD()
	t := ut1.DaysSinceJ2000().Float64()
	f := jd.Frac

	era := math.Mod(turn*(f+0.7790572732640+0.00273781191135448*t), turn)
	if era < 0 {
		era += turn
	}
	return unit.Angle(era)
}

// TIOLocator returns s', the position of the Terrestrial Intermediate
// Origin, at t in Julian centuries of TT since J2000.0.
func TIOLocator(t float64) unit.Angle {
	return arcsec(-47e-6 * t)
}

// PolarMotionMatrix builds the ITRS to TIRS polar-motion matrix W from the
// pole coordinates and the TIO locator.
func PolarMotionMatrix(xp, yp, sp unit.Angle) (linalg.Matrix, error) {
	return linalg.Compose(linalg.Identity(3),
		linalg.Rotation{Angle: sp.Rad(), Axis: linalg.Z},
		linalg.Rotation{Angle: -xp.Rad(), Axis: linalg.Y},
		linalg.Rotation{Angle: -yp.Rad(), Axis: linalg.X},
	)
}

// CelestialToTerrestrial returns the GCRS to ITRS matrix
// W · R3(ERA) · C2I for the given TT and UT1 instants and pole coordinates.
// The result maps a celestial column vector to the terrestrial frame.
func (m *Model) CelestialToTerrestrial(tt, ut1 timescale.Instant, xp, yp unit.Angle) (linalg.Matrix, error) {
	t := tt.CenturiesSinceJ2000()

	c2i, err := m.CelestialToIntermediateMatrix(t)
	if err != nil {
		return linalg.Matrix{}, fmt.Errorf("celestial to intermediate: %w", err)
	}

	w, err := PolarMotionMatrix(xp, yp, TIOLocator(t))
	if err != nil {
		return linalg.Matrix{}, fmt.Errorf("polar motion: %w", err)
	}

	tirs, err := c2i.Rotate(EarthRotationAngle(ut1).Rad(), linalg.Z)
	if err != nil {
		return linalg.Matrix{}, err
	}
	return w.Mul(tirs)
}
