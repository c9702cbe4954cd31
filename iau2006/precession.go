package iau2006

import (
	"github.com/soniakeys/unit"

	"github.com/echoflaresat/earthframes/linalg"
)

// FWAngles are the Fukushima-Williams precession angles.
type FWAngles struct {
	GammaBar unit.Angle
	PhiBar   unit.Angle
	PsiBar   unit.Angle
	EpsA     unit.Angle // mean obliquity
}

// FukushimaWilliams evaluates the IAU 2006 precession angles at t, in Julian
// centuries of TT since J2000.0.
func FukushimaWilliams(t float64) FWAngles {
	return FWAngles{
		GammaBar: arcsec(horner(t, -0.052928, 10.556378, 0.4932044, -0.00031238, -0.000002788, 0.0000000260)),
		PhiBar:   arcsec(horner(t, 84381.412819, -46.811016, 0.0511268, 0.00053289, -0.000000440, -0.0000000176)),
		PsiBar:   arcsec(horner(t, -0.041775, 5038.481484, 1.5584175, -0.00018522, -0.000026452, -0.0000000148)),
		EpsA:     arcsec(horner(t, 84381.406, -46.836769, -0.0001831, 0.00200340, -0.000000576, -0.0000000434)),
	}
}

// FukushimaWilliamsMatrix forms the matrix from the four angles. With psi
// and eps including nutation the result is the bias-precession-nutation
// matrix; the order and signs of the rotations are fixed by the model.
func FukushimaWilliamsMatrix(gammaBar, phiBar, psi, eps unit.Angle) (linalg.Matrix, error) {
	return linalg.Compose(linalg.Identity(3),
		linalg.Rotation{Angle: gammaBar.Rad(), Axis: linalg.Z},
		linalg.Rotation{Angle: phiBar.Rad(), Axis: linalg.X},
		linalg.Rotation{Angle: -psi.Rad(), Axis: linalg.Z},
		linalg.Rotation{Angle: -eps.Rad(), Axis: linalg.X},
	)
}

// PrecessionNutationMatrix returns the IAU 2006 bias-precession-nutation
// matrix at t, with nutation from the Model's tables.
func (m *Model) PrecessionNutationMatrix(t float64) (linalg.Matrix, error) {
	fw := FukushimaWilliams(t)
	dpsi, deps := m.Nutation(t)
	return FukushimaWilliamsMatrix(fw.GammaBar, fw.PhiBar, fw.PsiBar+dpsi, fw.EpsA+deps)
}

// CIP returns the X, Y coordinates of the Celestial Intermediate Pole from
// the bottom row of a precession-nutation matrix.
func CIP(pn linalg.Matrix) (x, y float64) {
	return pn.At(2, 0), pn.At(2, 1)
}
