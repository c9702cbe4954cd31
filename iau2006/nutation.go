package iau2006

import (
	"math"

	"github.com/soniakeys/unit"
)

// LuniSolarTerm is one luni-solar nutation term. Multipliers apply to
// l, l', F, D, Om; amplitudes are in 0.1 microarcseconds.
type LuniSolarTerm struct {
	L, LPrime, F, D, Omega int

	PsiSin, PsiSinT, PsiCos float64
	EpsCos, EpsCosT, EpsSin float64
}

// PlanetaryTerm is one planetary nutation term. Multipliers apply to
// l, F, D, Om, the eight planetary longitudes and p_A; amplitudes are in
// 0.1 microarcseconds.
type PlanetaryTerm struct {
	L, F, D, Omega                 int
	Me, Ve, Ea, Ma, Ju, Sa, Ur, Ne int
	Pa                             int

	PsiSin, PsiCos float64
	EpsSin, EpsCos float64
}

const tenthMicroarcsec = 1e-7

// Nutation00 returns the IAU 2000 nutation in longitude and obliquity at t,
// in Julian centuries of TT since J2000.0.
//
// The series evaluated are the ones the Model was built with. The default
// tables are the IAU 2000B truncation, which stays within about 1 mas of
// the full 2000A series between 1995 and 2050.
func (m *Model) Nutation00(t float64) (dpsi, deps unit.Angle) {
	lp, le := m.luniSolarSum(t)
	pp, pe := m.planetarySum(t)
	return arcsec((lp + pp) * tenthMicroarcsec), arcsec((le + pe) * tenthMicroarcsec)
}

// Nutation returns the nutation with the IAU 2006 adjustments applied for
// the change in J2 rate and the precession-consistent obliquity.
func (m *Model) Nutation(t float64) (dpsi, deps unit.Angle) {
	dp, de := m.Nutation00(t)
	fj2 := -2.7774e-6 * t
	p, e := dp.Rad(), de.Rad()
	return unit.Angle(p + p*(0.4697e-6+fj2)), unit.Angle(e + e*fj2)
}

func (m *Model) luniSolarSum(t float64) (dp, de float64) {
	el := MeanAnomalyOfMoon(t).Rad()
	elp := MeanAnomalyOfSun(t).Rad()
	f := MeanArgumentOfLatitudeOfMoon(t).Rad()
	d := MeanElongationOfMoonFromSun(t).Rad()
	om := MeanLongitudeOfMoonsAscendingNode(t).Rad()

	// smallest terms first
	for i := len(m.luniSolar) - 1; i >= 0; i-- {
		x := &m.luniSolar[i]
		arg := math.Mod(float64(x.L)*el+float64(x.LPrime)*elp+float64(x.F)*f+
			float64(x.D)*d+float64(x.Omega)*om, turn)
		s, c := math.Sincos(arg)
		dp += (x.PsiSin+x.PsiSinT*t)*s + x.PsiCos*c
		de += (x.EpsCos+x.EpsCosT*t)*c + x.EpsSin*s
	}
	return dp, de
}

func (m *Model) planetarySum(t float64) (dp, de float64) {
	// MHB2000 linear forms of the lunar arguments
	al := math.Mod(2.35555598+8328.6914269554*t, turn)
	af := math.Mod(1.627905234+8433.466158131*t, turn)
	ad := math.Mod(5.198466741+7771.3771468121*t, turn)
	aom := math.Mod(2.18243920-33.757045*t, turn)
	ane := math.Mod(5.321159000+3.8127774000*t, turn)

	me := MeanLongitudeOfMercury(t).Rad()
	ve := MeanLongitudeOfVenus(t).Rad()
	ea := MeanLongitudeOfEarth(t).Rad()
	ma := MeanLongitudeOfMars(t).Rad()
	ju := MeanLongitudeOfJupiter(t).Rad()
	sa := MeanLongitudeOfSaturn(t).Rad()
	ur := MeanLongitudeOfUranus(t).Rad()
	pa := GeneralPrecessionInLongitude(t).Rad()

	for i := len(m.planetary) - 1; i >= 0; i-- {
		x := &m.planetary[i]
		arg := math.Mod(float64(x.L)*al+float64(x.F)*af+float64(x.D)*ad+float64(x.Omega)*aom+
			float64(x.Me)*me+float64(x.Ve)*ve+float64(x.Ea)*ea+float64(x.Ma)*ma+
			float64(x.Ju)*ju+float64(x.Sa)*sa+float64(x.Ur)*ur+float64(x.Ne)*ane+
			float64(x.Pa)*pa, turn)
		s, c := math.Sincos(arg)
		dp += x.PsiSin*s + x.PsiCos*c
		de += x.EpsSin*s + x.EpsCos*c
	}
	return dp, de
}
