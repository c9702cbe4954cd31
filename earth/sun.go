package earth

import (
	"fmt"

	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/echoflaresat/earthframes/iau2006"
	"github.com/echoflaresat/earthframes/linalg"
	"github.com/echoflaresat/earthframes/timescale"
	"github.com/echoflaresat/earthframes/vectors"
)

// SunDirection returns the unit vector towards the Sun in the ITRS at
// ut1. The apparent solar position is equinox based, so it is turned into
// the terrestrial frame with apparent sidereal time and then the measured
// polar motion.
func (c *Converter) SunDirection(ut1 timescale.Instant) (vectors.Vec3, error) {
	rec, err := c.store.Lookup(ut1)
	if err != nil {
		return vectors.Vec3{}, fmt.Errorf("EOP at %s: %w", ut1, err)
	}
	tt := c.times.UT1ToTT(ut1, rec.UT1MinusUTC)

	ra, dec := solar.ApparentEquatorial(tt.JD().Float64())
	trueOfDate := vectors.Vec3{
		X: dec.Cos() * ra.Cos(),
		Y: dec.Cos() * ra.Sin(),
		Z: dec.Sin(),
	}

	gast := sidereal.Apparent(ut1.JD().Float64()).Angle()
	spin, err := linalg.Identity(3).Rotate(gast.Rad(), linalg.Z)
	if err != nil {
		return vectors.Vec3{}, err
	}
	w, err := iau2006.PolarMotionMatrix(
		unit.AngleFromSec(rec.X),
		unit.AngleFromSec(rec.Y),
		iau2006.TIOLocator(tt.CenturiesSinceJ2000()),
	)
	if err != nil {
		return vectors.Vec3{}, err
	}
	m, err := w.Mul(spin)
	if err != nil {
		return vectors.Vec3{}, err
	}
	return m.MulVec(trueOfDate)
}
