// Package earth converts positions between the celestial (GCRS, ECI) and
// terrestrial (ITRS, ECEF) frames using measured Earth orientation.
package earth

import (
	"fmt"
	"log/slog"

	"github.com/soniakeys/unit"

	"github.com/echoflaresat/earthframes/eop"
	"github.com/echoflaresat/earthframes/iau2006"
	"github.com/echoflaresat/earthframes/linalg"
	"github.com/echoflaresat/earthframes/timescale"
	"github.com/echoflaresat/earthframes/vectors"
)

// Converter runs the IAU 2006 CIO-based transformation with UT1-UTC and
// polar motion taken from an EOP store. Nutation comes from the
// iau2006.Model in use, IAU 2000B unless WithModel says otherwise. It
// holds no mutable state and is safe for concurrent use.
type Converter struct {
	store   *eop.Store
	model   *iau2006.Model
	times   *timescale.Converter
	logger  *slog.Logger
	workers int
}

type Option func(*Converter)

// WithModel replaces the default series tables.
func WithModel(m *iau2006.Model) Option {
	return func(c *Converter) {
		c.model = m
	}
}

// WithLeapTable replaces the built-in leap-second table.
func WithLeapTable(t *timescale.LeapTable) Option {
	return func(c *Converter) {
		c.times = timescale.NewConverter(t)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithWorkers bounds the goroutines used by the batch conversions.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

func NewConverter(store *eop.Store, opts ...Option) *Converter {
	c := &Converter{
		store:   store,
		model:   iau2006.Default(),
		times:   timescale.NewConverter(nil),
		logger:  slog.Default(),
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// UT1UTCOffset returns UT1-UTC in seconds at ut1.
func (c *Converter) UT1UTCOffset(ut1 timescale.Instant) (float64, error) {
	dut1, err := c.store.UT1UTC(ut1)
	if err != nil {
		return 0, fmt.Errorf("UT1-UTC at %s: %w", ut1, err)
	}
	return dut1, nil
}

// PolarMotion returns the pole coordinates in arcseconds at ut1.
func (c *Converter) PolarMotion(ut1 timescale.Instant) (x, y float64, err error) {
	x, y, err = c.store.PolarMotion(ut1)
	if err != nil {
		return 0, 0, fmt.Errorf("polar motion at %s: %w", ut1, err)
	}
	return x, y, nil
}

// Matrix returns the GCRS to ITRS rotation at the UT1 instant ut1. It is
// computed afresh on every call.
func (c *Converter) Matrix(ut1 timescale.Instant) (linalg.Matrix, error) {
	rec, err := c.store.Lookup(ut1)
	if err != nil {
		return linalg.Matrix{}, fmt.Errorf("EOP at %s: %w", ut1, err)
	}

	tt := c.times.UT1ToTT(ut1, rec.UT1MinusUTC)
	xp, yp := unit.AngleFromSec(rec.X), unit.AngleFromSec(rec.Y)

	c.logger.Debug("celestial to terrestrial",
		"ut1", ut1.String(),
		"tt", tt.String(),
		"eop_mjd", rec.MJD,
		"dut1", rec.UT1MinusUTC,
		"xp", rec.X,
		"yp", rec.Y,
	)

	m, err := c.model.CelestialToTerrestrial(tt, ut1, xp, yp)
	if err != nil {
		return linalg.Matrix{}, fmt.Errorf("celestial to terrestrial at %s: %w", ut1, err)
	}
	return m, nil
}

// ECIToECEF rotates a GCRS position into the ITRS at ut1.
func (c *Converter) ECIToECEF(pos vectors.Vec3, ut1 timescale.Instant) (vectors.Vec3, error) {
	m, err := c.Matrix(ut1)
	if err != nil {
		return vectors.Vec3{}, err
	}
	return m.MulVec(pos)
}

// ECEFToECI maps an ITRS position back to the GCRS at ut1 by solving the
// linear system of the forward matrix.
func (c *Converter) ECEFToECI(pos vectors.Vec3, ut1 timescale.Instant) (vectors.Vec3, error) {
	m, err := c.Matrix(ut1)
	if err != nil {
		return vectors.Vec3{}, err
	}
	eci, err := m.SolveVec3(pos)
	if err != nil {
		return vectors.Vec3{}, fmt.Errorf("invert celestial to terrestrial: %w", err)
	}
	return eci, nil
}

// UTCToUT1 applies the UT1-UTC offset looked up at utc.
func (c *Converter) UTCToUT1(utc timescale.Instant) (timescale.Instant, error) {
	dut1, err := c.UT1UTCOffset(utc)
	if err != nil {
		return timescale.Instant{}, err
	}
	return c.times.UTCToUT1(utc, dut1), nil
}

// TimeScales exposes the leap-second aware time-scale converter in use.
func (c *Converter) TimeScales() *timescale.Converter {
	return c.times
}
