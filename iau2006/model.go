// Package iau2006 implements the IAU 2006 CIO-based transformation from the
// celestial (GCRS) to the terrestrial (ITRS) frame: fundamental arguments,
// Fukushima-Williams precession, nutation, the CIO and TIO locators, the
// Earth Rotation Angle and polar motion.
//
// The nutation evaluator takes 2000A-shaped tables, but the tables a Model
// is built with by default are the IAU 2000B truncation: 77 luni-solar
// terms and a constant planetary offset. Pass the full 2000A luni-solar
// and planetary tables to New through WithLuniSolar and WithPlanetary to
// get the complete 2006/2000A model.
//
// Unless stated otherwise t is measured in Julian centuries of TT since
// J2000.0 and angles are radians.
package iau2006

import (
	"slices"
	"sync"
)

// Model owns the series coefficient tables. It is immutable after New
// returns and safe for concurrent use.
type Model struct {
	luniSolar []LuniSolarTerm
	planetary []PlanetaryTerm
	cio       cioSeries
}

// Option customises the tables of a Model.
type Option func(*Model)

// WithLuniSolar replaces the luni-solar nutation series, such as with
// the full IAU 2000A table.
func WithLuniSolar(terms []LuniSolarTerm) Option {
	return func(m *Model) {
		m.luniSolar = slices.Clone(terms)
	}
}

// WithPlanetary replaces the planetary nutation series.
func WithPlanetary(terms []PlanetaryTerm) Option {
	return func(m *Model) {
		m.planetary = slices.Clone(terms)
	}
}

// New builds a Model from the built-in tables and any options.
func New(opts ...Option) *Model {
	m := &Model{
		luniSolar: slices.Clone(luniSolar2000B),
		planetary: slices.Clone(planetaryOffset2000B),
		cio:       s06Series,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultModel = sync.OnceValue(func() *Model { return New() })

// Default returns a shared Model built from the built-in tables on first
// use.
func Default() *Model {
	return defaultModel()
}

// Terms reports the number of luni-solar and planetary nutation terms.
func (m *Model) Terms() (luniSolar, planetary int) {
	return len(m.luniSolar), len(m.planetary)
}
