package timescale

import (
	"fmt"
	"slices"
	"sync"

	"github.com/echoflaresat/earthframes/xprec"
)

// LeapSecond is one step of TAI-UTC, effective from NTP seconds onwards.
type LeapSecond struct {
	NTP         int64
	TAIMinusUTC int
}

var defaultLeapSeconds = []LeapSecond{
	{2272060800, 10}, // 1972-01-01
	{2287785600, 11}, // 1972-07-01
	{2303683200, 12},
	{2335219200, 13},
	{2366755200, 14},
	{2398291200, 15},
	{2429913600, 16},
	{2461449600, 17},
	{2492985600, 18},
	{2524521600, 19},
	{2571782400, 20},
	{2603318400, 21},
	{2634854400, 22},
	{2698012800, 23},
	{2776982400, 24},
	{2840140800, 25},
	{2871676800, 26},
	{2918937600, 27},
	{2950473600, 28},
	{2982009600, 29},
	{3029443200, 30},
	{3076704000, 31},
	{3124137600, 32}, // 1999-01-01
	{3345062400, 33}, // 2006-01-01
	{3439756800, 34}, // 2009-01-01
	{3550089600, 35}, // 2012-07-01
	{3644697600, 36}, // 2015-07-01
	{3692217600, 37}, // 2017-01-01
}

// LeapTable is an immutable, ascending TAI-UTC step table.
type LeapTable struct {
	steps []LeapSecond
}

// NewLeapTable copies and sorts steps. Two steps at the same instant are
// rejected.
func NewLeapTable(steps []LeapSecond) (*LeapTable, error) {
	s := slices.Clone(steps)
	slices.SortFunc(s, func(a, b LeapSecond) int {
		switch {
		case a.NTP < b.NTP:
			return -1
		case a.NTP > b.NTP:
			return 1
		}
		return 0
	})
	for i := 1; i < len(s); i++ {
		if s[i].NTP == s[i-1].NTP {
			return nil, fmt.Errorf("duplicate leap second at NTP %d", s[i].NTP)
		}
	}
	return &LeapTable{steps: s}, nil
}

var defaultLeapTable = sync.OnceValue(func() *LeapTable {
	t, err := NewLeapTable(defaultLeapSeconds)
	if err != nil {
		panic(err)
	}
	return t
})

// DefaultLeapTable returns the built-in table, built on first use.
func DefaultLeapTable() *LeapTable {
	return defaultLeapTable()
}

// At returns TAI-UTC in whole seconds for a UTC instant: the most recent
// step at or before it, or 0 before the first step.
func (t *LeapTable) At(utc Instant) int {
	secs := utc.jd.Sub(EpochNTP).MulFloat(SecondsPerDay)
	i, _ := slices.BinarySearchFunc(t.steps, secs, func(s LeapSecond, target xprec.Real) int {
		return -target.CmpInt(s.NTP)
	})
	// i is the first step strictly after secs unless secs hits a step exactly
	if i < len(t.steps) && secs.CmpInt(t.steps[i].NTP) == 0 {
		return t.steps[i].TAIMinusUTC
	}
	if i == 0 {
		return 0
	}
	return t.steps[i-1].TAIMinusUTC
}

// Steps returns a copy of the table.
func (t *LeapTable) Steps() []LeapSecond {
	return slices.Clone(t.steps)
}
