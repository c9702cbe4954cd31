// Package timescale represents instants as extended-precision Julian
// dates and converts between UTC, UT1, TAI, TT and GPS time.
package timescale

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/echoflaresat/earthframes/xprec"
)

// Scale names the time scale an Instant is expressed in.
type Scale int

const (
	UTC Scale = iota
	UT1
	TAI
	TT
	GPS
)

func (s Scale) String() string {
	switch s {
	case UTC:
		return "UTC"
	case UT1:
		return "UT1"
	case TAI:
		return "TAI"
	case TT:
		return "TT"
	case GPS:
		return "GPS"
	}
	return fmt.Sprintf("Scale(%d)", int(s))
}

const (
	SecondsPerDay  = 86400.0
	DaysPerCentury = 36525.0
)

// Epochs as Julian dates.
var (
	EpochJulian = xprec.FromInt(0)
	EpochMJD    = xprec.New(2400000, 0.5)
	EpochNTP    = xprec.New(2415020, 0.5)
	EpochUnix   = xprec.New(2440587, 0.5)
	EpochJ2000  = xprec.FromInt(2451545)
)

// Duration is a signed span of time kept in extended-precision days.
type Duration struct {
	days xprec.Real
}

func Days(d float64) Duration {
	return Duration{days: xprec.FromFloat(d)}
}

func Seconds(s float64) Duration {
	return Duration{days: xprec.FromFloat(s).DivFloat(SecondsPerDay)}
}

// DaysReal wraps an extended-precision day count.
func DaysReal(d xprec.Real) Duration {
	return Duration{days: d}
}

func (d Duration) Real() xprec.Real {
	return d.days
}

func (d Duration) Days() float64 {
	return d.days.Float64()
}

func (d Duration) Seconds() float64 {
	return d.days.MulFloat(SecondsPerDay).Float64()
}

// Centuries returns the span in Julian centuries of 36525 days.
func (d Duration) Centuries() float64 {
	return d.days.DivFloat(DaysPerCentury).Float64()
}

func (d Duration) Neg() Duration {
	return Duration{days: d.days.Neg()}
}

// Instant is a Julian date tagged with its time scale.
type Instant struct {
	jd    xprec.Real
	scale Scale
}

func FromJD(jd xprec.Real, s Scale) Instant {
	return Instant{jd: jd, scale: s}
}

func FromMJD(mjd float64, s Scale) Instant {
	return Instant{jd: EpochMJD.AddFloat(mjd), scale: s}
}

// FromCalendar converts a Gregorian calendar date with fractional day.
// The whole day goes through meeus exactly; the fraction is added
// separately so it keeps full precision.
func FromCalendar(year, month int, day float64, s Scale) Instant {
	whole := math.Floor(day)
	jd := xprec.FromFloat(julian.CalendarGregorianToJD(year, month, whole))
	return Instant{jd: jd.AddFloat(day - whole), scale: s}
}

// FromTime converts a wall-clock time. The caller states which scale the
// clock reading belongs to; time.Time itself carries no leap seconds.
func FromTime(t time.Time, s Scale) Instant {
	sec := t.Unix()
	days := sec / 86400
	rem := sec % 86400
	if rem < 0 {
		days--
		rem += 86400
	}
	frac := (float64(rem) + float64(t.Nanosecond())*1e-9) / SecondsPerDay
	return Instant{jd: EpochUnix.Add(xprec.FromInt(days)).AddFloat(frac), scale: s}
}

func (i Instant) JD() xprec.Real {
	return i.jd
}

func (i Instant) MJD() xprec.Real {
	return i.jd.Sub(EpochMJD)
}

func (i Instant) Scale() Scale {
	return i.scale
}

func (i Instant) Add(d Duration) Instant {
	return Instant{jd: i.jd.Add(d.days), scale: i.scale}
}

// Sub returns i - o. Scales are not reconciled.
func (i Instant) Sub(o Instant) Duration {
	return Duration{days: i.jd.Sub(o.jd)}
}

func (i Instant) In(s Scale) Instant {
	return Instant{jd: i.jd, scale: s}
}

func (i Instant) DaysSinceJ2000() xprec.Real {
	return i.jd.Sub(EpochJ2000)
}

// CenturiesSinceJ2000 is the t argument of the IAU polynomials.
func (i Instant) CenturiesSinceJ2000() float64 {
	return i.DaysSinceJ2000().DivFloat(DaysPerCentury).Float64()
}

func (i Instant) Compare(o Instant) int {
	return i.jd.Cmp(o.jd)
}

func (i Instant) Before(o Instant) bool {
	return i.Compare(o) < 0
}

func (i Instant) After(o Instant) bool {
	return i.Compare(o) > 0
}

func (i Instant) Equal(o Instant) bool {
	return i.Compare(o) == 0
}

// Time returns the clock reading of the instant as a UTC-located time.Time,
// rounded to the nearest nanosecond.
func (i Instant) Time() time.Time {
	d := i.jd.Sub(EpochUnix)
	nanos := math.Round(d.Frac * SecondsPerDay * 1e9)
	return time.Unix(d.Int*86400, int64(nanos)).UTC()
}

// Calendar returns the Gregorian date with fractional day.
func (i Instant) Calendar() (year, month int, day float64) {
	return julian.JDToCalendar(i.jd.Float64())
}

func (i Instant) String() string {
	return fmt.Sprintf("JD %s %s", i.jd, i.scale)
}
