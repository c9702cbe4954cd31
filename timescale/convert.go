package timescale

const (
	TTMinusTAI  = 32.184 // seconds
	TAIMinusGPS = 19.0   // seconds
)

// Converter moves instants between time scales. UT1-UTC is measured, not
// modelled, so the UT1 conversions take it as an argument.
//
// The scale tag of an input is not checked; each method relabels its
// result with the target scale.
type Converter struct {
	leaps *LeapTable
}

// NewConverter uses leaps for TAI-UTC, or the built-in table when nil.
func NewConverter(leaps *LeapTable) *Converter {
	if leaps == nil {
		leaps = DefaultLeapTable()
	}
	return &Converter{leaps: leaps}
}

// LeapSeconds returns TAI-UTC at a UTC instant.
func (c *Converter) LeapSeconds(utc Instant) int {
	return c.leaps.At(utc)
}

func (c *Converter) UTCToTAI(utc Instant) Instant {
	return utc.Add(Seconds(float64(c.leaps.At(utc)))).In(TAI)
}

// TAIToUTC inverts UTCToTAI. The offset is looked up again at the first
// estimate so instants just after a step resolve to the new count.
func (c *Converter) TAIToUTC(tai Instant) Instant {
	guess := tai.Add(Seconds(-float64(c.leaps.At(tai.In(UTC)))))
	return tai.Add(Seconds(-float64(c.leaps.At(guess.In(UTC))))).In(UTC)
}

func (c *Converter) TAIToTT(tai Instant) Instant {
	return tai.Add(Seconds(TTMinusTAI)).In(TT)
}

func (c *Converter) TTToTAI(tt Instant) Instant {
	return tt.Add(Seconds(-TTMinusTAI)).In(TAI)
}

func (c *Converter) GPSToTAI(gps Instant) Instant {
	return gps.Add(Seconds(TAIMinusGPS)).In(TAI)
}

func (c *Converter) TAIToGPS(tai Instant) Instant {
	return tai.Add(Seconds(-TAIMinusGPS)).In(GPS)
}

func (c *Converter) UTCToTT(utc Instant) Instant {
	return c.TAIToTT(c.UTCToTAI(utc))
}

// UTCToUT1 applies a measured UT1-UTC offset in seconds.
func (c *Converter) UTCToUT1(utc Instant, ut1MinusUTC float64) Instant {
	return utc.Add(Seconds(ut1MinusUTC)).In(UT1)
}

func (c *Converter) UT1ToUTC(ut1 Instant, ut1MinusUTC float64) Instant {
	return ut1.Add(Seconds(-ut1MinusUTC)).In(UTC)
}

// UT1ToTT converts through UTC and TAI: UTC = UT1 - dUT1, TAI = UTC +
// leap seconds, TT = TAI + 32.184 s.
func (c *Converter) UT1ToTT(ut1 Instant, ut1MinusUTC float64) Instant {
	return c.UTCToTT(c.UT1ToUTC(ut1, ut1MinusUTC))
}
