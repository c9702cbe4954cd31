// Package eop reads IERS finals2000A Earth Orientation Parameters and
// serves the record nearest to an instant.
package eop

// Record is one day of Earth Orientation Parameters. Angles are
// arcseconds, UT1-UTC and LOD are seconds (LOD in milliseconds as
// published), celestial pole offsets are milliarcseconds.
type Record struct {
	Year, Month, Day int
	MJD              float64 // UTC

	PolarMotionPredicted bool
	X, XErr              float64
	Y, YErr              float64

	UT1Predicted bool
	UT1MinusUTC  float64
	UT1Err       float64

	LOD, LODErr *float64

	NutationPredicted bool
	DX, DXErr         *float64
	DY, DYErr         *float64

	BulletinB *BulletinB
}

// BulletinB holds the Bulletin B alternates published on the same row.
// Columns left blank in the file are nil.
type BulletinB struct {
	X, Y        *float64
	UT1MinusUTC *float64
	DX, DY      *float64
}

// PolarMotion returns the pole coordinates in arcseconds.
func (r Record) PolarMotion() (x, y float64) {
	return r.X, r.Y
}
