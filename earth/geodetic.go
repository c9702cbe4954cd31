package earth

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/echoflaresat/earthframes/vectors"
)

// WGS84 ellipsoid.
const (
	SemiMajorAxis = 6378137.0 // metres
	Flattening    = 1 / 298.257223563
)

var (
	semiMinorAxis = SemiMajorAxis * (1 - Flattening)

	// first and second eccentricity squared
	e2  = Flattening * (2 - Flattening)
	ep2 = e2 / ((1 - Flattening) * (1 - Flattening))
)

// Geodetic is a position on the WGS84 ellipsoid. Latitude and longitude
// are degrees, altitude is metres above the ellipsoid.
type Geodetic struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// GeodeticToECEF returns the ITRS position in metres.
func GeodeticToECEF(g Geodetic) vectors.Vec3 {
	sinLat, cosLat := unit.AngleFromDeg(g.Latitude).Sincos()
	sinLon, cosLon := unit.AngleFromDeg(g.Longitude).Sincos()

	n := SemiMajorAxis / math.Sqrt(1-e2*sinLat*sinLat)
	return vectors.Vec3{
		X: (n + g.Altitude) * cosLat * cosLon,
		Y: (n + g.Altitude) * cosLat * sinLon,
		Z: (n*(1-e2) + g.Altitude) * sinLat,
	}
}

// ECEFToGeodetic inverts GeodeticToECEF with Bowring's closed form; no
// iteration is needed for points near the Earth's surface.
func ECEFToGeodetic(v vectors.Vec3) Geodetic {
	p := math.Hypot(v.X, v.Y)
	lon := unit.Angle(math.Atan2(v.Y, v.X))

	theta := math.Atan2(v.Z*SemiMajorAxis, p*semiMinorAxis)
	sinT, cosT := math.Sincos(theta)
	lat := unit.Angle(math.Atan2(
		v.Z+ep2*semiMinorAxis*sinT*sinT*sinT,
		p-e2*SemiMajorAxis*cosT*cosT*cosT,
	))

	sinLat, cosLat := lat.Sincos()
	n := SemiMajorAxis / math.Sqrt(1-e2*sinLat*sinLat)

	var alt float64
	if math.Abs(cosLat) > 1e-10 {
		alt = p/cosLat - n
	} else {
		alt = math.Abs(v.Z) - semiMinorAxis
	}

	return Geodetic{
		Latitude:  lat.Deg(),
		Longitude: lon.Deg(),
		Altitude:  alt,
	}
}
