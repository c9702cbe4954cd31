package eop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

var ErrMalformedLine = errors.New("malformed EOP line")

// column is a 0-based half-open byte range of a finals2000A row.
type column struct {
	name       string
	start, end int
}

var (
	colYear   = column{"year", 0, 2}
	colMonth  = column{"month", 2, 4}
	colDay    = column{"day", 4, 6}
	colMJD    = column{"mjd", 7, 15}
	colPMFlag = column{"pm flag", 16, 17}
	colX      = column{"x", 18, 27}
	colXErr   = column{"x error", 27, 36}
	colY      = column{"y", 37, 46}
	colYErr   = column{"y error", 46, 55}
	colUTFlag = column{"ut1 flag", 57, 58}
	colUT1    = column{"ut1-utc", 58, 68}
	colUT1Err = column{"ut1-utc error", 68, 78}
	colLOD    = column{"lod", 79, 86}
	colLODErr = column{"lod error", 86, 93}
	colNuFlag = column{"nutation flag", 95, 96}
	colDX     = column{"dx", 97, 106}
	colDXErr  = column{"dx error", 106, 115}
	colDY     = column{"dy", 116, 125}
	colDYErr  = column{"dy error", 125, 134}
	colBX     = column{"bulletin b x", 134, 144}
	colBY     = column{"bulletin b y", 144, 154}
	colBUT1   = column{"bulletin b ut1-utc", 154, 165}
	colBDX    = column{"bulletin b dx", 165, 175}
	colBDY    = column{"bulletin b dy", 175, 185}
)

// field returns the trimmed contents of c, or "" when the line is too
// short to reach it.
func field(line string, c column) string {
	if len(line) <= c.start {
		return ""
	}
	return strings.TrimSpace(line[c.start:min(c.end, len(line))])
}

type lineParser struct {
	line string
	err  error
}

func (p *lineParser) number(c column) float64 {
	if p.err != nil {
		return 0
	}
	s := field(p.line, c)
	v, err := strconv.ParseFloat(s, 64)
	// ParseFloat also takes NaN, Inf and hex literals, none of which
	// appear in IERS data
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || strings.ContainsAny(s, "xX") {
		p.err = fmt.Errorf("%w: %s %q", ErrMalformedLine, c.name, s)
		return 0
	}
	return v
}

func (p *lineParser) integer(c column) int {
	if p.err != nil {
		return 0
	}
	s := field(p.line, c)
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Errorf("%w: %s %q", ErrMalformedLine, c.name, s)
	}
	return v
}

// optional is nil for a blank or missing column and an error for one that
// holds something other than a number.
func (p *lineParser) optional(c column) *float64 {
	if p.err != nil || field(p.line, c) == "" {
		return nil
	}
	v := p.number(c)
	return &v
}

func (p *lineParser) predicted(c column) bool {
	return field(p.line, c) == "P"
}

// ParseLine decodes one finals2000A row.
func ParseLine(line string) (Record, error) {
	p := &lineParser{line: strings.TrimRight(line, "\r\n")}

	r := Record{
		Year:  p.integer(colYear),
		Month: p.integer(colMonth),
		Day:   p.integer(colDay),
		MJD:   p.number(colMJD),

		PolarMotionPredicted: p.predicted(colPMFlag),
		X:                    p.number(colX),
		XErr:                 p.number(colXErr),
		Y:                    p.number(colY),
		YErr:                 p.number(colYErr),

		UT1Predicted: p.predicted(colUTFlag),
		UT1MinusUTC:  p.number(colUT1),
		UT1Err:       p.number(colUT1Err),

		LOD:    p.optional(colLOD),
		LODErr: p.optional(colLODErr),

		NutationPredicted: p.predicted(colNuFlag),
		DX:                p.optional(colDX),
		DXErr:             p.optional(colDXErr),
		DY:                p.optional(colDY),
		DYErr:             p.optional(colDYErr),
	}

	b := BulletinB{
		X:           p.optional(colBX),
		Y:           p.optional(colBY),
		UT1MinusUTC: p.optional(colBUT1),
		DX:          p.optional(colBDX),
		DY:          p.optional(colBDY),
	}
	if p.err != nil {
		return Record{}, p.err
	}
	if b != (BulletinB{}) {
		r.BulletinB = &b
	}

	// two-digit years: the series starts in 1973 and MJD 51544 is 2000-01-01
	if r.MJD < 51544 {
		r.Year += 1900
	} else {
		r.Year += 2000
	}
	return r, nil
}

// Parse reads every row of a finals2000A file. Rows that do not parse are
// dropped and counted; they are header, footer or damaged lines.
func Parse(rd io.Reader, logger *slog.Logger) ([]Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		records []Record
		dropped int
		lineNo  int
	)
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := ParseLine(line)
		if err != nil {
			dropped++
			logger.Debug("dropping EOP line", "line", lineNo, "error", err)
			continue
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read EOP data: %w", err)
	}
	if dropped > 0 {
		logger.Debug("EOP parse finished", "records", len(records), "dropped", dropped)
	}
	return records, nil
}
