package eop

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/exp/mmap"

	"github.com/echoflaresat/earthframes/timescale"
	"github.com/echoflaresat/earthframes/xprec"
)

var ErrNoData = errors.New("no EOP data")

// Loader produces the records a Store serves. It runs at most once.
type Loader func(logger *slog.Logger) ([]Record, error)

// FromReader parses finals2000A rows from r.
func FromReader(r io.Reader) Loader {
	return func(logger *slog.Logger) ([]Record, error) {
		return Parse(r, logger)
	}
}

// FromFile memory-maps a finals2000A file and parses it.
func FromFile(path string) Loader {
	return func(logger *slog.Logger) ([]Record, error) {
		reader, err := mmap.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open EOP file: %w", err)
		}
		defer reader.Close()

		records, err := Parse(io.NewSectionReader(reader, 0, int64(reader.Len())), logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Info("loaded EOP file", "path", path, "records", len(records))
		return records, nil
	}
}

// FromRecords serves a copy of records.
func FromRecords(records []Record) Loader {
	records = slices.Clone(records)
	return func(*slog.Logger) ([]Record, error) {
		return records, nil
	}
}

// Store serves EOP records by nearest date. The dataset is loaded on the
// first query; concurrent first callers wait for that single load, and a
// load error is returned to every caller after it.
type Store struct {
	load   Loader
	logger *slog.Logger

	once    sync.Once
	records []Record
	err     error
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

func NewStore(load Loader, opts ...Option) *Store {
	s := &Store{load: load, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Store) build() error {
	s.once.Do(func() {
		records, err := s.load(s.logger)
		if err != nil {
			s.err = fmt.Errorf("load EOP data: %w", err)
			return
		}
		slices.SortStableFunc(records, func(a, b Record) int {
			return cmp.Compare(a.MJD, b.MJD)
		})
		s.records = records
	})
	return s.err
}

// Len reports the number of records, loading them if needed.
func (s *Store) Len() (int, error) {
	if err := s.build(); err != nil {
		return 0, err
	}
	return len(s.records), nil
}

// Span returns the MJD of the first and last records.
func (s *Store) Span() (first, last float64, err error) {
	if err := s.build(); err != nil {
		return 0, 0, err
	}
	if len(s.records) == 0 {
		return 0, 0, ErrNoData
	}
	return s.records[0].MJD, s.records[len(s.records)-1].MJD, nil
}

// Records returns a copy of the sorted dataset.
func (s *Store) Records() ([]Record, error) {
	if err := s.build(); err != nil {
		return nil, err
	}
	return slices.Clone(s.records), nil
}

// Lookup returns the record nearest to at by MJD. Instants before the
// first record or after the last clamp to that record. When at lies
// exactly halfway between two records the earlier one wins.
func (s *Store) Lookup(at timescale.Instant) (Record, error) {
	if err := s.build(); err != nil {
		return Record{}, err
	}
	if len(s.records) == 0 {
		return Record{}, ErrNoData
	}

	mjd := at.MJD()
	i, found := slices.BinarySearchFunc(s.records, mjd, func(r Record, target xprec.Real) int {
		return -target.CmpFloat(r.MJD)
	})
	switch {
	case found:
		return s.records[i], nil
	case i == 0:
		return s.records[0], nil
	case i == len(s.records):
		return s.records[len(s.records)-1], nil
	}

	prev, next := s.records[i-1], s.records[i]
	before := mjd.SubFloat(prev.MJD).Float64()
	after := xprec.FromFloat(next.MJD).Sub(mjd).Float64()
	if after < before {
		return next, nil
	}
	return prev, nil
}

// UT1UTC returns UT1-UTC in seconds at the record nearest to at.
func (s *Store) UT1UTC(at timescale.Instant) (float64, error) {
	r, err := s.Lookup(at)
	if err != nil {
		return 0, err
	}
	return r.UT1MinusUTC, nil
}

// PolarMotion returns the pole coordinates in arcseconds at the record
// nearest to at.
func (s *Store) PolarMotion(at timescale.Instant) (x, y float64, err error) {
	r, err := s.Lookup(at)
	if err != nil {
		return 0, 0, err
	}
	x, y = r.PolarMotion()
	return x, y, nil
}
