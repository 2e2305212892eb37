package dataprocessing

import (
	"sort"
	"time"

	apperrors "gdchart/internal/errors"
	"gdchart/pkg/contracts/domain"
)

// Locator finds the match nearest to an arbitrary date. It is immutable
// after construction and safe for concurrent use.
type Locator struct {
	records []domain.MatchRecord
}

// NewLocator copies the records, which must be in ascending date order.
func NewLocator(records []domain.MatchRecord) *Locator {
	cp := make([]domain.MatchRecord, len(records))
	copy(cp, records)
	return &Locator{records: cp}
}

// Len returns the number of records.
func (l *Locator) Len() int {
	return len(l.records)
}

// At returns the record at index i.
func (l *Locator) At(i int) domain.MatchRecord {
	return l.records[i]
}

// NearestIndex returns the index of the record whose date is closest to q.
// An exact tie goes to the later record. Queries outside the data range
// clamp to the first or last record.
func (l *Locator) NearestIndex(q time.Time) (int, error) {
	n := len(l.records)
	if n == 0 {
		return 0, apperrors.ErrNoRecords
	}

	// first index with date >= q
	i := sort.Search(n, func(i int) bool {
		return !l.records[i].Date.Before(q)
	})

	switch i {
	case 0:
		return 0, nil
	case n:
		return n - 1, nil
	}

	before := q.Sub(l.records[i-1].Date)
	after := l.records[i].Date.Sub(q)
	if before < after {
		return i - 1, nil
	}
	return i, nil
}

// Nearest returns the record whose date is closest to q.
func (l *Locator) Nearest(q time.Time) (domain.MatchRecord, error) {
	i, err := l.NearestIndex(q)
	if err != nil {
		return domain.MatchRecord{}, err
	}
	return l.records[i], nil
}
