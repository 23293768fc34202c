package series

import (
	"encoding/json"
	"iter"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// DayRecord is the activity count of one calendar day.
type DayRecord struct {
	Date  time.Time
	Count int
}

// MarshalJSON encodes the record as {"date":"YYYY-MM-DD","count":n}.
func (d DayRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}{d.Date.Format(time.DateOnly), d.Count})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (d *DayRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	date, err := time.Parse(time.DateOnly, raw.Date)
	if err != nil {
		return err
	}
	d.Date = date
	d.Count = raw.Count
	return nil
}

// CountSource supplies the count for a day. Implementations may ignore the date.
type CountSource interface {
	Count(date time.Time) int
}

// CountFunc adapts a function to CountSource.
type CountFunc func(date time.Time) int

func (f CountFunc) Count(date time.Time) int { return f(date) }

// Constant returns a source that always yields n.
func Constant(n int) CountSource {
	return CountFunc(func(time.Time) int { return n })
}

// MaxRandomCount is the inclusive upper bound of RandomSource.
const MaxRandomCount = 100

// RandomSource yields uniformly random counts in [0, MaxRandomCount].
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a source backed by the global generator.
func NewRandomSource() *RandomSource {
	return &RandomSource{}
}

// NewSeededSource returns a reproducible source. It is safe for concurrent use.
func NewSeededSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (s *RandomSource) Count(time.Time) int {
	if s.rng == nil {
		return rand.IntN(MaxRandomCount + 1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(MaxRandomCount + 1)
}

// Dates yields every date of p in ascending order.
func Dates(p Period) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		start, end := p.Bounds()
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Generate yields one record per day of p, asking src once per day.
// The sequence is lazy and can be ranged over repeatedly; dates are identical
// on every pass while counts are whatever src returns. Negative counts are
// clamped to zero.
func Generate(p Period, src CountSource) iter.Seq[DayRecord] {
	return func(yield func(DayRecord) bool) {
		for d := range Dates(p) {
			count := src.Count(d)
			if count < 0 {
				count = 0
			}
			if !yield(DayRecord{Date: d, Count: count}) {
				return
			}
		}
	}
}

// Collect materializes a generated sequence.
func Collect(seq iter.Seq[DayRecord]) []DayRecord {
	return slices.Collect(seq)
}
