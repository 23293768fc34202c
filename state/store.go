// Package state holds the user-adjustable selection and re-derives every
// heatmap view whenever it changes.
package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stsysd/calheat/model"
	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

// Selection is the complete selector input.
type Selection struct {
	Year          int    `json:"year"`
	Palette       string `json:"palette"`
	LegendVisible bool   `json:"legend"`
	Locale        string `json:"locale"`
}

// DefaultSelection returns the start-of-session selection.
func DefaultSelection() Selection {
	return Selection{
		Year:          time.Now().Year(),
		Palette:       model.DefaultPaletteName,
		LegendVisible: true,
		Locale:        model.DefaultLocale,
	}
}

// Options enumerates the values each selector offers.
type Options struct {
	Years    []int     `json:"years"`
	Palettes []string  `json:"palettes"`
	Legend   []bool    `json:"legend"`
	Locales  []string  `json:"locales"`
	Defaults Selection `json:"defaults"`
}

// SelectorOptions lists the selectable values for reg.
func SelectorOptions(reg *palette.Registry) Options {
	return Options{
		Years:    model.Years(),
		Palettes: reg.Names(),
		Legend:   []bool{true, false},
		Locales:  append([]string(nil), model.Locales...),
		Defaults: DefaultSelection(),
	}
}

// Normalize validates sel against reg and canonicalizes its locale.
// The year is checked against the selector range unless it equals the
// current year, which is always allowed as the session default.
func Normalize(sel Selection, reg *palette.Registry) (Selection, error) {
	if sel.Year != time.Now().Year() {
		if _, err := model.NewYear(sel.Year); err != nil {
			return Selection{}, err
		}
	}
	name := model.NewPaletteName(sel.Palette)
	if _, err := reg.Lookup(name.String()); err != nil {
		return Selection{}, err
	}
	sel.Palette = name.String()

	locale, err := model.NewLocale(sel.Locale)
	if err != nil {
		return Selection{}, err
	}
	sel.Locale = locale.String()
	return sel, nil
}

// Display resolves the selector-driven part of a view.Display. Cell size and
// click handling are taken from base.
func Display(sel Selection, reg *palette.Registry, base view.Display) (view.Display, error) {
	pal, err := reg.Lookup(sel.Palette)
	if err != nil {
		return view.Display{}, err
	}
	base.Palette = pal
	base.LegendVisible = sel.LegendVisible
	base.Locale = sel.Locale
	return base, nil
}

// Derive is the pure derivation selection -> views.
func Derive(sel Selection, reg *palette.Registry, src series.CountSource, base view.Display) (view.Set, error) {
	d, err := Display(sel, reg, base)
	if err != nil {
		return view.Set{}, err
	}
	set, err := view.BuildSet(sel.Year, d, src)
	if err != nil {
		return view.Set{}, fmt.Errorf("derive views for %d: %w", sel.Year, err)
	}
	return set, nil
}

type subscriber struct {
	id int
	fn func(view.Set)
}

// Store is a reactive holder of the current Selection. Every accepted change
// re-runs Derive and hands the new view set to all subscribers.
// A Store is not safe for concurrent use.
type Store struct {
	id          uuid.UUID
	registry    *palette.Registry
	source      series.CountSource
	logger      *zap.Logger
	selection   Selection
	cellSize    int
	views       view.Set
	subscribers []subscriber
	nextSubID   int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for change and click events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithCellSize sets the cell edge length of every derived view.
func WithCellSize(n int) Option {
	return func(s *Store) { s.cellSize = n }
}

// WithSelection overrides the initial selection.
func WithSelection(sel Selection) Option {
	return func(s *Store) { s.selection = sel }
}

// NewStore creates a Store with the default selection and derives its
// initial views.
func NewStore(reg *palette.Registry, src series.CountSource, opts ...Option) (*Store, error) {
	s := &Store{
		id:        uuid.New(),
		registry:  reg,
		source:    src,
		logger:    zap.NewNop(),
		selection: DefaultSelection(),
	}
	for _, opt := range opts {
		opt(s)
	}

	sel, err := Normalize(s.selection, reg)
	if err != nil {
		return nil, err
	}
	views, err := Derive(sel, reg, src, s.display())
	if err != nil {
		return nil, err
	}
	s.selection = sel
	s.views = views
	return s, nil
}

// ID returns the session id of the store.
func (s *Store) ID() uuid.UUID {
	return s.id
}

// Selection returns the current selection.
func (s *Store) Selection() Selection {
	return s.selection
}

// Views returns the view set derived from the current selection.
func (s *Store) Views() view.Set {
	return s.views
}

// Options lists the selectable values.
func (s *Store) Options() Options {
	return SelectorOptions(s.registry)
}

// Subscribe registers fn to receive every newly derived view set.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(view.Set)) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// SetYear selects year.
func (s *Store) SetYear(year int) error {
	sel := s.selection
	sel.Year = year
	return s.Apply(sel)
}

// SetPalette selects a palette variant by name. "default" selects the
// built-in coloring.
func (s *Store) SetPalette(name string) error {
	sel := s.selection
	sel.Palette = name
	return s.Apply(sel)
}

// SetLegendVisible shows or hides the legend.
func (s *Store) SetLegendVisible(visible bool) error {
	sel := s.selection
	sel.LegendVisible = visible
	return s.Apply(sel)
}

// SetLocale selects the locale.
func (s *Store) SetLocale(locale string) error {
	sel := s.selection
	sel.Locale = locale
	return s.Apply(sel)
}

// Apply replaces the whole selection. Invalid input leaves the store unchanged.
func (s *Store) Apply(sel Selection) error {
	sel, err := Normalize(sel, s.registry)
	if err != nil {
		return err
	}
	views, err := Derive(sel, s.registry, s.source, s.display())
	if err != nil {
		return err
	}

	s.selection = sel
	s.views = views
	s.logger.Debug("selection changed",
		zap.String("session", s.id.String()),
		zap.Int("year", sel.Year),
		zap.String("palette", sel.Palette),
		zap.Bool("legend", sel.LegendVisible),
		zap.String("locale", sel.Locale),
	)

	for _, sub := range append([]subscriber(nil), s.subscribers...) {
		sub.fn(views)
	}
	return nil
}

func (s *Store) display() view.Display {
	return view.Display{CellSize: s.cellSize, OnClick: s.logClick}
}

func (s *Store) logClick(day series.DayRecord) {
	s.logger.Info(fmt.Sprintf("Clicked on %s with value %d", day.Date.Format(time.DateOnly), day.Count),
		zap.String("session", s.id.String()),
	)
}
