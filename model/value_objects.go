// Package model provides value objects for selector parameter validation.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Year selector bounds. The selectable range is FirstYear..FirstYear+YearCount-1.
const (
	FirstYear = 1998
	YearCount = 30
)

// DefaultLocale is the locale used when none has been selected.
const DefaultLocale = "en"

// DefaultPaletteName selects the renderer's built-in coloring.
const DefaultPaletteName = "default"

// Locales lists the supported locales in display order.
var Locales = []string{"en", "tr", "fr", "de", "ja", "zh"}

// Years returns the selectable years, newest first.
func Years() []int {
	years := make([]int, YearCount)
	for i := range years {
		years[i] = FirstYear + YearCount - 1 - i
	}
	return years
}

// Year represents a selected calendar year value object.
type Year struct {
	value int
}

// NewYear creates a year value object, rejecting years outside the selectable range.
func NewYear(y int) (*Year, error) {
	if y < FirstYear || y > FirstYear+YearCount-1 {
		return nil, NewValidationError(fmt.Sprintf("year must be between %d and %d", FirstYear, FirstYear+YearCount-1))
	}
	return &Year{value: y}, nil
}

// ParseYear parses a year query parameter. An empty string yields the current year.
func ParseYear(yearStr string) (*Year, error) {
	if yearStr == "" {
		return &Year{value: time.Now().Year()}, nil
	}
	y, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, NewValidationError("invalid year parameter: must be an integer")
	}
	return NewYear(y)
}

// Int returns the year.
func (y *Year) Int() int {
	return y.value
}

// Locale represents a supported locale value object.
type Locale struct {
	value string
}

// NewLocale parses a BCP 47 tag and maps it onto one of the supported base languages.
// "ja-JP" and "zh-Hans" are accepted as "ja" and "zh".
func NewLocale(localeStr string) (*Locale, error) {
	localeStr = strings.TrimSpace(localeStr)
	if localeStr == "" {
		return &Locale{value: DefaultLocale}, nil
	}

	tag, err := language.Parse(localeStr)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid locale %q", localeStr))
	}
	base, _ := tag.Base()
	for _, l := range Locales {
		if base.String() == l {
			return &Locale{value: l}, nil
		}
	}
	return nil, NewValidationError(fmt.Sprintf("unsupported locale %q (supported: %s)", localeStr, strings.Join(Locales, ", ")))
}

// String returns the locale code.
func (l *Locale) String() string {
	return l.value
}

// ParseLegendVisibility parses the legend toggle. An empty string means visible.
func ParseLegendVisibility(legendStr string) (bool, error) {
	if legendStr == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(legendStr)
	if err != nil {
		return false, NewValidationError("invalid legend parameter: must be true or false")
	}
	return v, nil
}

// PaletteName represents a palette variant name value object.
// Whether the name exists is decided by the palette registry.
type PaletteName struct {
	value string
}

// NewPaletteName creates a palette name; empty input selects the default coloring.
func NewPaletteName(name string) *PaletteName {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPaletteName
	}
	return &PaletteName{value: name}
}

// String returns the palette name.
func (p *PaletteName) String() string {
	return p.value
}

// IsDefault reports whether the built-in coloring is selected.
func (p *PaletteName) IsDefault() bool {
	return p.value == DefaultPaletteName
}

// ParseMonth parses a 1-based month number. An empty string yields January.
func ParseMonth(monthStr string) (time.Month, error) {
	if monthStr == "" {
		return time.January, nil
	}
	m, err := strconv.Atoi(monthStr)
	if err != nil || m < 1 || m > 12 {
		return 0, NewValidationError("invalid month parameter: must be between 1 and 12")
	}
	return time.Month(m), nil
}
