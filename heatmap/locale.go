package heatmap

import (
	"fmt"
	"strings"
	"time"
)

type monthNames struct {
	long  [12]string
	short [12]string
}

var localizedMonths = map[string]monthNames{
	"en": {
		long:  [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		short: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	},
	"tr": {
		long:  [12]string{"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"},
		short: [12]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"},
	},
	"fr": {
		long:  [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		short: [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	},
	"de": {
		long:  [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		short: [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
	},
	"ja": {
		long:  [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
		short: [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
	},
	"zh": {
		long:  [12]string{"一月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "十一月", "十二月"},
		short: [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
	},
}

func monthsFor(locale string) monthNames {
	if m, ok := localizedMonths[locale]; ok {
		return m
	}
	return localizedMonths["en"]
}

// MonthName returns the localized month name; unknown locales fall back to English.
func MonthName(locale string, m time.Month, short bool) string {
	names := monthsFor(locale)
	if short {
		return names.short[m-1]
	}
	return names.long[m-1]
}

// formatDate renders t with a small subset of Luxon-style tokens:
// yyyy, MMMM, MMM, MM, M, dd, d. Other characters are copied as-is.
func formatDate(pattern string, t time.Time, locale string) string {
	tokens := []struct {
		token  string
		render func() string
	}{
		{"yyyy", func() string { return fmt.Sprintf("%04d", t.Year()) }},
		{"MMMM", func() string { return MonthName(locale, t.Month(), false) }},
		{"MMM", func() string { return MonthName(locale, t.Month(), true) }},
		{"MM", func() string { return fmt.Sprintf("%02d", int(t.Month())) }},
		{"M", func() string { return fmt.Sprintf("%d", int(t.Month())) }},
		{"dd", func() string { return fmt.Sprintf("%02d", t.Day()) }},
		{"d", func() string { return fmt.Sprintf("%d", t.Day()) }},
	}

	var sb strings.Builder
	rest := pattern
outer:
	for rest != "" {
		for _, tk := range tokens {
			if strings.HasPrefix(rest, tk.token) {
				sb.WriteString(tk.render())
				rest = rest[len(tk.token):]
				continue outer
			}
		}
		sb.WriteByte(rest[0])
		rest = rest[1:]
	}
	return sb.String()
}
