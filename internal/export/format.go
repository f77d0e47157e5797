// Package export holds the presentation formatting shared by the report
// generators: tr-TR numbers and dates, file and sheet names, report ids and
// display labels.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySuffix is appended to every formatted amount.
const CurrencySuffix = " TL"

var (
	printer = message.NewPrinter(language.Turkish)

	// Locale separators, read back from the printer: "1.000" and "0,5".
	groupSeparator   = strings.Trim(printer.Sprintf("%d", 1000), "01")
	decimalSeparator = strings.Trim(printer.Sprintf("%.1f", 0.5), "05")

	monthsTR = [...]string{
		"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
		"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
	}
)

// Number formats value with exactly places fraction digits using Turkish
// separators ("1.234,50"). Halves round away from zero. Formatting works on
// the decimal digits, so large values keep full precision.
func Number(value decimal.Decimal, places int) string {
	if places < 0 {
		places = 0
	}
	digits := value.StringFixed(int32(places))
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if strings.Trim(digits, "0.") == "" {
		sign = ""
	}
	integer, fraction, _ := strings.Cut(digits, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteRune(r)
	}
	if fraction != "" {
		b.WriteString(decimalSeparator)
		b.WriteString(fraction)
	}
	return b.String()
}

// Currency formats an optional amount as "1.234,50 TL". A nil amount renders "-".
func Currency(value *decimal.Decimal) string {
	if value == nil {
		return "-"
	}
	return Amount(*value)
}

// Amount formats a known amount as "1.234,50 TL".
func Amount(value decimal.Decimal) string {
	return Number(value, 2) + CurrencySuffix
}

// NullCurrency formats a nullable database amount.
func NullCurrency(value decimal.NullDecimal) string {
	if !value.Valid {
		return "-"
	}
	return Amount(value.Decimal)
}

// Percentage renders "%30,0".
func Percentage(value decimal.Decimal) string {
	return "%" + Number(value, 1)
}

// Date renders the long Turkish form, e.g. "18 Ekim 2026".
func Date(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthsTR[t.Month()-1], t.Year())
}

// DateTime renders the long Turkish form with hour and minute, e.g. "18 Ekim 2026 14:05".
func DateTime(t time.Time) string {
	return fmt.Sprintf("%s %02d:%02d", Date(t), t.Hour(), t.Minute())
}

// DateSlug is Date with whitespace replaced by underscores, for file names.
func DateSlug(t time.Time) string {
	return whitespace.ReplaceAllString(Date(t), "_")
}

// ReportID derives the cosmetic report identifier "RPT-YYYYMMDD-HHMM".
// Two reports generated within the same minute share an id.
func ReportID(t time.Time) string {
	return t.Format("RPT-20060102-1504")
}

// YieldText renders "4 porsiyon".
func YieldText(amount decimal.Decimal, unit string) string {
	return strings.TrimSpace(amount.String() + " " + unit)
}
