package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var dotlessReplacer = strings.NewReplacer("ı", "i", "İ", "I")

// PDFText folds text into the repertoire of the PDF core fonts by removing
// combining marks, so "Şeker Fıstığı" becomes "Seker Fistigi".
func PDFText(value string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, dotlessReplacer.Replace(value))
	if err != nil {
		return value
	}
	return out
}
