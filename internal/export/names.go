package export

import (
	"regexp"
	"strings"
	"time"
)

const (
	maxFilenameLength  = 100
	sheetNamePrefixLen = 28
	// MaxSheetNameLength is the spreadsheet limit for sheet names.
	MaxSheetNameLength = 31
)

var (
	illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespace           = regexp.MustCompile(`[\s\v\p{Z}]+`)
	repeatedUnderscores  = regexp.MustCompile(`_{2,}`)
	illegalSheetChars    = regexp.MustCompile(`[\\/*?\[\]:]`)
)

// SanitizeFilename strips characters that are illegal in file names, turns
// whitespace runs into single underscores, collapses repeated underscores and
// caps the result at 100 characters. It is idempotent.
func SanitizeFilename(name string) string {
	name = illegalFilenameChars.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(name, "_")
	name = repeatedUnderscores.ReplaceAllString(name, "_")
	return truncateRunes(name, maxFilenameLength)
}

// SheetName derives a workbook sheet name: the first 28 characters with
// characters forbidden in sheet names removed.
func SheetName(name string) string {
	name = illegalSheetChars.ReplaceAllString(truncateRunes(name, sheetNamePrefixLen), "")
	name = strings.Trim(name, "'")
	if strings.TrimSpace(name) == "" {
		return "Sayfa"
	}
	return name
}

// OutletReportFilename is "<Outlet>_Rapor_<Date>.<ext>".
func OutletReportFilename(outletName string, at time.Time, ext string) string {
	return SanitizeFilename(outletName) + "_Rapor_" + DateSlug(at) + "." + ext
}

// MenuFilename is "<Outlet>_Menu_<Date>.<ext>".
func MenuFilename(outletName string, at time.Time, ext string) string {
	return SanitizeFilename(outletName) + "_Menu_" + DateSlug(at) + "." + ext
}

// RecipeFilename is "<RecipeNo>_<Name>.<ext>".
func RecipeFilename(recipeNo, name, ext string) string {
	return SanitizeFilename(recipeNo) + "_" + SanitizeFilename(name) + "." + ext
}

// IngredientLibraryFilename is "Malzeme_Kutuphanesi_<Date>.<ext>".
func IngredientLibraryFilename(at time.Time, ext string) string {
	return "Malzeme_Kutuphanesi_" + DateSlug(at) + "." + ext
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
