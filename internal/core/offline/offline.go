// Package offline provides the deterministic network-free VIN decoder
// It knows only what the standard encodes in the VIN itself: the
// manufacturer behind the WMI and the candidate model years behind the
// single-character year code. Model, trim, and the rest are never
// inferable offline
package offline

import "vindex/internal/core/vin"

// Result is the raw table lookup outcome
// Year is the earliest candidate, zero when the code is unknown
type Result struct {
	WMI            string
	Brand          string
	Year           int
	YearCandidates []int
}

// Sufficient reports whether the lookup produced anything usable
func (r Result) Sufficient() bool {
	return r.Brand != "" || len(r.YearCandidates) > 0
}

// Decode looks up the WMI and model-year tables for a normalized VIN
// Pure and deterministic: equal input yields equal output
func Decode(v string) Result {
	r := Result{WMI: vin.WMI(v)}
	r.Brand = wmiBrands[r.WMI]
	if code := vin.YearCode(v); code != 0 {
		r.YearCandidates = YearsForCode(code)
	}
	if len(r.YearCandidates) > 0 {
		// candidates are ascending; the earlier era wins the primary slot,
		// callers see both and can resolve with external context
		r.Year = r.YearCandidates[0]
	}
	return r
}

// yearAlphabet is the 30-code cycle of ISO 3779 model year characters
// letters skip I O Q U Z, digits cover 1-9
const yearAlphabet = "ABCDEFGHJKLMNPRSTVWXY123456789"

// year tables for the two eras the single character can denote
var (
	yearsFirstEra  = buildYearTable(1980) // 1980-2009
	yearsSecondEra = buildYearTable(2010) // 2010-2039
)

func buildYearTable(base int) map[byte]int {
	m := make(map[byte]int, len(yearAlphabet))
	for i := 0; i < len(yearAlphabet); i++ {
		m[yearAlphabet[i]] = base + i
	}
	return m
}

// YearsForCode returns every model year the code can denote, ascending
// Nil when the code is not a valid year character
func YearsForCode(code byte) []int {
	var out []int
	if y, ok := yearsFirstEra[code]; ok {
		out = append(out, y)
	}
	if y, ok := yearsSecondEra[code]; ok {
		out = append(out, y)
	}
	return out
}
