package article

import (
	"regexp"
	"strconv"
	"strings"
)

// extractor pairs a pattern with the attribute it fills. The cascades are
// evaluated in order and the first match anywhere in the text wins, which
// keeps extraction reproducible and testable per pattern.
type extractor struct {
	name    string
	pattern *regexp.Regexp
}

// grammageExtractors recognise "100g", "100 gr", "100 gram", "grammage: 100".
var grammageExtractors = []extractor{
	{"plain-g", regexp.MustCompile(`(\d+)\s*g(?:/m2|ram|r)?`)},
	{"gr-suffix", regexp.MustCompile(`(\d+)\s*gr`)},
	{"labelled", regexp.MustCompile(`grammage\s*[:=]?\s*(\d+)`)},
}

// laizeExtractors recognise "laize: 28", "l28", "largeur 28".
var laizeExtractors = []extractor{
	{"labelled", regexp.MustCompile(`laize?\s*[:=]?\s*(\d+)`)},
	{"l-prefix", regexp.MustCompile(`l(\d+)`)},
	{"largeur", regexp.MustCompile(`largeur\s*[:=]?\s*(\d+)`)},
}

// SuggestFromText derives an article code from a free-text product
// description, e.g. "sachets kraft blanchi 80g laize 25 mondi" -> KB80L25MON.
// Attributes that cannot be extracted fall back to Encode's defaults, so an
// unrecognisable description still yields the all-default code.
func SuggestFromText(description string) string {
	return Encode(AttributesFromText(description))
}

// AttributesFromText extracts whatever structured attributes the free text
// carries. Extraction order: paper type keyword, grammage cascade, laize
// cascade, supplier keyword.
func AttributesFromText(description string) Attributes {
	var attrs Attributes
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return attrs
	}

	for _, entry := range paperKeywords {
		if strings.Contains(text, entry.Keyword) {
			paperType, _ := paperTypeFromCode(entry.Code)
			attrs.PaperType = paperType
			break
		}
	}

	if n, ok := firstMatch(grammageExtractors, text); ok {
		attrs.Grammage = n
	}
	if n, ok := firstMatch(laizeExtractors, text); ok {
		attrs.Laize = n
	}

	for _, entry := range supplierTable {
		if strings.Contains(text, entry.Keyword) {
			attrs.Supplier = entry.Name
			break
		}
	}

	return attrs
}

func firstMatch(extractors []extractor, text string) (int, bool) {
	for _, ex := range extractors {
		if m := ex.pattern.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
