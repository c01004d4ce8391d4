package article

// The keyword tables below are fixed design parameters inherited from the
// SAGE X3 article code scheme. Matching iterates the slices in order and
// the first hit wins, so entry order is part of the contract: more specific
// keywords ("kraft blanchi") must precede their generic fallbacks ("kraft").

// PaperType identifies the paper stock of an article.
type PaperType string

const (
	// PaperBleached is bleached kraft ("Kraft Blanchi", code KB).
	PaperBleached PaperType = "Kraft Blanchi"
	// PaperNatural is unbleached kraft ("Kraft Écru", code KE). It is the
	// default when no paper type is known.
	PaperNatural PaperType = "Kraft Écru"
)

const (
	codeBleached = "KB"
	codeNatural  = "KE"

	// DefaultGrammage is assumed when no grammage was extracted (g/m²).
	DefaultGrammage = 80
)

type paperKeyword struct {
	Keyword string
	Code    string
}

// paperKeywords maps description keywords to paper type codes, most
// specific first.
var paperKeywords = []paperKeyword{
	{"kraft blanchi", codeBleached},
	{"kraft ecru", codeNatural},
	{"kraft naturel", codeNatural},
	{"kraft", codeNatural},
	{"blanchi", codeBleached},
	{"ecru", codeNatural},
}

type supplierEntry struct {
	Keyword string
	Code    string
	Name    string
}

// supplierTable maps supplier keywords to their three-letter codes.
var supplierTable = []supplierEntry{
	{"mondi", "MON", "Mondi"},
	{"nordic", "NOR", "Nordic"},
	{"billerud", "BIL", "Billerud"},
	{"smurfit", "SMU", "Smurfit"},
	{"default", "STD", "Default"},
}

// StandardGrammages lists the catalogued grammages (g/m²).
var StandardGrammages = []int{40, 50, 60, 70, 80, 90, 100, 120, 140}

// StandardLaizes lists the catalogued reel widths (cm).
var StandardLaizes = []int{15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50}

func paperTypeFromCode(code string) (PaperType, bool) {
	switch code {
	case codeBleached:
		return PaperBleached, true
	case codeNatural:
		return PaperNatural, true
	}
	return "", false
}

func paperCodeFromText(text string) (string, bool) {
	for _, entry := range paperKeywords {
		if containsFold(text, entry.Keyword) {
			return entry.Code, true
		}
	}
	return "", false
}

func supplierCodeFromText(text string) (string, bool) {
	for _, entry := range supplierTable {
		if containsFold(text, entry.Keyword) {
			return entry.Code, true
		}
	}
	return "", false
}

func supplierNameFromCode(code string) (string, bool) {
	for _, entry := range supplierTable {
		if entry.Code == code {
			return entry.Name, true
		}
	}
	return "", false
}

// SupplierName returns the display name for a catalogued supplier code,
// or the code itself when it is not in the table.
func SupplierName(code string) string {
	if code == "" {
		return ""
	}
	if name, ok := supplierNameFromCode(code); ok {
		return name
	}
	return code
}
