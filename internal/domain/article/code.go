package article

import (
	"strconv"
	"strings"

	"github.com/tecpap/backend/internal/domain/shared"
)

var errEmptyCode = shared.NewDomainError("INVALID_CODE", "Article code cannot be empty")

// Attributes holds the structured description of an article code.
// Zero values mean "not specified": empty PaperType, zero Grammage or
// Laize, empty Supplier.
type Attributes struct {
	PaperType PaperType `json:"paper_type,omitempty"`
	Grammage  int       `json:"grammage,omitempty"`
	Laize     int       `json:"laize,omitempty"`
	Supplier  string    `json:"supplier,omitempty"`
}

// Encode builds the canonical article code for a set of attributes:
// [TYPE][GRAMMAGE]L[LAIZE][SUPPLIER], e.g. KB100L28MON.
// Missing paper type encodes as the unbleached default, missing grammage
// as 80; laize and supplier segments are omitted entirely when absent.
// A supplier that matches no table keyword is carried verbatim so that
// decode/encode round trips preserve unknown trailing segments.
func Encode(attrs Attributes) string {
	typeCode := codeNatural
	if attrs.PaperType != "" {
		if code, ok := paperCodeFromText(string(attrs.PaperType)); ok {
			typeCode = code
		}
	}

	grammage := attrs.Grammage
	if grammage == 0 {
		grammage = DefaultGrammage
	}

	var b strings.Builder
	b.WriteString(typeCode)
	b.WriteString(strconv.Itoa(grammage))
	if attrs.Laize > 0 {
		b.WriteByte('L')
		b.WriteString(strconv.Itoa(attrs.Laize))
	}
	if attrs.Supplier != "" {
		if code, ok := supplierCodeFromText(attrs.Supplier); ok {
			b.WriteString(code)
		} else {
			b.WriteString(attrs.Supplier)
		}
	}
	return b.String()
}

// Decode parses an article code back into its attributes. Unknown two-letter
// prefixes leave the paper type unset and the whole string is parsed for
// digits from the start. A trailing segment that matches no supplier code is
// kept verbatim in Supplier, preserving round trips for ad hoc codes.
func Decode(code string) (Attributes, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Attributes{}, errEmptyCode
	}

	var attrs Attributes
	rest := code

	if paperType, ok := paperTypeFromCode(prefix2(rest)); ok {
		attrs.PaperType = paperType
		rest = rest[2:]
	}

	digits := leadingDigits(rest)
	if digits != "" {
		grammage, err := strconv.Atoi(digits)
		if err == nil {
			attrs.Grammage = grammage
		}
		rest = rest[len(digits):]
	}

	if strings.HasPrefix(rest, "L") {
		laizeDigits := leadingDigits(rest[1:])
		if laizeDigits != "" {
			laize, err := strconv.Atoi(laizeDigits)
			if err == nil {
				attrs.Laize = laize
			}
			rest = rest[1+len(laizeDigits):]
		}
	}

	if rest != "" {
		if name, ok := supplierNameFromCode(rest); ok {
			attrs.Supplier = name
		} else {
			attrs.Supplier = rest
		}
	}

	return attrs, nil
}

// DefaultCode is the encoding of an empty attribute set: the unbleached
// prefix plus the default grammage.
func DefaultCode() string {
	return Encode(Attributes{})
}

// IsBareDefault reports whether a code is exactly the all-default encoding,
// i.e. it carries no real attribute.
func IsBareDefault(code string) bool {
	return code == DefaultCode()
}

func prefix2(s string) string {
	if len(s) < 2 {
		return ""
	}
	return s[:2]
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
