// Package names recognizes catalog identifiers and turns them into the
// canonical keys used by the catalog store.
package names

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mohammed-shakir/ongc/internal/core/model"
)

// Catalog tags, in match priority order.
const (
	NGCIC     = "NGC|IC"
	Messier   = "Messier"
	Barnard   = "Barnard"
	Caldwell  = "Caldwell"
	Collinder = "Collinder"
	ESO       = "ESO"
	Harvard   = "Harvard"
	Hickson   = "Hickson"
	LBN       = "LBN"
	Melotte   = "Melotte"
	MWSC      = "MWSC"
	PGC       = "PGC"
	UGC       = "UGC"
)

type pattern struct {
	tag   string
	re    *regexp.Regexp
	canon func(m []string) string
}

// patterns is tried top to bottom; the first full match wins.
var patterns = []pattern{
	{NGCIC, regexp.MustCompile(`^(NGC|IC) ?(\d{1,4}) ?(?:NED(\d{1,2})|([A-Z]{1,2}))?$`), canonNGCIC},
	{Messier, regexp.MustCompile(`^M ?(\d{1,3})$`), canonMessier},
	{Barnard, regexp.MustCompile(`^(B) ?(\d{1,3})$`), padded(3)},
	{Caldwell, regexp.MustCompile(`^(C) ?(\d{1,3})$`), padded(3)},
	{Collinder, regexp.MustCompile(`^(CL) ?(\d{1,3})$`), padded(3)},
	{ESO, regexp.MustCompile(`^ESO ?(\d{1,3})-(\d{1,3})$`), canonESO},
	{Harvard, regexp.MustCompile(`^(H) ?(\d{1,2})$`), padded(2)},
	{Hickson, regexp.MustCompile(`^(HCG) ?(\d{1,3})$`), padded(3)},
	{LBN, regexp.MustCompile(`^(LBN) ?(\d{1,3})$`), padded(3)},
	{Melotte, regexp.MustCompile(`^(MEL) ?(\d{1,3})$`), padded(3)},
	{MWSC, regexp.MustCompile(`^(MWSC) ?(\d{1,4})$`), padded(4)},
	{PGC, regexp.MustCompile(`^(?:PGC|LEDA) ?(\d{1,6})$`), canonPGC},
	{UGC, regexp.MustCompile(`^(UGC) ?(\d{1,5})$`), padded(5)},
}

// Recognize maps normalized identifier text to its catalog and canonical key.
// Callers pass text through Normalize first.
func Recognize(text string) (model.Identifier, error) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return model.Identifier{Catalog: p.tag, Key: p.canon(m)}, nil
	}
	return model.Identifier{}, &model.UnknownIdentifierError{Text: text}
}

// Parse is Normalize followed by Recognize.
func Parse(text string) (model.Identifier, error) {
	return Recognize(Normalize(text))
}

// Normalize upper-cases the text and collapses ASCII whitespace runs to a
// single space.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	wasWS := false
	for _, r := range strings.ToUpper(s) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			if !wasWS {
				b.WriteByte(' ')
				wasWS = true
			}
			continue
		}
		b.WriteRune(r)
		wasWS = false
	}
	return strings.TrimSpace(b.String())
}

func canonNGCIC(m []string) string {
	base := m[1] + pad(m[2], 4)
	switch {
	case m[3] != "":
		return base + " NED" + pad(m[3], 2)
	case m[4] != "":
		return base + m[4]
	}
	return base
}

func canonMessier(m []string) string {
	n := m[1]
	// M102 is a historical duplicate designation of M101
	if num, _ := strconv.Atoi(n); num == 102 {
		n = "101"
	}
	return pad(n, 3)
}

func canonESO(m []string) string {
	return "ESO" + pad(m[1], 3) + "-" + pad(m[2], 3)
}

func canonPGC(m []string) string {
	return PGC + pad(m[1], 6)
}

func padded(width int) func(m []string) string {
	return func(m []string) string {
		return m[1] + pad(m[2], width)
	}
}

func pad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}
