package lineitem

import (
	"regexp"
	"strings"
	"unicode"
)

// commonTerms is the domain vocabulary fuzzy-corrected against for words
// the misspelling dictionary does not know.
var commonTerms = []string{
	"consultation",
	"consultation charge",
	"doctor fee",
	"investigation",
	"pharmacy",
	"procedure",
	"radiology",
	"laboratory",
	"medication",
	"bed charges",
	"surgery",
	"nursing charges",
	"physiotherapy",
	"medicine",
	"room rent",
	"bed rent",
	"icu",
	"step down icu",
	"bystander room",
}

// knownMisspellings maps recurring OCR reads to their intended words.
var knownMisspellings = map[string]string{
	"cansukation":  "consultation",
	"consuttation": "consultation",
	"cansultation": "consultation",
	"cansutation":  "consultation",
	"consuitation": "consultation",
	"mrant":        "room rent",
	"rant":         "rent",
	"stzp":         "step",
	"tou":          "icu",
	"nersing":      "nursing",
	"nersmg":       "nursing",
}

// phraseCorrections fixes multi-word garbles before per-word correction.
// Order matters: earlier entries may feed later ones.
var phraseCorrections = []struct {
	garble string
	fix    string
}{
	{"m rant stzp down tou", "Room Rent Step Down ICU"},
	{"rr -2-room rant", "RR -2 Room Rent"},
	{"rr -2-stepdown-nursing charge", "RR -2 Stepdown Nursing Charge"},
	{"room rare bystander roan", "Room Rent Bystander Room"},
}

// ignoredPhrases are section headers and page furniture that leak into
// data rows but are never line items.
var ignoredPhrases = map[string]struct{}{
	"room charges":              {},
	"nursing care":              {},
	"laboratory services":       {},
	"consultation":              {},
	"surgery-procedure charges": {},
	"surgery procedure charges": {},
	"page of":                   {},
	"printed on":                {},
	"particulars":               {},
	"amount":                    {},
	"rate":                      {},
	"qty":                       {},
}

const vocabularyCutoff = 0.85

var (
	dateRe      = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	noiseRe     = regexp.MustCompile(`[~_»|—]`)
	strayRe     = regexp.MustCompile(`\s+[^a-zA-Z0-9()]\s+`)
	multiSpace  = regexp.MustCompile(`\s+`)
	lettersOnly = regexp.MustCompile(`[^a-z]+`)
)

// artifactWords are header fragments that bleed into data rows and must
// not survive into item names.
var artifactWords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bparticulars\b`),
	regexp.MustCompile(`(?i)\bdate\b`),
	regexp.MustCompile(`(?i)\baly\b`),
	regexp.MustCompile(`(?i)\bamount\b`),
}

// stripNoise removes embedded dates, stray symbols and isolated
// punctuation from a description and collapses whitespace. It is the
// form row texts take for boilerplate-phrase filtering.
func stripNoise(text string) string {
	text = dateRe.ReplaceAllString(text, "")
	text = noiseRe.ReplaceAllString(text, "")
	text = strayRe.ReplaceAllString(text, " ")
	text = strings.Trim(text, " .,:;-")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// cleanDescription is stripNoise plus removal of header-artifact words
// that leak into data rows; applied to the assembled item description.
func cleanDescription(text string) string {
	text = dateRe.ReplaceAllString(text, "")
	text = noiseRe.ReplaceAllString(text, "")
	text = strayRe.ReplaceAllString(text, " ")
	for _, re := range artifactWords {
		text = re.ReplaceAllString(text, "")
	}
	text = strings.Trim(text, " .,:;-")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// correctSpelling normalizes an item name: phrase-level corrections
// first, then the misspelling dictionary per word, then a fuzzy match
// against the domain vocabulary for unknown words of length >= 4.
// The result is title-cased.
func correctSpelling(text string) string {
	lowered := strings.ToLower(text)
	for _, pc := range phraseCorrections {
		lowered = strings.ReplaceAll(lowered, pc.garble, strings.ToLower(pc.fix))
	}

	var corrected []string
	for _, token := range strings.Fields(lowered) {
		clean := lettersOnly.ReplaceAllString(token, "")
		if fix, ok := knownMisspellings[clean]; ok {
			corrected = append(corrected, fix)
			continue
		}
		if len(clean) >= 4 {
			if term, ok := closestTerm(clean); ok {
				corrected = append(corrected, term)
				continue
			}
		}
		corrected = append(corrected, token)
	}

	return titleCase(strings.TrimSpace(strings.Join(corrected, " ")))
}

// closestTerm finds the best vocabulary match for a word at or above
// vocabularyCutoff, first match winning among equal scores.
func closestTerm(word string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, term := range commonTerms {
		if score := similarity(word, term); score > bestScore {
			bestScore = score
			best = term
		}
	}
	if bestScore >= vocabularyCutoff {
		return best, true
	}
	return "", false
}

// stripTrailingNumbers drops purely-numeric trailing words, the leftover
// quantity and amount fragments misclassified as description text.
func stripTrailingNumbers(text string) string {
	tokens := strings.Fields(text)
	for len(tokens) > 0 && isNumericText(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.TrimSpace(strings.Join(tokens, " "))
}

// titleCase uppercases the first letter of every word, where a word
// boundary is any non-letter rune.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
