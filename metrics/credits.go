package metrics

import (
	"regexp"
	"strings"
)

var featuringWord = regexp.MustCompile(`(?i)\s+(featuring|feat\.?|ft\.?)\s+`)

// LeadArtist keeps only the lead artist of a credit like
// "Drake Featuring Future".
func LeadArtist(credit string) string {
	credit = strings.TrimSpace(credit)
	if loc := featuringWord.FindStringIndex(credit); loc != nil {
		credit = credit[:loc[0]]
	}
	return strings.TrimSpace(credit)
}

// FlattenCredit replaces featuring keywords with a space so every credited
// artist stays in a search query.
func FlattenCredit(credit string) string {
	return strings.TrimSpace(featuringWord.ReplaceAllString(credit, " "))
}
