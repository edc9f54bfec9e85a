package lyrics

import (
	"regexp"
	"strings"
)

var (
	// languagePrefixPattern matches bare ISO-ish language codes like "en"
	// or "fra", used to detect "xx||" prefixes left by translation sites.
	languagePrefixPattern = regexp.MustCompile(`(?i)^[a-z]{2,3}$`)
	inlineLanguagePattern = regexp.MustCompile(`(?i)^\W*[a-z]{2,3}\|\|`)
)

// boilerplateMarkers flag scraper noise that is dropped line by line.
var boilerplateMarkers = []string{
	"contributors",
	"translations",
	"paroles de la chanson",
}

// promoMarker starts the trailing promo block some pages append; everything
// from this line on is discarded.
const promoMarker = "you might also like"

// Clean strips scraper artifacts from raw lyric text: "xx||" language
// prefixes, contributor/translation boilerplate lines, and the trailing
// "you might also like" promo block. Leading and trailing blank lines are
// trimmed, interior blank lines are kept. Clean is idempotent.
func Clean(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if prefix, rest, found := strings.Cut(line, "||"); found {
			if languagePrefixPattern.MatchString(strings.TrimSpace(prefix)) {
				line = strings.TrimSpace(rest)
			}
		}
		// The inline form also catches a prefix behind punctuation or
		// behind another prefix the cut above already removed.
		line = strings.TrimSpace(inlineLanguagePattern.ReplaceAllString(line, ""))

		lower := strings.ToLower(line)
		if containsAny(lower, boilerplateMarkers) {
			continue
		}
		if strings.HasPrefix(lower, promoMarker) {
			break
		}
		kept = append(kept, line)
	}

	start := 0
	for start < len(kept) && kept[start] == "" {
		start++
	}
	end := len(kept)
	for end > start && kept[end-1] == "" {
		end--
	}
	return strings.Join(kept[start:end], "\n")
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
