package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// accentFolding transliterates the diacritics that show up in fashion brand
// and collection names to plain ASCII.
var accentFolding = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a", "á", "a",
	"ç", "c",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i", "í", "i",
	"ô", "o", "ö", "o", "ó", "o",
	"û", "u", "ü", "u", "ù", "u", "ú", "u",
	"ñ", "n",
	"ß", "ss",
)

// Generate creates a URL-friendly slug from the given name.
//
// Examples:
//   - "Première Étoile" → "premiere-etoile"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = accentFolding.Replace(s)

	// Runs of anything else become single hyphens.
	s = nonAlnum.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
