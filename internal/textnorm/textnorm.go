// Package textnorm folds free text into a canonical ASCII form so that
// Vietnamese queries match with or without diacritics.
package textnorm

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// synonyms maps spelling/spacing variants to canonical tokens. Keys and
// values are already in normalized form, and no value contains a key as a
// whole word, which keeps Normalize idempotent.
var synonyms = map[string]string{
	"dtdd":               "dien thoai",
	"smartphone":         "dien thoai",
	"dien thoai di dong": "dien thoai",
	"may tinh xach tay":  "laptop",
	"may vi tinh":        "may tinh",
	"tv":                 "tivi",
	"ti vi":              "tivi",
	"television":         "tivi",
	"headphone":          "tai nghe",
	"earphone":           "tai nghe",
	"tai nghe khong day": "tai nghe bluetooth",
	"sac du phong":       "pin du phong",
	"dong ho deo tay":    "dong ho",
}

// variantKeys holds synonym keys sorted longest-first so multi-word variants
// fold before their sub-phrases.
var variantKeys = sortedKeys()

func sortedKeys() []string {
	keys := make([]string, 0, len(synonyms))
	for k := range synonyms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// stripMarks removes combining diacritical marks after NFD decomposition.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips Vietnamese diacritics, collapses punctuation
// and whitespace, and folds known synonym variants to canonical tokens.
// Total: any input returns a string, possibly empty.
func Normalize(text string) string {
	s := strings.ToLower(text)

	// đ does not decompose under NFD; map it explicitly.
	s = strings.NewReplacer("đ", "d", "Đ", "d").Replace(s)

	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	s = strings.Join(strings.Fields(b.String()), " ")

	return foldSynonyms(s)
}

// foldSynonyms applies the variant table: a wholesale replacement when the
// entire string equals a variant key, otherwise whole-word replacement of
// each key occurrence.
func foldSynonyms(s string) string {
	if s == "" {
		return s
	}
	if canon, ok := synonyms[s]; ok {
		return canon
	}
	padded := " " + s + " "
	for _, key := range variantKeys {
		from, to := " "+key+" ", " "+synonyms[key]+" "
		// Repeat until stable: ReplaceAll skips back-to-back occurrences
		// that share a boundary space.
		for {
			next := strings.ReplaceAll(padded, from, to)
			if next == padded {
				break
			}
			padded = next
		}
	}
	return strings.TrimSpace(padded)
}
