package thumbnail

import "strings"

// maxVariants caps the number of phrasings tried per resolution; each variant
// costs up to two provider calls.
const maxVariants = 4

var majorBrands = []string{
	"apple", "microsoft", "google", "tesla", "jaguar", "ford", "bmw", "mercedes",
}

var automotiveTerms = []string{
	"jaguar", "land rover", "tesla", "ford", "bmw", "mercedes", "toyota", "honda",
}

var consumerTechTerms = []string{
	"iphone", "android", "windows", "chrome", "firefox",
}

// compoundMarques are multi-word brand names that image hosts usually spell as
// one token in file names.
var compoundMarques = []struct{ from, to string }{
	{"land rover", "landrover"},
	{"alfa romeo", "alfaromeo"},
	{"aston martin", "astonmartin"},
	{"rolls royce", "rollsroyce"},
}

// Variants returns up to four distinct phrasings of base in the order they
// should be searched. The first element is always the trimmed base, even when
// it is empty.
func Variants(base string) []string {
	base = strings.TrimSpace(base)
	lower := strings.ToLower(base)

	out := []string{base}
	seen := map[string]bool{base: true}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	if containsAny(lower, majorBrands) {
		if !strings.Contains(lower, "logo") {
			add(base + " logo")
		}
		add(base + " brand")
	}

	if containsAny(lower, automotiveTerms) {
		add(base + " car")
		add(base + " automotive")
		add(collapseMarques(base) + " logo")
	}

	if containsAny(lower, consumerTechTerms) {
		add(base + " device")
		add(base + " technology")
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func collapseMarques(s string) string {
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		// Case folding moved byte offsets; only match the lowercase spelling.
		for _, m := range compoundMarques {
			s = strings.ReplaceAll(s, m.from, m.to)
		}
		return s
	}
	for _, m := range compoundMarques {
		for {
			i := strings.Index(lower, m.from)
			if i < 0 {
				break
			}
			s = s[:i] + m.to + s[i+len(m.from):]
			lower = lower[:i] + m.to + lower[i+len(m.from):]
		}
	}
	return s
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
