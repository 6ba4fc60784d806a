package extract

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// maxPlausibleYears caps the experience estimate; longer spans are taken as
// parsing noise, not careers.
const maxPlausibleYears = 50

// Pipeline is the compiled extraction pipeline: skill lexicon plus
// experience patterns. It is read-only after construction and safe for
// concurrent use.
type Pipeline struct {
	singles map[string]string
	phrases []phraseMatcher

	yearsPhraseRe *regexp.Regexp
	yearRangeRe   *regexp.Regexp
}

type phraseMatcher struct {
	canonical string
	re        *regexp.Regexp
}

// tokenRe keeps +, # and interior dots so "c++", "c#" and "node.js" survive
// tokenization intact.
var tokenRe = regexp.MustCompile(`[a-z0-9.][a-z0-9+#./-]*`)

var (
	loadOnce sync.Once
	loaded   *Pipeline
)

// Load compiles the process-wide pipeline exactly once and returns it.
// Extra lexicon terms are honored only on the first call; later callers get
// the already-compiled instance.
func Load(extraSkills []string) *Pipeline {
	loadOnce.Do(func() {
		loaded = NewPipeline(extraSkills)
	})
	return loaded
}

// NewPipeline compiles a fresh pipeline. Exposed for tests; production code
// goes through Load.
func NewPipeline(extraSkills []string) *Pipeline {
	p := &Pipeline{
		singles:       make(map[string]string),
		yearsPhraseRe: regexp.MustCompile(`(\d{1,2})(?:\.\d+)?\s*\+?\s*(?:years?|yrs?)\b`),
		yearRangeRe:   regexp.MustCompile(`\b((?:19|20)\d{2})\s*(?:-|–|—|to|until)\s*((?:19|20)\d{2}|present|current|now|today)\b`),
	}

	terms := make([]string, 0, len(defaultLexicon)+len(extraSkills))
	terms = append(terms, defaultLexicon...)
	terms = append(terms, extraSkills...)

	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if strings.ContainsRune(term, ' ') {
			p.phrases = append(p.phrases, phraseMatcher{
				canonical: term,
				re:        regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`),
			})
			continue
		}
		p.singles[term] = term
	}

	return p
}

// Skills returns the case-normalized, deduplicated, sorted skill tokens
// found in text. Identical input always yields an identical result.
func (p *Pipeline) Skills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)

	for _, tok := range tokenRe.FindAllString(lower, -1) {
		tok = strings.TrimRight(tok, "./-")
		if canonical, ok := p.singles[tok]; ok {
			seen[canonical] = true
		}
	}
	for _, pm := range p.phrases {
		if pm.re.MatchString(lower) {
			seen[pm.canonical] = true
		}
	}

	skills := make([]string, 0, len(seen))
	for s := range seen {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// YearsOfExperience estimates experience from explicit "N years" phrases and
// year ranges, taking the maximum plausible span. Returns 0 when no signal
// is found.
func (p *Pipeline) YearsOfExperience(experienceText string) float64 {
	if strings.TrimSpace(experienceText) == "" {
		return 0
	}

	lower := strings.ToLower(experienceText)
	best := 0.0

	for _, m := range p.yearsPhraseRe.FindAllStringSubmatch(lower, -1) {
		if years := parseFloat(m[1]); years > best {
			best = years
		}
	}

	currentYear := time.Now().Year()
	for _, m := range p.yearRangeRe.FindAllStringSubmatch(lower, -1) {
		start := parseInt(m[1])
		end := currentYear
		switch m[2] {
		case "present", "current", "now", "today":
		default:
			end = parseInt(m[2])
		}
		if span := float64(end - start); span > best && span <= maxPlausibleYears {
			best = span
		}
	}

	if best > maxPlausibleYears {
		best = maxPlausibleYears
	}
	return best
}

func parseInt(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func parseFloat(s string) float64 {
	return float64(parseInt(s))
}
