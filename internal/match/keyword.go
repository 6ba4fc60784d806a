package match

import (
	"regexp"
	"strings"
)

// stopwords filtered out of the lexical overlap term. Skill tokens are
// matched separately against the lexicon, so this list only needs to cover
// connective vocabulary.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "in": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "or": true, "our": true,
	"that": true, "the": true, "their": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "will": true, "with": true,
	"you": true, "your": true, "they": true, "them": true, "he": true,
	"she": true, "his": true, "her": true, "not": true, "no": true,
	"all": true, "any": true, "can": true, "who": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "would": true,
	"should": true, "could": true, "than": true, "then": true, "there": true,
	"these": true, "those": true, "into": true, "about": true, "also": true,
	"been": true, "being": true, "both": true, "each": true, "more": true,
	"most": true, "other": true, "some": true, "such": true, "over": true,
	"under": true, "per": true, "via": true, "etc": true,
}

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// significantTokens returns the stopword-filtered lowercase token set of a
// text. Single-character tokens carry no lexical signal and are dropped.
func significantTokens(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(tok) < 2 || stopwords[tok] {
			continue
		}
		tokens[tok] = true
	}
	return tokens
}

// SplitSkills partitions the job's required skills into matched and missing
// against the résumé's skill set. Inputs are assumed normalized and sorted;
// outputs preserve that order and are never nil.
func SplitSkills(jobSkills, resumeSkills []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}

	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[s] = true
	}

	for _, s := range jobSkills {
		if have[s] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

// SkillOverlap is |matched| / |required|. An empty requirement set means no
// penalty: overlap is 1.0.
func SkillOverlap(matchedCount, requiredCount int) float64 {
	if requiredCount == 0 {
		return 1.0
	}
	return float64(matchedCount) / float64(requiredCount)
}

// LexicalOverlap measures shared significant tokens between job and résumé
// text, as a softer signal when the skill lexicon misses domain terms.
// Returns |shared| / |job tokens|, 0 when the job has no significant tokens.
func LexicalOverlap(jobText, resumeText string) float64 {
	jobTokens := significantTokens(jobText)
	if len(jobTokens) == 0 {
		return 0
	}

	resumeTokens := significantTokens(resumeText)
	shared := 0
	for tok := range jobTokens {
		if resumeTokens[tok] {
			shared++
		}
	}
	return float64(shared) / float64(len(jobTokens))
}

// KeywordScore blends skill overlap and lexical overlap into a 0-100 score.
func KeywordScore(skillOverlap, lexicalOverlap float64) float64 {
	return Round2(100 * (skillOverlapWeight*skillOverlap + lexicalOverlapWeight*lexicalOverlap))
}
