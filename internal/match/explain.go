package match

import (
	"fmt"
	"strconv"
	"strings"
)

// Reason thresholds. A semantic score at or above semanticReasonFloor reads
// as a meaning-level match; keywordReasonFloor marks strong shared
// terminology.
const (
	semanticReasonFloor = 80.0
	keywordReasonFloor  = 70.0
)

// Reasons derives the ordered match_reasons list. Rules fire independently,
// most significant first; a résumé with no signal yields an empty list, not
// a fabricated one.
func Reasons(semantic, keyword float64, matched, missing []string, requiredCount int) []string {
	reasons := []string{}

	if semantic >= semanticReasonFloor {
		reasons = append(reasons, "High semantic similarity to job description")
	}
	if len(matched) > 0 {
		reasons = append(reasons, "Matched key skills: "+strings.Join(matched, ", "))
	}
	if keyword >= keywordReasonFloor {
		reasons = append(reasons, "Strong overlap in terminology and domain language")
	}
	if len(missing) > 0 && len(matched)*2 < requiredCount {
		reasons = append(reasons, "Caution: covers less than half of the required skills, missing "+strings.Join(missing, ", "))
	}

	return reasons
}

// Summary builds the one-sentence candidate summary from the experience
// estimate and the top matched skills.
func Summary(years float64, matched []string) string {
	top := matched
	if len(top) > 2 {
		top = top[:2]
	}

	switch {
	case years > 0 && len(top) > 0:
		return fmt.Sprintf("Candidate with %s of experience, strongest in %s.", yearsPhrase(years), strings.Join(top, " and "))
	case len(top) > 0:
		return fmt.Sprintf("Candidate with relevant skills in %s.", strings.Join(top, " and "))
	case years > 0:
		return fmt.Sprintf("Candidate with %s of experience.", yearsPhrase(years))
	default:
		return "Candidate profile shows no direct skill match for this role."
	}
}

func yearsPhrase(years float64) string {
	if years == 1 {
		return "1 year"
	}
	return strconv.FormatFloat(years, 'f', -1, 64) + " years"
}
