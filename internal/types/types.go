package types

// Section keys used for every résumé. The breakdown map always carries
// exactly these three keys.
const (
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionEducation  = "education"
)

// SectionKeys returns the fixed section key set in canonical order.
func SectionKeys() []string {
	return []string{SectionSkills, SectionExperience, SectionEducation}
}

// Sections holds the partitioned résumé text.
type Sections struct {
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
}

// Get returns the text for a section key, empty string for unknown keys.
func (s Sections) Get(key string) string {
	switch key {
	case SectionSkills:
		return s.Skills
	case SectionExperience:
		return s.Experience
	case SectionEducation:
		return s.Education
	}
	return ""
}

// JobDescription represents the single job posting a batch is ranked against
type JobDescription struct {
	Text           string   `json:"text"`
	RequiredSkills []string `json:"requiredSkills"`
}

// ResumeDocument represents one uploaded résumé after text extraction
type ResumeDocument struct {
	Filename          string    `json:"filename"`
	Text              string    `json:"text"`
	Sections          Sections  `json:"sections"`
	Skills            []string  `json:"skills"`
	YearsOfExperience float64   `json:"yearsOfExperience"`
	Embedding         []float32 `json:"-"`
	UploadIndex       int       `json:"-"`
}

// MatchDetails carries the explainable sub-scores for one résumé
type MatchDetails struct {
	SemanticScore    float64            `json:"semantic_score"`
	KeywordScore     float64            `json:"keyword_score"`
	SectionBreakdown map[string]float64 `json:"section_breakdown"`
	MatchedSkills    []string           `json:"matched_skills"`
	MissingSkills    []string           `json:"missing_skills"`
	MatchReasons     []string           `json:"match_reasons"`
}

// MatchResult is the scored outcome for one résumé
type MatchResult struct {
	Filename          string       `json:"filename"`
	MatchPercentage   float64      `json:"match_percentage"`
	YearsOfExperience float64      `json:"years_of_experience"`
	Summary           string       `json:"summary"`
	MatchDetails      MatchDetails `json:"match_details"`

	// UploadIndex preserves the original upload order for stable tie-breaks.
	// Not part of the wire shape.
	UploadIndex int `json:"-"`
}

// RankOutput is the response for one ranked batch
type RankOutput struct {
	Success       bool          `json:"success"`
	TotalResumes  int           `json:"total_resumes"`
	RankedResumes []MatchResult `json:"ranked_resumes"`
}

// DocumentInput is one raw document handed to the engine: either extracted
// text, or an extraction failure recorded upstream
type DocumentInput struct {
	Filename string
	Text     string
	Err      error
}
