package match

import (
	"reflect"
	"testing"
)

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name         string
		jobSkills    []string
		resumeSkills []string
		wantMatched  []string
		wantMissing  []string
	}{
		{
			name:         "full match",
			jobSkills:    []string{"aws", "docker", "python"},
			resumeSkills: []string{"aws", "docker", "go", "python"},
			wantMatched:  []string{"aws", "docker", "python"},
			wantMissing:  []string{},
		},
		{
			name:         "partial match",
			jobSkills:    []string{"aws", "docker", "python"},
			resumeSkills: []string{"python"},
			wantMatched:  []string{"python"},
			wantMissing:  []string{"aws", "docker"},
		},
		{
			name:         "no match",
			jobSkills:    []string{"rust"},
			resumeSkills: []string{"python"},
			wantMatched:  []string{},
			wantMissing:  []string{"rust"},
		},
		{
			name:         "empty job skills",
			jobSkills:    []string{},
			resumeSkills: []string{"python"},
			wantMatched:  []string{},
			wantMissing:  []string{},
		},
		{
			name:         "empty resume skills",
			jobSkills:    []string{"go"},
			resumeSkills: []string{},
			wantMatched:  []string{},
			wantMissing:  []string{"go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, missing := SplitSkills(tt.jobSkills, tt.resumeSkills)
			if !reflect.DeepEqual(matched, tt.wantMatched) {
				t.Errorf("matched = %v, expected %v", matched, tt.wantMatched)
			}
			if !reflect.DeepEqual(missing, tt.wantMissing) {
				t.Errorf("missing = %v, expected %v", missing, tt.wantMissing)
			}

			// matched and missing partition the job skill set
			if len(matched)+len(missing) != len(tt.jobSkills) {
				t.Errorf("partition broken: %d matched + %d missing != %d required",
					len(matched), len(missing), len(tt.jobSkills))
			}
		})
	}
}

func TestSkillOverlap(t *testing.T) {
	tests := []struct {
		name          string
		matchedCount  int
		requiredCount int
		expected      float64
	}{
		{"empty requirement is no penalty", 0, 0, 1.0},
		{"full coverage", 3, 3, 1.0},
		{"half coverage", 2, 4, 0.5},
		{"no coverage", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkillOverlap(tt.matchedCount, tt.requiredCount); got != tt.expected {
				t.Errorf("SkillOverlap(%d, %d) = %v, expected %v",
					tt.matchedCount, tt.requiredCount, got, tt.expected)
			}
		})
	}
}

func TestLexicalOverlap(t *testing.T) {
	tests := []struct {
		name       string
		jobText    string
		resumeText string
		expected   float64
	}{
		{
			name:       "empty job text",
			jobText:    "",
			resumeText: "python developer",
			expected:   0,
		},
		{
			name:       "stopwords only in job",
			jobText:    "the and of with",
			resumeText: "python developer",
			expected:   0,
		},
		{
			name:       "identical text",
			jobText:    "python backend developer",
			resumeText: "python backend developer",
			expected:   1.0,
		},
		{
			name:       "case insensitive",
			jobText:    "Python Developer",
			resumeText: "python developer",
			expected:   1.0,
		},
		{
			name:       "half shared",
			jobText:    "python developer",
			resumeText: "python tester",
			expected:   0.5,
		},
		{
			name:       "stopwords do not count",
			jobText:    "the python developer",
			resumeText: "a python developer",
			expected:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LexicalOverlap(tt.jobText, tt.resumeText); got != tt.expected {
				t.Errorf("LexicalOverlap = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestKeywordScore(t *testing.T) {
	tests := []struct {
		name           string
		skillOverlap   float64
		lexicalOverlap float64
		expected       float64
	}{
		{"no overlap", 0, 0, 0},
		{"full overlap", 1, 1, 100},
		{"skills only", 1, 0, 70},
		{"lexical only", 0, 1, 30},
		{"blend rounds", 0.6667, 0.25, 54.17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeywordScore(tt.skillOverlap, tt.lexicalOverlap); got != tt.expected {
				t.Errorf("KeywordScore(%v, %v) = %v, expected %v",
					tt.skillOverlap, tt.lexicalOverlap, got, tt.expected)
			}
		})
	}
}
