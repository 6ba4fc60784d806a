package extract

import (
	"reflect"
	"testing"
	"time"
)

func TestSkills(t *testing.T) {
	p := NewPipeline(nil)

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty text",
			input:    "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			input:    "   \n\t ",
			expected: []string{},
		},
		{
			name:     "case normalization and dedup",
			input:    "Python, PYTHON and python again",
			expected: []string{"python"},
		},
		{
			name:     "sorted output",
			input:    "Worked with Docker, AWS and Python daily",
			expected: []string{"aws", "docker", "python"},
		},
		{
			name:     "symbol-bearing tokens",
			input:    "Fluent in C++ and C#, some Node.js",
			expected: []string{"c#", "c++", "node.js"},
		},
		{
			name:     "multiword phrases",
			input:    "Applied machine learning on Spring Boot services",
			expected: []string{"machine learning", "spring", "spring boot"},
		},
		{
			name:     "no partial word matches",
			input:    "gossip pythonic javan",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Skills(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Skills(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSkillsWithExtraLexicon(t *testing.T) {
	p := NewPipeline([]string{"Quantum Annealing", "cobol"})

	got := p.Skills("COBOL maintainer exploring quantum annealing")
	expected := []string{"cobol", "quantum annealing"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Skills with extra lexicon = %v, expected %v", got, expected)
	}
}

func TestSkillsDeterminism(t *testing.T) {
	p := NewPipeline(nil)
	input := "Python, Go, Docker, Kubernetes, machine learning, AWS, PostgreSQL"

	first := p.Skills(input)
	for i := 0; i < 20; i++ {
		if got := p.Skills(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Skills = %v, expected %v", i, got, first)
		}
	}
}

func TestYearsOfExperience(t *testing.T) {
	p := NewPipeline(nil)
	thisYear := time.Now().Year()

	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{
			name:     "no signal returns zero",
			input:    "Backend engineer who ships",
			expected: 0,
		},
		{
			name:     "empty input",
			input:    "",
			expected: 0,
		},
		{
			name:     "explicit years phrase",
			input:    "5 years of backend experience",
			expected: 5,
		},
		{
			name:     "plus years phrase",
			input:    "3+ years with Kubernetes",
			expected: 3,
		},
		{
			name:     "yrs abbreviation",
			input:    "7 yrs in fintech",
			expected: 7,
		},
		{
			name:     "year range",
			input:    "Acme Corp, 2015-2021",
			expected: 6,
		},
		{
			name:     "range to present",
			input:    "Globex, 2020 - present",
			expected: float64(thisYear - 2020),
		},
		{
			name:     "maximum of multiple signals",
			input:    "2 years at Acme, then 2012-2020 at Globex",
			expected: 8,
		},
		{
			name:     "implausible span ignored",
			input:    "1901-1999 archive records",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.YearsOfExperience(tt.input)
			if got != tt.expected {
				t.Errorf("YearsOfExperience(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadReturnsSameInstance(t *testing.T) {
	a := Load(nil)
	b := Load([]string{"ignored-after-first-load"})
	if a != b {
		t.Error("Load returned different instances")
	}
}

func BenchmarkSkills(b *testing.B) {
	p := NewPipeline(nil)
	text := "Senior engineer: Python, Go, Docker, Kubernetes, AWS, Terraform, PostgreSQL, Redis, machine learning, distributed systems, CI/CD"

	for b.Loop() {
		p.Skills(text)
	}
}
