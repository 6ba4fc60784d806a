package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"recruitdesk/internal/types"
)

var (
	// "distrib-\nuted" style hyphenation from PDF line wrapping
	hyphenBreakRe = regexp.MustCompile(`(\p{L})-[ \t]*\n[ \t]*(\p{L})`)
	spaceRunRe    = regexp.MustCompile(`[ \t]{2,}`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans whitespace and line-wrapping artifacts left by PDF text
// extraction without altering the words themselves. Line structure is
// preserved so Segment can still see headings.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == '\r':
			// swallowed, the paired \n carries the break
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	s := hyphenBreakRe.ReplaceAllString(b.String(), "$1$2")
	s = spaceRunRe.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	s = strings.Join(lines, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// headingCues maps heading keywords to the section they open. Order matters:
// more specific cue sets are checked first so "technical skills" never lands
// in experience via the bare "experience" cue.
var headingCues = []struct {
	section string
	cues    []string
}{
	{types.SectionSkills, []string{
		"skills", "technical skills", "key skills", "core competencies",
		"technologies", "tech stack", "tools",
	}},
	{types.SectionEducation, []string{
		"education", "academic background", "academics", "qualifications",
		"certifications",
	}},
	{types.SectionExperience, []string{
		"experience", "work experience", "professional experience",
		"employment", "employment history", "work history", "projects",
	}},
}

// headingSection reports whether a line is a section heading and which
// section it opens.
func headingSection(line string) (string, bool) {
	trimmed := strings.ToLower(strings.Trim(line, " \t:*#•·-_"))
	if trimmed == "" || len(trimmed) > 40 {
		return "", false
	}
	for _, hc := range headingCues {
		for _, cue := range hc.cues {
			if trimmed == cue || strings.HasPrefix(trimmed, cue+" ") || strings.HasPrefix(trimmed, cue+":") {
				return hc.section, true
			}
		}
	}
	return "", false
}

// Segment partitions résumé text into the fixed section set on heading cues.
// Lines before any heading, and lines under unrecognized headings, fold into
// the most recent section, defaulting to experience. Every non-blank line
// lands in exactly one section; empty input yields all-empty sections.
func Segment(text string) types.Sections {
	var out types.Sections
	if strings.TrimSpace(text) == "" {
		return out
	}

	bufs := map[string]*strings.Builder{
		types.SectionSkills:     {},
		types.SectionExperience: {},
		types.SectionEducation:  {},
	}

	current := types.SectionExperience
	for _, line := range strings.Split(text, "\n") {
		if sec, ok := headingSection(line); ok {
			current = sec
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		b := bufs[current]
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}

	out.Skills = bufs[types.SectionSkills].String()
	out.Experience = bufs[types.SectionExperience].String()
	out.Education = bufs[types.SectionEducation].String()
	return out
}
