package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"recruitdesk/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "RankOutput", &RankTextFormatter{})
	registry.RegisterFormatter("markdown", "RankOutput", &RankMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.RankOutput:
		return "RankOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// RankTextFormatter handles text formatting for ranking results
type RankTextFormatter struct{}

func (rtf *RankTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RankOutput)
	if !ok {
		return "", fmt.Errorf("expected RankOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME RANKING ===\n\n")
	output.WriteString(fmt.Sprintf("Resumes submitted: %d\n", result.TotalResumes))
	output.WriteString(fmt.Sprintf("Resumes ranked:    %d\n\n", len(result.RankedResumes)))

	for i, r := range result.RankedResumes {
		output.WriteString(fmt.Sprintf("%d. %s - %.2f%%\n", i+1, r.Filename, r.MatchPercentage))
		output.WriteString(fmt.Sprintf("   Years of experience: %.1f\n", r.YearsOfExperience))
		output.WriteString(fmt.Sprintf("   Semantic score: %.2f, Keyword score: %.2f\n",
			r.MatchDetails.SemanticScore, r.MatchDetails.KeywordScore))

		for _, key := range types.SectionKeys() {
			output.WriteString(fmt.Sprintf("   Section %-10s %.2f\n", key+":", r.MatchDetails.SectionBreakdown[key]))
		}

		if len(r.MatchDetails.MatchedSkills) > 0 {
			output.WriteString("   Matched skills: ")
			output.WriteString(strings.Join(r.MatchDetails.MatchedSkills, ", "))
			output.WriteString("\n")
		}
		if len(r.MatchDetails.MissingSkills) > 0 {
			output.WriteString("   Missing skills: ")
			output.WriteString(strings.Join(r.MatchDetails.MissingSkills, ", "))
			output.WriteString("\n")
		}
		for _, reason := range r.MatchDetails.MatchReasons {
			output.WriteString(fmt.Sprintf("   - %s\n", reason))
		}
		output.WriteString("   Summary: ")
		output.WriteString(r.Summary)
		output.WriteString("\n\n")
	}

	if len(result.RankedResumes) == 0 {
		output.WriteString("No resumes could be ranked.\n")
	}

	return output.String(), nil
}

func (rtf *RankTextFormatter) SupportedType() string {
	return "RankOutput"
}

// RankMarkdownFormatter handles markdown formatting for ranking results
type RankMarkdownFormatter struct{}

func (rmf *RankMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RankOutput)
	if !ok {
		return "", fmt.Errorf("expected RankOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Ranking\n\n")
	output.WriteString(fmt.Sprintf("**Resumes submitted:** %d\n\n", result.TotalResumes))
	output.WriteString(fmt.Sprintf("**Resumes ranked:** %d\n\n", len(result.RankedResumes)))

	for i, r := range result.RankedResumes {
		output.WriteString(fmt.Sprintf("## %d. %s - %.2f%%\n\n", i+1, r.Filename, r.MatchPercentage))
		output.WriteString(fmt.Sprintf("**Years of experience:** %.1f\n\n", r.YearsOfExperience))
		output.WriteString(fmt.Sprintf("**Semantic score:** %.2f | **Keyword score:** %.2f\n\n",
			r.MatchDetails.SemanticScore, r.MatchDetails.KeywordScore))

		output.WriteString("### Section Breakdown\n\n")
		output.WriteString("| Section | Score |\n")
		output.WriteString("|---------|-------|\n")
		for _, key := range types.SectionKeys() {
			output.WriteString(fmt.Sprintf("| %s | %.2f |\n", key, r.MatchDetails.SectionBreakdown[key]))
		}
		output.WriteString("\n")

		if len(r.MatchDetails.MatchedSkills) > 0 {
			output.WriteString("**Matched skills:** ")
			output.WriteString(strings.Join(r.MatchDetails.MatchedSkills, ", "))
			output.WriteString("\n\n")
		}
		if len(r.MatchDetails.MissingSkills) > 0 {
			output.WriteString("**Missing skills:** ")
			output.WriteString(strings.Join(r.MatchDetails.MissingSkills, ", "))
			output.WriteString("\n\n")
		}
		if len(r.MatchDetails.MatchReasons) > 0 {
			output.WriteString("### Match Reasons\n\n")
			for _, reason := range r.MatchDetails.MatchReasons {
				output.WriteString(fmt.Sprintf("- %s\n", reason))
			}
			output.WriteString("\n")
		}

		output.WriteString(r.Summary)
		output.WriteString("\n\n")
	}

	if len(result.RankedResumes) == 0 {
		output.WriteString("No resumes could be ranked.\n")
	}

	return output.String(), nil
}

func (rmf *RankMarkdownFormatter) SupportedType() string {
	return "RankOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
