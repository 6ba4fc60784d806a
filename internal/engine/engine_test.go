package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"recruitdesk/internal/ai"
	"recruitdesk/internal/config"
	"recruitdesk/internal/errors"
	"recruitdesk/internal/types"
)

// stubEmbedder produces deterministic vectors from word counts over a fixed
// vocabulary, so cosine similarity tracks shared vocabulary between texts.
type stubEmbedder struct {
	available bool
	embedErr  error
}

var stubVocabulary = []string{
	"python", "aws", "docker", "backend", "cloud", "services",
	"marketing", "sales", "retail", "customer",
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}

	lower := strings.ToLower(text)
	vector := make([]float32, len(stubVocabulary))
	for i, word := range stubVocabulary {
		vector[i] = float32(strings.Count(lower, word))
	}
	return vector, nil
}

func (s *stubEmbedder) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	if !s.available {
		return &ai.ModelInfo{Name: "stub-model", Available: false, Error: "model offline"}
	}
	return &ai.ModelInfo{Name: "stub-model", Available: true}
}

func (s *stubEmbedder) Close() error { return nil }

func newTestEngine(t *testing.T, embedder ai.Embedder) *Engine {
	t.Helper()

	cfg := &config.Config{
		Engine: config.EngineConfig{
			Workers:      2,
			MaxFiles:     10,
			MinTextChars: 50,
		},
	}
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	return New(embedder, cfg, nil, logger)
}

func readyTestEngine(t *testing.T, embedder ai.Embedder) *Engine {
	t.Helper()

	e := newTestEngine(t, embedder)
	if err := e.CheckReadiness(context.Background()); err != nil {
		t.Fatalf("CheckReadiness failed: %v", err)
	}
	return e
}

const jobText = "Senior backend engineer with strong python, aws and docker experience building cloud services."

const strongResume = "Backend engineer with 8 years of experience. " +
	"Built cloud services on aws with python and docker. " +
	"Shipped backend systems serving millions of requests."

const weakResume = "Retail marketing coordinator focused on customer outreach, " +
	"sales campaigns, and in-store promotion planning across regional stores."

func TestCheckReadiness(t *testing.T) {
	t.Run("model unavailable", func(t *testing.T) {
		e := newTestEngine(t, &stubEmbedder{available: false})

		err := e.CheckReadiness(context.Background())
		if err == nil {
			t.Fatal("Expected readiness error when model is unavailable")
		}
		if e.Ready() {
			t.Error("Engine should not be ready after failed check")
		}
	})

	t.Run("model available", func(t *testing.T) {
		e := newTestEngine(t, &stubEmbedder{available: true})

		if err := e.CheckReadiness(context.Background()); err != nil {
			t.Fatalf("CheckReadiness failed: %v", err)
		}
		if !e.Ready() {
			t.Error("Engine should be ready after successful check")
		}
	})
}

func TestRankBatchRejectsWhenNotReady(t *testing.T) {
	e := newTestEngine(t, &stubEmbedder{available: true})

	_, err := e.RankBatch(context.Background(), jobText, []types.DocumentInput{
		{Filename: "resume.pdf", Text: strongResume},
	})
	if err == nil {
		t.Fatal("Expected error before readiness check")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeModelNotReady {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeModelNotReady, appErr.Code)
	}
}

func TestRankBatchValidation(t *testing.T) {
	e := readyTestEngine(t, &stubEmbedder{available: true})

	tests := []struct {
		name    string
		jobText string
		docs    []types.DocumentInput
	}{
		{
			name:    "empty job description",
			jobText: "   \n\t ",
			docs:    []types.DocumentInput{{Filename: "a.pdf", Text: strongResume}},
		},
		{
			name:    "no documents",
			jobText: jobText,
			docs:    nil,
		},
		{
			name:    "too many documents",
			jobText: jobText,
			docs: func() []types.DocumentInput {
				docs := make([]types.DocumentInput, 11)
				for i := range docs {
					docs[i] = types.DocumentInput{Filename: fmt.Sprintf("r%d.pdf", i), Text: strongResume}
				}
				return docs
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.RankBatch(context.Background(), tt.jobText, tt.docs)
			if err == nil {
				t.Fatal("Expected validation error")
			}

			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("Expected AppError, got %T", err)
			}
			if appErr.Type != errors.ErrorTypeValidation {
				t.Errorf("Expected validation error, got %s", appErr.Type)
			}
		})
	}
}

func TestRankBatchRanksByRelevance(t *testing.T) {
	e := readyTestEngine(t, &stubEmbedder{available: true})

	out, err := e.RankBatch(context.Background(), jobText, []types.DocumentInput{
		{Filename: "weak.pdf", Text: weakResume},
		{Filename: "strong.pdf", Text: strongResume},
	})
	if err != nil {
		t.Fatalf("RankBatch failed: %v", err)
	}

	if !out.Success {
		t.Error("Expected success=true")
	}
	if out.TotalResumes != 2 {
		t.Errorf("Expected total_resumes=2, got %d", out.TotalResumes)
	}
	if len(out.RankedResumes) != 2 {
		t.Fatalf("Expected 2 ranked resumes, got %d", len(out.RankedResumes))
	}

	first, second := out.RankedResumes[0], out.RankedResumes[1]
	if first.Filename != "strong.pdf" {
		t.Errorf("Expected strong.pdf ranked first, got %s", first.Filename)
	}
	if first.MatchPercentage <= 70 {
		t.Errorf("Expected strong resume above 70, got %.2f", first.MatchPercentage)
	}
	if second.MatchPercentage >= 40 {
		t.Errorf("Expected weak resume below 40, got %.2f", second.MatchPercentage)
	}
	if first.MatchPercentage < second.MatchPercentage {
		t.Error("Results are not sorted by match percentage")
	}

	// Section breakdown always carries exactly the fixed section set
	for _, r := range out.RankedResumes {
		if len(r.MatchDetails.SectionBreakdown) != 3 {
			t.Errorf("Expected 3 section scores for %s, got %d", r.Filename, len(r.MatchDetails.SectionBreakdown))
		}
		for _, key := range types.SectionKeys() {
			if _, ok := r.MatchDetails.SectionBreakdown[key]; !ok {
				t.Errorf("Missing section %q for %s", key, r.Filename)
			}
		}
	}

	if first.YearsOfExperience != 8 {
		t.Errorf("Expected 8 years of experience, got %.1f", first.YearsOfExperience)
	}
	if len(first.MatchDetails.MatchedSkills) == 0 {
		t.Error("Expected matched skills for strong resume")
	}
	if len(first.MatchDetails.MatchReasons) == 0 {
		t.Error("Expected match reasons for strong resume")
	}
}

func TestRankBatchDropsBadDocuments(t *testing.T) {
	e := readyTestEngine(t, &stubEmbedder{available: true})

	out, err := e.RankBatch(context.Background(), jobText, []types.DocumentInput{
		{Filename: "good.pdf", Text: strongResume},
		{Filename: "broken.pdf", Err: fmt.Errorf("pdf decode failed")},
		{Filename: "scan.pdf", Text: "too short"},
	})
	if err != nil {
		t.Fatalf("RankBatch failed: %v", err)
	}

	// Dropped documents still count toward the original batch size
	if out.TotalResumes != 3 {
		t.Errorf("Expected total_resumes=3, got %d", out.TotalResumes)
	}
	if len(out.RankedResumes) != 1 {
		t.Fatalf("Expected 1 ranked resume, got %d", len(out.RankedResumes))
	}
	if out.RankedResumes[0].Filename != "good.pdf" {
		t.Errorf("Expected good.pdf, got %s", out.RankedResumes[0].Filename)
	}
}

func TestRankBatchInfrastructureFailure(t *testing.T) {
	e := readyTestEngine(t, &stubEmbedder{available: true})

	failing := &stubEmbedder{available: true, embedErr: fmt.Errorf("upstream unavailable")}
	e.embedder = failing

	_, err := e.RankBatch(context.Background(), jobText, []types.DocumentInput{
		{Filename: "a.pdf", Text: strongResume},
		{Filename: "b.pdf", Text: weakResume},
	})
	if err == nil {
		t.Fatal("Expected batch failure on embedding error")
	}
}

func TestRankBatchTiesKeepUploadOrder(t *testing.T) {
	e := readyTestEngine(t, &stubEmbedder{available: true})

	out, err := e.RankBatch(context.Background(), jobText, []types.DocumentInput{
		{Filename: "first.pdf", Text: strongResume},
		{Filename: "second.pdf", Text: strongResume},
	})
	if err != nil {
		t.Fatalf("RankBatch failed: %v", err)
	}

	if len(out.RankedResumes) != 2 {
		t.Fatalf("Expected 2 ranked resumes, got %d", len(out.RankedResumes))
	}
	if out.RankedResumes[0].Filename != "first.pdf" || out.RankedResumes[1].Filename != "second.pdf" {
		t.Errorf("Tied results lost upload order: %s, %s",
			out.RankedResumes[0].Filename, out.RankedResumes[1].Filename)
	}
}
