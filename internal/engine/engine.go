// Package engine orchestrates batch resume ranking: validation, document
// preparation, bounded parallel scoring, and result aggregation.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"recruitdesk/internal/ai"
	"recruitdesk/internal/config"
	"recruitdesk/internal/errors"
	"recruitdesk/internal/extract"
	"recruitdesk/internal/match"
	"recruitdesk/internal/observability"
	"recruitdesk/internal/textproc"
	"recruitdesk/internal/types"
)

// Engine ranks batches of resume documents against a job description
type Engine struct {
	embedder     ai.Embedder
	pipeline     *extract.Pipeline
	workers      int
	maxFiles     int
	minTextChars int
	metrics      *observability.Metrics
	logger       *errors.Logger
	ready        atomic.Bool
}

// New creates a ranking engine. The extraction pipeline is loaded once per
// process; extra lexicon terms are honored only on the first call.
func New(embedder ai.Embedder, cfg *config.Config, metrics *observability.Metrics, logger *errors.Logger) *Engine {
	return &Engine{
		embedder:     embedder,
		pipeline:     extract.Load(cfg.ExtraSkills()),
		workers:      cfg.Engine.Workers,
		maxFiles:     cfg.Engine.MaxFiles,
		minTextChars: cfg.Engine.MinTextChars,
		metrics:      metrics,
		logger:       logger,
	}
}

// SetMetrics attaches embedding metrics after observability is initialized.
// Must be called before the engine starts serving requests.
func (e *Engine) SetMetrics(metrics *observability.Metrics) {
	e.metrics = metrics
}

// CheckReadiness probes the embedding model and marks the engine ready on
// success. Batch requests are rejected until this succeeds once.
func (e *Engine) CheckReadiness(ctx context.Context) error {
	info := e.embedder.GetModelInfo(ctx)
	if info == nil || !info.Available {
		errMsg := "unknown"
		if info != nil {
			errMsg = info.Error
		}
		e.logger.Warn("Embedding model not ready",
			"error", errMsg)
		return errors.NewInferenceError(errors.ErrCodeModelNotReady,
			"Embedding model is not available", nil)
	}

	e.ready.Store(true)
	e.logger.Info("Embedding model ready",
		"model", info.Name,
		"version", info.Version)
	return nil
}

// Ready reports whether the engine has passed its readiness check
func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// jobContext holds the per-batch job state shared by all document workers.
// It is computed once before fan-out and never mutated afterwards.
type jobContext struct {
	text      string
	skills    []string
	embedding []float32
}

// RankBatch validates the batch, scores every usable document against the
// job description, and returns results ordered by match percentage.
//
// Document-level failures (failed extraction, near-empty text) drop the
// document but keep the batch alive; TotalResumes always reflects the
// original upload count. Embedding infrastructure failures abort the batch.
func (e *Engine) RankBatch(ctx context.Context, jobText string, docs []types.DocumentInput) (types.RankOutput, error) {
	if !e.Ready() {
		return types.RankOutput{}, errors.NewInferenceError(errors.ErrCodeModelNotReady,
			"Embedding model is not ready", nil)
	}

	if err := e.validateBatch(jobText, docs); err != nil {
		return types.RankOutput{}, err
	}

	job, err := e.prepareJob(ctx, jobText)
	if err != nil {
		e.metrics.RecordBatchRanked(ctx, false, 0, 0)
		return types.RankOutput{}, err
	}

	results, dropped, err := e.scoreDocuments(ctx, job, docs)
	if err != nil {
		e.metrics.RecordBatchRanked(ctx, false, 0, int64(dropped))
		return types.RankOutput{}, err
	}

	ranked := match.Rank(results)
	e.metrics.RecordBatchRanked(ctx, true, int64(len(ranked)), int64(dropped))

	e.logger.Info("Batch ranked",
		"total_resumes", len(docs),
		"ranked", len(ranked),
		"dropped", dropped)

	return types.RankOutput{
		Success:       true,
		TotalResumes:  len(docs),
		RankedResumes: ranked,
	}, nil
}

// validateBatch enforces the batch preconditions before any model work
func (e *Engine) validateBatch(jobText string, docs []types.DocumentInput) error {
	if strings.TrimSpace(jobText) == "" {
		return errors.NewValidationError(errors.ErrCodeValidationFailed,
			"Job description must not be empty", nil)
	}
	if len(docs) == 0 {
		return errors.NewValidationError(errors.ErrCodeValidationFailed,
			"At least one resume is required", nil)
	}
	if len(docs) > e.maxFiles {
		return errors.NewValidationError(errors.ErrCodeValidationFailed,
			fmt.Sprintf("Too many resumes: %d exceeds the maximum of %d", len(docs), e.maxFiles), nil)
	}
	return nil
}

// prepareJob normalizes the job description, extracts its required skills,
// and computes its embedding once for the whole batch
func (e *Engine) prepareJob(ctx context.Context, jobText string) (*jobContext, error) {
	text := textproc.Normalize(jobText)

	embedding, err := e.embed(ctx, "job", text)
	if err != nil {
		return nil, err
	}

	return &jobContext{
		text:      text,
		skills:    e.pipeline.Skills(text),
		embedding: embedding,
	}, nil
}

// scoreDocuments fans documents out to a bounded worker pool. Workers share
// no mutable state beyond the results slice, which is index-partitioned.
func (e *Engine) scoreDocuments(ctx context.Context, job *jobContext, docs []types.DocumentInput) ([]types.MatchResult, int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := e.workers
	if workers < 1 {
		workers = 1
	}

	var (
		wg       sync.WaitGroup
		sem      = make(chan struct{}, workers)
		results  = make([]*types.MatchResult, len(docs))
		mu       sync.Mutex
		firstErr error
		dropped  int
	)

	for i, doc := range docs {
		wg.Add(1)
		go func(idx int, doc types.DocumentInput) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			result, err := e.scoreDocument(ctx, job, doc, idx)
			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil && isDocumentError(err):
				dropped++
				e.logger.Warn("Dropping document from batch",
					"filename", doc.Filename,
					"error", err.Error())
			case err != nil:
				if firstErr == nil {
					firstErr = err
					cancel()
				}
			default:
				results[idx] = result
			}
		}(i, doc)
	}

	wg.Wait()

	if firstErr != nil {
		e.logger.LogError(firstErr, "Batch ranking failed",
			"documents", len(docs))
		return nil, dropped, firstErr
	}

	collected := make([]types.MatchResult, 0, len(docs))
	for _, r := range results {
		if r != nil {
			collected = append(collected, *r)
		}
	}
	return collected, dropped, nil
}

// isDocumentError reports whether an error is contained to a single
// document rather than a batch-level infrastructure failure
func isDocumentError(err error) bool {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.Type == errors.ErrorTypeExtraction || appErr.Type == errors.ErrorTypeValidation
	}
	return false
}

// scoreDocument computes the full hybrid score for one document
func (e *Engine) scoreDocument(ctx context.Context, job *jobContext, doc types.DocumentInput, idx int) (*types.MatchResult, error) {
	if doc.Err != nil {
		return nil, errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Text extraction failed", doc.Err).WithContext("filename", doc.Filename)
	}

	text := textproc.Normalize(doc.Text)
	if len(strings.TrimSpace(text)) < e.minTextChars {
		return nil, errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Document text is too short to rank", nil).WithContext("filename", doc.Filename)
	}

	sections := textproc.Segment(text)
	skills := e.pipeline.Skills(text)
	years := e.pipeline.YearsOfExperience(sections.Experience)
	matched, missing := match.SplitSkills(job.skills, skills)

	embedding, err := e.embed(ctx, "resume", text)
	if err != nil {
		return nil, err
	}

	semantic := match.SemanticScore(ai.Cosine(embedding, job.embedding))
	keyword := match.KeywordScore(
		match.SkillOverlap(len(matched), len(job.skills)),
		match.LexicalOverlap(job.text, text),
	)

	breakdown, err := e.sectionBreakdown(ctx, job, sections)
	if err != nil {
		return nil, err
	}

	return &types.MatchResult{
		Filename:          doc.Filename,
		MatchPercentage:   match.Combine(semantic, keyword),
		YearsOfExperience: years,
		Summary:           match.Summary(years, matched),
		MatchDetails: types.MatchDetails{
			SemanticScore:    semantic,
			KeywordScore:     keyword,
			SectionBreakdown: breakdown,
			MatchedSkills:    matched,
			MissingSkills:    missing,
			MatchReasons:     match.Reasons(semantic, keyword, matched, missing, len(job.skills)),
		},
		UploadIndex: idx,
	}, nil
}

// sectionBreakdown applies the same semantic+keyword blend to each section
// in isolation. Empty sections score 0 without touching the model.
func (e *Engine) sectionBreakdown(ctx context.Context, job *jobContext, sections types.Sections) (map[string]float64, error) {
	breakdown := make(map[string]float64, len(types.SectionKeys()))

	for _, key := range types.SectionKeys() {
		text := sections.Get(key)
		if strings.TrimSpace(text) == "" {
			breakdown[key] = 0
			continue
		}

		embedding, err := e.embed(ctx, "section", text)
		if err != nil {
			return nil, err
		}

		semantic := match.SemanticScore(ai.Cosine(embedding, job.embedding))
		sectionSkills := e.pipeline.Skills(text)
		sectionMatched, _ := match.SplitSkills(job.skills, sectionSkills)
		keyword := match.KeywordScore(
			match.SkillOverlap(len(sectionMatched), len(job.skills)),
			match.LexicalOverlap(job.text, text),
		)

		breakdown[key] = match.Combine(semantic, keyword)
	}

	return breakdown, nil
}

// embed wraps embedder calls with the embedding metrics instrumentation
func (e *Engine) embed(ctx context.Context, operation, text string) ([]float32, error) {
	var vector []float32
	err := e.metrics.TrackEmbedding(ctx, operation, func(ctx context.Context) error {
		var embedErr error
		vector, embedErr = e.embedder.Embed(ctx, text)
		return embedErr
	})
	if err != nil {
		return nil, err
	}
	return vector, nil
}
