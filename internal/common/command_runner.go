package common

import (
	"context"

	"recruitdesk/internal/errors"
	"recruitdesk/internal/types"
)

// RankOperationFunc runs a batch ranking operation against prepared inputs.
type RankOperationFunc func(ctx context.Context, jobText string, docs []types.DocumentInput) (types.RankOutput, error)

// RunRankCommand encapsulates the common logic for the file-based rank
// command: read the job description, load the resume documents, run the
// ranking operation, and write the formatted output.
func RunRankCommand(
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	jobFile string,
	resumeFiles []string,
	operation RankOperationFunc,
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	jobText, err := fileProcessor.ReadJobFile(jobFile)
	if err != nil {
		return err
	}

	docs, err := fileProcessor.ReadDocuments(resumeFiles...)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Info("Ranking resumes",
			"job_file", jobFile,
			"resume_count", len(docs),
			"output_format", cmdConfig.OutputFormat)
	}

	result, err := operation(ctx, jobText, docs)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
