package cli

import (
	"context"
	"fmt"

	"recruitdesk/internal/ai"
	"recruitdesk/internal/common"
	"recruitdesk/internal/engine"
	"recruitdesk/internal/types"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank <job-description-file> <resume-file>...",
	Short: "Rank resumes against a job description",
	Long: `Rank a batch of resumes against a single job description.

The job description is read as plain text. Resume files with a .pdf extension
go through PDF text extraction; anything else is read as plain text. Results
are ordered by match percentage with a full score breakdown per resume.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	rankCmd.Flags().StringP("format", "f", "", "Output format: json, text, markdown (default from config)")
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	outputFile, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.App.DefaultFormat
	}
	if err := common.ValidateOutputFormat(format, cfg.App.SupportedFormats); err != nil {
		return err
	}

	aiService, err := ai.NewService(&cfg.Embedding, logger)
	if err != nil {
		return fmt.Errorf("failed to create embedding service: %w", err)
	}
	defer func() {
		if err := aiService.Embedder.Close(); err != nil {
			logger.Warn("Failed to close embedding service", "error", err.Error())
		}
	}()

	eng := engine.New(aiService.Embedder, cfg, nil, logger)
	if err := eng.CheckReadiness(ctx); err != nil {
		return err
	}

	cmdConfig := common.CommandConfig{
		OutputFile:   outputFile,
		OutputFormat: format,
	}

	return common.RunRankCommand(ctx, logger, cmdConfig, args[0], args[1:],
		func(ctx context.Context, jobText string, docs []types.DocumentInput) (types.RankOutput, error) {
			return eng.RankBatch(ctx, jobText, docs)
		})
}
