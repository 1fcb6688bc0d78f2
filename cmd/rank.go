package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ingest"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/pipeline"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/scoring"
)

const (
	PromptReport     = "Report as JSON"
	PromptDumpToFile = "Dump results to file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReport, PromptDumpToFile, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank resumes against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "job description text")
	rankCmd.Flags().String("job-file", "", "file with the job description (.txt or .pdf)")
	rankCmd.Flags().StringSliceP("resumes", "r", nil, "resume files or directories (.txt, .pdf); repeatable")
	rankCmd.Flags().String("pasted", "", "file with pasted resumes separated by '---' lines")
	rankCmd.Flags().String("manifest", "", "JSON manifest with candidates")
	rankCmd.Flags().IntP("top-k", "k", pipeline.DefaultTopK, "number of candidates to show; 0 shows none")
	rankCmd.Flags().StringP("mode", "m", "sections", "scoring mode: sections or document")
	rankCmd.Flags().BoolP("yes", "y", false, "do not ask what to do with the results")

	viper.BindPFlag("ranking.top-k", rankCmd.Flags().Lookup("top-k"))
	viper.BindPFlag("ranking.mode", rankCmd.Flags().Lookup("mode"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the candidate-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil || config.Ranking == nil {
		logger.Fatal("config is required")
	}

	job, err := loadJob(cmd)
	if err != nil {
		logger.Fatal("loading the job description", zap.Error(err),
			zap.String("hint", "use --job or --job-file"),
		)
	}

	candidates, err := loadCandidates(ctx, cmd, logger)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	logger.Info("candidates loaded", zap.Int("count", len(candidates)))

	mode, err := scoring.ParseMode(config.Ranking.Mode)
	if err != nil {
		logger.Fatal("parsing ranking mode", zap.Error(err))
	}

	embedder, err := newEmbedder(config.Embedding, logger)
	if err != nil {
		logger.Fatal("building the embedder", zap.Error(err),
			zap.String("hint", "set embedding.provider to hashing or configure GEMINI_API_KEY / OPENAI_API_KEY"),
		)
	}

	summarizer, err := newSummarizer(ctx, config.Summary, logger)
	if err != nil {
		logger.Info("summaries are not available", zap.String("reason", err.Error()),
			zap.String("hint", "set GEMINI_API_KEY, OPENAI_API_KEY or summary.<provider>.api-key-file to get fit summaries"),
		)
		summarizer = nil
	}

	p, err := pipeline.New(pipelineConfig(config, mode), pipeline.Deps{Embedder: embedder, Summarizer: summarizer, Logger: logger})
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	result, err := p.Run(ctx, job, candidates)
	switch {
	case errors.Is(err, pipeline.ErrInputEmpty):
		logger.Fatal("nothing to rank", zap.Error(err))
	case err != nil:
		logger.Fatal("ranking failed", zap.Error(err))
	}

	printRanking(cmd.OutOrStdout(), result)

	if len(result.Ranked) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates could be scored"))
		return
	}

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, cmd.OutOrStdout(), logger, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// pipelineConfig maps resolved settings onto the pipeline. Defaults come from
// viper, so an explicit top-k of 0 is kept as is.
func pipelineConfig(config *Config, mode scoring.Mode) pipeline.Config {
	cfg := pipeline.Config{
		TopK:    config.Ranking.TopK,
		Mode:    mode,
		Weights: scoring.NewWeightTable(config.Ranking.Weights),
	}
	if config.Summary != nil {
		cfg.SummaryTopN = config.Summary.TopN
		cfg.SummaryConcurrency = config.Summary.Concurrency
	}
	return cfg
}

func handleAction(action string, out io.Writer, logger *zap.Logger, result *pipeline.Result) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReport:
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		fmt.Fprintln(out, string(pretty))
		return nil
	case PromptDumpToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// printRanking writes the ranked table, summaries included, to out.
func printRanking(out io.Writer, result *pipeline.Result) {
	fmt.Fprintf(out, "Top %d candidates (run %s, mode %s)\n", len(result.Ranked), result.RunID, result.Mode)
	for _, entry := range result.Ranked {
		fmt.Fprintf(out, "%2d. %-30s %.3f  %s\n", entry.Position, entry.ID, entry.Score, ranking.Band(entry.Score))
		if summary, ok := result.SummaryFor(entry.Position); ok {
			text := summary.Text
			if !summary.Available() {
				text = "no summary available"
			}
			fmt.Fprintf(out, "    %s\n", text)
		}
	}
	if result.SkippedCount() > 0 {
		fmt.Fprintf(out, "Skipped %d candidate(s) without scorable text: %s\n",
			result.SkippedCount(), strings.Join(result.Skipped, ", "))
	}
}

func loadJob(cmd *cobra.Command) (string, error) {
	job, _ := cmd.Flags().GetString("job")
	file, _ := cmd.Flags().GetString("job-file")

	if strings.TrimSpace(file) != "" {
		if strings.TrimSpace(job) != "" {
			return "", errors.New("--job and --job-file are mutually exclusive")
		}
		return ingest.ReadFile(file)
	}
	return job, nil
}

// loadCandidates collects resumes from files, a pasted bundle and a manifest,
// in that order.
func loadCandidates(ctx context.Context, cmd *cobra.Command, log *zap.Logger) ([]pipeline.Candidate, error) {
	var candidates []pipeline.Candidate

	paths, _ := cmd.Flags().GetStringSlice("resumes")
	if len(paths) > 0 {
		loaded, err := ingest.FromPaths(ctx, paths, log)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, loaded...)
	}

	if pasted, _ := cmd.Flags().GetString("pasted"); pasted != "" {
		loaded, err := ingest.FromBundleFile(pasted)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, loaded...)
	}

	if manifest, _ := cmd.Flags().GetString("manifest"); manifest != "" {
		loaded, err := ingest.FromManifest(manifest)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, loaded...)
	}

	return candidates, nil
}
