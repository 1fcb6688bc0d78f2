package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/candidate-ranker/internal/pipeline"
)

const (
	app = "candidate-ranker"
)

type Config struct {
	Ranking   *RankingConfig   `mapstructure:"ranking"`
	Embedding *EmbeddingConfig `mapstructure:"embedding"`
	Summary   *SummaryConfig   `mapstructure:"summary"`
}

type RankingConfig struct {
	Mode    string             `mapstructure:"mode"`
	TopK    int                `mapstructure:"top-k"`
	Weights map[string]float64 `mapstructure:"weights"`
}

type EmbeddingConfig struct {
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	BatchSize  int    `mapstructure:"batch-size"`
	Dimension  int    `mapstructure:"dimension"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type SummaryConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Provider    string        `mapstructure:"provider"`
	TopN        int           `mapstructure:"top-n"`
	Concurrency int           `mapstructure:"concurrency"`
	Gemini      *GeminiConfig `mapstructure:"gemini"`
	OpenAI      *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type OpenAIConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxTokens    int    `mapstructure:"max-tokens"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "candidate-ranker ranks resumes against a job description by semantic similarity",
	}
)

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	envs := map[string]string{
		"summary.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"summary.openai.api-key-file": "OPENAI_API_KEY_FILE",
		"embedding.api-key-file":      "EMBEDDING_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is candidate-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("ranking.mode", "sections")
	viper.SetDefault("ranking.top-k", pipeline.DefaultTopK)
	viper.SetDefault("embedding.provider", "hashing")
	viper.SetDefault("embedding.batch-size", 32)
	viper.SetDefault("summary.enabled", true)
	viper.SetDefault("summary.provider", "gemini")
	viper.SetDefault("summary.top-n", pipeline.DefaultSummaryTopN)
	viper.SetDefault("summary.concurrency", pipeline.DefaultSummaryConcurrency)
	viper.SetDefault("summary.gemini.max-retries", 3)
	viper.SetDefault("summary.openai.max-tokens", 70)
}

func initConfig() {
	// Config needed only for rank command. Other commands skip initialization.
	if rankCmd.CalledAs() == "" {
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	// An explicit config must exist; the default one is optional.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}
	log.Fatal(err)
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
