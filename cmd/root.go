package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spigell/lead-screener/internal/ai"
	"github.com/spigell/lead-screener/internal/ai/gemini"
	"github.com/spigell/lead-screener/internal/ai/openai"
	"github.com/spigell/lead-screener/internal/logger"
	"github.com/spigell/lead-screener/internal/policy"
	"github.com/spigell/lead-screener/internal/screening"
	"github.com/spigell/lead-screener/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "lead-screener"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
	openaiAPIKeyEnv = "OPENAI_API_KEY"
)

type Config struct {
	PolicyFile string    `mapstructure:"policy-file"`
	AI         *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Provider        string        `mapstructure:"provider"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max-output-tokens"`
	RequestTimeout  time.Duration `mapstructure:"request-timeout"`
	Concurrency     int           `mapstructure:"concurrency"`
	MaxLogLength    int           `mapstructure:"max-log-length"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
	OpenAI          *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "lead-screener classifies professional profiles by relevance to an enterprise Wi-Fi sales motion",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("policy-file", "LEAD_SCREENER_POLICY_FILE"); err != nil {
		log.Fatalf("binding LEAD_SCREENER_POLICY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is lead-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Without --config a missing file is fine: the provider key can
		// come from the environment. An unreadable or unparsable file is
		// fatal either way.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.AI.OpenAI == nil {
		config.AI.OpenAI = &OpenAIConfig{}
	}

	return config, nil
}

// loadPolicy returns the policy configured via policy-file, or the
// canonical built-in policy.
func loadPolicy(config *Config) (*policy.Policy, error) {
	path := strings.TrimSpace(config.PolicyFile)
	if path == "" {
		path = strings.TrimSpace(viper.GetString("policy-file"))
	}

	if path == "" {
		return policy.Default(), nil
	}

	return policy.Load(path)
}

// newGenerator builds the configured model provider. A missing or empty
// credential is a configuration error and fails construction; nothing is
// classified without a working provider handle.
func newGenerator(ctx context.Context, cfg *AIConfig) (ai.Generator, string, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
			Env:  geminiAPIKeyEnv,
		})
		if err != nil {
			return nil, "", fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Temperature, cfg.MaxOutputTokens)
		if err != nil {
			return nil, "", err
		}
		return generator, provider, nil
	case "openai":
		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: cfg.OpenAI.APIKeyFile,
			Env:  openaiAPIKeyEnv,
		})
		if err != nil {
			return nil, "", fmt.Errorf("%w (set ai.openai.api-key-file or %s)", err, openaiAPIKeyEnv)
		}

		generator, err := openai.NewGenerator(apiKey, cfg.OpenAI.Model, cfg.Temperature, cfg.MaxOutputTokens)
		if err != nil {
			return nil, "", err
		}
		return generator, provider, nil
	default:
		return nil, "", fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// newScreener wires the policy, the provider and the logger into a ready
// screening engine.
func newScreener(ctx context.Context, config *Config, zlog *zap.Logger) (*screening.Screener, error) {
	p, err := loadPolicy(config)
	if err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	generator, provider, err := newGenerator(ctx, config.AI)
	if err != nil {
		return nil, fmt.Errorf("building ai generator: %w", err)
	}

	screenerLogger := logger.WithCommonFields(zlog, provider, generator.Model(), p.Version)

	return screening.NewScreener(generator, p, screenerLogger, screening.Options{
		RequestTimeout: config.AI.RequestTimeout,
		MaxLogLength:   config.AI.MaxLogLength,
		Concurrency:    config.AI.Concurrency,
	}), nil
}
