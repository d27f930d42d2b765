package cmd

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/spigell/lead-screener/internal/export"
	"github.com/spigell/lead-screener/internal/logger"
	"github.com/spigell/lead-screener/internal/policy"
	"github.com/spigell/lead-screener/internal/profile"
	"github.com/spigell/lead-screener/internal/screening"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var batchPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo},
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Classify every profile in a file delimited by " + profile.Separator,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		batch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation before screening")
	batchCmd.Flags().StringP("output", "o", "", "write results to a file instead of stdout")
	batchCmd.Flags().StringP("format", "t", "csv", "export format: csv, tsv or json")
}

func batch(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	format, err := export.ParseFormat(cmd.Flag("format").Value.String())
	if err != nil {
		zlog.Fatal("resolving export format", zap.Error(err))
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		zlog.Fatal("reading profiles file", zap.Error(err))
	}

	profiles := profile.Split(string(data))

	zlog.Info("profiles found in file",
		zap.String("filename", args[0]),
		zap.Int("count", len(profiles)),
	)

	if len(profiles) == 0 {
		zlog.Info("exiting", zap.String("reason", "no profiles found"))
		return
	}

	if !strings.EqualFold(cmd.Flag("auto-aprove").Value.String(), "true") {
		_, action, err := batchPrompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}
		if action == PromptNo {
			zlog.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	screener, err := newScreener(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building the screening engine", zap.Error(err))
	}

	results := screener.ScreenAll(ctx, profiles, func(completed, total int) {
		zlog.Info("profile screened", zap.Int("completed", completed), zap.Int("total", total))
	})

	reportBatch(zlog, screener.Policy(), results)

	output := cmd.Flag("output").Value.String()
	if output == "" {
		if err := export.Write(os.Stdout, format, results); err != nil {
			zlog.Fatal("exporting results", zap.Error(err))
		}
		return
	}

	if err := writeExport(output, format, results); err != nil {
		zlog.Fatal("exporting results", zap.Error(err))
	}

	zlog.Info("results exported", zap.String("filename", output), zap.String("format", string(format)))
}

// reportBatch logs how many profiles landed in each tier and how many
// degraded to the fallback verdict.
func reportBatch(zlog *zap.Logger, p *policy.Policy, results []screening.Result) {
	perTier := make(map[policy.Tier]int, len(p.Rules))
	fallbacks := 0

	for _, result := range results {
		if result.Verdict == nil {
			continue
		}
		perTier[result.Verdict.Tier]++
		if result.Verdict.Fallback {
			fallbacks++
		}
	}

	fields := []zap.Field{zap.Int("total", len(results))}
	for _, tier := range p.Tiers() {
		fields = append(fields, zap.Int(strings.ToLower(string(tier)), perTier[tier]))
	}
	fields = append(fields, zap.Int("fallbacks", fallbacks))

	zlog.Info("batch screening completed", fields...)
}
