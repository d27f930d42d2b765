package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spigell/lead-screener/internal/export"
	"github.com/spigell/lead-screener/internal/logger"
	"github.com/spigell/lead-screener/internal/screening"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var screenCmd = &cobra.Command{
	Use:   "screen [file]",
	Short: "Classify a single profile read from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		screen(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringP("output", "o", "", "write the verdict to a file instead of stdout")
	screenCmd.Flags().StringP("format", "t", "json", "export format: csv, tsv or json")
}

func screen(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	profileText, err := readProfileInput(args)
	if err != nil {
		zlog.Fatal("reading profile text", zap.Error(err))
	}

	if profileText == "" {
		zlog.Fatal("profile text is required", zap.String("hint", "pass a file path or pipe the profile to stdin"))
	}

	screener, err := newScreener(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building the screening engine", zap.Error(err))
	}

	verdict := screener.Screen(ctx, profileText)

	zlog.Info("profile screened",
		zap.String("tier", string(verdict.Tier)),
		zap.Bool("fallback", verdict.Fallback),
	)

	results := []screening.Result{{Profile: profileText, Verdict: verdict}}

	output := cmd.Flag("output").Value.String()
	if output != "" {
		format, err := export.ParseFormat(cmd.Flag("format").Value.String())
		if err != nil {
			zlog.Fatal("resolving export format", zap.Error(err))
		}
		if err := writeExport(output, format, results); err != nil {
			zlog.Fatal("exporting the verdict", zap.Error(err))
		}
		zlog.Info("verdict exported", zap.String("filename", output), zap.String("format", string(format)))
		return
	}

	pretty, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		zlog.Fatal("rendering the verdict", zap.Error(err))
	}
	fmt.Println(string(pretty))
}

func readProfileInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", args[0], err)
	}
	return strings.TrimSpace(string(data)), nil
}

func writeExport(path string, format export.Format, results []screening.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer file.Close()

	return export.Write(file, format, results)
}
