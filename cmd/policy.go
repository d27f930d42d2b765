package cmd

import (
	"fmt"
	"log"

	"github.com/spigell/lead-screener/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the active relevance policy",
	Run: func(_ *cobra.Command, _ []string) {
		showPolicy()
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

func showPolicy() {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	p, err := loadPolicy(config)
	if err != nil {
		zlog.Fatal("loading policy", zap.Error(err))
	}

	rendered, err := p.Marshal()
	if err != nil {
		zlog.Fatal("rendering policy", zap.Error(err))
	}

	fmt.Print(string(rendered))
}
