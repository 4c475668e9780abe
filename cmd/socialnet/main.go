// Command socialnet runs the social network API and its maintenance tasks.
//
// @title        Social Network API
// @version      1.0
// @description  Accounts, posts, likes and follow relationships.
// @BasePath     /api
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/99minutos/social-network/internal/pkg/config"
	"github.com/99minutos/social-network/pkg/logger"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:           "socialnet",
		Short:         "Social network API server and maintenance tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: "socialnet",
			})
		},
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	repairCmd = &cobra.Command{
		Use:   "repair [account-id...]",
		Short: "Reconcile mirrored following/followers entries",
		Long: `Treats each account's following list as authoritative: adds missing
follower entries on the followed side, drops follower entries with no
matching following entry, and drops following entries whose target no
longer exists.`,
		RunE: runRepair,
	}
	repairAll bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(repairCmd)
	repairCmd.Flags().BoolVar(&repairAll, "all", false, "Repair every account")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if cfg != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("command failed")
		} else {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(1)
	}
}
