// Command blast drives a BLAST Lightning network simulation: bringing up
// model processes, scheduling events against a regtest chain, and running
// payment traffic, the CLI surface for blast_manager.rs's Blast struct.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjohnson5/blast/internal/blastlog"
	"github.com/bjohnson5/blast/internal/btcclient"
	"github.com/bjohnson5/blast/internal/config"
	"github.com/bjohnson5/blast/internal/model"
	"github.com/bjohnson5/blast/internal/orchestrator"
)

var rootCmd = &cobra.Command{
	Use:   "blast",
	Short: "Drive a BLAST Lightning network simulation",
	Long: `blast brings up a network of Lightning node models against a
regtest bitcoind backend, schedules events (channel opens/closes, on-chain
transactions) against it, and runs payment traffic through it.

Examples:
  blast network create mynet blast_lnd=2 blast_cln=1
  blast sim start
  blast node get-pubkey blast_lnd-0000`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// blast lazily constructs the orchestrator facade once config is loaded,
// shared across every subcommand in this process.
var blast *orchestrator.Blast

func getBlast() (*orchestrator.Blast, error) {
	if blast != nil {
		return blast, nil
	}

	cfg := config.Get()
	logger, _, err := blastlog.Setup(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("blast: set up logging: %w", err)
	}

	bitcoin, err := btcclient.New(btcclient.Config{
		Host: cfg.Bitcoin.Host, User: cfg.Bitcoin.User, Pass: cfg.Bitcoin.Pass, UseTLS: cfg.Bitcoin.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("blast: connect to bitcoind: %w", err)
	}

	blast = orchestrator.New(cfg, model.NewExecBackend(), bitcoin, logger)
	return blast, nil
}

func init() {
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(nodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
