package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the model network",
}

var networkCreateCmd = &cobra.Command{
	Use:   "create <name> <model=count>...",
	Short: "Start each named model, bring up its nodes, and join their sim-ln catalogs in one step",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}

		counts := make(map[string]int32, len(args)-1)
		for _, pair := range args[1:] {
			modelName, countStr, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid model=count pair %q", pair)
			}
			count, err := strconv.ParseInt(countStr, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid node count in %q: %w", pair, err)
			}
			counts[modelName] = int32(count)
		}

		tokens, err := b.CreateNetwork(cmd.Context(), args[0], counts)
		if err != nil {
			return err
		}
		fmt.Printf("started %d model process(es)\n", len(tokens))
		return nil
	},
}

var networkStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop every running model's process",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		return b.StopNetwork(cmd.Context())
	},
}

func init() {
	networkCmd.AddCommand(networkCreateCmd)
	networkCmd.AddCommand(networkStopCmd)
}
