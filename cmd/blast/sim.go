package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bjohnson5/blast/internal/event"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Manage a running simulation",
}

var simAddEventCmd = &cobra.Command{
	Use:   "add-event <frame> <kind> [args...]",
	Short: "Schedule an event at the given frame",
	Long: `kind is one of: start-node, stop-node, open-channel, close-channel,
on-chain-tx. Argument counts must match the event's arity (1, 1, 5, 2, 3
respectively).`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		frame, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid frame %q: %w", args[0], err)
		}
		kind, err := parseKind(args[1])
		if err != nil {
			return err
		}
		return b.AddEvent(frame, kind, args[2:])
	},
}

func parseKind(s string) (event.Kind, error) {
	switch s {
	case "start-node":
		return event.StartNode, nil
	case "stop-node":
		return event.StopNode, nil
	case "open-channel":
		return event.OpenChannel, nil
	case "close-channel":
		return event.CloseChannel, nil
	case "on-chain-tx":
		return event.OnChainTransaction, nil
	default:
		return 0, fmt.Errorf("unknown event kind %q", s)
	}
}

var simStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scheduler, dispatcher, and workload runner",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		return b.StartSimulation(cmd.Context())
	},
}

var simStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running simulation and print recorded payment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		if err := b.StopSimulation(); err != nil {
			return err
		}
		data, err := json.MarshalIndent(b.PaymentResults(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var simSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Archive every model's data directory and the event table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		return b.Save(cmd.Context(), args[0])
	},
}

var simLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Restore a previously saved simulation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		return b.Load(cmd.Context(), args[0])
	},
}

func init() {
	simCmd.AddCommand(simAddEventCmd)
	simCmd.AddCommand(simStartCmd)
	simCmd.AddCommand(simStopCmd)
	simCmd.AddCommand(simSaveCmd)
	simCmd.AddCommand(simLoadCmd)
}
