package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Query or command a single node",
}

func printable(v interface{}) {
	fmt.Println(v)
}

var nodeGetPubKeyCmd = &cobra.Command{
	Use:  "get-pubkey <node-id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		pubKey, err := b.GetPubKey(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printable(pubKey)
		return nil
	},
}

var nodeListPeersCmd = &cobra.Command{
	Use:  "list-peers <node-id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		peers, err := b.ListPeers(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printable(string(peers))
		return nil
	},
}

var nodeWalletBalanceCmd = &cobra.Command{
	Use:  "wallet-balance <node-id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		sat, err := b.WalletBalance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printable(sat)
		return nil
	},
}

var nodeChannelBalanceCmd = &cobra.Command{
	Use:  "channel-balance <node-id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		msat, err := b.ChannelBalance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printable(msat)
		return nil
	},
}

var nodeListChannelsCmd = &cobra.Command{
	Use:  "list-channels <node-id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		channels, err := b.ListChannels(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printable(string(channels))
		return nil
	},
}

var nodeOpenChannelCmd = &cobra.Command{
	Use:  "open-channel <src-node-id> <dst-node-id> <channel-id> <amount-sat> <push-amt-sat>",
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		chanID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return err
		}
		amount, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return err
		}
		push, err := strconv.ParseInt(args[4], 10, 64)
		if err != nil {
			return err
		}
		return b.OpenChannel(cmd.Context(), args[0], args[1], chanID, amount, push)
	},
}

var nodeCloseChannelCmd = &cobra.Command{
	Use:  "close-channel <node-id> <channel-id>",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		chanID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return err
		}
		return b.CloseChannel(cmd.Context(), args[0], chanID)
	},
}

var nodeConnectPeerCmd = &cobra.Command{
	Use:  "connect-peer <node-id> <peer-pubkey> <peer-address>",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		return b.ConnectPeer(cmd.Context(), args[0], args[1], args[2])
	},
}

var nodeDisconnectPeerCmd = &cobra.Command{
	Use:  "disconnect-peer <node-id> <peer-pubkey>",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		return b.DisconnectPeer(cmd.Context(), args[0], args[1])
	},
}

var nodeBtcAddressCmd = &cobra.Command{
	Use:  "btc-address <node-id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		addr, err := b.GetBtcAddress(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printable(addr)
		return nil
	},
}

var nodeListenAddressCmd = &cobra.Command{
	Use:  "listen-address <node-id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		addr, err := b.GetListenAddress(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printable(addr)
		return nil
	},
}

var nodeOnChainTxCmd = &cobra.Command{
	Use:  "onchain-tx <node-id> <destination> <amount-sat>",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return err
		}
		return b.OnChainTransaction(cmd.Context(), args[0], args[1], amount)
	},
}

var nodeFundCmd = &cobra.Command{
	Use:  "fund <node-id> <amount-sat>",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := getBlast()
		if err != nil {
			return err
		}
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return err
		}
		return b.FundNode(cmd.Context(), args[0], amount)
	},
}

func init() {
	nodeCmd.AddCommand(nodeGetPubKeyCmd)
	nodeCmd.AddCommand(nodeListPeersCmd)
	nodeCmd.AddCommand(nodeWalletBalanceCmd)
	nodeCmd.AddCommand(nodeChannelBalanceCmd)
	nodeCmd.AddCommand(nodeListChannelsCmd)
	nodeCmd.AddCommand(nodeOpenChannelCmd)
	nodeCmd.AddCommand(nodeCloseChannelCmd)
	nodeCmd.AddCommand(nodeConnectPeerCmd)
	nodeCmd.AddCommand(nodeDisconnectPeerCmd)
	nodeCmd.AddCommand(nodeBtcAddressCmd)
	nodeCmd.AddCommand(nodeListenAddressCmd)
	nodeCmd.AddCommand(nodeOnChainTxCmd)
	nodeCmd.AddCommand(nodeFundCmd)
}
