package orchestrator

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bjohnson5/blast/blastrpc"
)

// The node verbs below resolve a node id to its owning model through the
// registry and forward a single RPC, matching the one-liner bodies every
// node command has in blast_model_manager.rs (look up the model, forward,
// return).

func (b *Blast) GetPubKey(ctx context.Context, nodeID string) (string, error) {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return "", err
	}
	resp, err := client.GetPubKey(ctx, &blastrpc.PubKeyRequest{NodeID: nodeID})
	if err != nil {
		return "", err
	}
	return resp.PubKey, nil
}

func (b *Blast) ListPeers(ctx context.Context, nodeID string) ([]byte, error) {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return nil, err
	}
	resp, err := client.ListPeers(ctx, &blastrpc.ListPeersRequest{NodeID: nodeID})
	if err != nil {
		return nil, err
	}
	return resp.Peers, nil
}

func (b *Blast) WalletBalance(ctx context.Context, nodeID string) (int64, error) {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return 0, err
	}
	resp, err := client.WalletBalance(ctx, &blastrpc.WalletBalanceRequest{NodeID: nodeID})
	if err != nil {
		return 0, err
	}
	return resp.BalanceSat, nil
}

func (b *Blast) ChannelBalance(ctx context.Context, nodeID string) (int64, error) {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return 0, err
	}
	resp, err := client.ChannelBalance(ctx, &blastrpc.ChannelBalanceRequest{NodeID: nodeID})
	if err != nil {
		return 0, err
	}
	return resp.BalanceMsat, nil
}

func (b *Blast) ListChannels(ctx context.Context, nodeID string) ([]byte, error) {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return nil, err
	}
	resp, err := client.ListChannels(ctx, &blastrpc.ListChannelsRequest{NodeID: nodeID})
	if err != nil {
		return nil, err
	}
	return resp.Channels, nil
}

func (b *Blast) ConnectPeer(ctx context.Context, nodeID, peerPubKey, peerAddress string) error {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return err
	}
	_, err = client.ConnectPeer(ctx, &blastrpc.ConnectPeerRequest{
		NodeID: nodeID, PeerPubKey: peerPubKey, PeerAddress: peerAddress,
	})
	return err
}

func (b *Blast) DisconnectPeer(ctx context.Context, nodeID, peerPubKey string) error {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return err
	}
	_, err = client.DisconnectPeer(ctx, &blastrpc.DisconnectPeerRequest{NodeID: nodeID, PeerPubKey: peerPubKey})
	return err
}

func (b *Blast) GetBtcAddress(ctx context.Context, nodeID string) (string, error) {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return "", err
	}
	resp, err := client.GetBtcAddress(ctx, &blastrpc.BtcAddressRequest{NodeID: nodeID})
	if err != nil {
		return "", err
	}
	return resp.Address, nil
}

func (b *Blast) GetListenAddress(ctx context.Context, nodeID string) (string, error) {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return "", err
	}
	resp, err := client.GetListenAddress(ctx, &blastrpc.ListenAddressRequest{NodeID: nodeID})
	if err != nil {
		return "", err
	}
	return resp.Address, nil
}

// OpenChannel opens a channel directly (outside the scheduled event path),
// resolving the peer's pubkey itself, matching the open_channel command in
// blast_model_manager.rs. Once the model acknowledges the open, it mines an
// OpenConf-block confirmation burst so the channel reaches a usable state,
// matching open_channel's optional mine-and-wait step in blast_manager.rs.
func (b *Blast) OpenChannel(ctx context.Context, srcNodeID, dstNodeID string, channelID, amountSat, pushAmtSat int64) error {
	dstClient, err := b.Registry.ClientFor(dstNodeID)
	if err != nil {
		return err
	}
	pubKeyResp, err := dstClient.GetPubKey(ctx, &blastrpc.PubKeyRequest{NodeID: dstNodeID})
	if err != nil {
		return err
	}

	srcClient, err := b.Registry.ClientFor(srcNodeID)
	if err != nil {
		return err
	}
	if _, err := srcClient.OpenChannel(ctx, &blastrpc.OpenChannelRequest{
		NodeID:     srcNodeID,
		PeerPubKey: pubKeyResp.PubKey,
		ChannelID:  channelID,
		AmountSat:  amountSat,
		PushAmtSat: pushAmtSat,
	}); err != nil {
		return err
	}

	if b.Bitcoin == nil {
		return nil
	}
	if err := b.Bitcoin.MineBlocks(int64(b.Config.Bitcoin.OpenConf)); err != nil {
		return fmt.Errorf("orchestrator: open channel: confirmation burst: %w", err)
	}
	return nil
}

// FundNode sends amountSat to a node's fresh on-chain address and mines a
// FundConf-block confirmation burst, matching fund_node's get_btc_address +
// send_to_address + mine_blocks sequence in blast_manager.rs.
func (b *Blast) FundNode(ctx context.Context, nodeID string, amountSat int64) error {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return err
	}
	addrResp, err := client.GetBtcAddress(ctx, &blastrpc.BtcAddressRequest{NodeID: nodeID})
	if err != nil {
		return err
	}

	addr, err := btcutil.DecodeAddress(addrResp.Address, &chaincfg.RegressionNetParams)
	if err != nil {
		return fmt.Errorf("orchestrator: fund node: decode address: %w", err)
	}

	if err := b.Bitcoin.SendToAddress(addr, amountSat); err != nil {
		return fmt.Errorf("orchestrator: fund node: %w", err)
	}
	if err := b.Bitcoin.MineBlocks(int64(b.Config.Bitcoin.FundConf)); err != nil {
		return fmt.Errorf("orchestrator: fund node: confirmation burst: %w", err)
	}
	return nil
}

func (b *Blast) CloseChannel(ctx context.Context, nodeID string, channelID int64) error {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return err
	}
	_, err = client.CloseChannel(ctx, &blastrpc.CloseChannelRequest{NodeID: nodeID, ChannelID: channelID})
	return err
}

func (b *Blast) OnChainTransaction(ctx context.Context, nodeID, destination string, amountSat int64) error {
	client, err := b.Registry.ClientFor(nodeID)
	if err != nil {
		return err
	}
	_, err = client.OnChainTransaction(ctx, &blastrpc.OnChainTxRequest{
		NodeID: nodeID, Destination: destination, AmountSat: amountSat,
	})
	return err
}
