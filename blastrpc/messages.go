// Package blastrpc defines the wire contract between the orchestrator and a
// model process. Every model — whatever Lightning implementation it wraps —
// speaks this contract over gRPC, so the orchestrator never needs to know
// what is on the other end of the channel.
//
// There is no .proto file: messages are plain Go structs carried over gRPC
// using a hand-registered JSON codec (see codec.go) instead of generated
// protobuf marshaling. This mirrors the teacher's own pb/mock.go, which
// already favors plain structs and a hand-written client interface over a
// protoc-gen-go pipeline.
package blastrpc

// StartRequest asks a model to bring up a number of Lightning nodes.
type StartRequest struct {
	NumNodes uint64 `json:"num_nodes"`
}

// StartResponse acknowledges node startup.
type StartResponse struct {
	Success bool `json:"success"`
}

// StopModelRequest asks a model to shut down and exit.
type StopModelRequest struct{}

// StopModelResponse acknowledges shutdown.
type StopModelResponse struct {
	Success bool `json:"success"`
}

// SimLnRequest asks a model for the sim-ln node connection data for every
// node it manages.
type SimLnRequest struct{}

// SimLnResponse carries the sim-ln JSON document (see workload.NodeConnection)
// as raw bytes, matching the original's UTF-8-decoded JSON string.
type SimLnResponse struct {
	SimLn []byte `json:"sim_ln"`
}

// PubKeyRequest asks for a node's public key.
type PubKeyRequest struct {
	NodeID string `json:"node_id"`
}

// PubKeyResponse carries the node's public key, hex-encoded.
type PubKeyResponse struct {
	PubKey string `json:"pub_key"`
}

// ListPeersRequest asks for a node's peer list.
type ListPeersRequest struct {
	NodeID string `json:"node_id"`
}

// ListPeersResponse carries the peer list as a JSON document from the
// underlying Lightning implementation, left opaque to the orchestrator.
type ListPeersResponse struct {
	Peers []byte `json:"peers"`
}

// WalletBalanceRequest asks for a node's on-chain wallet balance.
type WalletBalanceRequest struct {
	NodeID string `json:"node_id"`
}

// WalletBalanceResponse carries the balance in satoshis.
type WalletBalanceResponse struct {
	BalanceSat int64 `json:"balance_sat"`
}

// ChannelBalanceRequest asks for a node's total channel balance.
type ChannelBalanceRequest struct {
	NodeID string `json:"node_id"`
}

// ChannelBalanceResponse carries the balance in millisatoshis.
type ChannelBalanceResponse struct {
	BalanceMsat int64 `json:"balance_msat"`
}

// ListChannelsRequest asks for a node's channel list.
type ListChannelsRequest struct {
	NodeID string `json:"node_id"`
}

// ListChannelsResponse carries the channel list as an opaque JSON document.
type ListChannelsResponse struct {
	Channels []byte `json:"channels"`
}

// OpenChannelRequest asks the source node to open a channel to a peer
// already identified by public key. Amount and PushAmount are satoshis.
type OpenChannelRequest struct {
	NodeID     string `json:"node_id"`
	PeerPubKey string `json:"peer_pub_key"`
	ChannelID  int64  `json:"channel_id"`
	AmountSat  int64  `json:"amount_sat"`
	PushAmtSat int64  `json:"push_amt_sat"`
}

// OpenChannelResponse acknowledges the open request; the channel is not
// necessarily confirmed yet.
type OpenChannelResponse struct {
	Success bool `json:"success"`
}

// CloseChannelRequest asks a node to close one of its channels.
type CloseChannelRequest struct {
	NodeID    string `json:"node_id"`
	ChannelID int64  `json:"channel_id"`
}

// CloseChannelResponse acknowledges the close request.
type CloseChannelResponse struct {
	Success bool `json:"success"`
}

// ConnectPeerRequest asks a node to open a peer connection (not a channel).
type ConnectPeerRequest struct {
	NodeID      string `json:"node_id"`
	PeerPubKey  string `json:"peer_pub_key"`
	PeerAddress string `json:"peer_address"`
}

// ConnectPeerResponse acknowledges the connect request.
type ConnectPeerResponse struct {
	Success bool `json:"success"`
}

// DisconnectPeerRequest asks a node to drop a peer connection.
type DisconnectPeerRequest struct {
	NodeID     string `json:"node_id"`
	PeerPubKey string `json:"peer_pub_key"`
}

// DisconnectPeerResponse acknowledges the disconnect request.
type DisconnectPeerResponse struct {
	Success bool `json:"success"`
}

// BtcAddressRequest asks a node for a fresh on-chain address.
type BtcAddressRequest struct {
	NodeID string `json:"node_id"`
}

// BtcAddressResponse carries the address.
type BtcAddressResponse struct {
	Address string `json:"address"`
}

// ListenAddressRequest asks a node for its P2P listen address.
type ListenAddressRequest struct {
	NodeID string `json:"node_id"`
}

// ListenAddressResponse carries the listen address.
type ListenAddressResponse struct {
	Address string `json:"address"`
}

// SendPaymentRequest asks a node to pay another node over Lightning,
// identified by public key, for amountMsat millisatoshis — the workload
// runner's unit of traffic generation.
type SendPaymentRequest struct {
	NodeID     string `json:"node_id"`
	DestPubKey string `json:"dest_pub_key"`
	AmountMsat int64  `json:"amount_msat"`
}

// SendPaymentResponse reports whether the payment settled.
type SendPaymentResponse struct {
	Success       bool  `json:"success"`
	LatencyMicros int64 `json:"latency_micros"`
}

// OnChainTxRequest asks a node to send an on-chain transaction.
type OnChainTxRequest struct {
	NodeID      string `json:"node_id"`
	Destination string `json:"destination"`
	AmountSat   int64  `json:"amount_sat"`
}

// OnChainTxResponse acknowledges the transaction request.
type OnChainTxResponse struct {
	Success bool `json:"success"`
}

// GetModelChannelsRequest asks a model for the channel list across every
// node it manages, opaque JSON the orchestrator persists as the save
// sidecar without interpreting.
type GetModelChannelsRequest struct{}

// GetModelChannelsResponse carries the model-wide channel document.
type GetModelChannelsResponse struct {
	Channels []byte `json:"channels"`
}

// SaveRequest asks a model to archive its own node data directories under
// the simulation name, matching blast_cln's save handler. The model owns
// the archive's location and format; BLAST treats it as opaque (spec.md
// §4.1/§4.6).
type SaveRequest struct {
	SimName string `json:"sim_name"`
}

// SaveResponse acknowledges the save request.
type SaveResponse struct {
	Success bool `json:"success"`
}

// LoadRequest asks a model to restore its previously archived node data
// directories for the named simulation. The model counts its own archived
// node directories and brings up that many nodes before returning,
// matching blast_cln's load handler.
type LoadRequest struct {
	SimName string `json:"sim_name"`
}

// LoadResponse carries the restored node count and the model's sim-ln
// connection document, so the orchestrator can fold the restored nodes
// into the workload runner the same way it does after start_nodes.
type LoadResponse struct {
	NumNodes uint64 `json:"num_nodes"`
	SimLn    []byte `json:"sim_ln"`
}
