package blastrpc

import (
	"context"
	"fmt"
	"sync"
)

// FakeModel is an in-memory Server implementation that stands in for a real
// model process; it is exercised by this package's own tests.
// It plays the same role the teacher's MockLedgerClient plays in
// pb/mock.go: a minimal stand-in that satisfies the wire contract without
// a real backend behind it.
type FakeModel struct {
	mu sync.Mutex

	Nodes     int
	Stopped   bool
	Channels  map[int64]openChannelRecord
	NextPeers map[string]string // pubkey -> address, set by tests
	Fail      map[string]error  // method name -> forced error, set by tests

	Saved       map[string]bool // sim name -> true once Save is called
	LoadedNodes map[string]int  // sim name -> node count to report from Load
}

type openChannelRecord struct {
	NodeID, PeerPubKey    string
	AmountSat, PushAmtSat int64
}

// NewFakeModel returns a ready-to-use FakeModel.
func NewFakeModel() *FakeModel {
	return &FakeModel{
		Channels:    make(map[int64]openChannelRecord),
		NextPeers:   make(map[string]string),
		Fail:        make(map[string]error),
		Saved:       make(map[string]bool),
		LoadedNodes: make(map[string]int),
	}
}

func (f *FakeModel) failIfSet(method string) error {
	if err, ok := f.Fail[method]; ok && err != nil {
		return err
	}
	return nil
}

func (f *FakeModel) Start(_ context.Context, in *StartRequest) (*StartResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfSet("Start"); err != nil {
		return nil, err
	}
	f.Nodes = int(in.NumNodes)
	return &StartResponse{Success: true}, nil
}

func (f *FakeModel) StopModel(_ context.Context, _ *StopModelRequest) (*StopModelResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfSet("StopModel"); err != nil {
		return nil, err
	}
	f.Stopped = true
	return &StopModelResponse{Success: true}, nil
}

func (f *FakeModel) SimLn(_ context.Context, _ *SimLnRequest) (*SimLnResponse, error) {
	if err := f.failIfSet("SimLn"); err != nil {
		return nil, err
	}
	return &SimLnResponse{SimLn: []byte(`{"nodes":[]}`)}, nil
}

func (f *FakeModel) GetPubKey(_ context.Context, in *PubKeyRequest) (*PubKeyResponse, error) {
	if err := f.failIfSet("GetPubKey"); err != nil {
		return nil, err
	}
	return &PubKeyResponse{PubKey: fmt.Sprintf("pubkey-%s", in.NodeID)}, nil
}

func (f *FakeModel) ListPeers(_ context.Context, _ *ListPeersRequest) (*ListPeersResponse, error) {
	if err := f.failIfSet("ListPeers"); err != nil {
		return nil, err
	}
	return &ListPeersResponse{Peers: []byte("[]")}, nil
}

func (f *FakeModel) WalletBalance(_ context.Context, _ *WalletBalanceRequest) (*WalletBalanceResponse, error) {
	if err := f.failIfSet("WalletBalance"); err != nil {
		return nil, err
	}
	return &WalletBalanceResponse{BalanceSat: 1_000_000}, nil
}

func (f *FakeModel) ChannelBalance(_ context.Context, _ *ChannelBalanceRequest) (*ChannelBalanceResponse, error) {
	if err := f.failIfSet("ChannelBalance"); err != nil {
		return nil, err
	}
	return &ChannelBalanceResponse{BalanceMsat: 0}, nil
}

func (f *FakeModel) ListChannels(_ context.Context, _ *ListChannelsRequest) (*ListChannelsResponse, error) {
	if err := f.failIfSet("ListChannels"); err != nil {
		return nil, err
	}
	return &ListChannelsResponse{Channels: []byte("[]")}, nil
}

func (f *FakeModel) OpenChannel(_ context.Context, in *OpenChannelRequest) (*OpenChannelResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfSet("OpenChannel"); err != nil {
		return nil, err
	}
	f.Channels[in.ChannelID] = openChannelRecord{
		NodeID: in.NodeID, PeerPubKey: in.PeerPubKey,
		AmountSat: in.AmountSat, PushAmtSat: in.PushAmtSat,
	}
	return &OpenChannelResponse{Success: true}, nil
}

func (f *FakeModel) CloseChannel(_ context.Context, in *CloseChannelRequest) (*CloseChannelResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfSet("CloseChannel"); err != nil {
		return nil, err
	}
	delete(f.Channels, in.ChannelID)
	return &CloseChannelResponse{Success: true}, nil
}

func (f *FakeModel) ConnectPeer(_ context.Context, _ *ConnectPeerRequest) (*ConnectPeerResponse, error) {
	if err := f.failIfSet("ConnectPeer"); err != nil {
		return nil, err
	}
	return &ConnectPeerResponse{Success: true}, nil
}

func (f *FakeModel) DisconnectPeer(_ context.Context, _ *DisconnectPeerRequest) (*DisconnectPeerResponse, error) {
	if err := f.failIfSet("DisconnectPeer"); err != nil {
		return nil, err
	}
	return &DisconnectPeerResponse{Success: true}, nil
}

func (f *FakeModel) GetBtcAddress(_ context.Context, _ *BtcAddressRequest) (*BtcAddressResponse, error) {
	if err := f.failIfSet("GetBtcAddress"); err != nil {
		return nil, err
	}
	return &BtcAddressResponse{Address: "bcrt1qfakeaddress"}, nil
}

func (f *FakeModel) GetListenAddress(_ context.Context, _ *ListenAddressRequest) (*ListenAddressResponse, error) {
	if err := f.failIfSet("GetListenAddress"); err != nil {
		return nil, err
	}
	return &ListenAddressResponse{Address: "127.0.0.1:9999"}, nil
}

func (f *FakeModel) OnChainTransaction(_ context.Context, _ *OnChainTxRequest) (*OnChainTxResponse, error) {
	if err := f.failIfSet("OnChainTransaction"); err != nil {
		return nil, err
	}
	return &OnChainTxResponse{Success: true}, nil
}

func (f *FakeModel) SendPayment(_ context.Context, _ *SendPaymentRequest) (*SendPaymentResponse, error) {
	if err := f.failIfSet("SendPayment"); err != nil {
		return nil, err
	}
	return &SendPaymentResponse{Success: true, LatencyMicros: 1500}, nil
}

func (f *FakeModel) GetModelChannels(_ context.Context, _ *GetModelChannelsRequest) (*GetModelChannelsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfSet("GetModelChannels"); err != nil {
		return nil, err
	}
	return &GetModelChannelsResponse{Channels: []byte("[]")}, nil
}

func (f *FakeModel) Save(_ context.Context, in *SaveRequest) (*SaveResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfSet("Save"); err != nil {
		return nil, err
	}
	f.Saved[in.SimName] = true
	return &SaveResponse{Success: true}, nil
}

func (f *FakeModel) Load(_ context.Context, in *LoadRequest) (*LoadResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfSet("Load"); err != nil {
		return nil, err
	}
	n := f.LoadedNodes[in.SimName]
	return &LoadResponse{NumNodes: uint64(n), SimLn: []byte(`{"nodes":[]}`)}, nil
}
