package blastrpc

import (
	"context"

	"google.golang.org/grpc"
)

// serviceName is the gRPC service path every RPC in this package is invoked
// under: "/blastrpc.Model/<Method>".
const serviceName = "blastrpc.Model"

// callOpts forces every invocation onto the JSON codec registered in
// codec.go, in place of the protobuf codec grpc-go would otherwise select.
func callOpts(opts ...grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}

// Client is the orchestrator-side view of a model process. Every model
// registered with internal/model implements the corresponding server side
// of this interface; the orchestrator only ever talks to models through it.
type Client interface {
	Start(ctx context.Context, in *StartRequest, opts ...grpc.CallOption) (*StartResponse, error)
	StopModel(ctx context.Context, in *StopModelRequest, opts ...grpc.CallOption) (*StopModelResponse, error)
	SimLn(ctx context.Context, in *SimLnRequest, opts ...grpc.CallOption) (*SimLnResponse, error)
	GetPubKey(ctx context.Context, in *PubKeyRequest, opts ...grpc.CallOption) (*PubKeyResponse, error)
	ListPeers(ctx context.Context, in *ListPeersRequest, opts ...grpc.CallOption) (*ListPeersResponse, error)
	WalletBalance(ctx context.Context, in *WalletBalanceRequest, opts ...grpc.CallOption) (*WalletBalanceResponse, error)
	ChannelBalance(ctx context.Context, in *ChannelBalanceRequest, opts ...grpc.CallOption) (*ChannelBalanceResponse, error)
	ListChannels(ctx context.Context, in *ListChannelsRequest, opts ...grpc.CallOption) (*ListChannelsResponse, error)
	OpenChannel(ctx context.Context, in *OpenChannelRequest, opts ...grpc.CallOption) (*OpenChannelResponse, error)
	CloseChannel(ctx context.Context, in *CloseChannelRequest, opts ...grpc.CallOption) (*CloseChannelResponse, error)
	ConnectPeer(ctx context.Context, in *ConnectPeerRequest, opts ...grpc.CallOption) (*ConnectPeerResponse, error)
	DisconnectPeer(ctx context.Context, in *DisconnectPeerRequest, opts ...grpc.CallOption) (*DisconnectPeerResponse, error)
	GetBtcAddress(ctx context.Context, in *BtcAddressRequest, opts ...grpc.CallOption) (*BtcAddressResponse, error)
	GetListenAddress(ctx context.Context, in *ListenAddressRequest, opts ...grpc.CallOption) (*ListenAddressResponse, error)
	OnChainTransaction(ctx context.Context, in *OnChainTxRequest, opts ...grpc.CallOption) (*OnChainTxResponse, error)
	SendPayment(ctx context.Context, in *SendPaymentRequest, opts ...grpc.CallOption) (*SendPaymentResponse, error)
	GetModelChannels(ctx context.Context, in *GetModelChannelsRequest, opts ...grpc.CallOption) (*GetModelChannelsResponse, error)
	Save(ctx context.Context, in *SaveRequest, opts ...grpc.CallOption) (*SaveResponse, error)
	Load(ctx context.Context, in *LoadRequest, opts ...grpc.CallOption) (*LoadResponse, error)
}

// client is the default Client implementation, invoking over a real
// *grpc.ClientConn the way the teacher's internal/escrow/jury_client.go
// wraps grpc.ClientConn.Invoke behind a narrow interface.
type client struct {
	cc *grpc.ClientConn
}

// NewClient wraps an established connection to a model process.
func NewClient(cc *grpc.ClientConn) Client {
	return &client{cc: cc}
}

func (c *client) Start(ctx context.Context, in *StartRequest, opts ...grpc.CallOption) (*StartResponse, error) {
	out := new(StartResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Start", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) StopModel(ctx context.Context, in *StopModelRequest, opts ...grpc.CallOption) (*StopModelResponse, error) {
	out := new(StopModelResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/StopModel", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) SimLn(ctx context.Context, in *SimLnRequest, opts ...grpc.CallOption) (*SimLnResponse, error) {
	out := new(SimLnResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/SimLn", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) GetPubKey(ctx context.Context, in *PubKeyRequest, opts ...grpc.CallOption) (*PubKeyResponse, error) {
	out := new(PubKeyResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetPubKey", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ListPeers(ctx context.Context, in *ListPeersRequest, opts ...grpc.CallOption) (*ListPeersResponse, error) {
	out := new(ListPeersResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ListPeers", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) WalletBalance(ctx context.Context, in *WalletBalanceRequest, opts ...grpc.CallOption) (*WalletBalanceResponse, error) {
	out := new(WalletBalanceResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/WalletBalance", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ChannelBalance(ctx context.Context, in *ChannelBalanceRequest, opts ...grpc.CallOption) (*ChannelBalanceResponse, error) {
	out := new(ChannelBalanceResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ChannelBalance", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ListChannels(ctx context.Context, in *ListChannelsRequest, opts ...grpc.CallOption) (*ListChannelsResponse, error) {
	out := new(ListChannelsResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ListChannels", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) OpenChannel(ctx context.Context, in *OpenChannelRequest, opts ...grpc.CallOption) (*OpenChannelResponse, error) {
	out := new(OpenChannelResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/OpenChannel", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) CloseChannel(ctx context.Context, in *CloseChannelRequest, opts ...grpc.CallOption) (*CloseChannelResponse, error) {
	out := new(CloseChannelResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/CloseChannel", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ConnectPeer(ctx context.Context, in *ConnectPeerRequest, opts ...grpc.CallOption) (*ConnectPeerResponse, error) {
	out := new(ConnectPeerResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ConnectPeer", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) DisconnectPeer(ctx context.Context, in *DisconnectPeerRequest, opts ...grpc.CallOption) (*DisconnectPeerResponse, error) {
	out := new(DisconnectPeerResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/DisconnectPeer", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) GetBtcAddress(ctx context.Context, in *BtcAddressRequest, opts ...grpc.CallOption) (*BtcAddressResponse, error) {
	out := new(BtcAddressResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetBtcAddress", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) GetListenAddress(ctx context.Context, in *ListenAddressRequest, opts ...grpc.CallOption) (*ListenAddressResponse, error) {
	out := new(ListenAddressResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetListenAddress", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) OnChainTransaction(ctx context.Context, in *OnChainTxRequest, opts ...grpc.CallOption) (*OnChainTxResponse, error) {
	out := new(OnChainTxResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/OnChainTransaction", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) SendPayment(ctx context.Context, in *SendPaymentRequest, opts ...grpc.CallOption) (*SendPaymentResponse, error) {
	out := new(SendPaymentResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/SendPayment", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) GetModelChannels(ctx context.Context, in *GetModelChannelsRequest, opts ...grpc.CallOption) (*GetModelChannelsResponse, error) {
	out := new(GetModelChannelsResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetModelChannels", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Save(ctx context.Context, in *SaveRequest, opts ...grpc.CallOption) (*SaveResponse, error) {
	out := new(SaveResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Save", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Load(ctx context.Context, in *LoadRequest, opts ...grpc.CallOption) (*LoadResponse, error) {
	out := new(LoadResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Load", in, out, callOpts(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

// Server is the model-side contract. A real model process implements this
// interface and registers itself with RegisterServer; FakeModel (fake.go)
// implements it for tests without spawning a process.
type Server interface {
	Start(context.Context, *StartRequest) (*StartResponse, error)
	StopModel(context.Context, *StopModelRequest) (*StopModelResponse, error)
	SimLn(context.Context, *SimLnRequest) (*SimLnResponse, error)
	GetPubKey(context.Context, *PubKeyRequest) (*PubKeyResponse, error)
	ListPeers(context.Context, *ListPeersRequest) (*ListPeersResponse, error)
	WalletBalance(context.Context, *WalletBalanceRequest) (*WalletBalanceResponse, error)
	ChannelBalance(context.Context, *ChannelBalanceRequest) (*ChannelBalanceResponse, error)
	ListChannels(context.Context, *ListChannelsRequest) (*ListChannelsResponse, error)
	OpenChannel(context.Context, *OpenChannelRequest) (*OpenChannelResponse, error)
	CloseChannel(context.Context, *CloseChannelRequest) (*CloseChannelResponse, error)
	ConnectPeer(context.Context, *ConnectPeerRequest) (*ConnectPeerResponse, error)
	DisconnectPeer(context.Context, *DisconnectPeerRequest) (*DisconnectPeerResponse, error)
	GetBtcAddress(context.Context, *BtcAddressRequest) (*BtcAddressResponse, error)
	GetListenAddress(context.Context, *ListenAddressRequest) (*ListenAddressResponse, error)
	OnChainTransaction(context.Context, *OnChainTxRequest) (*OnChainTxResponse, error)
	SendPayment(context.Context, *SendPaymentRequest) (*SendPaymentResponse, error)
	GetModelChannels(context.Context, *GetModelChannelsRequest) (*GetModelChannelsResponse, error)
	Save(context.Context, *SaveRequest) (*SaveResponse, error)
	Load(context.Context, *LoadRequest) (*LoadResponse, error)
}

// RegisterServer attaches a Server implementation to a *grpc.Server under
// the blastrpc.Model service name.
func RegisterServer(s *grpc.Server, impl Server) {
	s.RegisterService(&serviceDesc, impl)
}

func unaryHandler[Req any, Resp any](call func(Server, context.Context, *Req) (*Resp, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		impl := srv.(Server)
		if interceptor == nil {
			return call(impl, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(impl, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Start", Handler: unaryHandler[StartRequest, StartResponse](Server.Start)},
		{MethodName: "StopModel", Handler: unaryHandler[StopModelRequest, StopModelResponse](Server.StopModel)},
		{MethodName: "SimLn", Handler: unaryHandler[SimLnRequest, SimLnResponse](Server.SimLn)},
		{MethodName: "GetPubKey", Handler: unaryHandler[PubKeyRequest, PubKeyResponse](Server.GetPubKey)},
		{MethodName: "ListPeers", Handler: unaryHandler[ListPeersRequest, ListPeersResponse](Server.ListPeers)},
		{MethodName: "WalletBalance", Handler: unaryHandler[WalletBalanceRequest, WalletBalanceResponse](Server.WalletBalance)},
		{MethodName: "ChannelBalance", Handler: unaryHandler[ChannelBalanceRequest, ChannelBalanceResponse](Server.ChannelBalance)},
		{MethodName: "ListChannels", Handler: unaryHandler[ListChannelsRequest, ListChannelsResponse](Server.ListChannels)},
		{MethodName: "OpenChannel", Handler: unaryHandler[OpenChannelRequest, OpenChannelResponse](Server.OpenChannel)},
		{MethodName: "CloseChannel", Handler: unaryHandler[CloseChannelRequest, CloseChannelResponse](Server.CloseChannel)},
		{MethodName: "ConnectPeer", Handler: unaryHandler[ConnectPeerRequest, ConnectPeerResponse](Server.ConnectPeer)},
		{MethodName: "DisconnectPeer", Handler: unaryHandler[DisconnectPeerRequest, DisconnectPeerResponse](Server.DisconnectPeer)},
		{MethodName: "GetBtcAddress", Handler: unaryHandler[BtcAddressRequest, BtcAddressResponse](Server.GetBtcAddress)},
		{MethodName: "GetListenAddress", Handler: unaryHandler[ListenAddressRequest, ListenAddressResponse](Server.GetListenAddress)},
		{MethodName: "OnChainTransaction", Handler: unaryHandler[OnChainTxRequest, OnChainTxResponse](Server.OnChainTransaction)},
		{MethodName: "SendPayment", Handler: unaryHandler[SendPaymentRequest, SendPaymentResponse](Server.SendPayment)},
		{MethodName: "GetModelChannels", Handler: unaryHandler[GetModelChannelsRequest, GetModelChannelsResponse](Server.GetModelChannels)},
		{MethodName: "Save", Handler: unaryHandler[SaveRequest, SaveResponse](Server.Save)},
		{MethodName: "Load", Handler: unaryHandler[LoadRequest, LoadResponse](Server.Load)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blastrpc/service.go",
}
