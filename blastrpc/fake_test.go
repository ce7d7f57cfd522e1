package blastrpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeModelStart(t *testing.T) {
	m := NewFakeModel()
	resp, err := m.Start(context.Background(), &StartRequest{NumNodes: 3})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, m.Nodes)
}

func TestFakeModelOpenCloseChannel(t *testing.T) {
	m := NewFakeModel()
	_, err := m.OpenChannel(context.Background(), &OpenChannelRequest{
		NodeID: "blast_lnd-0000", PeerPubKey: "pk1", ChannelID: 7, AmountSat: 100000, PushAmtSat: 1000,
	})
	require.NoError(t, err)
	require.Contains(t, m.Channels, int64(7))

	_, err = m.CloseChannel(context.Background(), &CloseChannelRequest{NodeID: "blast_lnd-0000", ChannelID: 7})
	require.NoError(t, err)
	assert.NotContains(t, m.Channels, int64(7))
}

func TestFakeModelForcedFailure(t *testing.T) {
	m := NewFakeModel()
	m.Fail["GetPubKey"] = errors.New("model unreachable")

	_, err := m.GetPubKey(context.Background(), &PubKeyRequest{NodeID: "blast_lnd-0000"})
	require.Error(t, err)
}

func TestFakeModelSaveLoad(t *testing.T) {
	m := NewFakeModel()
	_, err := m.Save(context.Background(), &SaveRequest{SimName: "sim1"})
	require.NoError(t, err)
	assert.True(t, m.Saved["sim1"])

	m.LoadedNodes["sim1"] = 2
	resp, err := m.Load(context.Background(), &LoadRequest{SimName: "sim1"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), resp.NumNodes)
}

func TestJSONCodecRoundTrip(t *testing.T) {
	c := jsonCodec{}
	in := &OpenChannelRequest{NodeID: "a", PeerPubKey: "b", ChannelID: 1, AmountSat: 2, PushAmtSat: 3}

	data, err := c.Marshal(in)
	require.NoError(t, err)

	out := new(OpenChannelRequest)
	require.NoError(t, c.Unmarshal(data, out))
	assert.Equal(t, in, out)
	assert.Equal(t, codecName, c.Name())
}
