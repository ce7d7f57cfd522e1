package btcclient

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// FakeBackend is an in-memory Backend for scheduler/orchestrator tests
// that never talks to a real bitcoind.
type FakeBackend struct {
	BlocksMined int64
	MineCalls   int
	SendCalls   int
	SentSat     int64
}

// NewFakeBackend returns a ready-to-use FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

func (f *FakeBackend) MineBlocks(numBlocks int64) error {
	f.BlocksMined += numBlocks
	f.MineCalls++
	return nil
}

func (f *FakeBackend) NewAddress() (btcutil.Address, error) {
	return btcutil.NewAddressPubKeyHash(make([]byte, 20), &chaincfg.RegressionNetParams)
}

func (f *FakeBackend) SendToAddress(_ btcutil.Address, amountSat int64) error {
	f.SendCalls++
	f.SentSat += amountSat
	return nil
}
