// Package btcclient wraps the regtest bitcoind backend BLAST mines blocks
// against, grounded on blast_core/src/lib.rs's use of the bitcoincore_rpc
// Rust crate (Client::new with Auth::UserPass against
// http://127.0.0.1:18443/). github.com/btcsuite/btcd/rpcclient is the
// direct Go analogue, and btcec/v2 is already a transitive dependency
// elsewhere in the reference corpus (ethereum-go-ethereum).
package btcclient

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/rpcclient"
)

// Backend is the subset of bitcoind JSON-RPC calls the scheduler and
// orchestrator need: mining blocks and funding addresses. Abstracted as an
// interface so tests can swap in FakeBackend instead of a live regtest node.
type Backend interface {
	MineBlocks(numBlocks int64) error
	NewAddress() (btcutil.Address, error)
	SendToAddress(addr btcutil.Address, amountSat int64) error
}

// Client wraps *rpcclient.Client against a configured regtest endpoint.
type Client struct {
	rpc *rpcclient.Client
}

// Config is the connection configuration for the bitcoind backend.
type Config struct {
	Host   string
	User   string
	Pass   string
	UseTLS bool
}

// New dials the configured bitcoind backend over HTTP POST JSON-RPC.
func New(cfg Config) (*Client, error) {
	connCfg := &rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Pass,
		HTTPPostMode: true,
		DisableTLS:   !cfg.UseTLS,
	}

	rpc, err := rpcclient.New(connCfg, nil)
	if err != nil {
		return nil, fmt.Errorf("btcclient: connect: %w", err)
	}
	return &Client{rpc: rpc}, nil
}

// Shutdown releases the underlying RPC client.
func (c *Client) Shutdown() {
	c.rpc.Shutdown()
}

// NewAddress returns a fresh P2SH-segwit address, matching mine_blocks's
// get_new_address(P2shSegwit) call in blast_core/src/lib.rs.
func (c *Client) NewAddress() (btcutil.Address, error) {
	addr, err := c.rpc.GetNewAddressType("", "p2sh-segwit")
	if err != nil {
		return nil, fmt.Errorf("btcclient: new address: %w", err)
	}
	return addr, nil
}

// MineBlocks mines numBlocks to a fresh address, the direct port of the
// free function mine_blocks in blast_core/src/lib.rs.
func (c *Client) MineBlocks(numBlocks int64) error {
	addr, err := c.NewAddress()
	if err != nil {
		return err
	}
	if _, err := c.rpc.GenerateToAddress(numBlocks, addr, nil); err != nil {
		return fmt.Errorf("btcclient: generate to address: %w", err)
	}
	return nil
}

// SendToAddress funds addr with amountSat satoshis, used by fund_node.
func (c *Client) SendToAddress(addr btcutil.Address, amountSat int64) error {
	amount := btcutil.Amount(amountSat)
	if _, err := c.rpc.SendToAddress(addr, amount); err != nil {
		return fmt.Errorf("btcclient: send to address: %w", err)
	}
	return nil
}
