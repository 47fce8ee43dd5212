/*
PURPOSE:
  Invocation adapter for GenLayer intelligent contracts.
  Performs one read call or one signed write transaction per invocation
  and reports the latency-relevant outcome (gas, tx hash, block, error).

REQUIREMENTS:
  User-specified:
  - Read calls: no transaction, no gas.
  - Write calls: signed transaction, gas usage captured from the receipt.
  - Contract schema retrieval for diagnostics.

  Implementation-discovered:
  - Writes need nonce + gas price discovery and receipt polling; the
    receipt is where gas_used and block number live.
  - A per-invocation timeout belongs here, not in the driver; a timed-out
    call is reported as a failed outcome like any other.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go (via the Invoker interface)
  - Uses: internal/config, internal/model
  - Dependencies: github.com/ethereum/go-ethereum (rpc, ethclient,
    core/types, crypto, common)

ERROR HANDLING:
  - Invoke never panics; every failure mode is folded into Outcome.Err
    so the driver can record it as a failed sample.
  - NewClient fails fast on unreachable endpoint, bad address, bad key.

IMPLEMENTATION RULES:
  - Reads go through gen_call; writes are legacy transactions whose
    calldata is the JSON-encoded method call, signed with the chain-id
    signer.
  - The client holds no per-run state; one client serves many runs.

USAGE:
  c, err := engine.NewClient(cfg)
  out := c.Invoke(ctx, "getStorage", nil, true)

SELF-HEALING INSTRUCTIONS:
  - If reads start failing with "method not found", the endpoint is not
    a GenLayer node; check rpc_url.

RELATED FILES:
  - internal/engine/runner.go
  - internal/config/config.go

MAINTENANCE:
  - Update RPC method names if the GenLayer API changes.
*/

package engine

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/kmelnick/genbench/internal/config"
	"github.com/kmelnick/genbench/internal/model"
)

// ErrNoSigningKey is returned for write invocations when the client was
// built without a private key.
var ErrNoSigningKey = errors.New("write invocation requires a signing key")

const (
	// writeGasLimit bounds a benchmark transaction. Intelligent contract
	// calls on the Asimov testnet stay well under this.
	writeGasLimit = 2_000_000

	receiptPollInterval = 500 * time.Millisecond
)

// Client performs contract invocations against a GenLayer endpoint.
type Client struct {
	rpc      *rpc.Client
	eth      *ethclient.Client
	contract common.Address
	chainID  *big.Int
	key      *ecdsa.PrivateKey
	from     common.Address
	timeout  time.Duration
}

// NewClient dials the configured endpoint and prepares the signing
// account, if a key is configured.
func NewClient(cfg *config.Config) (*Client, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	rpcClient, err := rpc.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
	}

	c := &Client{
		rpc:      rpcClient,
		eth:      ethclient.NewClient(rpcClient),
		contract: common.HexToAddress(cfg.ContractAddress),
		chainID:  big.NewInt(cfg.ChainID),
		timeout:  time.Duration(cfg.RequestTimeout),
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		c.key = key
		c.from = crypto.PubkeyToAddress(key.PublicKey)
	}

	return c, nil
}

// CanWrite reports whether the client can sign transactions.
func (c *Client) CanWrite() bool {
	return c.key != nil
}

// callPayload is the JSON shape GenLayer expects for a contract call,
// both as gen_call argument and as write calldata.
type callPayload struct {
	To       string `json:"to"`
	Function string `json:"function"`
	Args     []any  `json:"args"`
}

// Invoke performs one contract invocation and reports its outcome.
// Failures of any kind are folded into Outcome.Err.
func (c *Client) Invoke(ctx context.Context, method string, args []any, read bool) model.Outcome {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if args == nil {
		args = []any{}
	}

	if read {
		return c.readCall(ctx, method, args)
	}
	return c.writeCall(ctx, method, args)
}

func (c *Client) readCall(ctx context.Context, method string, args []any) model.Outcome {
	payload := callPayload{
		To:       c.contract.Hex(),
		Function: method,
		Args:     args,
	}

	var result json.RawMessage
	if err := c.rpc.CallContext(ctx, &result, "gen_call", payload); err != nil {
		return model.Outcome{Err: fmt.Errorf("gen_call %s: %w", method, err)}
	}

	return model.Outcome{}
}

func (c *Client) writeCall(ctx context.Context, method string, args []any) model.Outcome {
	if c.key == nil {
		return model.Outcome{Err: ErrNoSigningKey}
	}

	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return model.Outcome{Err: fmt.Errorf("nonce for %s: %w", c.from.Hex(), err)}
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return model.Outcome{Err: fmt.Errorf("suggest gas price: %w", err)}
	}

	calldata, err := json.Marshal(callPayload{
		To:       c.contract.Hex(),
		Function: method,
		Args:     args,
	})
	if err != nil {
		return model.Outcome{Err: fmt.Errorf("encode calldata: %w", err)}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.contract,
		Gas:      writeGasLimit,
		GasPrice: gasPrice,
		Data:     calldata,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return model.Outcome{Err: fmt.Errorf("sign tx: %w", err)}
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return model.Outcome{Err: fmt.Errorf("send tx %s: %w", method, err)}
	}

	receipt, err := c.waitReceipt(ctx, signed.Hash())
	if err != nil {
		return model.Outcome{Err: fmt.Errorf("receipt for %s: %w", signed.Hash().Hex(), err)}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return model.Outcome{
			TxHash: signed.Hash().Hex(),
			Err:    fmt.Errorf("tx %s reverted", signed.Hash().Hex()),
		}
	}

	out := model.Outcome{TxHash: signed.Hash().Hex()}
	if receipt.GasUsed > 0 {
		gas := receipt.GasUsed
		out.GasUsed = &gas
	}
	if receipt.BlockNumber != nil {
		block := receipt.BlockNumber.Uint64()
		out.BlockNumber = &block
	}

	return out
}

// waitReceipt polls for the transaction receipt until the invocation
// context expires.
func (c *Client) waitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Schema fetches the contract schema, used by the schema subcommand to
// verify connectivity and inspect callable methods.
func (c *Client) Schema(ctx context.Context) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var schema json.RawMessage
	if err := c.rpc.CallContext(ctx, &schema, "gen_getContractSchema", c.contract.Hex()); err != nil {
		return nil, fmt.Errorf("gen_getContractSchema: %w", err)
	}

	return schema, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}
