package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"p2pswap/pkg/logger"
	"p2pswap/pkg/types"
)

// ErrWaitTimeout is returned when a transaction is still unknown or pending after the wait timeout
var ErrWaitTimeout = errors.New("timed out waiting for transaction")

const pendingTransactionType = "pending_transaction"

// Transaction is a transaction as returned by the fullnode
type Transaction struct {
	Type           string          `json:"type"`
	Hash           string          `json:"hash"`
	Version        string          `json:"version,omitempty"`
	Sender         string          `json:"sender,omitempty"`
	SequenceNumber string          `json:"sequence_number,omitempty"`
	Success        bool            `json:"success"`
	VMStatus       string          `json:"vm_status,omitempty"`
	GasUsed        string          `json:"gas_used,omitempty"`
	Timestamp      string          `json:"timestamp,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// IsPending reports whether the transaction has not been committed yet
func (t *Transaction) IsPending() bool {
	return t.Type == pendingTransactionType
}

// Account is the on-chain account resource summary
type Account struct {
	SequenceNumber    string `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

// Signature is an ed25519 transaction authenticator in JSON form
type Signature struct {
	Type      string `json:"type"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

// SubmissionRequest is the unsigned (or signed, when Signature is set) transaction body
type SubmissionRequest struct {
	Sender                  string                     `json:"sender"`
	SequenceNumber          string                     `json:"sequence_number"`
	MaxGasAmount            string                     `json:"max_gas_amount"`
	GasUnitPrice            string                     `json:"gas_unit_price"`
	ExpirationTimestampSecs string                     `json:"expiration_timestamp_secs"`
	Payload                 types.EntryFunctionPayload `json:"payload"`
	Signature               *Signature                 `json:"signature,omitempty"`
}

type gasEstimate struct {
	GasEstimate uint64 `json:"gas_estimate"`
}

// GetAccount fetches an account's sequence number and authentication key
func (c *Client) GetAccount(ctx context.Context, address string) (*Account, error) {
	var account Account
	if err := c.doJSON(ctx, http.MethodGet, c.fullnodeURL+"/accounts/"+url.PathEscape(address), nil, &account); err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", address, err)
	}
	return &account, nil
}

// EstimateGasPrice returns the node's current gas unit price estimate
func (c *Client) EstimateGasPrice(ctx context.Context) (uint64, error) {
	var estimate gasEstimate
	if err := c.doJSON(ctx, http.MethodGet, c.fullnodeURL+"/estimate_gas_price", nil, &estimate); err != nil {
		return 0, fmt.Errorf("failed to estimate gas price: %w", err)
	}
	return estimate.GasEstimate, nil
}

// EncodeSubmission asks the node for the signing message of an unsigned transaction
func (c *Client) EncodeSubmission(ctx context.Context, req SubmissionRequest) ([]byte, error) {
	req.Signature = nil

	var encoded string
	if err := c.doJSON(ctx, http.MethodPost, c.fullnodeURL+"/transactions/encode_submission", req, &encoded); err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	message, err := hexutil.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid signing message from node: %w", err)
	}
	return message, nil
}

// SubmitTransaction submits a signed transaction and returns the pending transaction
func (c *Client) SubmitTransaction(ctx context.Context, req SubmissionRequest) (*Transaction, error) {
	if req.Signature == nil {
		return nil, fmt.Errorf("transaction is not signed")
	}

	var txn Transaction
	if err := c.doJSON(ctx, http.MethodPost, c.fullnodeURL+"/transactions", req, &txn); err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}
	if txn.Hash == "" {
		return nil, fmt.Errorf("empty transaction hash returned")
	}
	return &txn, nil
}

// GetTransactionByHash fetches a transaction, pending or committed, by hash
func (c *Client) GetTransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	var txn Transaction
	if err := c.doJSON(ctx, http.MethodGet, c.fullnodeURL+"/transactions/by_hash/"+url.PathEscape(hash), nil, &txn); err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", hash, err)
	}
	return &txn, nil
}

// WaitForTransaction polls until hash is committed. A transaction the node does not know
// yet is treated as pending. A committed transaction that did not succeed is an error.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, c.waitTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	start := time.Now()
	for {
		txn, err := c.GetTransactionByHash(ctx, hash)
		if err == nil && !txn.IsPending() {
			logger.Logger.Debug("Transaction committed", "hash", hash, "version", txn.Version, "elapsed", time.Since(start))
			if !txn.Success {
				return fmt.Errorf("transaction %s failed: %s", hash, txn.VMStatus)
			}
			return nil
		}
		if err != nil && !IsNotFound(err) && ctx.Err() == nil {
			return err
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w %s after %s", ErrWaitTimeout, hash, c.waitTimeout)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
