package txn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"p2pswap/pkg/client"
	"p2pswap/pkg/logger"
	"p2pswap/pkg/network"
	"p2pswap/pkg/parser"
	"p2pswap/pkg/types"
	"p2pswap/pkg/wallet"
)

// Runner signs a payload through the wallet, waits for it to commit and reports the outcome
type Runner struct {
	registry *network.Registry
	wallet   wallet.Wallet
}

// NewRunner creates a runner submitting through w and confirming on the network w is on
func NewRunner(registry *network.Registry, w wallet.Wallet) *Runner {
	return &Runner{
		registry: registry,
		wallet:   w,
	}
}

// Run executes payload once. On success the committed transaction is returned and a success
// outcome carrying its hash is reported. On any failure the outcome is an error carrying the
// failure detail, and a nil transaction is returned with the error. Nothing is retried.
func (r *Runner) Run(ctx context.Context, payload types.EntryFunctionPayload, sink types.OutcomeSink) (*client.Transaction, error) {
	if sink == nil {
		sink = func(types.Outcome) {}
	}

	payloadJSON, _ := json.Marshal(payload)
	logger.Logger.Info("Running payload", "payload", string(payloadJSON))

	txn, err := r.run(ctx, payload)
	if err != nil {
		logger.Logger.Warn("Failed to wait for txn", "error", err)
		sink(types.Outcome{State: types.OutcomeError, Msg: "Failed txn due to " + ErrorDetail(err)})
		return nil, err
	}

	sink(types.Outcome{State: types.OutcomeSuccess, Msg: "Successful txn " + txn.Hash})
	return txn, nil
}

func (r *Runner) run(ctx context.Context, payload types.EntryFunctionPayload) (*client.Transaction, error) {
	if err := parser.ValidatePayload(payload); err != nil {
		return nil, err
	}

	id, ledger := r.registry.Resolve(r.wallet)

	pending, err := r.wallet.SignAndSubmitTransaction(ctx, payload)
	if err != nil {
		return nil, err
	}
	logger.Logger.Info("Successfully submitted", "hash", pending.Hash, "network", id)

	if err := ledger.WaitForTransaction(ctx, pending.Hash); err != nil {
		return nil, err
	}
	logger.Logger.Info("Successfully committed", "hash", pending.Hash)

	txn, err := ledger.GetTransactionByHash(ctx, pending.Hash)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, fmt.Errorf("no transaction returned for %s", pending.Hash)
	}

	logger.Logger.Debug("Txn", "hash", txn.Hash, "version", txn.Version, "vm_status", txn.VMStatus)
	return txn, nil
}

// ErrorDetail renders err for the outcome message: node errors as their JSON body, anything
// else as a JSON string
func ErrorDetail(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if data, marshalErr := json.Marshal(apiErr); marshalErr == nil {
			return string(data)
		}
	}
	var indexerErr *client.IndexerError
	if errors.As(err, &indexerErr) {
		if data, marshalErr := json.Marshal(indexerErr.Errors); marshalErr == nil {
			return string(data)
		}
	}
	data, _ := json.Marshal(err.Error())
	return string(data)
}

// CancelOffer builds the cancel_offer payload for the contract at contractAddress
func CancelOffer(contractAddress, offerID string) (types.EntryFunctionPayload, error) {
	function, err := parser.CancelOfferFunction(contractAddress)
	if err != nil {
		return types.EntryFunctionPayload{}, err
	}
	id, err := parser.NormalizeOfferID(offerID)
	if err != nil {
		return types.EntryFunctionPayload{}, err
	}
	return types.NewEntryFunctionPayload(function, id), nil
}
