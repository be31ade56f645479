package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p2pswap/pkg/client"
	"p2pswap/pkg/network"
	"p2pswap/pkg/parser"
	"p2pswap/pkg/types"
)

const contract = "0x615bda72f7575d876e29dd2f73691e46b4b14df8a1602aadc23b52d4ab4852b7"

type stubLedger struct {
	name      string
	waitErr   error
	getErr    error
	waited    []string
	fetched   []string
	committed *client.Transaction
}

func (s *stubLedger) QueryIndexer(context.Context, string, map[string]interface{}, interface{}) error {
	return errors.New("not used")
}

func (s *stubLedger) WaitForTransaction(_ context.Context, hash string) error {
	s.waited = append(s.waited, hash)
	return s.waitErr
}

func (s *stubLedger) GetTransactionByHash(_ context.Context, hash string) (*client.Transaction, error) {
	s.fetched = append(s.fetched, hash)
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.committed != nil {
		return s.committed, nil
	}
	return &client.Transaction{Type: "user_transaction", Hash: hash, Success: true, Version: "99"}, nil
}

type stubWallet struct {
	network  string
	provider string
	hash     string
	signErr  error
	payloads []types.EntryFunctionPayload
}

func (w *stubWallet) Connected() bool      { return true }
func (w *stubWallet) NetworkName() string  { return w.network }
func (w *stubWallet) ProviderName() string { return w.provider }

func (w *stubWallet) SignAndSubmitTransaction(_ context.Context, payload types.EntryFunctionPayload) (types.PendingTransaction, error) {
	w.payloads = append(w.payloads, payload)
	if w.signErr != nil {
		return types.PendingTransaction{}, w.signErr
	}
	return types.PendingTransaction{Hash: w.hash}, nil
}

type ledgers struct {
	devnet, testnet, mainnet *stubLedger
	registry                 *network.Registry
}

func newLedgers(t *testing.T) ledgers {
	t.Helper()
	l := ledgers{devnet: &stubLedger{name: "devnet"}, testnet: &stubLedger{name: "testnet"}, mainnet: &stubLedger{name: "mainnet"}}
	reg, err := network.NewRegistry(l.devnet, l.testnet, l.mainnet)
	require.NoError(t, err)
	l.registry = reg
	return l
}

type recorder struct {
	outcomes []types.Outcome
}

func (r *recorder) sink(o types.Outcome) {
	r.outcomes = append(r.outcomes, o)
}

func TestRunSuccess(t *testing.T) {
	l := newLedgers(t)
	w := &stubWallet{network: "testnet", provider: "Petra", hash: "0xabc123"}
	rec := &recorder{}

	payload, err := CancelOffer(contract, "42")
	require.NoError(t, err)

	txn, err := NewRunner(l.registry, w).Run(context.Background(), payload, rec.sink)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, "0xabc123", txn.Hash)

	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, types.OutcomeSuccess, rec.outcomes[0].State)
	assert.Equal(t, "Successful txn 0xabc123", rec.outcomes[0].Msg)

	assert.Equal(t, []string{"0xabc123"}, l.testnet.waited)
	assert.Equal(t, []string{"0xabc123"}, l.testnet.fetched)
	assert.Empty(t, l.devnet.waited)
	assert.Empty(t, l.mainnet.waited)

	require.Len(t, w.payloads, 1)
	assert.Equal(t, contract+"::p2pswap::cancel_offer", w.payloads[0].Function)
	assert.Equal(t, []interface{}{"42"}, w.payloads[0].Arguments)
	assert.Empty(t, w.payloads[0].TypeArguments)
}

func TestRunSuccessReportsFinalizedHash(t *testing.T) {
	l := newLedgers(t)
	l.devnet.committed = &client.Transaction{Type: "user_transaction", Hash: "0xfinal", Success: true}
	w := &stubWallet{network: "custom", provider: "Martian", hash: "0xsubmitted"}
	rec := &recorder{}

	txn, err := NewRunner(l.registry, w).Run(context.Background(), types.NewEntryFunctionPayload(contract+"::p2pswap::cancel_offer", "1"), rec.sink)
	require.NoError(t, err)
	assert.Equal(t, "0xfinal", txn.Hash)
	assert.Equal(t, "Successful txn 0xfinal", rec.outcomes[0].Msg)
	assert.Equal(t, []string{"0xsubmitted"}, l.devnet.waited)
}

func TestRunSigningRejected(t *testing.T) {
	l := newLedgers(t)
	w := &stubWallet{network: "testnet", signErr: errors.New("User rejected the request")}
	rec := &recorder{}

	txn, err := NewRunner(l.registry, w).Run(context.Background(), types.NewEntryFunctionPayload(contract+"::p2pswap::cancel_offer", "42"), rec.sink)
	assert.Nil(t, txn)
	require.Error(t, err)

	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, types.OutcomeError, rec.outcomes[0].State)
	assert.Contains(t, rec.outcomes[0].Msg, "Failed txn due to")
	assert.Contains(t, rec.outcomes[0].Msg, "User rejected the request")

	assert.Empty(t, l.testnet.waited)
	assert.Empty(t, l.testnet.fetched)
}

func TestRunConfirmationFailure(t *testing.T) {
	l := newLedgers(t)
	l.mainnet.waitErr = client.ErrWaitTimeout
	w := &stubWallet{network: "mainnet", hash: "0x1"}
	rec := &recorder{}

	txn, err := NewRunner(l.registry, w).Run(context.Background(), types.NewEntryFunctionPayload(contract+"::p2pswap::cancel_offer", "42"), rec.sink)
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, client.ErrWaitTimeout)
	assert.Equal(t, types.OutcomeError, rec.outcomes[0].State)
	assert.Empty(t, l.mainnet.fetched)
}

func TestRunFetchFailureWithAPIError(t *testing.T) {
	l := newLedgers(t)
	l.testnet.getErr = &client.APIError{StatusCode: 404, Message: "not found", ErrorCode: "transaction_not_found"}
	w := &stubWallet{network: "testnet", hash: "0x1"}
	rec := &recorder{}

	txn, err := NewRunner(l.registry, w).Run(context.Background(), types.NewEntryFunctionPayload(contract+"::p2pswap::cancel_offer", "42"), rec.sink)
	assert.Nil(t, txn)
	require.Error(t, err)
	assert.Equal(t, `Failed txn due to {"status_code":404,"message":"not found","error_code":"transaction_not_found"}`, rec.outcomes[0].Msg)
}

func TestRunRejectsMalformedPayload(t *testing.T) {
	l := newLedgers(t)
	w := &stubWallet{network: "testnet", hash: "0x1"}
	rec := &recorder{}

	_, err := NewRunner(l.registry, w).Run(context.Background(), types.NewEntryFunctionPayload("cancel_offer", "42"), rec.sink)
	assert.ErrorIs(t, err, parser.ErrInvalidPayload)
	assert.Empty(t, w.payloads)
	assert.Equal(t, types.OutcomeError, rec.outcomes[0].State)
}

func TestRunWithNilSink(t *testing.T) {
	l := newLedgers(t)
	w := &stubWallet{network: "testnet", hash: "0x1"}

	txn, err := NewRunner(l.registry, w).Run(context.Background(), types.NewEntryFunctionPayload(contract+"::p2pswap::cancel_offer", "42"), nil)
	require.NoError(t, err)
	assert.Equal(t, "0x1", txn.Hash)
}

func TestCancelOffer(t *testing.T) {
	payload, err := CancelOffer("0x1", " 42 ")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001::p2pswap::cancel_offer", payload.Function)
	assert.Equal(t, []interface{}{"42"}, payload.Arguments)

	_, err = CancelOffer("0x1", "")
	assert.Error(t, err)

	_, err = CancelOffer("nope", "42")
	assert.Error(t, err)
}
