package app

import (
	"context"
	"errors"
	"fmt"

	"p2pswap/pkg/client"
	"p2pswap/pkg/network"
	"p2pswap/pkg/offer"
	"p2pswap/pkg/parser"
	"p2pswap/pkg/txn"
	"p2pswap/pkg/types"
	"p2pswap/pkg/view"
	"p2pswap/pkg/wallet"
)

var (
	// ErrWalletNotConnected means no wallet is connected
	ErrWalletNotConnected = errors.New("wallet not connected")

	// ErrSuperseded means a later invocation of the same action took over the display
	ErrSuperseded = errors.New("superseded by a newer request")
)

// NetworkMismatchError means the wallet is on a different network than expected
type NetworkMismatchError struct {
	Reported string
	Expected network.Identity
}

func (e *NetworkMismatchError) Error() string {
	return fmt.Sprintf("Wallet is connected to %s.  Please connect to %s", e.Reported, e.Expected)
}

// Actions are the user-facing operations: show an offer and cancel it
type Actions struct {
	expected network.Identity
	wallet   wallet.Wallet
	offers   *offer.Service
	runner   *txn.Runner
	view     *view.Controller
	contract string
}

// New wires the actions together
func New(expected network.Identity, w wallet.Wallet, offers *offer.Service, runner *txn.Runner, controller *view.Controller, contractAddress string) *Actions {
	return &Actions{
		expected: expected,
		wallet:   w,
		offers:   offers,
		runner:   runner,
		view:     controller,
		contract: contractAddress,
	}
}

// View returns the controller the actions publish into
func (a *Actions) View() *view.Controller {
	return a.view
}

// Expected returns the network the tool was started for
func (a *Actions) Expected() network.Identity {
	return a.expected
}

// CheckNetwork reports whether offer actions may run: the wallet must be connected and its
// reported network name must be the expected one
func (a *Actions) CheckNetwork() error {
	if !a.wallet.Connected() {
		return fmt.Errorf("%w: Please connect your wallet to %s", ErrWalletNotConnected, a.expected)
	}
	if !network.Matches(a.wallet.NetworkName(), a.expected) {
		return &NetworkMismatchError{Reported: a.wallet.NetworkName(), Expected: a.expected}
	}
	return nil
}

// ShowOffer fetches offerID and displays it. A failed fetch leaves the previous offer on
// display and records an error outcome for the show action.
func (a *Actions) ShowOffer(ctx context.Context, offerID string) (offer.View, error) {
	token := a.view.Begin(view.ActionShowOffer)

	id, err := parser.NormalizeOfferID(offerID)
	if err != nil {
		a.view.SetOutcome(token, failed(err))
		return offer.View{}, err
	}

	v, err := a.offers.FetchOffer(ctx, id)
	if err != nil {
		a.view.SetOutcome(token, failed(err))
		return offer.View{}, err
	}

	if !a.view.SetOffer(token, v) {
		return v, ErrSuperseded
	}
	return v, nil
}

// CancelOffer submits cancel_offer(offerID) through the wallet and waits for it to commit
func (a *Actions) CancelOffer(ctx context.Context, offerID string) (*client.Transaction, error) {
	token := a.view.Begin(view.ActionCancelOffer)

	payload, err := txn.CancelOffer(a.contract, offerID)
	if err != nil {
		a.view.SetOutcome(token, failed(err))
		return nil, err
	}

	return a.runner.Run(ctx, payload, a.view.Sink(token))
}

func failed(err error) types.Outcome {
	return types.Outcome{State: types.OutcomeError, Msg: "Failed due to " + txn.ErrorDetail(err)}
}
