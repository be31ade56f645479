package wallet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"

	"p2pswap/pkg/client"
	"p2pswap/pkg/logger"
	"p2pswap/pkg/types"
)

const (
	DefaultMaxGasAmount     = 200000
	DefaultExpirationWindow = 60 * time.Second

	ed25519SignatureType = "ed25519_signature"
	ed25519SchemeID      = 0x00
)

// ErrNotConnected is returned when signing is requested without a configured key
var ErrNotConnected = errors.New("wallet is not connected")

// Wallet is the signing collaborator: it reports where it is connected and signs and
// submits payloads
type Wallet interface {
	Connected() bool
	NetworkName() string
	ProviderName() string
	SignAndSubmitTransaction(ctx context.Context, payload types.EntryFunctionPayload) (types.PendingTransaction, error)
}

// Submitter is the fullnode access a LocalWallet needs to build and submit transactions
type Submitter interface {
	GetAccount(ctx context.Context, address string) (*client.Account, error)
	EstimateGasPrice(ctx context.Context) (uint64, error)
	EncodeSubmission(ctx context.Context, req client.SubmissionRequest) ([]byte, error)
	SubmitTransaction(ctx context.Context, req client.SubmissionRequest) (*client.Transaction, error)
}

// Config holds what a LocalWallet reports and signs with
type Config struct {
	Provider         string
	Network          string
	PrivateKey       string // hex ed25519 seed (32 bytes) or full key (64 bytes)
	MaxGasAmount     uint64
	ExpirationWindow time.Duration
}

// LocalWallet signs with an ed25519 key held in configuration
type LocalWallet struct {
	provider   string
	network    string
	key        ed25519.PrivateKey
	address    string
	submitter  Submitter
	maxGas     uint64
	expiration time.Duration
	now        func() time.Time
}

// NewLocalWallet creates a wallet from cfg. Without a private key the wallet is valid but
// not connected.
func NewLocalWallet(cfg Config) (*LocalWallet, error) {
	w := &LocalWallet{
		provider:   cfg.Provider,
		network:    cfg.Network,
		maxGas:     cfg.MaxGasAmount,
		expiration: cfg.ExpirationWindow,
		now:        time.Now,
	}
	if w.maxGas == 0 {
		w.maxGas = DefaultMaxGasAmount
	}
	if w.expiration <= 0 {
		w.expiration = DefaultExpirationWindow
	}

	if strings.TrimSpace(cfg.PrivateKey) == "" {
		return w, nil
	}

	key, err := parsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	w.key = key
	w.address = DeriveAddress(key.Public().(ed25519.PublicKey))

	return w, nil
}

func parsePrivateKey(raw string) (ed25519.PrivateKey, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "ed25519-priv-")
	if !strings.HasPrefix(raw, "0x") {
		raw = "0x" + raw
	}

	keyBytes, err := hexutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	switch len(keyBytes) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(keyBytes), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(keyBytes), nil
	default:
		return nil, fmt.Errorf("invalid private key: expected %d or %d bytes, got %d", ed25519.SeedSize, ed25519.PrivateKeySize, len(keyBytes))
	}
}

// DeriveAddress computes the account address of a single-key ed25519 account
func DeriveAddress(publicKey ed25519.PublicKey) string {
	data := make([]byte, 0, len(publicKey)+1)
	data = append(data, publicKey...)
	data = append(data, ed25519SchemeID)
	sum := sha3.Sum256(data)
	return hexutil.Encode(sum[:])
}

// Connect binds the wallet to the fullnode it submits through
func (w *LocalWallet) Connect(submitter Submitter) {
	w.submitter = submitter
}

// Connected reports whether a signing key is configured
func (w *LocalWallet) Connected() bool {
	return w.key != nil
}

// NetworkName returns the network name the wallet reports
func (w *LocalWallet) NetworkName() string {
	return w.network
}

// ProviderName returns the wallet provider name
func (w *LocalWallet) ProviderName() string {
	return w.provider
}

// Address returns the account address, empty when not connected
func (w *LocalWallet) Address() string {
	return w.address
}

// SignAndSubmitTransaction builds, signs and submits payload from the wallet's account
func (w *LocalWallet) SignAndSubmitTransaction(ctx context.Context, payload types.EntryFunctionPayload) (types.PendingTransaction, error) {
	if !w.Connected() {
		return types.PendingTransaction{}, ErrNotConnected
	}
	if w.submitter == nil {
		return types.PendingTransaction{}, fmt.Errorf("%w: no fullnode for network '%s'", ErrNotConnected, w.network)
	}

	account, err := w.submitter.GetAccount(ctx, w.address)
	if err != nil {
		return types.PendingTransaction{}, err
	}

	gasPrice, err := w.submitter.EstimateGasPrice(ctx)
	if err != nil {
		return types.PendingTransaction{}, err
	}

	req := client.SubmissionRequest{
		Sender:                  w.address,
		SequenceNumber:          account.SequenceNumber,
		MaxGasAmount:            strconv.FormatUint(w.maxGas, 10),
		GasUnitPrice:            strconv.FormatUint(gasPrice, 10),
		ExpirationTimestampSecs: strconv.FormatInt(w.now().Add(w.expiration).Unix(), 10),
		Payload:                 payload,
	}

	message, err := w.submitter.EncodeSubmission(ctx, req)
	if err != nil {
		return types.PendingTransaction{}, err
	}

	signature := ed25519.Sign(w.key, message)
	req.Signature = &client.Signature{
		Type:      ed25519SignatureType,
		PublicKey: hexutil.Encode(w.key.Public().(ed25519.PublicKey)),
		Signature: hexutil.Encode(signature),
	}

	logger.Logger.Debug("Submitting signed transaction", "sender", w.address, "sequence_number", account.SequenceNumber, "function", payload.Function)

	txn, err := w.submitter.SubmitTransaction(ctx, req)
	if err != nil {
		return types.PendingTransaction{}, err
	}

	return types.PendingTransaction{Hash: txn.Hash}, nil
}
