package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"p2pswap/pkg/types"
)

// ErrInvalidPayload is returned for payloads that must not be sent to the wallet
var ErrInvalidPayload = errors.New("invalid entry function payload")

var (
	addressPattern    = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// FunctionID identifies an entry function as <address>::<module>::<function>
type FunctionID struct {
	Address  string
	Module   string
	Function string
}

// String renders the id with the canonical long-form address
func (f FunctionID) String() string {
	return fmt.Sprintf("%s::%s::%s", f.Address, f.Module, f.Function)
}

// NormalizeAddress returns the 32-byte, 0x-prefixed, lower-case form of an account address
// Examples:
//   - "0x1"   -> "0x0000...0001"
//   - "0xABC" -> "0x0000...0abc"
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		address = "0x" + address
	}
	address = "0x" + address[2:]

	if !addressPattern.MatchString(address) {
		return "", fmt.Errorf("invalid account address '%s'", address)
	}

	return common.HexToHash(address).Hex(), nil
}

// ParseFunctionID parses "<address>::<module>::<function>"
func ParseFunctionID(id string) (FunctionID, error) {
	parts := strings.Split(strings.TrimSpace(id), "::")
	if len(parts) != 3 {
		return FunctionID{}, fmt.Errorf("%w: function '%s' must look like <address>::<module>::<function>", ErrInvalidPayload, id)
	}

	address, err := NormalizeAddress(parts[0])
	if err != nil {
		return FunctionID{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if !identifierPattern.MatchString(parts[1]) {
		return FunctionID{}, fmt.Errorf("%w: invalid module name '%s'", ErrInvalidPayload, parts[1])
	}
	if !identifierPattern.MatchString(parts[2]) {
		return FunctionID{}, fmt.Errorf("%w: invalid function name '%s'", ErrInvalidPayload, parts[2])
	}

	return FunctionID{
		Address:  address,
		Module:   parts[1],
		Function: parts[2],
	}, nil
}

// ValidatePayload checks that a payload is well formed before it is signed
func ValidatePayload(payload types.EntryFunctionPayload) error {
	if payload.Type != types.EntryFunctionPayloadType {
		return fmt.Errorf("%w: unsupported payload type '%s'", ErrInvalidPayload, payload.Type)
	}
	if _, err := ParseFunctionID(payload.Function); err != nil {
		return err
	}
	for _, arg := range payload.TypeArguments {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("%w: empty type argument", ErrInvalidPayload)
		}
	}
	for i, arg := range payload.Arguments {
		if arg == nil {
			return fmt.Errorf("%w: argument %d is nil", ErrInvalidPayload, i)
		}
	}
	return nil
}

// CancelOfferFunction builds the cancel_offer function id for a deployed contract
func CancelOfferFunction(contractAddress string) (string, error) {
	address, err := NormalizeAddress(contractAddress)
	if err != nil {
		return "", err
	}
	return FunctionID{Address: address, Module: "p2pswap", Function: "cancel_offer"}.String(), nil
}

// NormalizeOfferID trims an offer id as typed by the user
func NormalizeOfferID(offerID string) (string, error) {
	offerID = strings.TrimSpace(offerID)
	if offerID == "" {
		return "", fmt.Errorf("offer id is required")
	}
	return offerID, nil
}
