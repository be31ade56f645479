package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p2pswap/pkg/types"
)

func TestNormalizeAddress(t *testing.T) {
	got, err := NormalizeAddress("0x1")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", got)

	got, err = NormalizeAddress("ABC")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", got)

	_, err = NormalizeAddress("0xzz")
	assert.Error(t, err)

	_, err = NormalizeAddress("0x")
	assert.Error(t, err)
}

func TestParseFunctionID(t *testing.T) {
	id, err := ParseFunctionID("0x615bda72f7575d876e29dd2f73691e46b4b14df8a1602aadc23b52d4ab4852b7::p2pswap::cancel_offer")
	require.NoError(t, err)
	assert.Equal(t, "0x615bda72f7575d876e29dd2f73691e46b4b14df8a1602aadc23b52d4ab4852b7", id.Address)
	assert.Equal(t, "p2pswap", id.Module)
	assert.Equal(t, "cancel_offer", id.Function)

	for _, bad := range []string{"", "0x1::p2pswap", "0x1::p2p-swap::cancel", "nothex::m::f", "0x1::m::1f"} {
		_, err := ParseFunctionID(bad)
		assert.ErrorIs(t, err, ErrInvalidPayload, bad)
	}
}

func TestValidatePayload(t *testing.T) {
	payload := types.NewEntryFunctionPayload("0x1::p2pswap::cancel_offer", "42")
	assert.NoError(t, ValidatePayload(payload))
	assert.Empty(t, payload.TypeArguments)

	payload.Type = "script_payload"
	assert.ErrorIs(t, ValidatePayload(payload), ErrInvalidPayload)

	withNil := types.NewEntryFunctionPayload("0x1::p2pswap::cancel_offer", nil)
	assert.ErrorIs(t, ValidatePayload(withNil), ErrInvalidPayload)

	withEmptyType := types.NewEntryFunctionPayload("0x1::coin::transfer")
	withEmptyType.TypeArguments = []string{" "}
	assert.ErrorIs(t, ValidatePayload(withEmptyType), ErrInvalidPayload)
}

func TestCancelOfferFunction(t *testing.T) {
	fn, err := CancelOfferFunction("0x1")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001::p2pswap::cancel_offer", fn)
}

func TestNormalizeOfferID(t *testing.T) {
	id, err := NormalizeOfferID("  42 ")
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	_, err = NormalizeOfferID("   ")
	assert.Error(t, err)
}
