package network

import (
	"fmt"
	"strings"
)

// Identity is one of the three networks the tool knows about
type Identity string

const (
	Devnet  Identity = "devnet"
	Testnet Identity = "testnet"
	Mainnet Identity = "mainnet"
)

// All lists the identities in a stable order
var All = []Identity{Devnet, Testnet, Mainnet}

const (
	// CustomNetworkOverrideProvider reports its devnet connection as a "custom" network
	CustomNetworkOverrideProvider = "Martian"
	customNetworkName             = "custom"
)

// Reporter is anything that reports the network it is connected to, i.e. a wallet
type Reporter interface {
	NetworkName() string
	ProviderName() string
}

// Classify maps a wallet-reported network name to an Identity:
//
//	reported name (lower-cased)  provider   identity
//	"devnet"                     any        devnet
//	"custom"                     "Martian"  devnet
//	"testnet"                    any        testnet
//	anything else                any        mainnet
//
// The provider comparison is exact. Classify never fails.
func Classify(reportedName, providerName string) Identity {
	name := strings.ToLower(reportedName)

	switch {
	case name == string(Devnet):
		return Devnet
	case providerName == CustomNetworkOverrideProvider && name == customNetworkName:
		return Devnet
	case name == string(Testnet):
		return Testnet
	default:
		return Mainnet
	}
}

// Detect classifies the network a reporter is connected to
func Detect(r Reporter) Identity {
	return Classify(r.NetworkName(), r.ProviderName())
}

// Parse converts a configured network name into an Identity. Unlike Classify it rejects
// unknown names.
func Parse(name string) (Identity, error) {
	id := Identity(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range All {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown network '%s' (expected devnet, testnet or mainnet)", name)
}

// Matches reports whether a reported network name is the expected network
func Matches(reportedName string, expected Identity) bool {
	return strings.ToLower(reportedName) == string(expected)
}
