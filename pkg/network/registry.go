package network

import (
	"fmt"

	"p2pswap/pkg/client"
)

// Registry holds exactly one ledger client per network. It is built once at startup and is
// read-only afterwards, so it can be shared freely.
type Registry struct {
	clients map[Identity]client.Ledger
}

// NewRegistry builds a registry from the three network clients
func NewRegistry(devnet, testnet, mainnet client.Ledger) (*Registry, error) {
	clients := map[Identity]client.Ledger{
		Devnet:  devnet,
		Testnet: testnet,
		Mainnet: mainnet,
	}
	for id, c := range clients {
		if c == nil {
			return nil, fmt.Errorf("no client configured for %s", id)
		}
	}
	return &Registry{clients: clients}, nil
}

// Client returns the client bound to id
func (r *Registry) Client(id Identity) client.Ledger {
	return r.clients[id]
}

// Resolve returns the client for the network the reporter is actually connected to
func (r *Registry) Resolve(reporter Reporter) (Identity, client.Ledger) {
	id := Detect(reporter)
	return id, r.clients[id]
}
