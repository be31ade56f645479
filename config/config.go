package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"p2pswap/pkg/network"
	"p2pswap/pkg/offer"
)

const DefaultContractAddress = "0x615bda72f7575d876e29dd2f73691e46b4b14df8a1602aadc23b52d4ab4852b7"

// NetworkConfig holds the endpoints of one network
type NetworkConfig struct {
	FullnodeURL string
	IndexerURL  string
}

// WalletConfig describes the local wallet
type WalletConfig struct {
	Provider     string
	Network      string
	PrivateKey   string
	MaxGasAmount uint64
}

// Config holds the application configuration
type Config struct {
	ExpectedNetwork  network.Identity
	ContractAddress  string
	OfferTableHandle string
	WaitTimeout      time.Duration
	Networks         map[network.Identity]NetworkConfig
	Wallet           WalletConfig
}

var defaultEndpoints = map[network.Identity]NetworkConfig{
	network.Devnet: {
		FullnodeURL: "https://api.devnet.aptoslabs.com/v1",
		IndexerURL:  "https://api.devnet.aptoslabs.com/v1/graphql",
	},
	network.Testnet: {
		FullnodeURL: "https://api.testnet.aptoslabs.com/v1",
		IndexerURL:  "https://api.testnet.aptoslabs.com/v1/graphql",
	},
	network.Mainnet: {
		FullnodeURL: "https://api.mainnet.aptoslabs.com/v1",
		IndexerURL:  "https://api.mainnet.aptoslabs.com/v1/graphql",
	},
}

// SetDefaults registers every key with its default so environment overrides are picked up
func SetDefaults() {
	viper.SetDefault("expected_network", string(network.Testnet))
	viper.SetDefault("contract_address", DefaultContractAddress)
	viper.SetDefault("offer_table_handle", offer.DefaultTableHandle)
	viper.SetDefault("wait_timeout", "0s")

	for id, endpoints := range defaultEndpoints {
		viper.SetDefault("networks."+string(id)+".fullnode_url", endpoints.FullnodeURL)
		viper.SetDefault("networks."+string(id)+".indexer_url", endpoints.IndexerURL)
	}

	viper.SetDefault("wallet.provider", "")
	viper.SetDefault("wallet.network", "")
	viper.SetDefault("wallet.private_key", "")
	viper.SetDefault("wallet.max_gas_amount", 0)
}

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".p2pswap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	SetDefaults()

	// Read from environment variables, e.g. P2PSWAP_WALLET_PRIVATE_KEY
	viper.SetEnvPrefix("P2PSWAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file is optional, a broken one is not
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	expected, err := network.Parse(viper.GetString("expected_network"))
	if err != nil {
		return nil, fmt.Errorf("invalid expected_network: %w", err)
	}

	cfg := &Config{
		ExpectedNetwork:  expected,
		ContractAddress:  viper.GetString("contract_address"),
		OfferTableHandle: viper.GetString("offer_table_handle"),
		WaitTimeout:      viper.GetDuration("wait_timeout"),
		Networks:         make(map[network.Identity]NetworkConfig, len(network.All)),
		Wallet: WalletConfig{
			Provider:     viper.GetString("wallet.provider"),
			Network:      viper.GetString("wallet.network"),
			PrivateKey:   viper.GetString("wallet.private_key"),
			MaxGasAmount: viper.GetUint64("wallet.max_gas_amount"),
		},
	}

	for _, id := range network.All {
		endpoints := NetworkConfig{
			FullnodeURL: viper.GetString("networks." + string(id) + ".fullnode_url"),
			IndexerURL:  viper.GetString("networks." + string(id) + ".indexer_url"),
		}
		if endpoints.FullnodeURL == "" || endpoints.IndexerURL == "" {
			return nil, fmt.Errorf("endpoints for %s are not configured", id)
		}
		cfg.Networks[id] = endpoints
	}

	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("contract_address must not be empty")
	}

	return cfg, nil
}
