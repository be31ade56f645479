package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p2pswap/pkg/network"
	"p2pswap/pkg/offer"
)

// chdir moves into an empty directory so no stray .p2pswap.yaml is picked up
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("HOME", dir)
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		viper.Reset()
	})
	viper.Reset()
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, network.Testnet, cfg.ExpectedNetwork)
	assert.Equal(t, DefaultContractAddress, cfg.ContractAddress)
	assert.Equal(t, offer.DefaultTableHandle, cfg.OfferTableHandle)
	assert.Equal(t, time.Duration(0), cfg.WaitTimeout)
	assert.Len(t, cfg.Networks, 3)
	assert.Equal(t, "https://api.mainnet.aptoslabs.com/v1", cfg.Networks[network.Mainnet].FullnodeURL)
	assert.Empty(t, cfg.Wallet.PrivateKey)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t)
	t.Setenv("P2PSWAP_EXPECTED_NETWORK", "Devnet")
	t.Setenv("P2PSWAP_WALLET_PROVIDER", "Martian")
	t.Setenv("P2PSWAP_WALLET_NETWORK", "custom")
	t.Setenv("P2PSWAP_WALLET_PRIVATE_KEY", "0xdeadbeef")
	t.Setenv("P2PSWAP_NETWORKS_DEVNET_FULLNODE_URL", "http://localhost:8080/v1")
	t.Setenv("P2PSWAP_WAIT_TIMEOUT", "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, network.Devnet, cfg.ExpectedNetwork)
	assert.Equal(t, "Martian", cfg.Wallet.Provider)
	assert.Equal(t, "custom", cfg.Wallet.Network)
	assert.Equal(t, "0xdeadbeef", cfg.Wallet.PrivateKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.Networks[network.Devnet].FullnodeURL)
	assert.Equal(t, 45*time.Second, cfg.WaitTimeout)
}

func TestLoadFromFile(t *testing.T) {
	dir := chdir(t)
	yaml := `expected_network: mainnet
offer_table_handle: "0xfeed"
wallet:
  provider: Petra
  network: Mainnet
  max_gas_amount: 5000
networks:
  mainnet:
    indexer_url: http://indexer.local/v1/graphql
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".p2pswap.yaml"), []byte(yaml), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, network.Mainnet, cfg.ExpectedNetwork)
	assert.Equal(t, "0xfeed", cfg.OfferTableHandle)
	assert.Equal(t, "Petra", cfg.Wallet.Provider)
	assert.Equal(t, uint64(5000), cfg.Wallet.MaxGasAmount)
	assert.Equal(t, "http://indexer.local/v1/graphql", cfg.Networks[network.Mainnet].IndexerURL)
	assert.Equal(t, "https://api.mainnet.aptoslabs.com/v1", cfg.Networks[network.Mainnet].FullnodeURL)
}

func TestLoadRejectsUnknownNetwork(t *testing.T) {
	chdir(t)
	t.Setenv("P2PSWAP_EXPECTED_NETWORK", "localnet")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadReturnsFreshConfig(t *testing.T) {
	chdir(t)

	first, err := Load()
	require.NoError(t, err)

	t.Setenv("P2PSWAP_EXPECTED_NETWORK", "mainnet")
	second, err := Load()
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, network.Testnet, first.ExpectedNetwork)
	assert.Equal(t, network.Mainnet, second.ExpectedNetwork)
}
