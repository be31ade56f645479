package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"p2pswap/config"
	"p2pswap/pkg/app"
	"p2pswap/pkg/client"
	"p2pswap/pkg/logger"
	"p2pswap/pkg/network"
	"p2pswap/pkg/offer"
	"p2pswap/pkg/txn"
	"p2pswap/pkg/types"
	"p2pswap/pkg/view"
	"p2pswap/pkg/wallet"
)

var rootCmd = &cobra.Command{
	Use:   "p2pswap",
	Short: "Inspect and cancel peer-to-peer token swap offers",
	Long: `p2pswap looks up token swap offers through the network indexer and lets the
offer's sender cancel them with a signed transaction.

The wallet is configured in .p2pswap.yaml or through P2PSWAP_* environment
variables. Queries and transactions always go to the network the wallet
reports, and offer actions only run when that is the expected network.

Examples:
  p2pswap offer show 42
  p2pswap offer cancel 42 --yes
  p2pswap status 0x5f1d...a9c1 --watch
  p2pswap network`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("expected-network", "", "Network the wallet must be connected to (devnet, testnet, mainnet)")

	_ = viper.BindPFlag("expected_network", rootCmd.PersistentFlags().Lookup("expected-network"))
}

// environment is everything a command needs, built once per process
type environment struct {
	cfg      *config.Config
	clients  map[network.Identity]*client.Client
	registry *network.Registry
	wallet   *wallet.LocalWallet
	actions  *app.Actions
}

func setup() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	clients := make(map[network.Identity]*client.Client, len(network.All))
	for _, id := range network.All {
		endpoints := cfg.Networks[id]
		clients[id] = client.New(string(id), endpoints.FullnodeURL, endpoints.IndexerURL,
			client.WithWaitTimeout(cfg.WaitTimeout))
	}

	registry, err := network.NewRegistry(clients[network.Devnet], clients[network.Testnet], clients[network.Mainnet])
	if err != nil {
		return nil, err
	}

	w, err := wallet.NewLocalWallet(wallet.Config{
		Provider:     cfg.Wallet.Provider,
		Network:      cfg.Wallet.Network,
		PrivateKey:   cfg.Wallet.PrivateKey,
		MaxGasAmount: cfg.Wallet.MaxGasAmount,
	})
	if err != nil {
		return nil, err
	}
	w.Connect(clients[network.Detect(w)])

	actions := app.New(
		cfg.ExpectedNetwork,
		w,
		offer.NewService(registry, w, cfg.OfferTableHandle),
		txn.NewRunner(registry, w),
		view.NewController(),
		cfg.ContractAddress,
	)

	return &environment{
		cfg:      cfg,
		clients:  clients,
		registry: registry,
		wallet:   w,
		actions:  actions,
	}, nil
}

// printOutcome renders an action outcome; an unset outcome renders nothing
func printOutcome(outcome types.Outcome) {
	switch outcome.State {
	case types.OutcomeSuccess:
		color.Green("\n%s\n", outcome.Msg)
	case types.OutcomeError:
		color.Red("\n%s\n", outcome.Msg)
	}
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printWarning(err error) {
	color.Yellow("\n%v\n", err)
}
