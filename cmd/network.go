package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"p2pswap/pkg/network"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Show which network the wallet resolves to",
	Long: `Show the network name and provider the wallet reports, the network they are
classified as, and whether offer actions are allowed for the expected network.`,
	Args: cobra.NoArgs,
	Run:  runNetwork,
}

func init() {
	rootCmd.AddCommand(networkCmd)
}

func runNetwork(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	env, err := setup()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	detected := network.Detect(env.wallet)
	endpoints := env.clients[detected]

	gate := ""
	if err := env.actions.CheckNetwork(); err != nil {
		gate = err.Error()
	}

	if jsonOutput {
		output := map[string]interface{}{
			"reported_network": env.wallet.NetworkName(),
			"provider":         env.wallet.ProviderName(),
			"detected":         detected,
			"expected":         env.actions.Expected(),
			"connected":        env.wallet.Connected(),
			"address":          env.wallet.Address(),
			"fullnode_url":     endpoints.FullnodeURL(),
			"indexer_url":      endpoints.IndexerURL(),
			"gate":             gate,
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                        NETWORK")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Reported:  %s\n", env.wallet.NetworkName())
	fmt.Printf("  Provider:  %s\n", env.wallet.ProviderName())
	fmt.Printf("  Detected:  %s\n", color.CyanString(string(detected)))
	fmt.Printf("  Expected:  %s\n", env.actions.Expected())
	fmt.Printf("  Fullnode:  %s\n", color.HiBlackString(endpoints.FullnodeURL()))
	fmt.Printf("  Indexer:   %s\n", color.HiBlackString(endpoints.IndexerURL()))

	if env.wallet.Connected() {
		fmt.Printf("  Account:   %s\n", color.CyanString(env.wallet.Address()))
	}

	if gate != "" {
		color.Yellow("\n  %s", gate)
	} else {
		color.Green("\n  Ready")
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
