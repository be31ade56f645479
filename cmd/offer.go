package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"p2pswap/pkg/client"
	"p2pswap/pkg/offer"
	"p2pswap/pkg/types"
	"p2pswap/pkg/view"
)

var noConfirm bool

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Show or cancel a swap offer",
}

var showOfferCmd = &cobra.Command{
	Use:   "show <offer-id>",
	Short: "Show an offer as reported by the indexer",
	Long: `Look an offer up in the swap contract's offer table through the indexer of
the network the wallet is connected to.

An offer id with no matching row shows an empty offer.

Examples:
  p2pswap offer show 42
  p2pswap offer show 42 --json`,
	Args: cobra.ExactArgs(1),
	Run:  runShowOffer,
}

var cancelOfferCmd = &cobra.Command{
	Use:   "cancel <offer-id>",
	Short: "Cancel an offer",
	Long: `Sign and submit cancel_offer(<offer-id>) with the configured wallet, wait for
the transaction to commit and report the result.

Nothing is retried; run the command again to retry.

Examples:
  p2pswap offer cancel 42
  p2pswap offer cancel 42 --yes`,
	Args: cobra.ExactArgs(1),
	Run:  runCancelOffer,
}

func init() {
	rootCmd.AddCommand(offerCmd)
	offerCmd.AddCommand(showOfferCmd)
	offerCmd.AddCommand(cancelOfferCmd)

	cancelOfferCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runShowOffer(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	env, err := setup()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := env.actions.CheckNetwork(); err != nil {
		printWarning(err)
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching offer..."
		s.Start()
	}

	_, err = env.actions.ShowOffer(context.Background(), args[0])
	if !jsonOutput {
		s.Stop()
	}

	controller := env.actions.View()
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(controller.Snapshot(), "", "  ")
		fmt.Println(string(jsonData))
	} else if shown, ok := controller.Offer(); ok {
		displayOffer(args[0], shown)
	}

	if err != nil {
		if !jsonOutput {
			printOutcome(controller.Outcome(view.ActionShowOffer))
		}
		os.Exit(1)
	}
}

func runCancelOffer(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	env, err := setup()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := env.actions.CheckNetwork(); err != nil {
		printWarning(err)
		os.Exit(1)
	}

	if !jsonOutput {
		fmt.Printf("\n  Offer Id: %s\n", color.CyanString(args[0]))
		fmt.Printf("  Wallet:   %s (%s)\n", color.CyanString(env.wallet.Address()), env.wallet.ProviderName())
		fmt.Printf("  Network:  %s\n", env.actions.Expected())
	}

	// Ask for confirmation
	if !noConfirm && !jsonOutput {
		if !confirm("Cancel this offer?") {
			fmt.Println("\nNothing submitted.")
			os.Exit(0)
		}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Submitting and waiting for confirmation..."
		s.Start()
	}

	committed, err := env.actions.CancelOffer(context.Background(), args[0])
	if !jsonOutput {
		s.Stop()
	}

	outcome := env.actions.View().Outcome(view.ActionCancelOffer)
	if jsonOutput {
		output := struct {
			Outcome     types.Outcome       `json:"outcome"`
			Transaction *client.Transaction `json:"transaction,omitempty"`
		}{outcome, committed}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		printOutcome(outcome)
		if committed != nil {
			fmt.Printf("  Version: %s\n\n", committed.Version)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

func displayOffer(offerID string, v offer.View) {
	tokens, _ := json.Marshal(v.Tokens)

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                        OFFER %s", offerID)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Sender:  %s\n", color.CyanString(v.Sender))
	fmt.Printf("  Coins:   %d\n", v.Coins)
	fmt.Printf("  Tokens:  %s\n", string(tokens))

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func confirm(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n%s (y/N): ", question)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
