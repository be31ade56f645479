package cmd

import (
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
	"p2pswap/pkg/network"
)

var watchStatus bool

var statusCmd = &cobra.Command{
	Use:   "status <txn-hash>",
	Short: "Check the status of a transaction",
	Long: `Look a transaction up by hash on the network the wallet is connected to.

Examples:
  p2pswap status 0x5f1d...a9c1
  p2pswap status 0x5f1d...a9c1 --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Wait until the transaction is committed")
}

func runStatus(cmd *cobra.Command, args []string) {
	hash := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	env, err := setup()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	id, ledger := env.registry.Resolve(env.wallet)
	ctx := context.Background()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = fmt.Sprintf(" Checking transaction on %s...", id)
		s.Start()
	}

	// A failed wait still shows whatever the node knows about the transaction
	var waitErr error
	if watchStatus {
		waitErr = ledger.WaitForTransaction(ctx, hash)
	}

	txn, err := ledger.GetTransactionByHash(ctx, hash)
	if !jsonOutput {
		s.Stop()
		if waitErr != nil {
			color.Red("Error: %v", waitErr)
		}
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(txn, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayStatus(txn, id)
	}
}

func displayStatus(txn *client.Transaction, id network.Identity) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        TRANSACTION STATUS")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Hash:      %s\n", color.CyanString(txn.Hash))
	fmt.Printf("  Network:   %s\n", id)
	fmt.Printf("  Status:    %s\n", getColoredStatus(txn))

	if txn.Version != "" {
		fmt.Printf("  Version:   %s\n", txn.Version)
	}
	if txn.Sender != "" {
		fmt.Printf("  Sender:    %s\n", color.HiBlackString(txn.Sender))
	}
	if txn.VMStatus != "" {
		fmt.Printf("  VM Status: %s\n", txn.VMStatus)
	}
	if txn.GasUsed != "" {
		fmt.Printf("  Gas Used:  %s\n", txn.GasUsed)
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func getColoredStatus(txn *client.Transaction) string {
	switch {
	case txn.IsPending():
		return color.YellowString("PENDING")
	case txn.Success:
		return color.GreenString("SUCCESS")
	default:
		return color.RedString("FAILED")
	}
}
