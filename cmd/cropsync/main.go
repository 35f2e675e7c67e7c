package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cropsync",
		Short: "CropChain investment ledger sync service",
		Long:  "Syncs crop investment contracts from the relational store to the on-chain ledger and reads them back.",
	}

	rootCmd.AddCommand(
		serveCommand(),
		syncCommand(),
		lookupCommand(),
		verifyCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
