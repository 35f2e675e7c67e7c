package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cropchain/sync-service/internal/ledger"
	"github.com/spf13/cobra"
)

func lookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <contract_id>",
		Short: "Read one investment record from the ledger and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || contractId <= 0 {
				return fmt.Errorf("invalid contract id: %s", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			inv, err := a.reader.ReadInvestment(context.Background(), contractId)
			if err != nil {
				if errors.Is(err, ledger.ErrRecordNotFound) {
					fmt.Printf("No investment found for contract id %d\n", contractId)
					return nil
				}
				return fmt.Errorf("failed to read investment %d: %w", contractId, err)
			}

			fmt.Printf("Investment #%d\n", inv.ContractId)
			fmt.Printf("  Token ID:              %d\n", inv.TokenId)
			fmt.Printf("  Farmer ID:             %d\n", inv.FarmerId)
			fmt.Printf("  Investor ID:           %d\n", inv.InvestorId)
			fmt.Printf("  Farmer Address:        %s\n", inv.FarmerAddress)
			fmt.Printf("  Crop Name:             %s\n", inv.CropName)
			fmt.Printf("  Crop Variety:          %s\n", inv.CropVariety)
			fmt.Printf("  Price Per Token:       %d\n", inv.PricePerToken)
			fmt.Printf("  Token Count:           %d\n", inv.TokenCount)
			fmt.Printf("  Tokens Sold:           %d\n", inv.TokensSold)
			fmt.Printf("  Expected ROI:          %.2f%%\n", inv.ExpectedROI)
			fmt.Printf("  Funding Deadline:      %s\n", inv.FundingDeadline.Format("2006-01-02"))
			if inv.ExpectedHarvestDate != nil {
				fmt.Printf("  Expected Harvest Date: %s\n", inv.ExpectedHarvestDate.Format("2006-01-02"))
			}
			fmt.Printf("  Delivery Type:         %s\n", inv.DeliveryType)
			fmt.Printf("  Is Funded:             %t\n", inv.IsFunded)
			fmt.Printf("  Created At:            %s\n", inv.CreationTimestamp.Format("2006-01-02 15:04:05"))

			return nil
		},
	}
}
