package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cropchain/sync-service/internal/sync"
	"github.com/spf13/cobra"
)

func syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one batch sync of all pending contracts to the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runBatchSync()
			if err != nil {
				return err
			}
			// 资源已在 runBatchSync 返回前释放，这里只处理退出码
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
}

// runBatchSync 执行一次批量同步并返回进程退出码
func runBatchSync() (int, error) {
	a, err := newApp()
	if err != nil {
		return 0, err
	}
	defer a.Close()

	// 收到中断信号后在记录之间停止，不打断在途交易
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := a.syncer.Run(ctx)
	if err != nil && summary == nil {
		return 0, err
	}

	fmt.Printf("Batch sync finished: %d synced, %d skipped, %d failed\n",
		summary.Synced, summary.Skipped, summary.Failed)
	for _, failure := range summary.Failures() {
		fmt.Printf("  contract %d: %s\n", failure.ContractId, failure.Reason)
	}

	if err != nil {
		return 0, err
	}
	return syncExitCode(summary), nil
}

// syncExitCode 任何记录失败时退出码非零
func syncExitCode(summary *sync.Summary) int {
	if summary.Failed > 0 {
		return 1
	}
	return 0
}
