package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"

	"github.com/cropchain/sync-service/internal/ledger"
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/cropchain/sync-service/internal/logic"
	"github.com/panjf2000/ants/v2"
)

// VerifyIssue 校验发现的单条问题
type VerifyIssue struct {
	ContractId int64  `json:"contract_id"`
	Reason     string `json:"reason"`
}

// VerifyReport 读回校验报告
type VerifyReport struct {
	Checked int           `json:"checked"`
	Missing []VerifyIssue `json:"missing,omitempty"` // 本地标记已上链但链上不存在
	Errors  []VerifyIssue `json:"errors,omitempty"`  // 读取失败，无法判断
}

// Verifier 读回校验器：把所有已标记上链的合同读回
// 比对是否真的存在。读路径无共享可变状态，可以并行。
type Verifier struct {
	logic    *logic.InvestmentLogic
	reader   ledger.Reader
	poolSize int
}

// NewVerifier 创建读回校验器
func NewVerifier(investmentLogic *logic.InvestmentLogic, reader ledger.Reader, poolSize int) *Verifier {
	if poolSize <= 0 {
		poolSize = 8
	}
	return &Verifier{
		logic:    investmentLogic,
		reader:   reader,
		poolSize: poolSize,
	}
}

// Verify 并行读回所有已同步合同
func (v *Verifier) Verify(ctx context.Context) (*VerifyReport, error) {
	ids, err := v.logic.ListSyncedIds()
	if err != nil {
		return nil, err
	}

	logger.Info("Verifying %d synced contracts against ledger", len(ids))

	pool, err := ants.NewPool(v.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	report := &VerifyReport{Checked: len(ids)}
	var mu stdsync.Mutex
	var wg stdsync.WaitGroup

	for _, id := range ids {
		contractId := id
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			_, err := v.reader.ReadInvestment(ctx, contractId)
			if err == nil {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, ledger.ErrRecordNotFound) {
				report.Missing = append(report.Missing, VerifyIssue{
					ContractId: contractId,
					Reason:     "marked synced locally but absent on ledger",
				})
			} else {
				report.Errors = append(report.Errors, VerifyIssue{
					ContractId: contractId,
					Reason:     err.Error(),
				})
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			report.Errors = append(report.Errors, VerifyIssue{
				ContractId: contractId,
				Reason:     submitErr.Error(),
			})
			mu.Unlock()
		}
	}

	wg.Wait()

	if len(report.Missing) > 0 {
		logger.Error("Verify found %d contracts missing on ledger", len(report.Missing))
	} else {
		logger.Info("Verify completed: %d checked, %d read errors", report.Checked, len(report.Errors))
	}

	return report, nil
}
