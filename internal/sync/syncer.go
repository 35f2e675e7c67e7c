package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cropchain/sync-service/internal/ledger"
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/cropchain/sync-service/internal/logic"
)

// Outcome 单条记录的同步结果标记
type Outcome string

const (
	OutcomeSynced  Outcome = "synced"  // 本次写入并确认
	OutcomeSkipped Outcome = "skipped" // 此前已上链，跳过
	OutcomeFailed  Outcome = "failed"  // 任一阶段失败
)

// Result 单条记录的同步结果
type Result struct {
	ContractId int64   `json:"contract_id"`
	Outcome    Outcome `json:"outcome"`
	TxHash     string  `json:"tx_hash,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Err        error   `json:"-"`
}

// Summary 一次批量同步的汇总
type Summary struct {
	Synced  int      `json:"synced"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// Failures 返回失败的记录
func (s *Summary) Failures() []Result {
	var failures []Result
	for _, r := range s.Results {
		if r.Outcome == OutcomeFailed {
			failures = append(failures, r)
		}
	}
	return failures
}

func (s *Summary) add(r Result) {
	switch r.Outcome {
	case OutcomeSynced:
		s.Synced++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
	s.Results = append(s.Results, r)
}

// Syncer 批量同步编排器：抽取 -> 编码 -> 写入，严格串行。
// 写路径共用一个签名身份，并发提交会在 nonce 分配上竞争，
// 所以上一条确认前绝不提交下一条。
type Syncer struct {
	logic  *logic.InvestmentLogic
	codec  *ledger.Codec
	writer ledger.Writer

	retryCount           int
	retryBackoff         time.Duration
	requireFarmerAddress bool
}

// NewSyncer 创建批量同步编排器
func NewSyncer(
	investmentLogic *logic.InvestmentLogic,
	codec *ledger.Codec,
	writer ledger.Writer,
	retryCount int,
	retryBackoff time.Duration,
	requireFarmerAddress bool,
) *Syncer {
	return &Syncer{
		logic:                investmentLogic,
		codec:                codec,
		writer:               writer,
		retryCount:           retryCount,
		retryBackoff:         retryBackoff,
		requireFarmerAddress: requireFarmerAddress,
	}
}

// Run 同步所有候选合同。单条记录失败只影响自身，批次总是跑完；
// 取消只在记录之间生效，在途确认始终等到结束。
func (s *Syncer) Run(ctx context.Context) (*Summary, error) {
	candidates, err := s.logic.ListSyncCandidates()
	if err != nil {
		return nil, err
	}

	logger.Info("Starting batch sync of %d contracts", len(candidates))

	summary := &Summary{}
	for _, candidate := range candidates {
		// 记录之间响应取消，绝不打断在途交易
		select {
		case <-ctx.Done():
			logger.Warn("Batch sync cancelled after %d of %d contracts",
				len(summary.Results), len(candidates))
			return summary, ctx.Err()
		default:
		}

		if candidate.Synced {
			summary.add(Result{ContractId: candidate.Id, Outcome: OutcomeSkipped})
			continue
		}

		summary.add(s.syncOne(ctx, candidate.Id))
	}

	logger.Info("Batch sync completed: %d synced, %d skipped, %d failed",
		summary.Synced, summary.Skipped, summary.Failed)
	for _, failure := range summary.Failures() {
		logger.Error("Contract %d failed to sync: %s", failure.ContractId, failure.Reason)
	}

	return summary, nil
}

// syncOne 同步单条合同
func (s *Syncer) syncOne(ctx context.Context, contractId int64) Result {
	inv, err := s.logic.BuildInvestment(contractId)
	if err != nil {
		return failed(contractId, err)
	}

	if inv.FarmerAddress == "" {
		if s.requireFarmerAddress {
			return failed(contractId, fmt.Errorf("contract %d: farmer wallet address missing: %w",
				contractId, logic.ErrIncompleteRecord))
		}
		// 显式的降级：占位地址没有可用的收款目标，必须留痕
		logger.Warn("Contract %d has no farmer wallet address, substituting placeholder %s",
			contractId, ledger.PlaceholderAddress.Hex())
	}

	enc, err := s.codec.Encode(inv)
	if err != nil {
		return failed(contractId, err)
	}

	txHash, err := s.writeWithRetry(ctx, contractId, enc)
	if err != nil {
		return failed(contractId, err)
	}

	if err := s.logic.MarkSynced(contractId, txHash); err != nil {
		// 链上已写入但本地标记失败：下次重跑会得到 LedgerRejected，
		// 这里如实报告失败以便人工处理
		logger.Error("Contract %d written on-chain (tx %s) but local mark failed: %v",
			contractId, txHash, err)
		return failed(contractId, err)
	}

	logger.Info("Synced contract %d (%s, %s) to ledger. TxHash: %s",
		contractId, inv.CropName, inv.CropVariety, txHash)

	return Result{ContractId: contractId, Outcome: OutcomeSynced, TxHash: txHash}
}

// writeWithRetry 提交写入，纯传输故障做有限次退避重试。
// 合约层拒绝说明逻辑错误（如重复同步），不重试。
func (s *Syncer) writeWithRetry(ctx context.Context, contractId int64, enc *ledger.EncodedInvestment) (string, error) {
	backoff := s.retryBackoff
	var lastErr error

	for attempt := 0; attempt <= s.retryCount; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying write for contract %d (attempt %d/%d) after %s",
				contractId, attempt, s.retryCount, backoff)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		txHash, err := s.writer.WriteInvestment(ctx, enc)
		if err == nil {
			return txHash.Hex(), nil
		}
		lastErr = err

		var transportErr *ledger.TransportError
		if !errors.As(err, &transportErr) {
			return "", err
		}
	}

	return "", lastErr
}

func failed(contractId int64, err error) Result {
	return Result{
		ContractId: contractId,
		Outcome:    OutcomeFailed,
		Reason:     reasonOf(err),
		Err:        err,
	}
}

// reasonOf 把错误归入分类名，便于汇总展示
func reasonOf(err error) string {
	var encodingErr *ledger.EncodingError
	var transportErr *ledger.TransportError
	var rejectedErr *ledger.RejectedError

	switch {
	case errors.Is(err, logic.ErrNotFound):
		return "NotFound: " + err.Error()
	case errors.Is(err, logic.ErrIncompleteRecord):
		return "IncompleteRecord: " + err.Error()
	case errors.As(err, &encodingErr):
		return "EncodingError: " + err.Error()
	case errors.As(err, &rejectedErr):
		return "LedgerRejected: " + err.Error()
	case errors.As(err, &transportErr):
		if transportErr.Timeout {
			return "Timeout: " + err.Error()
		}
		return "TransportError: " + err.Error()
	default:
		return err.Error()
	}
}
