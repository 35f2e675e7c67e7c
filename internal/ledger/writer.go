package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cropchain/sync-service/internal/chain"
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Writer 把一条编码后的投资记录写入链上并等待确认
type Writer interface {
	WriteInvestment(ctx context.Context, enc *EncodedInvestment) (common.Hash, error)
}

// ContractWriter 基于唯一签名身份的合约写入器。
// 所有写入共用一个 nonce 序列，互斥锁保证同一时刻只有一笔在途交易。
type ContractWriter struct {
	mu             sync.Mutex
	client         *chain.Client
	contract       *Contract
	confirmTimeout time.Duration
}

// NewContractWriter 创建合约写入器
func NewContractWriter(client *chain.Client, contract *Contract, confirmTimeout time.Duration) *ContractWriter {
	return &ContractWriter{
		client:         client,
		contract:       contract,
		confirmTimeout: confirmTimeout,
	}
}

// WriteInvestment 提交 createInvestment 交易并阻塞到确认。
// 返回交易哈希；失败时返回已分类的错误。
func (w *ContractWriter) WriteInvestment(ctx context.Context, enc *EncodedInvestment) (common.Hash, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	auth, err := w.client.GetAuth()
	if err != nil {
		return common.Hash{}, &TransportError{Err: err}
	}
	auth.Context = ctx

	tx, err := w.contract.contract.Transact(auth, "createInvestment", enc.Args()...)
	if err != nil {
		return common.Hash{}, classifySubmitError(err)
	}

	logger.Debug("Submitted createInvestment tx %s for contract %s, waiting for confirmation",
		tx.Hash().Hex(), enc.ContractId.String())

	receipt, err := w.waitMined(ctx, tx)
	if err != nil {
		return tx.Hash(), err
	}

	if err := classifyReceipt(receipt, tx.Hash()); err != nil {
		return tx.Hash(), err
	}

	return tx.Hash(), nil
}

// classifyReceipt 回执状态为0说明合约执行回滚（如合同ID已存在）
func classifyReceipt(receipt *types.Receipt, txHash common.Hash) error {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &RejectedError{
			Err: fmt.Errorf("transaction %s reverted", txHash.Hex()),
		}
	}
	return nil
}

// waitMined 等待交易上链，超时按传输错误处理
func (w *ContractWriter) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, w.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, w.client.GetClient(), tx)
	if err != nil {
		return nil, &TransportError{
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     fmt.Errorf("waiting for tx %s: %w", tx.Hash().Hex(), err),
		}
	}
	return receipt, nil
}

// classifySubmitError 区分提交阶段的合约拒绝与传输故障
func classifySubmitError(err error) error {
	msg := strings.ToLower(err.Error())

	// 节点在 eth_estimateGas / eth_sendRawTransaction 阶段返回的合约层拒绝
	if strings.Contains(msg, "execution reverted") ||
		strings.Contains(msg, "revert") ||
		strings.Contains(msg, "insufficient funds") {
		return &RejectedError{Err: err}
	}

	// 单签名方重启后的 nonce 冲突会随下一次重试自愈，按传输故障处理
	return &TransportError{
		Timeout: errors.Is(err, context.DeadlineExceeded),
		Err:     err,
	}
}
