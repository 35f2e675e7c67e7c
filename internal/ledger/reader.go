package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cropchain/sync-service/internal/model"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// Reader 按合同ID读取链上投资记录。
// 读路径无副作用，可以被多个调用方并发使用；本层不做重试。
type Reader interface {
	ReadInvestment(ctx context.Context, contractId int64) (*model.Investment, error)
}

// ContractReader 基于 investments 视图的合约读取器
type ContractReader struct {
	contract    *Contract
	codec       *Codec
	callTimeout time.Duration
}

// NewContractReader 创建合约读取器
func NewContractReader(contract *Contract, codec *Codec, callTimeout time.Duration) *ContractReader {
	return &ContractReader{
		contract:    contract,
		codec:       codec,
		callTimeout: callTimeout,
	}
}

// ReadInvestment 调用 investments(contractId) 并解码返回的定长元组。
// 从未写入的ID返回 ErrRecordNotFound；节点故障返回 TransportError。
func (r *ContractReader) ReadInvestment(ctx context.Context, contractId int64) (*model.Investment, error) {
	if contractId <= 0 {
		return nil, &EncodingError{Field: "contract_id", Reason: "must be positive"}
	}

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	var out []interface{}
	err := r.contract.contract.Call(&bind.CallOpts{Context: callCtx}, &out, "investments", big.NewInt(contractId))
	if err != nil {
		return nil, &TransportError{
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     fmt.Errorf("calling investments(%d): %w", contractId, err),
		}
	}

	return r.codec.Decode(out)
}
