package ledger

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound 链上无此记录（全零哨兵结构），属于正常的空结果而非故障
var ErrRecordNotFound = errors.New("investment record not found on ledger")

// EncodingError 字段编码失败，该记录无法上链
type EncodingError struct {
	Field  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error on field %s: %s", e.Field, e.Reason)
}

// TransportError 网络或节点层故障，调用方可以重试
type TransportError struct {
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transport timeout: %v", e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RejectedError 合约拒绝了写入（如合同ID已存在），重试没有意义
type RejectedError struct {
	Err error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("ledger rejected write: %v", e.Err)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}
