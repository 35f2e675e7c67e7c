package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/cropchain/sync-service/internal/ledger"
	"github.com/cropchain/sync-service/internal/logic"
	"github.com/cropchain/sync-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader 可编程的读取器替身
type fakeReader struct {
	outcome func(contractId int64) error
}

func (r *fakeReader) ReadInvestment(ctx context.Context, contractId int64) (*model.Investment, error) {
	if r.outcome != nil {
		if err := r.outcome(contractId); err != nil {
			return nil, err
		}
	}
	return &model.Investment{ContractId: contractId}, nil
}

func TestVerifyReportsMissingContracts(t *testing.T) {
	db := setupTestDB(t)
	ids := seedContracts(t, db, 3)

	investmentLogic := logic.NewInvestmentLogic(db)
	for _, id := range ids {
		require.NoError(t, investmentLogic.MarkSynced(id, "0xabc"))
	}

	reader := &fakeReader{
		outcome: func(contractId int64) error {
			if contractId == ids[1] {
				return ledger.ErrRecordNotFound
			}
			return nil
		},
	}

	report, err := NewVerifier(investmentLogic, reader, 2).Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Checked)
	require.Len(t, report.Missing, 1)
	assert.Equal(t, ids[1], report.Missing[0].ContractId)
	assert.Empty(t, report.Errors)
}

func TestVerifyDistinguishesReadErrorsFromMissing(t *testing.T) {
	db := setupTestDB(t)
	ids := seedContracts(t, db, 2)

	investmentLogic := logic.NewInvestmentLogic(db)
	for _, id := range ids {
		require.NoError(t, investmentLogic.MarkSynced(id, "0xabc"))
	}

	reader := &fakeReader{
		outcome: func(contractId int64) error {
			if contractId == ids[0] {
				return &ledger.TransportError{Err: errors.New("node unreachable")}
			}
			return nil
		},
	}

	report, err := NewVerifier(investmentLogic, reader, 2).Verify(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Missing)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, ids[0], report.Errors[0].ContractId)
}

func TestVerifyWithNothingSynced(t *testing.T) {
	db := setupTestDB(t)
	seedContracts(t, db, 2)

	report, err := NewVerifier(logic.NewInvestmentLogic(db), &fakeReader{}, 2).Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Checked)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Errors)
}
