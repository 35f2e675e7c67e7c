package main

import (
	"testing"

	"github.com/cropchain/sync-service/internal/sync"
	"github.com/stretchr/testify/assert"
)

func TestSyncExitCode(t *testing.T) {
	assert.Equal(t, 0, syncExitCode(&sync.Summary{Synced: 3, Skipped: 1}))
	assert.Equal(t, 1, syncExitCode(&sync.Summary{Synced: 2, Failed: 1}))
}

func TestVerifyExitCode(t *testing.T) {
	assert.Equal(t, 0, verifyExitCode(&sync.VerifyReport{Checked: 5}))
	assert.Equal(t, 1, verifyExitCode(&sync.VerifyReport{
		Checked: 5,
		Missing: []sync.VerifyIssue{{ContractId: 3, Reason: "not found on ledger"}},
	}))
	assert.Equal(t, 1, verifyExitCode(&sync.VerifyReport{
		Checked: 5,
		Errors: []sync.VerifyIssue{{ContractId: 7, Reason: "transport error"}},
	}))
}
