package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

func TestLoanFSM_ApproveFromMenunggu(t *testing.T) {
	loan := &models.Peminjaman{Status: models.LoanStatusMenunggu}
	machine := NewLoanFSM(loan)

	err := machine.Approve(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.LoanStatusDisetujui, loan.Status)
}

func TestLoanFSM_RejectFromMenunggu(t *testing.T) {
	loan := &models.Peminjaman{Status: models.LoanStatusMenunggu}
	machine := NewLoanFSM(loan)

	err := machine.Reject(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.LoanStatusDitolak, loan.Status)
}

func TestLoanFSM_CompleteFromDisetujui(t *testing.T) {
	loan := &models.Peminjaman{Status: models.LoanStatusDisetujui}
	machine := NewLoanFSM(loan)

	err := machine.Complete(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.LoanStatusSelesai, loan.Status)
}

func TestLoanFSM_TerminalStatesHaveNoTransitions(t *testing.T) {
	for _, status := range []string{models.LoanStatusDitolak, models.LoanStatusSelesai} {
		loan := &models.Peminjaman{Status: status}
		machine := NewLoanFSM(loan)

		assert.Error(t, machine.Approve(context.Background()), "approve from %s", status)
		assert.Error(t, machine.Reject(context.Background()), "reject from %s", status)
		assert.Error(t, machine.Complete(context.Background()), "complete from %s", status)
		assert.Equal(t, status, loan.Status, "status must not change from terminal state %s", status)
	}
}

func TestLoanFSM_CompleteRequiresApproval(t *testing.T) {
	loan := &models.Peminjaman{Status: models.LoanStatusMenunggu}
	machine := NewLoanFSM(loan)

	err := machine.Complete(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.LoanStatusMenunggu, loan.Status)
}

func TestLoanFSM_ApproveIsNotRepeatable(t *testing.T) {
	loan := &models.Peminjaman{Status: models.LoanStatusMenunggu}
	machine := NewLoanFSM(loan)

	assert.NoError(t, machine.Approve(context.Background()))

	// A second approval must be refused; the loan already left Menunggu.
	machine = NewLoanFSM(loan)
	assert.Error(t, machine.Approve(context.Background()))
	assert.Equal(t, models.LoanStatusDisetujui, loan.Status)
}

func TestLoanFSM_Can(t *testing.T) {
	loan := &models.Peminjaman{Status: models.LoanStatusMenunggu}
	machine := NewLoanFSM(loan)

	assert.True(t, machine.Can("approve"))
	assert.True(t, machine.Can("reject"))
	assert.False(t, machine.Can("complete"))
}
