package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

// LoanFSM wraps a loan record with its state machine.
//
// Menunggu is the initial state. Ditolak and Selesai are terminal: no event
// leads out of them, so a completed or rejected loan can never move again.
type LoanFSM struct {
	loan *models.Peminjaman
	fsm  *fsm.FSM
}

// NewLoanFSM creates a new loan state machine seeded with the loan's current status
func NewLoanFSM(loan *models.Peminjaman) *LoanFSM {
	l := &LoanFSM{
		loan: loan,
	}

	l.fsm = fsm.NewFSM(
		loan.Status,
		fsm.Events{
			// Menunggu → Disetujui
			{Name: "approve", Src: []string{models.LoanStatusMenunggu}, Dst: models.LoanStatusDisetujui},

			// Menunggu → Ditolak
			{Name: "reject", Src: []string{models.LoanStatusMenunggu}, Dst: models.LoanStatusDitolak},

			// Disetujui → Selesai
			{Name: "complete", Src: []string{models.LoanStatusDisetujui}, Dst: models.LoanStatusSelesai},
		},
		fsm.Callbacks{},
	)

	return l
}

// Approve transitions the loan to Disetujui
func (l *LoanFSM) Approve(ctx context.Context) error {
	if !l.loan.MayApprove() {
		return fmt.Errorf("peminjaman tidak dapat disetujui pada status: %s", l.loan.Status)
	}

	if err := l.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("failed to approve loan: %w", err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Reject transitions the loan to Ditolak
func (l *LoanFSM) Reject(ctx context.Context) error {
	if !l.loan.MayReject() {
		return fmt.Errorf("peminjaman tidak dapat ditolak pada status: %s", l.loan.Status)
	}

	if err := l.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("failed to reject loan: %w", err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Complete transitions the loan to Selesai when the item is returned
func (l *LoanFSM) Complete(ctx context.Context) error {
	if !l.loan.MayComplete() {
		return fmt.Errorf("peminjaman tidak dapat diselesaikan pada status: %s", l.loan.Status)
	}

	if err := l.fsm.Event(ctx, "complete"); err != nil {
		return fmt.Errorf("failed to complete loan: %w", err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LoanFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LoanFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
