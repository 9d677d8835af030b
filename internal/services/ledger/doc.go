/*
Package ledger implements the fund-movement engine: the deposit and
withdrawal workflows, the wallet store mutations they drive, and the
append-only wallet journal that makes approvals idempotent.

Requests move pending -> approved or pending -> rejected, exactly once.
Every review decision runs inside a single database transaction that
locks the request row first and the wallet row second; that fixed order
is shared by all operations so competing reviewers serialize instead of
deadlocking. The first transaction to take the request lock wins the
decision, everyone else sees a terminal status and gets ErrInvalidState.

Withdrawals reserve funds at creation time: the amount moves from
balance to locked_balance before any reviewer sees the request. Approval
releases the reservation out of the system, rejection returns it to the
spendable balance.

The journal insert is keyed by the unique (ref_type, ref_id) pair. The
engine inserts, checks whether a row was actually written, and only then
applies the balance mutation; a skipped insert is a logged no-op, never
a double credit.

Usage:

	svc := ledger.NewService(store, cacheInvalidator)

	dep, err := svc.CreateDeposit(ctx, ledger.CreateDepositRequest{
		MemberID: memberID,
		Amount:   amount,
		Method:   "bank",
	})

	err = svc.ApproveDeposit(ctx, ledger.ReviewRequest{
		RequestID:  dep.ID,
		ReviewerID: reviewerID,
	})
*/
package ledger
