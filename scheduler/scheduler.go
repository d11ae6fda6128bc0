// Package scheduler runs periodic housekeeping over the live session.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"financewise/engine/appcontext"
	"financewise/engine/finance"
	"financewise/engine/finance/model"
	"financewise/engine/session"
)

// LoanReviewer marks active loans overdue once their due date passes.
// It only dispatches actions; every state change still goes through the
// reducer and the session's persistence path.
type LoanReviewer struct {
	sess *session.Session
	cron *cron.Cron
}

// NewLoanReviewer creates a reviewer bound to the session.
func NewLoanReviewer(sess *session.Session) *LoanReviewer {
	return &LoanReviewer{sess: sess, cron: cron.New()}
}

// Start schedules the review on the given cron spec (e.g. "@daily").
func (r *LoanReviewer) Start(ctx context.Context, schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		r.Review(ctx, time.Now())
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running review to finish.
func (r *LoanReviewer) Stop() {
	<-r.cron.Stop().Done()
}

// Review dispatches an overdue status update for every active loan whose
// next due date is before now and whose balance is still positive.
func (r *LoanReviewer) Review(ctx context.Context, now time.Time) {
	logger := appcontext.LoggerFromContext(ctx)

	for _, loan := range r.sess.State().Loans {
		if loan.Status != model.LoanActive || loan.CurrentBalance <= 0 {
			continue
		}
		due, err := time.Parse("2006-01-02", loan.NextDueDate)
		if err != nil {
			logger.WarnContext(ctx, "Skipping loan with unparseable due date",
				"loan", loan.ID, "nextDueDate", loan.NextDueDate, "error", err)
			continue
		}
		if due.Before(now.Truncate(24 * time.Hour)) {
			logger.InfoContext(ctx, "Marking loan overdue", "loan", loan.ID, "dueDate", loan.NextDueDate)
			r.sess.Dispatch(ctx, finance.UpdateLoan{
				LoanID: loan.ID,
				Patch:  finance.LoanPatch{Status: finance.String(model.LoanOverdue)},
			})
		}
	}
}
