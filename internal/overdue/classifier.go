// Package overdue derives arrears state from loan snapshots. It is pure and
// read-only: it never locks, never mutates, and may race benignly with
// concurrent payments (it reports the state as of the snapshot).
package overdue

import (
	"errors"
	"math"
	"sort"
	"time"

	"microfin-backoffice/internal/domain/loan"
)

var ErrInvalidOrder = errors.New("invalid overdue ordering")

// Bucket is a named days-late range used for collections triage.
type Bucket string

const (
	BucketWeek  Bucket = "1-7"
	BucketMonth Bucket = "8-30"
	BucketLate  Bucket = "30+"
)

// BucketFor is the single bucket table every consumer shares.
func BucketFor(daysOverdue int) Bucket {
	switch {
	case daysOverdue <= 7:
		return BucketWeek
	case daysOverdue <= 30:
		return BucketMonth
	default:
		return BucketLate
	}
}

// Order selects how Classify sorts its output. Both orderings are exposed;
// the caller always chooses.
type Order string

const (
	// OrderDaysOverdue sorts descending by days overdue (collections priority).
	OrderDaysOverdue Order = "days_overdue"
	// OrderDueDate sorts ascending by due date (aging report).
	OrderDueDate Order = "due_date"
)

// ParseOrder accepts both the wire spellings and the canonical ones.
func ParseOrder(raw string) (Order, error) {
	switch raw {
	case "days_overdue", "daysOverdue":
		return OrderDaysOverdue, nil
	case "due_date", "dueDate":
		return OrderDueDate, nil
	}
	return "", ErrInvalidOrder
}

// Record is one synthetic missed payment cycle for an overdue loan.
// Cycle 0 is the currently scheduled payment; higher cycles walk back one
// month each.
type Record struct {
	LoanID             string    `json:"loan_id"`
	BorrowerID         string    `json:"borrower_id"`
	Cycle              int       `json:"cycle"`
	DueDate            time.Time `json:"due_date"`
	DaysOverdue        int       `json:"days_overdue"`
	Bucket             Bucket    `json:"bucket"`
	CyclesOverdue      int       `json:"cycles_overdue"`
	OutstandingBalance float64   `json:"outstanding_balance"`
	MonthlyPayment     float64   `json:"monthly_payment"`
}

// Classify derives arrears records from a loan snapshot as of asOf.
//
// A loan is overdue only when its outstanding balance is positive and its
// next payment date lies strictly before asOf; paid-off loans and loans with
// a future due date are never reported. Each overdue loan yields
// ceil(balance / monthlyPayment) records (at least one), one per missed
// cycle, with due dates walking back one month per cycle and each record's
// days overdue clipped to non-negative.
func Classify(loans []loan.Loan, asOf time.Time, order Order) ([]Record, error) {
	switch order {
	case OrderDaysOverdue, OrderDueDate:
	default:
		return nil, ErrInvalidOrder
	}

	records := make([]Record, 0, len(loans))
	for i := range loans {
		records = append(records, classifyLoan(&loans[i], asOf)...)
	}

	switch order {
	case OrderDaysOverdue:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].DaysOverdue > records[j].DaysOverdue
		})
	case OrderDueDate:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].DueDate.Before(records[j].DueDate)
		})
	}
	return records, nil
}

func classifyLoan(l *loan.Loan, asOf time.Time) []Record {
	if l.OutstandingBalance <= 0 || l.NextPaymentDate == nil {
		return nil
	}
	due := *l.NextPaymentDate
	if !due.Before(asOf) {
		return nil
	}

	cycles := 1
	if l.MonthlyPayment > 0 {
		cycles = int(math.Ceil(l.OutstandingBalance / l.MonthlyPayment))
		if cycles < 1 {
			cycles = 1
		}
	}

	out := make([]Record, 0, cycles)
	for k := 0; k < cycles; k++ {
		cycleDue := due.AddDate(0, -k, 0)
		days := daysBetween(cycleDue, asOf)
		if days < 0 {
			days = 0
		}
		out = append(out, Record{
			LoanID:             l.LoanID,
			BorrowerID:         l.BorrowerID,
			Cycle:              k,
			DueDate:            cycleDue,
			DaysOverdue:        days,
			Bucket:             BucketFor(days),
			CyclesOverdue:      cycles,
			OutstandingBalance: l.OutstandingBalance,
			MonthlyPayment:     l.MonthlyPayment,
		})
	}
	return out
}

// daysBetween floors the elapsed whole days from due to asOf.
func daysBetween(due, asOf time.Time) int {
	return int(math.Floor(asOf.Sub(due).Hours() / 24))
}
