package repayment

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("repayment not found")
	ErrInvalidMethod = errors.New("invalid payment method")
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodMobileMoney  Method = "mobile_money"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodMobileMoney:
		return true
	}
	return false
}

// Repayment is one append-only ledger entry against a loan. Rows are never
// updated or deleted after creation; there is deliberately no DeletedAt.
type Repayment struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID   string    `gorm:"size:32;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	ReceiptNumber string    `gorm:"size:32;uniqueIndex:ux_repayments_receipt" json:"receipt_number"`
	LoanID        uint64    `gorm:"column:loan_id;not null;index:idx_repayments_loan" json:"-"`
	LoanPublicID  string    `gorm:"size:32;index:idx_repayments_loan_public" json:"loan_id"`
	BorrowerID    string    `gorm:"size:32;index:idx_repayments_borrower" json:"borrower_id"`
	Amount        float64   `gorm:"type:decimal(18,2)" json:"amount"`
	AppliedAmount float64   `gorm:"type:decimal(18,2)" json:"applied_amount"`
	Method        Method    `gorm:"type:varchar(16)" json:"method"`
	PaidAt        time.Time `json:"paid_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "repayments" }
