package sequence

import "context"

// ReceiptSequence names the counter backing repayment receipt numbers.
const ReceiptSequence = "repayment_receipt"

// Sequence is a named monotonic counter row.
type Sequence struct {
	ID    uint64 `gorm:"primaryKey;column:id"`
	Name  string `gorm:"size:64;uniqueIndex:ux_sequences_name"`
	Value uint64 `gorm:"not null"`
}

func (Sequence) TableName() string { return "sequences" }

// Repository allocates sequence values. Next must be called inside the same
// transaction as the write it numbers: the row is locked for update, so two
// concurrent writers can never observe the same value (no read-then-increment
// race), and an aborted transaction releases its value with the rollback.
type Repository interface {
	Next(ctx context.Context, name string) (uint64, error)
}
