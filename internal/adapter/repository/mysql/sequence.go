package mysql

import (
	"context"
	"errors"

	sequenceDomain "microfin-backoffice/internal/domain/sequence"

	"gorm.io/gorm"
)

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository { return &SequenceRepository{db: db} }

// Next allocates the next value of a named counter. The counter row is read
// under FOR UPDATE, so concurrent callers inside separate transactions
// serialize here instead of racing a read-then-increment. Must run inside
// the transaction whose write it numbers: rollback releases the value.
func (r *SequenceRepository) Next(ctx context.Context, name string) (uint64, error) {
	var row sequenceDomain.Sequence
	err := forUpdate(r.db.WithContext(ctx)).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = sequenceDomain.Sequence{Name: name, Value: 1}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, err
		}
		return row.Value, nil
	}
	if err != nil {
		return 0, err
	}

	row.Value++
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return 0, err
	}
	return row.Value, nil
}
