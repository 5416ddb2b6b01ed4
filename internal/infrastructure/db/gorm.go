package db

import (
	"log"
	"time"

	"microfin-backoffice/internal/domain/application"
	"microfin-backoffice/internal/domain/borrower"
	"microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/domain/repayment"
	"microfin-backoffice/internal/domain/sequence"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates or alters every ledger table and seeds the receipt
// counter, so the first two concurrent payments contend on the row lock
// instead of both inserting against the unique name index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&borrower.Borrower{},
		&application.Application{},
		&loan.Loan{},
		&repayment.Repayment{},
		&sequence.Sequence{},
	); err != nil {
		return err
	}
	return db.Where(sequence.Sequence{Name: sequence.ReceiptSequence}).
		FirstOrCreate(&sequence.Sequence{Name: sequence.ReceiptSequence}).Error
}
