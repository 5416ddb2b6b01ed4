package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "microfin-backoffice/internal/adapter/http"
	"microfin-backoffice/internal/adapter/middleware"
	"microfin-backoffice/internal/adapter/repository/mysql"
	"microfin-backoffice/internal/config"
	"microfin-backoffice/internal/infrastructure/cache"
	"microfin-backoffice/internal/infrastructure/db"
	ucApplication "microfin-backoffice/internal/usecase/application"
	ucApproval "microfin-backoffice/internal/usecase/approval"
	ucOverdue "microfin-backoffice/internal/usecase/overdue"
	ucPayment "microfin-backoffice/internal/usecase/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	rates, err := cfg.RatePolicy()
	if err != nil {
		log.Fatal(err)
	}

	borrowers := mysql.NewBorrowerRepository(gdb)
	applications := mysql.NewApplicationRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	appsUC := ucApplication.NewUsecase(borrowers, applications)
	approvalUC := ucApproval.NewUsecase(uow, rates)
	paymentUC := ucPayment.NewUsecase(uow)
	overdueUC := ucOverdue.NewUsecase(loans)

	h := httpadp.NewHandler()
	appHandler := httpadp.NewApplicationHandler(appsUC, approvalUC)
	paymentHandler := httpadp.NewPaymentHandler(paymentUC)
	loanHandler := httpadp.NewLoanHandler(paymentUC, overdueUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idem := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/borrowers", appHandler.RegisterBorrower, idem)
	e.POST("/applications", appHandler.SubmitApplication, idem)
	e.GET("/applications/:application_id", appHandler.GetApplication)
	e.POST("/applications/:application_id/approve", appHandler.ApproveApplication, idem)
	e.POST("/applications/:application_id/reject", appHandler.RejectApplication, idem)
	e.POST("/applications/bulk-approve", appHandler.BulkApprove, idem)

	// /loans/overdue must register before the :loan_id routes resolve
	e.GET("/loans/overdue", loanHandler.OverdueReport)
	e.GET("/loans/:loan_id", loanHandler.GetLoan)
	e.POST("/loans/:loan_id/payments", paymentHandler.RecordPayment, idem)
	e.GET("/loans/:loan_id/repayments", paymentHandler.ListRepayments)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
