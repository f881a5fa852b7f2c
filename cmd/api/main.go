package main

import (
	"fmt"
	"net/http"

	"github.com/payrollph/payroll-backend-go/internal/config"
	appHTTP "github.com/payrollph/payroll-backend-go/internal/handler/http"
	"github.com/payrollph/payroll-backend-go/internal/pkg/database"
	"github.com/payrollph/payroll-backend-go/internal/pkg/jwt"
	"github.com/payrollph/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/payrollph/payroll-backend-go/internal/service/attendance"
	holidayService "github.com/payrollph/payroll-backend-go/internal/service/holiday"
	"github.com/payrollph/payroll-backend-go/internal/service/master"
	payrollService "github.com/payrollph/payroll-backend-go/internal/service/payroll"
	"github.com/payrollph/payroll-backend-go/internal/service/reconcile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	branchRepo := postgresql.NewBranchRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	contributionRepo := postgresql.NewContributionRepository(db)
	suspensionRepo := postgresql.NewSuspensionRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	loc := cfg.Location()
	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	reconcileSvc := reconcile.NewService(attendanceRepo, loc)
	holidaySvc := holidayService.NewService(suspensionRepo)
	attendanceSvc := attendanceService.NewService(attendanceRepo, branchRepo, loc)
	masterSvc := master.NewMasterService(branchRepo, suspensionRepo, payrollRepo, profileRepo, contributionRepo)
	payrollSvc := payrollService.NewPayrollService(
		postgresql.NewTxRunner(db),
		payrollRepo,
		profileRepo,
		contributionRepo,
		branchRepo,
		reconcileSvc,
		holidaySvc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, loc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		jwtService,
		attendanceHandler,
		masterHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
