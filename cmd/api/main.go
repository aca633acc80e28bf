package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/config"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
	appHTTP "github.com/guardsystem/guardpost-backend-go/internal/handler/http"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/cron"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/database"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/jwt"
	"github.com/guardsystem/guardpost-backend-go/internal/repository/memory"
	"github.com/guardsystem/guardpost-backend-go/internal/repository/postgresql"
	attendanceService "github.com/guardsystem/guardpost-backend-go/internal/service/attendance"
	serviceAuth "github.com/guardsystem/guardpost-backend-go/internal/service/auth"
	employeeService "github.com/guardsystem/guardpost-backend-go/internal/service/employee"
	postService "github.com/guardsystem/guardpost-backend-go/internal/service/post"
	rosterService "github.com/guardsystem/guardpost-backend-go/internal/service/roster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", cfg.App.Timezone)
	}

	var (
		employeeRepo   employee.EmployeeRepository
		postRepo       post.PostRepository
		rosterRepo     roster.RosterRepository
		attendanceRepo attendance.AttendanceRepository
	)

	switch cfg.App.StorageDriver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			return
		}
		employeeRepo = postgresql.NewEmployeeRepository(db)
		postRepo = postgresql.NewPostRepository(db)
		rosterRepo = postgresql.NewRosterRepository(db)
		attendanceRepo = postgresql.NewAttendanceRepository(db, cfg.App.Timezone)
	case "memory":
		store := memory.NewStore(loc)
		employeeRepo = memory.NewEmployeeRepository(store)
		postRepo = memory.NewPostRepository(store)
		rosterRepo = memory.NewRosterRepository(store)
		attendanceRepo = memory.NewAttendanceRepository(store)
	default:
		log.Fatal("Unsupported storage driver: ", cfg.App.StorageDriver)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := serviceAuth.NewAuthService(employeeRepo, JWTService, cfg.Admin.PasswordHash)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	postSvc := postService.NewPostService(postRepo, rosterRepo)
	rosterSvc := rosterService.NewRosterService(rosterRepo, postRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, postRepo, rosterRepo, employeeRepo, loc)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	postHandler := appHTTP.NewPostHandler(postSvc)
	rosterHandler := appHTTP.NewRosterHandler(rosterSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, postRepo, loc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		authHandler,
		employeeHandler,
		postHandler,
		rosterHandler,
		attendanceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
