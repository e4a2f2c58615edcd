package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/watrakon/Sgdatapos/internal/config"
	"github.com/watrakon/Sgdatapos/internal/database"
	"github.com/watrakon/Sgdatapos/internal/geocode"
	"github.com/watrakon/Sgdatapos/internal/handlers"
	"github.com/watrakon/Sgdatapos/internal/middleware"
	"github.com/watrakon/Sgdatapos/internal/repositories"
	"github.com/watrakon/Sgdatapos/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)
	otRepo := repositories.NewOTRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	holidayRepo := repositories.NewHolidayRepository(db)

	// External geocoding/distance collaborators; optional, the attendance
	// flow degrades to raw coordinates without them.
	resolver := geocode.NewClient(cfg.Geocode)

	// Services
	authService := services.NewAuthService(employeeRepo, sessionRepo, cfg.JWT.Secret)
	employeeService := services.NewEmployeeService(employeeRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, employeeRepo, sessionRepo, resolver)
	requestService := services.NewRequestService(leaveRepo, otRepo)
	jobService := services.NewJobService(jobRepo, employeeRepo, attendanceRepo, sessionRepo)
	fieldService := services.NewFieldServiceService(jobRepo, employeeRepo, resolver)
	taskService := services.NewTaskService(assignmentRepo)
	holidayService := services.NewHolidayService(holidayRepo)
	reportService := services.NewReportService(attendanceRepo, leaveRepo, otRepo, jobRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	appHandler := handlers.NewAppHandler(
		employeeService, attendanceService, requestService, jobService,
		fieldService, taskService, holidayService, reportService,
	)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Public routes
	router.POST("/api/login", authHandler.Login)
	router.POST("/api/update-password", authHandler.UpdatePassword)

	// Authenticated routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		api.GET("/profile", authHandler.Profile)

		// Directory is readable by everyone (companion/coordinator
		// pickers); mutations are admin only.
		employees := api.Group("/employees")
		{
			employees.GET("", appHandler.GetEmployees)

			employeesAdmin := employees.Group("")
			employeesAdmin.Use(middleware.AdminOnly())
			{
				employeesAdmin.POST("", appHandler.CreateEmployee)
				employeesAdmin.PUT("/:id", appHandler.UpdateEmployee)
				employeesAdmin.DELETE("/:id", appHandler.DeleteEmployee)
			}
		}

		attendance := api.Group("/attendance")
		{
			attendance.POST("", appHandler.RecordAttendance)
			attendance.GET("/:email", appHandler.GetAttendanceHistory)
			attendance.GET("/:email/checked-in", appHandler.GetCheckedIn)
		}

		team := api.Group("/team")
		{
			team.GET("/locations", appHandler.GetTeamLocations)
			team.GET("/status", appHandler.GetTeamStatus)
		}

		leaves := api.Group("/leaves")
		{
			leaves.POST("", appHandler.CreateLeave)
			leaves.GET("", appHandler.GetLeaves)
			leaves.GET("/handovers", appHandler.GetPendingHandovers)
			leaves.POST("/:id/coordinator-accept", appHandler.AcceptHandover)

			leavesAdmin := leaves.Group("")
			leavesAdmin.Use(middleware.AdminOnly())
			{
				leavesAdmin.POST("/:id/approve", appHandler.ApproveLeave)
				leavesAdmin.POST("/:id/reject", appHandler.RejectLeave)
			}
		}

		ot := api.Group("/ot")
		{
			ot.POST("", appHandler.CreateOT)
			ot.GET("", appHandler.GetOT)

			otAdmin := ot.Group("")
			otAdmin.Use(middleware.AdminOnly())
			{
				otAdmin.POST("/:id/approve", appHandler.ApproveOT)
				otAdmin.POST("/:id/reject", appHandler.RejectOT)
			}
		}

		jobs := api.Group("/jobs")
		{
			jobs.PUT("", appHandler.UpsertJob)
			jobs.GET("", appHandler.GetJobs)
			jobs.GET("/week", appHandler.GetWeeklyBoard)
			jobs.DELETE("/:id", appHandler.DeleteJob)

			jobsAdmin := jobs.Group("")
			jobsAdmin.Use(middleware.AdminOnly())
			{
				jobsAdmin.GET("/pending-approvals", appHandler.GetPendingJobApprovals)
				jobsAdmin.POST("/:id/approve", appHandler.ApproveJob)
				jobsAdmin.POST("/:id/reject", appHandler.RejectJob)
			}
		}

		assignments := api.Group("/assignments")
		{
			assignments.POST("", appHandler.CreateAssignment)
			assignments.GET("", appHandler.GetAssignments)
			assignments.POST("/:id/accept", appHandler.AcceptAssignment)
			assignments.POST("/:id/reject", appHandler.RejectAssignment)
			assignments.DELETE("/:id", appHandler.DeleteAssignment)
		}

		fieldService := api.Group("/field-service")
		{
			fieldService.POST("", appHandler.SubmitFieldServiceTrip)
			fieldService.GET("/previous", appHandler.GetPreviousPackingLists)
			fieldService.POST("/merge-request", appHandler.CreateMergeRequest)
		}

		sessions := api.Group("/sessions")
		{
			sessions.POST("", appHandler.SaveSession)
			sessions.GET("/today", appHandler.GetTodaySessions)
		}

		holidays := api.Group("/holidays")
		{
			holidays.GET("", appHandler.GetHolidays)

			holidaysAdmin := holidays.Group("")
			holidaysAdmin.Use(middleware.AdminOnly())
			{
				holidaysAdmin.POST("/upload", appHandler.UploadHolidays)
				holidaysAdmin.DELETE("", appHandler.ClearHolidays)
			}
		}

		reports := api.Group("/reports")
		{
			reports.GET("/attendance/:email", appHandler.ExportAttendanceReport)
			reports.GET("/requests/:employeeId", appHandler.ExportRequestsReport)
			reports.GET("/jobs/:employeeId", appHandler.ExportJobsReport)
		}
	}

	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
