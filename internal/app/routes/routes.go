package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusplace/backend/internal/app/controllers"
	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	driveController *controllers.DriveController,
	applicationController *controllers.ApplicationController,
	notificationController *controllers.NotificationController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Profile routes: always reachable so a disabled or incomplete account can
	// still finish its profile and see why it is blocked.
	profile := authenticated.Group("/profile")
	{
		profile.GET("", userController.GetProfile)
		profile.PUT("", userController.UpdateProfile)
		profile.POST("/validate-step", userController.ValidateStep)
		profile.POST("/complete", userController.CompleteProfile)
	}

	// Drive routes: staff manages drives, enabled students browse and apply.
	drives := authenticated.Group("/drives")
	drives.Use(authMiddleware.AccountEnabledRequired())
	{
		drives.GET("", driveController.ListDrives)
		drives.GET("/:id", driveController.GetDrive)

		// Applying additionally requires a completed profile.
		drivesApply := drives.Group("")
		drivesApply.Use(
			authMiddleware.RoleRequired(models.RoleStudent),
			authMiddleware.ProfileCompletedRequired(),
		)
		{
			drivesApply.POST("/:id/apply", driveController.Apply)
		}

		drivesStaff := drives.Group("")
		drivesStaff.Use(authMiddleware.RoleRequired(models.RolePTO, models.RoleAdmin))
		{
			drivesStaff.POST("", driveController.CreateDrive)
			drivesStaff.PUT("/:id", driveController.UpdateDrive)
			drivesStaff.DELETE("/:id", driveController.DeleteDrive)
			drivesStaff.GET("/:id/ledger", driveController.GetLedger)
			drivesStaff.GET("/:id/applications", driveController.ListApplications)
			drivesStaff.POST("/:id/select", driveController.SelectStudent)
		}
	}

	// Application routes: students read their own history.
	applications := authenticated.Group("/applications")
	applications.Use(authMiddleware.AccountEnabledRequired())
	{
		applications.GET("", applicationController.ListMine)
		applications.GET("/:id", applicationController.GetApplication)
	}

	// Student roster routes (staff only)
	students := authenticated.Group("/students")
	students.Use(authMiddleware.RoleRequired(models.RolePTO, models.RoleAdmin))
	{
		students.GET("", userController.ListStudents)
		students.PATCH("/:id/status", userController.UpdateStudentStatus)
	}

	// Staff account routes (admin only)
	staff := authenticated.Group("/staff")
	staff.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		staff.GET("", userController.ListStaff)
		staff.POST("", userController.CreateStaff)
		staff.DELETE("/:id", userController.DeleteStaff)
	}

	// Notification routes
	notifications := authenticated.Group("/notifications")
	{
		notificationsStaff := notifications.Group("")
		notificationsStaff.Use(authMiddleware.RoleRequired(models.RolePTO, models.RoleAdmin))
		{
			notificationsStaff.POST("", notificationController.Create)
		}

		notificationsStudent := notifications.Group("")
		notificationsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			notificationsStudent.GET("", notificationController.ListMine)
			notificationsStudent.PATCH("/:id/seen", notificationController.MarkSeen)
		}
	}

	// Report routes
	reports := authenticated.Group("/reports")
	{
		reportsStaff := reports.Group("")
		reportsStaff.Use(authMiddleware.RoleRequired(models.RolePTO, models.RoleAdmin))
		{
			reportsStaff.GET("/students", reportController.StudentRoster)
			reportsStaff.GET("/drives/:id/applications", reportController.DriveApplications)
		}

		reportsStudent := reports.Group("")
		reportsStudent.Use(
			authMiddleware.RoleRequired(models.RoleStudent),
			authMiddleware.AccountEnabledRequired(),
		)
		{
			reportsStudent.GET("/applications", reportController.MyApplications)
		}
	}
}
