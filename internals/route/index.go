// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorhub_backend/internals/constants"
	statsRoute "tutorhub_backend/internals/features/home/stats/route"
	bidRoute "tutorhub_backend/internals/features/tuitions/tuition_applications/route"
	postingRoute "tutorhub_backend/internals/features/tuitions/tuition_postings/route"
	requestRoute "tutorhub_backend/internals/features/tuitions/tuition_requests/route"
	tutorAppRoute "tutorhub_backend/internals/features/tutors/tutor_applications/route"
	tutorRoute "tutorhub_backend/internals/features/tutors/tutors/route"
	authRoute "tutorhub_backend/internals/features/users/auth/route"
	"tutorhub_backend/internals/mailer"
	"tutorhub_backend/internals/middlewares"
	authMw "tutorhub_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, dispatcher mailer.Dispatcher) {
	// rate limiter global
	app.Use(middlewares.GlobalRateLimiter())

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db, dispatcher)

	// ===================== PUBLIC =====================
	// Guardian intake + posting browsing + marketing counters, no auth.
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	requestRoute.TuitionRequestPublicRoutes(public, db)
	postingRoute.TuitionPostingPublicRoutes(public, db)
	statsRoute.StatsRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMw.AuthMiddleware(db))
	tutorAppRoute.TutorApplicationUserRoutes(private, db)
	tutorRoute.TutorUserRoutes(private, db)
	postingRoute.TuitionPostingUserRoutes(private, db)
	bidRoute.TuitionApplicationUserRoutes(private, db, dispatcher)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMw.AuthMiddleware(db),
		authMw.OnlyRoles(constants.RoleErrorAdmin("admin dashboard"), constants.RoleAdmin),
	)
	tutorAppRoute.TutorApplicationAdminRoutes(admin, db)
	tutorRoute.TutorAdminRoutes(admin, db)
	requestRoute.TuitionRequestAdminRoutes(admin, db)
	postingRoute.TuitionPostingAdminRoutes(admin, db)
	bidRoute.TuitionApplicationAdminRoutes(admin, db, dispatcher)
}
