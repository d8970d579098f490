// file: internals/features/tuitions/tuition_requests/route/tuition_request_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tutorhub_backend/internals/features/tuitions/tuition_requests/controller"
)

// TuitionRequestPublicRoutes — guardian intake, no auth.
func TuitionRequestPublicRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTuitionRequestController(db)

	group.Post("/tuition-requests", ctl.Submit)
}

// TuitionRequestAdminRoutes — review queue.
func TuitionRequestAdminRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTuitionRequestController(db)

	reqs := group.Group("/tuition-requests")
	reqs.Get("/", ctl.List)
	reqs.Get("/:id", ctl.GetByID)
	reqs.Post("/:id/approve", ctl.Approve)
	reqs.Post("/:id/reject", ctl.Reject)
}
