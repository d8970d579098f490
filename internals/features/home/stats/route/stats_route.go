// file: internals/features/home/stats/route/stats_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tutorhub_backend/internals/features/home/stats/controller"
)

func StatsRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewStatsController(db)

	group.Get("/stats", ctl.Overview)
}
