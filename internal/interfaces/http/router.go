package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/report"
	"github.com/jhoicas/wms-api/internal/infrastructure/cache"
	"github.com/jhoicas/wms-api/pkg/jwt"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Receive        *inventory.ReceiveUseCase
	Putaway        *inventory.PutawayUseCase
	Pick           *inventory.PickUseCase
	Adjust         *inventory.AdjustStockUseCase
	StockQuery     *inventory.StockQueryUseCase
	LotQuery       *inventory.LotQueryUseCase
	MovementReport *report.MovementReportUseCase
	ReportPDF      reportRenderer
	Idempotency    cache.IdempotencyStore
	IdempotencyTTL time.Duration
	JWTSecret      string
	Logger         *logger.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	ttl := deps.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Mutaciones: una transacción por petición, deduplicadas por Idempotency-Key
	idem := func(c *fiber.Ctx) error { return c.Next() }
	if deps.Idempotency != nil {
		idem = Idempotency(deps.Idempotency, ttl, log.Named("idempotency"))
	}
	movements := NewMovementHandler(deps.Receive, deps.Putaway, deps.Pick, deps.Adjust, log)
	api.Post("/receiving", idem, movements.Receive)
	api.Post("/putaway", idem, movements.Putaway)
	api.Post("/picking", idem, movements.Pick)

	// Inventory
	stock := NewStockHandler(deps.StockQuery, deps.LotQuery, log)
	invGroup := api.Group("/inventory")
	invGroup.Get("/stock", stock.List)
	invGroup.Get("/stock/summary", stock.Summary)
	invGroup.Post("/adjustments", RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero), idem, movements.Adjust)

	// Lots
	lots := api.Group("/lots")
	lots.Get("/search", stock.SearchLots)
	lots.Get("/by-item/:itemID", stock.LotsByItem)

	// Reports
	reports := NewReportHandler(deps.MovementReport, deps.ReportPDF, log)
	api.Get("/reports/movements", reports.Movements)
	api.Get("/reports/movements.pdf", reports.MovementsPDF)
}
