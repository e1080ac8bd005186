package handler

import (
	"time"

	"loja-admin/internal/middleware"
	"loja-admin/internal/model"
	"loja-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Services groups what the admin routes need.
type Services struct {
	Catalog   service.CatalogService
	Sales     service.SaleService
	Revenue   service.RevenueService
	Dashboard service.DashboardService
	Auth      service.AuthService
	Redis     *redis.Client // optional, enables login rate limiting
}

const (
	loginRateLimit  = 5
	loginRatePeriod = time.Minute
)

// RegisterRoutes mounts the /admin/loja API on router.
func RegisterRoutes(router fiber.Router, s Services) {
	products := NewProductHandler(s.Catalog)
	sales := NewSaleHandler(s.Sales)
	revenue := NewRevenueHandler(s.Revenue)
	dash := NewDashboardHandler(s.Dashboard)
	auth := NewAuthHandler(s.Auth)

	api := router.Group("/admin/loja")

	// ============ PUBLIC ROUTES ============
	authGroup := api.Group("/auth")
	authGroup.Post("/login", middleware.RateLimiter(s.Redis, "login", loginRateLimit, loginRatePeriod), auth.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(s.Auth))
	protected.Get("/auth/me", auth.Me)

	// Products
	protected.Get("/produtos", middleware.RequirePrivilege(model.PrivProductView), products.List)
	protected.Get("/produtos/pesquisar", middleware.RequirePrivilege(model.PrivProductView), products.Search)
	protected.Get("/produtos/:id", middleware.RequirePrivilege(model.PrivProductView), products.Get)
	protected.Get("/produtos/:id/movimentacoes", middleware.RequirePrivilege(model.PrivProductView), products.Movements)
	protected.Post("/produtos", middleware.RequirePrivilege(model.PrivProductCreate), products.Create)
	protected.Put("/produtos/:id", middleware.RequirePrivilege(model.PrivProductUpdate), products.Update)
	protected.Put("/produtos/:id/up", middleware.RequirePrivilege(model.PrivProductUpdate), products.Update)
	protected.Put("/produtos/:id/reativar", middleware.RequirePrivilege(model.PrivProductUpdate), products.Reactivate)
	protected.Delete("/produtos/:id/deletar", middleware.RequirePrivilege(model.PrivProductDelete), products.Delete)
	protected.Post("/produtos/:id/adicionar-estoque", middleware.RequirePrivilege(model.PrivStockUpdate), products.AddStock)
	protected.Post("/produtos/:id/remover-estoque", middleware.RequirePrivilege(model.PrivStockUpdate), products.RemoveStock)

	// Sales
	protected.Post("/vendas", middleware.RequirePrivilege(model.PrivSaleCreate), sales.Create)
	protected.Get("/vendas/periodo", middleware.RequirePrivilege(model.PrivSaleView), sales.ListByPeriod)
	protected.Get("/vendas/mensal/:ano", middleware.RequirePrivilege(model.PrivSaleView), sales.CountByMonth)
	protected.Get("/vendas/:id", middleware.RequirePrivilege(model.PrivSaleView), sales.Get)

	// Revenue
	protected.Get("/receita", middleware.RequirePrivilege(model.PrivRevenueView), revenue.Compute)
	protected.Get("/receita/mensal/:ano", middleware.RequirePrivilege(model.PrivRevenueView), revenue.Monthly)
	protected.Get("/receita/mensal/:ano/:mes", middleware.RequirePrivilege(model.PrivRevenueView), revenue.ForMonth)

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege(model.PrivDashboardView), dash.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", middleware.RequirePrivilege(model.PrivDashboardView), dash.GetStockMovement)
}
