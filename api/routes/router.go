package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockmasterhq/stockmaster-backend/api/controllers"
	"github.com/stockmasterhq/stockmaster-backend/api/middleware"
	"github.com/stockmasterhq/stockmaster-backend/internal/auth"
	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	"github.com/stockmasterhq/stockmaster-backend/internal/operations"
	"github.com/stockmasterhq/stockmaster-backend/internal/products"
	"github.com/stockmasterhq/stockmaster-backend/internal/warehouses"
	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	metricsReg *prometheus.Registry,
	authService auth.Service,
	productService products.Service,
	warehouseService warehouses.Service,
	inventoryService inventory.Service,
	operationsService operations.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if metricsReg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsReg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/login", controllers.AuthLogin(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		managerOnly := middleware.RequireRole(string(enums.UserRoleManager), logg)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/{productId}", controllers.ProductDetail(productService, logg))
			r.With(managerOnly).Post("/", controllers.ProductCreate(productService, logg))
			r.With(managerOnly).Patch("/{productId}", controllers.ProductUpdate(productService, logg))
			r.With(managerOnly).Delete("/{productId}", controllers.ProductDelete(productService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(productService, logg))
			r.With(managerOnly).Post("/", controllers.CategoryCreate(productService, logg))
		})

		r.Route("/warehouses", func(r chi.Router) {
			r.Get("/", controllers.WarehouseList(warehouseService, logg))
			r.Get("/{warehouseId}", controllers.WarehouseDetail(warehouseService, logg))
			r.With(managerOnly).Post("/", controllers.WarehouseCreate(warehouseService, logg))
			r.With(managerOnly).Patch("/{warehouseId}", controllers.WarehouseUpdate(warehouseService, logg))
			r.With(managerOnly).Delete("/{warehouseId}", controllers.WarehouseDelete(warehouseService, logg))
		})

		r.Route("/stock", func(r chi.Router) {
			r.Get("/levels", controllers.StockLevels(inventoryService, logg))
			r.Get("/low", controllers.StockLowReport(inventoryService, logg))
			r.Get("/movements", controllers.StockMovements(inventoryService, logg))
		})

		r.Route("/operations", func(r chi.Router) {
			r.Route("/receipts", func(r chi.Router) {
				r.Post("/", controllers.ReceiptCreate(operationsService, logg))
				r.Get("/", controllers.ReceiptList(operationsService, logg))
			})
			r.Route("/delivery-orders", func(r chi.Router) {
				r.Post("/", controllers.DeliveryCreate(operationsService, logg))
				r.Get("/", controllers.DeliveryList(operationsService, logg))
			})
			r.Route("/transfers", func(r chi.Router) {
				r.Post("/", controllers.TransferCreate(operationsService, logg))
				r.Get("/", controllers.TransferList(operationsService, logg))
			})
			r.Route("/adjustments", func(r chi.Router) {
				r.Post("/", controllers.AdjustmentCreate(operationsService, logg))
				r.Get("/", controllers.AdjustmentList(operationsService, logg))
			})
		})

		r.Get("/dashboard", controllers.Dashboard(inventoryService, logg))
	})

	return r
}
