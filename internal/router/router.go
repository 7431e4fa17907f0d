// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vendastock/vendas-backend/internal/config"
	"github.com/vendastock/vendas-backend/internal/handlers"
	"github.com/vendastock/vendas-backend/internal/middleware"
	"github.com/vendastock/vendas-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	productService := services.NewProductService(db)
	saleService := services.NewSaleService(db)
	reportService := services.NewReportService(db)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.Server.RateLimitEnabled {
		r.Use(middleware.GeneralRateLimit())
	}

	// Greeting kept for dashboard compatibility
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bem-vindo ao Backend do Sistema de Vendas!")
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Product routes
	produtos := r.Group("/produtos")
	{
		produtos.GET("", productHandler.ListProducts)
		produtos.GET("/:id", productHandler.GetProduct)

		writes := produtos.Group("")
		if cfg.Server.RateLimitEnabled {
			writes.Use(middleware.WriteRateLimit())
		}
		{
			writes.POST("", productHandler.CreateProduct)
			writes.PUT("/:id", productHandler.UpdateProduct)
			writes.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	// Sale routes
	vendas := r.Group("/vendas")
	{
		vendas.GET("", saleHandler.ListSales)

		writes := vendas.Group("")
		if cfg.Server.RateLimitEnabled {
			writes.Use(middleware.WriteRateLimit())
		}
		{
			writes.POST("", saleHandler.RegisterSale)
			writes.DELETE("/:id", saleHandler.ReverseSale)
		}
	}

	// Report routes; all share the same optional filters
	relatorios := r.Group("/relatorios")
	{
		relatorios.GET("/estoque", reportHandler.StockSummary)
		relatorios.GET("/vendas", reportHandler.SalesSummary)
		relatorios.GET("/vendas-por-mes", reportHandler.SalesByMonth)
		relatorios.GET("/vendas-por-produto", reportHandler.SalesByProduct)
		relatorios.GET("/receita-por-forma-pagamento", reportHandler.RevenueByPaymentMethod)
		relatorios.GET("/consolidado", reportHandler.Consolidated)
	}

	return r
}
