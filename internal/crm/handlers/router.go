package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velora/crm/internal/crm/auth"
	"github.com/velora/crm/internal/crm/metrics"
)

// NewRouter assembles the gin engine: health and metrics, the public login
// route, read routes, and the mutating routes behind the auth middleware.
func NewRouter(h *Handler, login *LoginHandler, m *metrics.Metrics, jwtSecret string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	if m != nil {
		engine.Use(m.Middleware())
		engine.GET("/metrics", m.Handler())
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if login != nil {
		engine.POST("/v1/login", login.Login)
	}

	v1 := engine.Group("/v1")
	{
		v1.GET("/companies", h.listCompanies)
		v1.GET("/companies/:id", h.getCompany)
		v1.GET("/enquiries", h.listEnquiries)
		v1.GET("/enquiries/:id", h.getEnquiry)
		v1.GET("/enquiries/:id/communications", h.listCommunications)
		v1.GET("/quotations", h.listQuotations)
		v1.GET("/quotations/:id", h.getQuotation)
		v1.GET("/reports/pipeline.xlsx", h.exportPipeline)
	}

	protected := engine.Group("/v1", auth.Middleware(jwtSecret))
	{
		protected.POST("/companies", h.createCompany)
		protected.PATCH("/companies/:id", h.updateCompany)
		protected.DELETE("/companies/:id", h.deleteCompany)

		protected.POST("/enquiries", h.createEnquiry)
		protected.PATCH("/enquiries/:id", h.updateEnquiry)
		protected.PATCH("/enquiries/:id/status", h.updateEnquiryStatus)
		protected.DELETE("/enquiries/:id", h.deleteEnquiry)

		protected.POST("/quotations", h.createQuotation)
		protected.PATCH("/quotations/:id", h.updateQuotation)
		protected.PATCH("/quotations/:id/status", h.updateQuotationStatus)
		protected.DELETE("/quotations/:id", h.deleteQuotation)

		protected.POST("/communications", h.createCommunication)
	}

	return engine
}
