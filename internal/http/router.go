// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"physio/internal/http/handlers"
	"physio/internal/http/middleware"
	"physio/internal/modules/appointment"
	"physio/internal/modules/assist"
	"physio/internal/modules/catalog"
	"physio/internal/modules/client"
	"physio/internal/modules/provider"
)

func NewRouter(
	assistService *assist.Service,
	appointmentService *appointment.Service,
	clientService *client.Service,
	providerService *provider.Service,
	catalogService *catalog.Service,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	api := r.Group("/api")

	assistHandler := handlers.NewAssistHandler(assistService)
	api.POST("/ai/search", assistHandler.Search)
	api.POST("/ai/execute", assistHandler.Execute)

	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	api.GET("/appointments", appointmentHandler.List)
	api.POST("/appointments", appointmentHandler.Create)
	api.GET("/appointments/stats", appointmentHandler.Stats)

	clientHandler := handlers.NewClientHandler(clientService)
	api.GET("/clients", clientHandler.List)
	api.POST("/clients", clientHandler.Create)
	api.PATCH("/clients/:id", clientHandler.Update)
	api.DELETE("/clients/:id", clientHandler.Delete)

	providerHandler := handlers.NewProviderHandler(providerService)
	api.GET("/providers", providerHandler.List)
	api.POST("/providers", providerHandler.Create)
	api.PATCH("/providers/:id", providerHandler.Update)

	catalogHandler := handlers.NewCatalogHandler(catalogService)
	api.GET("/services", catalogHandler.ListServices)
	api.POST("/services", catalogHandler.CreateService)
	api.PUT("/services/:id", catalogHandler.UpdateService)
	api.DELETE("/services/:id", catalogHandler.DeleteService)
	api.POST("/rates", catalogHandler.AddRate)
	api.DELETE("/rates/:id", catalogHandler.DeleteRate)
	api.GET("/specialties", catalogHandler.ListSpecialties)
	api.POST("/specialties", catalogHandler.CreateSpecialty)
	api.PATCH("/specialties/:id", catalogHandler.UpdateSpecialty)
	api.DELETE("/specialties/:id", catalogHandler.DeactivateSpecialty)
	api.GET("/statuses", catalogHandler.ListStatuses)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
