// Package http exposes the tracking service over a JSON HTTP API built on echo.
package http

import (
	"net/http"

	_ "tracking/internal/adapters/in/http/apidocs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter registers every route on a new echo instance.
func NewRouter(server *Server, verifier *TokenVerifier) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RecordMetrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", Authenticate(verifier))
	api.POST("/shipments", server.CreateShipment)
	api.GET("/shipments/mine", server.GetMyShipments)
	api.GET("/shipments/track/:trackingId", server.TrackShipment)
	api.PATCH("/shipments/:shipmentId/location", server.UpdateLocation)
	api.PATCH("/shipments/:shipmentId/progress", server.AppendProgress)
	api.PATCH("/shipments/:shipmentId/status", server.UpdateStatus)
	api.GET("/enterprises/:enterpriseId/shipments", server.GetEnterpriseShipments)

	return e
}
