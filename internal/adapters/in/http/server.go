package http

import (
	"net/http"

	"tracking/internal/core/application/tracking"
	"tracking/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapitypes "github.com/oapi-codegen/runtime/types"
)

// Server adapts the tracking service to HTTP. Handlers translate the
// Result envelope into a status code and a JSON Envelope body.
type Server struct {
	service *tracking.Service
}

// NewServer creates a new HTTP server over the tracking service.
func NewServer(service *tracking.Service) *Server {
	return &Server{service: service}
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req CreateShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx)
	}

	res := s.service.CreateShipment(ctx.Request().Context(), tracking.CreateShipmentInput{
		OwnerID:           req.UserID,
		EnterpriseID:      req.EnterpriseID,
		Weight:            req.Weight,
		Service:           req.Service,
		Category:          req.Category,
		DeliveryDate:      req.DeliveryDate,
		DeliveryTimeRange: req.DeliveryTimeRange,
	})
	if !res.Success {
		return failure(ctx, res.ErrorKind, res.Message)
	}

	return success(ctx, http.StatusCreated, "shipment created", toShipment(res.Data))
}

// GetMyShipments handles GET /api/v1/shipments/mine.
func (s *Server) GetMyShipments(ctx echo.Context) error {
	requester := requesterFrom(ctx)

	res := s.service.GetByOwner(ctx.Request().Context(), requester.AccountID)
	if !res.Success {
		return failure(ctx, res.ErrorKind, res.Message)
	}

	return success(ctx, http.StatusOK, "shipments fetched", toShipmentViews(res.Data))
}

// TrackShipment handles GET /api/v1/shipments/track/:trackingId.
func (s *Server) TrackShipment(ctx echo.Context) error {
	res := s.service.GetByTrackingID(ctx.Request().Context(), ctx.Param("trackingId"), requesterFrom(ctx))
	if !res.Success {
		return failure(ctx, res.ErrorKind, res.Message)
	}

	return success(ctx, http.StatusOK, "shipment fetched", toShipmentView(res.Data))
}

// GetEnterpriseShipments handles GET /api/v1/enterprises/:enterpriseId/shipments.
// Only operators of that enterprise may list its shipments.
func (s *Server) GetEnterpriseShipments(ctx echo.Context) error {
	enterpriseID, err := uuidParam(ctx, "enterpriseId")
	if err != nil {
		return failure(ctx, tracking.KindInvalidInput, err.Error())
	}
	if !operatesEnterprise(requesterFrom(ctx), enterpriseID) {
		return ctx.JSON(http.StatusForbidden, errorBody(http.StatusForbidden, "", "enterprise credential required"))
	}

	res := s.service.GetByEnterprise(ctx.Request().Context(), enterpriseID)
	if !res.Success {
		return failure(ctx, res.ErrorKind, res.Message)
	}

	return success(ctx, http.StatusOK, "shipments fetched", toShipmentViews(res.Data))
}

// UpdateLocation handles PATCH /api/v1/shipments/:shipmentId/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	shipmentID, err := uuidParam(ctx, "shipmentId")
	if err != nil {
		return failure(ctx, tracking.KindInvalidInput, err.Error())
	}

	var req UpdateLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx)
	}
	if req.Longitude == nil || req.Latitude == nil {
		return failure(ctx, tracking.KindInvalidInput, "longitude and latitude are required")
	}

	res := s.service.UpdateLocation(ctx.Request().Context(), shipmentID, *req.Longitude, *req.Latitude)
	if !res.Success {
		return failure(ctx, res.ErrorKind, res.Message)
	}

	return success(ctx, http.StatusOK, "location updated", toShipment(res.Data))
}

// AppendProgress handles PATCH /api/v1/shipments/:shipmentId/progress.
func (s *Server) AppendProgress(ctx echo.Context) error {
	shipmentID, err := uuidParam(ctx, "shipmentId")
	if err != nil {
		return failure(ctx, tracking.KindInvalidInput, err.Error())
	}

	var req AppendProgressRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx)
	}

	res := s.service.AppendProgress(ctx.Request().Context(), shipmentID, req.Status, req.Location)
	if !res.Success {
		return failure(ctx, res.ErrorKind, res.Message)
	}

	return success(ctx, http.StatusOK, "progress recorded", toShipment(res.Data))
}

// UpdateStatus handles PATCH /api/v1/shipments/:shipmentId/status.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	shipmentID, err := uuidParam(ctx, "shipmentId")
	if err != nil {
		return failure(ctx, tracking.KindInvalidInput, err.Error())
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx)
	}

	res := s.service.UpdateStatus(ctx.Request().Context(), shipmentID, req.Status)
	if !res.Success {
		return failure(ctx, res.ErrorKind, res.Message)
	}

	return success(ctx, http.StatusOK, "status updated", toShipment(res.Data))
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(kind tracking.ErrorKind) int {
	switch kind {
	case tracking.KindInvalidInput:
		return http.StatusBadRequest
	case tracking.KindOwnerNotFound, tracking.KindEnterpriseNotFound, tracking.KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case tracking.KindNotFound:
		return http.StatusNotFound
	case tracking.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// uuidParam binds a path parameter the way generated servers do, rejecting
// malformed ids before they reach the service.
func uuidParam(ctx echo.Context, name string) (string, error) {
	var id openapitypes.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// operatesEnterprise compares ids by value so any spelling of the token
// claim matches the canonical path id.
func operatesEnterprise(requester tracking.Requester, enterpriseID string) bool {
	claimed, err := kernel.UUIDFromString(requester.EnterpriseID)
	if err != nil {
		return false
	}
	path, err := kernel.UUIDFromString(enterpriseID)
	if err != nil {
		return false
	}
	return claimed.IsEqual(path)
}

func success(ctx echo.Context, status int, message string, data any) error {
	return ctx.JSON(status, Envelope{StatusCode: status, Success: true, Message: message, Data: data})
}

func failure(ctx echo.Context, kind tracking.ErrorKind, message string) error {
	status := StatusCode(kind)
	return ctx.JSON(status, errorBody(status, kind, message))
}

func badRequest(ctx echo.Context) error {
	return failure(ctx, tracking.KindInvalidInput, "invalid request body")
}

func errorBody(status int, kind tracking.ErrorKind, message string) Envelope {
	return Envelope{StatusCode: status, ErrorKind: string(kind), Message: message}
}
