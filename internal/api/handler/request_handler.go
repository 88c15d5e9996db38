package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

// EmergencyRequestHandler handles HTTP requests for ambulance dispatch requests.
type EmergencyRequestHandler struct {
	service ports.EmergencyRequestService
}

func NewEmergencyRequestHandler(service ports.EmergencyRequestService) *EmergencyRequestHandler {
	return &EmergencyRequestHandler{service: service}
}

// Create handles POST /v1/emergency-requests.
//
// @Summary      Request an ambulance
// @Tags         emergency-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key    header    string                   false  "Idempotency key to prevent duplicate submissions"
// @Param        X-Device-Position  header    string                   false  "Current device position as lat,lng"
// @Param        body               body      emergencyRequestRequest  true   "Pickup details"
// @Success      201                {object}  emergencyRequestResponse
// @Success      200                {object}  emergencyRequestResponse  "Replayed submission"
// @Failure      400                {object}  errorResponse
// @Failure      401                {object}  errorResponse
// @Failure      409                {object}  errorResponse
// @Failure      422                {object}  errorResponse
// @Router       /v1/emergency-requests [post]
func (h *EmergencyRequestHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req emergencyRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	header := c.Request().Header
	input := toEmergencyRequestInput(req, userID, header.Get("Idempotency-Key"))
	geo := headerGeolocator{raw: header.Get(DevicePositionHeader)}

	result, err := h.service.Submit(c.Request().Context(), input, geo)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toEmergencyRequestResponse(result.Request))
}

// List handles GET /v1/emergency-requests.
//
// @Summary      List emergency requests
// @Description  Patients see their own requests; drivers, hospital staff and admins see all.
// @Tags         emergency-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(pending, assigned, in_transit, completed, cancelled)
// @Success      200     {object}  listResponse[emergencyRequestResponse]
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/emergency-requests [get]
func (h *EmergencyRequestHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	reqs, err := h.service.List(c.Request().Context(), ports.ListRequestsInput{
		Role:   role,
		UserID: userID,
		Status: domain.RequestStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newList(toEmergencyRequestResponses(reqs)))
}
