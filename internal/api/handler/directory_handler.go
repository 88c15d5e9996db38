package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

// DirectoryHandler serves the read-only hospital, library and fleet listings.
type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// Hospitals handles GET /v1/hospitals.
//
// @Summary      Hospital directory
// @Tags         directory
// @Produce      json
// @Success      200  {object}  listResponse[hospitalResponse]
// @Router       /v1/hospitals [get]
func (h *DirectoryHandler) Hospitals(c echo.Context) error {
	entries, err := h.service.Hospitals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(toHospitalResponses(entries)))
}

// Articles handles GET /v1/articles.
//
// @Summary      Medical library
// @Tags         directory
// @Produce      json
// @Param        category  query     string  false  "Category, or all"
// @Param        q         query     string  false  "Search in title, content and tags"
// @Success      200       {object}  listResponse[domain.MedicalArticle]
// @Router       /v1/articles [get]
func (h *DirectoryHandler) Articles(c echo.Context) error {
	articles, err := h.service.Articles(c.Request().Context(), ports.ArticleQuery{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(articles))
}

// Ambulances handles GET /v1/ambulances.
//
// @Summary      Ambulance fleet
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(available, busy, maintenance)
// @Success      200     {object}  listResponse[domain.FleetAmbulance]
// @Failure      422     {object}  errorResponse
// @Router       /v1/ambulances [get]
func (h *DirectoryHandler) Ambulances(c echo.Context) error {
	fleet, err := h.service.Ambulances(c.Request().Context(), domain.AmbulanceStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(fleet))
}
