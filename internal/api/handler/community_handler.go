package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

// CommunityHandler handles the community support board.
type CommunityHandler struct {
	service ports.CommunityService
}

func NewCommunityHandler(service ports.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// Create handles POST /v1/community/posts.
//
// @Summary      Share a community post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  domain.CommunityPost
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/community/posts [post]
func (h *CommunityHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Create(c.Request().Context(), toCreatePostInput(req, userID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, post)
}

// List handles GET /v1/community/posts.
//
// @Summary      List community posts
// @Description  Newest first.
// @Tags         community
// @Produce      json
// @Success      200  {object}  listResponse[domain.CommunityPost]
// @Router       /v1/community/posts [get]
func (h *CommunityHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList[domain.CommunityPost](posts))
}
