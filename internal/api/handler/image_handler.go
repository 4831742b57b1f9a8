package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// ImageHandler serves menu item illustration candidates. A failed search
// degrades to an empty list: picking an image is a nicety, never a blocker.
type ImageHandler struct {
	searcher ports.ImageSearcher
	logger   zerolog.Logger
}

func NewImageHandler(searcher ports.ImageSearcher, logger zerolog.Logger) *ImageHandler {
	return &ImageHandler{searcher: searcher, logger: logger}
}

// Search handles GET /v1/images?query=pizza&limit=9.
//
// @Summary      Search candidate images for a menu item
// @Tags         images
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  true   "Search term"
// @Param        limit  query     int     false  "Max results"
// @Success      200    {object}  imagesResponse
// @Failure      400    {object}  map[string]string
// @Router       /v1/images [get]
func (h *ImageHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter is required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	results, err := h.searcher.Search(c.Request().Context(), query, limit)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", query).Msg("image search failed, returning empty result")
		results = nil
	}
	if results == nil {
		results = []ports.ImageResult{}
	}
	return c.JSON(http.StatusOK, imagesResponse{Images: results})
}
