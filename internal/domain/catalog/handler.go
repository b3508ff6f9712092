package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "billing", "inventory", "clinical"))
	read.GET("/catalog/items", h.ListItems)
	read.GET("/catalog/items/:id", h.GetItem)
	read.GET("/catalog/services", h.ListServices)
	read.GET("/catalog/services/:category/:id", h.GetService)
}

func (h *Handler) GetItem(c echo.Context) error {
	it, err := h.svc.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "catalog item not found")
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) ListItems(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListItems(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetService(c echo.Context) error {
	s, err := h.svc.GetMedicalService(c.Request().Context(), c.Param("category"), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "medical service not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) ListServices(c echo.Context) error {
	pg := pagination.FromContext(c)
	services, total, err := h.svc.ListMedicalServices(c.Request().Context(), c.QueryParam("category"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(services, total, pg.Limit, pg.Offset))
}
