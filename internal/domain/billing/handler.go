package billing

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
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
	billing := api.Group("", auth.RequireRole("admin", "billing"))
	billing.GET("/patients/:id/unbilled", h.PreviewUnbilled)
	billing.POST("/patients/:id/bills", h.GenerateBill)
	billing.GET("/patients/:id/bills", h.ListBillsByPatient)
	billing.GET("/bills/:id", h.GetBill)
}

func (h *Handler) PreviewUnbilled(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	preview, err := h.svc.PreviewUnbilled(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, preview)
}

func (h *Handler) GenerateBill(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	processedBy := "system"
	if id := auth.FromContext(c); id != nil && id.Name != "" {
		processedBy = id.Name
	}

	bill, err := h.svc.GenerateBill(c.Request().Context(), patientID, processedBy)
	if err != nil {
		if errors.Is(err, ErrNoUnbilledItems) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "no unbilled items for patient")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, bill)
}

func (h *Handler) GetBill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bill id")
	}
	bill, err := h.svc.GetBill(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	return c.JSON(http.StatusOK, bill)
}

func (h *Handler) ListBillsByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	pg := pagination.FromContext(c)
	bills, total, err := h.svc.ListBillsByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(bills, total, pg.Limit, pg.Offset))
}
