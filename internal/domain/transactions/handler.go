package transactions

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/inventory-transactions", h.CreateInventoryTransaction,
		auth.RequireRole("admin", "inventory", "clinical"))
	api.POST("/service-transactions", h.CreateServiceTransaction,
		auth.RequireRole("admin", "clinical"))

	read := api.Group("", auth.RequireRole("admin", "billing", "clinical"))
	read.GET("/patients/:id/inventory-usage", h.ListUsageByPatient)
	read.GET("/patients/:id/service-transactions", h.ListServiceTransactionsByPatient)
}

func (h *Handler) CreateInventoryTransaction(c echo.Context) error {
	var tx InventoryTransaction
	if err := c.Bind(&tx); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.RecordInventoryTransaction(c.Request().Context(), &tx); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, tx)
}

func (h *Handler) CreateServiceTransaction(c echo.Context) error {
	var tx ServiceTransaction
	if err := c.Bind(&tx); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.RecordServiceTransaction(c.Request().Context(), &tx); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, tx)
}

func (h *Handler) ListUsageByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	txs, err := h.svc.ListUsageByPatient(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, txs)
}

func (h *Handler) ListServiceTransactionsByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	txs, err := h.svc.ListServiceTransactionsByPatient(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, txs)
}
