package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/printfolio/printfolio/internal/orders"
)

type OrdersHandler struct {
	store orders.Store
}

func NewOrdersHandler(store orders.Store) *OrdersHandler {
	return &OrdersHandler{store: store}
}

// CreateOrder accepts a customer order over catalog image codes
func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	var req struct {
		CustomerName  string        `json:"customerName"`
		CustomerEmail string        `json:"customerEmail"`
		Items         []orders.Item `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return errorJSON(c, http.StatusBadRequest, "customerName and customerEmail are required")
	}
	if len(req.Items) == 0 {
		return errorJSON(c, http.StatusBadRequest, "order has no items")
	}
	for _, item := range req.Items {
		if item.Code == "" || item.Quantity < 1 {
			return errorJSON(c, http.StatusBadRequest, "every item needs a code and a positive quantity")
		}
	}

	order := &orders.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         req.Items,
	}
	if err := h.store.CreateOrder(c.Request().Context(), order); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// ListOrders returns orders, optionally filtered by status
func (h *OrdersHandler) ListOrders(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !orders.ValidStatus(status) {
		return errorJSON(c, http.StatusBadRequest, "unknown status "+strconv.Quote(status))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	list, err := h.store.ListOrders(c.Request().Context(), orders.ListFilter{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return serviceError(c, err)
	}
	if list == nil {
		list = []orders.Order{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OrdersHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid order id")
	}
	order, err := h.store.GetOrder(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order through the production workflow
func (h *OrdersHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid order id")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !orders.ValidStatus(req.Status) {
		return errorJSON(c, http.StatusBadRequest, "unknown status "+strconv.Quote(req.Status))
	}
	if err := h.store.UpdateOrderStatus(c.Request().Context(), id, req.Status); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, JSONMessage{Message: "status updated"})
}

func (h *OrdersHandler) DeleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid order id")
	}
	if err := h.store.DeleteOrder(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, JSONMessage{Message: "order deleted"})
}

// CreateBatch opens a new production batch
func (h *OrdersHandler) CreateBatch(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return errorJSON(c, http.StatusBadRequest, "name is required")
	}
	batch := &orders.Batch{Name: req.Name}
	if err := h.store.CreateBatch(c.Request().Context(), batch); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, batch)
}

func (h *OrdersHandler) ListBatches(c echo.Context) error {
	batches, err := h.store.ListBatches(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	if batches == nil {
		batches = []orders.Batch{}
	}
	return c.JSON(http.StatusOK, batches)
}

func (h *OrdersHandler) GetBatch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid batch id")
	}
	batch, err := h.store.GetBatch(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, batch)
}

// AssignOrders puts orders into a batch and marks them in production
func (h *OrdersHandler) AssignOrders(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid batch id")
	}
	var req struct {
		OrderIDs []uuid.UUID `json:"orderIds"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.OrderIDs) == 0 {
		return errorJSON(c, http.StatusBadRequest, "orderIds is empty")
	}
	if err := h.store.AssignOrders(c.Request().Context(), id, req.OrderIDs); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, JSONMessage{Message: "orders assigned"})
}

func (h *OrdersHandler) CloseBatch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid batch id")
	}
	if err := h.store.CloseBatch(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, JSONMessage{Message: "batch closed"})
}
