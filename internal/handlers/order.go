// internal/handlers/order.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rahulbala1799/TT/internal/services"
	"github.com/rahulbala1799/TT/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.List()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch orders", err.Error())
		return
	}
	utils.OKResponse(c, orders)
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", firstValidationMessage(err))
		return
	}

	order, err := h.orderService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			utils.BadRequestResponse(c, "Invalid request", err.Error())
			return
		}
		utils.InternalErrorResponse(c, "Failed to create order", err.Error())
		return
	}

	utils.CreatedResponse(c, order)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch order", err.Error())
		return
	}

	utils.OKResponse(c, order)
}

// PUT /orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", firstValidationMessage(err))
		return
	}

	order, err := h.orderService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFoundResponse(c, "Order not found")
		case errors.Is(err, services.ErrInvalidInput):
			utils.BadRequestResponse(c, "Invalid request", err.Error())
		default:
			utils.InternalErrorResponse(c, "Failed to update order", err.Error())
		}
		return
	}

	utils.OKResponse(c, order)
}

// DELETE /orders/:id?action=cancel|delete
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	action := c.DefaultQuery("action", "cancel")
	switch action {
	case "cancel":
		order, err := h.orderService.Cancel(id)
		if err != nil {
			if errors.Is(err, services.ErrOrderNotFound) {
				utils.NotFoundResponse(c, "Order not found")
				return
			}
			utils.InternalErrorResponse(c, "Failed to cancel order", err.Error())
			return
		}
		utils.OKResponse(c, order)
	case "delete":
		if err := h.orderService.HardDelete(id); err != nil {
			if errors.Is(err, services.ErrOrderNotFound) {
				utils.NotFoundResponse(c, "Order not found")
				return
			}
			utils.InternalErrorResponse(c, "Failed to delete order", err.Error())
			return
		}
		utils.MessageResponse(c, "Order deleted successfully")
	default:
		utils.BadRequestResponse(c, "Invalid action", "action must be cancel or delete")
	}
}

type replaceStatusesRequest struct {
	Statuses []string `json:"statuses" binding:"required"`
}

// PUT /orders/:id/status
func (h *OrderHandler) ReplaceStatuses(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req replaceStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	statuses, err := h.orderService.ReplaceStatuses(id, req.Statuses)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update order status", err.Error())
		return
	}

	utils.OKResponse(c, statuses)
}

func orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func firstValidationMessage(err error) string {
	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		return validationErrors[0].Message
	}
	return err.Error()
}
