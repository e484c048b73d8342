package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/water-shop/internal/domain/models"
	"github.com/linemk/water-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/water-shop/internal/service"
	"github.com/linemk/water-shop/internal/storage"
)

// OrderItemRequest — позиция в запросе оформления заказа
type OrderItemRequest struct {
	ProductUUID string `json:"product_uuid" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

// OrderCreateRequest — запрос оформления заказа
type OrderCreateRequest struct {
	CustomerName string             `json:"customer_name" validate:"required,max=255"`
	Phone        string             `json:"phone" validate:"required,max=20"`
	Address      string             `json:"address" validate:"required"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderUpdateRequest — частичное обновление данных доставки и/или статуса
type OrderUpdateRequest struct {
	CustomerName *string `json:"customer_name" validate:"omitnil,required,max=255"`
	Phone        *string `json:"phone" validate:"omitnil,required,max=20"`
	Address      *string `json:"address" validate:"omitnil,required"`
	Status       *string `json:"status" validate:"omitnil,oneof=pending processing completed cancelled"`
}

// respondOrderError переводит бизнес-ошибки заказа в статусы ответа:
// 404 — заказа нет, 403 — чужой заказ, 400 — нарушение бизнес-правила в транзакции
func respondOrderError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.Is(err, storage.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, service.ErrOrderAccessDenied):
		respondError(w, http.StatusForbidden, "You do not have access to this order")
	case errors.As(err, &stockErr):
		respondError(w, http.StatusBadRequest, stockErr.Error())
	case errors.Is(err, storage.ErrProductNotFound):
		respondError(w, http.StatusBadRequest, "one of the ordered products does not exist")
	default:
		logger.Error("order operation failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ListOrdersHandler обрабатывает запрос GET /api/orders
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		orders, err := orderService.ListOrders(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		respondData(w, http.StatusOK, orders)
	}
}

// CreateOrderHandler обрабатывает запрос POST /api/orders
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req OrderCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Warn("invalid request: validation error", slog.Any("error", err))
			respondValidationError(w, logger, err)
			return
		}

		in := service.OrderInput{
			CustomerName: req.CustomerName,
			Phone:        req.Phone,
			Address:      req.Address,
		}
		for _, item := range req.Items {
			in.Items = append(in.Items, service.OrderItemInput{
				ProductUUID: item.ProductUUID,
				Quantity:    item.Quantity,
			})
		}

		order, err := orderService.CreateOrder(r.Context(), userID, in)
		if err != nil {
			respondOrderError(w, logger, err)
			return
		}

		respondMessage(w, http.StatusCreated, "Order created successfully, stock has been updated", order)
	}
}

// GetOrderHandler обрабатывает запрос GET /api/orders/{id}
func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		order, err := orderService.GetOrder(r.Context(), userID, chi.URLParam(r, "id"))
		if err != nil {
			respondOrderError(w, logger, err)
			return
		}

		respondData(w, http.StatusOK, order)
	}
}

// UpdateOrderHandler обрабатывает запрос PUT /api/orders/{id}
func UpdateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req OrderUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Warn("invalid request: validation error", slog.Any("error", err))
			respondValidationError(w, logger, err)
			return
		}

		in := service.OrderUpdate{
			CustomerName: req.CustomerName,
			Phone:        req.Phone,
			Address:      req.Address,
		}
		if req.Status != nil {
			status := models.OrderStatus(*req.Status)
			in.Status = &status
		}

		order, err := orderService.UpdateOrder(r.Context(), userID, chi.URLParam(r, "id"), in)
		if err != nil {
			respondOrderError(w, logger, err)
			return
		}

		respondMessage(w, http.StatusOK, "Order updated successfully", order)
	}
}

// DeleteOrderHandler обрабатывает запрос DELETE /api/orders/{id}
func DeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := orderService.DeleteOrder(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			respondOrderError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, Response{Success: true, Message: "Order deleted, stock has been returned"})
	}
}
