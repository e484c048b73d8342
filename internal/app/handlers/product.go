package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/water-shop/internal/service"
	"github.com/linemk/water-shop/internal/storage"
	"github.com/shopspring/decimal"
)

// ProductCreateRequest — запрос создания товара
type ProductCreateRequest struct {
	Name        string          `json:"product_name" validate:"required,max=255"`
	Brand       string          `json:"brand" validate:"required,max=255"`
	Category    string          `json:"category" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}

// ProductUpdateRequest — частичное обновление: отсутствующие поля не трогаются
type ProductUpdateRequest struct {
	Name        *string          `json:"product_name" validate:"omitnil,required,max=255"`
	Brand       *string          `json:"brand" validate:"omitnil,required,max=255"`
	Category    *string          `json:"category" validate:"omitnil,required,max=255"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitnil,min=0"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
}

// ListProductsHandler обрабатывает запрос GET /api/products (публичный)
func ListProductsHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				page = parsed
			}
		}

		result, err := productService.List(r.Context(), page)
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    result.Items,
			Meta: &Meta{
				CurrentPage: result.CurrentPage,
				LastPage:    result.LastPage,
				PerPage:     result.PerPage,
				Total:       result.Total,
			},
		})
	}
}

// GetProductHandler обрабатывает запрос GET /api/products/{id} (публичный)
func GetProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		productUUID := chi.URLParam(r, "id")
		product, err := productService.Get(r.Context(), productUUID)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				respondError(w, http.StatusNotFound, "Product not found")
				return
			}
			logger.Error("failed to get product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		respondData(w, http.StatusOK, product)
	}
}

// CreateProductHandler обрабатывает запрос POST /api/products
func CreateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req ProductCreateRequest
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
		// decimal не валидируется тегами — проверяем знак отдельно
		if req.Price.IsNegative() {
			respondFieldErrors(w, map[string][]string{
				"price": {"The price field must be at least 0."},
			})
			return
		}

		product, err := productService.Create(r.Context(), service.ProductInput{
			Name:        req.Name,
			Brand:       req.Brand,
			Category:    req.Category,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		respondMessage(w, http.StatusCreated, "Product created successfully", product)
	}
}

// UpdateProductHandler обрабатывает запрос PUT /api/products/{id}
func UpdateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		productUUID := chi.URLParam(r, "id")

		var req ProductUpdateRequest
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
		if req.Price != nil && req.Price.IsNegative() {
			respondFieldErrors(w, map[string][]string{
				"price": {"The price field must be at least 0."},
			})
			return
		}

		product, err := productService.Update(r.Context(), productUUID, service.ProductUpdate{
			Name:        req.Name,
			Brand:       req.Brand,
			Category:    req.Category,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				respondError(w, http.StatusNotFound, "Product not found")
				return
			}
			logger.Error("failed to update product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		respondMessage(w, http.StatusOK, "Product updated successfully", product)
	}
}

// DeleteProductHandler обрабатывает запрос DELETE /api/products/{id}
func DeleteProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		productUUID := chi.URLParam(r, "id")
		if err := productService.Delete(r.Context(), productUUID); err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				respondError(w, http.StatusNotFound, "Product not found")
				return
			}
			logger.Error("failed to delete product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
	}
}
