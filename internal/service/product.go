package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/linemk/water-shop/internal/domain/models"
	"github.com/linemk/water-shop/internal/storage"
	"github.com/shopspring/decimal"
)

// ProductsPerPage — размер страницы каталога
const ProductsPerPage = 12

// ProductService определяет интерфейс каталога товаров.
type ProductService interface {
	List(ctx context.Context, page int) (*ProductPage, error)
	Get(ctx context.Context, productUUID string) (*models.Product, error)
	Create(ctx context.Context, in ProductInput) (*models.Product, error)
	Update(ctx context.Context, productUUID string, in ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, productUUID string) error
}

// ProductPage — страница каталога с метаданными пагинации
type ProductPage struct {
	Items       []*models.Product
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

type ProductInput struct {
	Name        string
	Brand       string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Description string
	ImageURL    string
}

// ProductUpdate — частичное обновление: nil-поля не изменяются
type ProductUpdate struct {
	Name        *string
	Brand       *string
	Category    *string
	Price       *decimal.Decimal
	Stock       *int
	Description *string
	ImageURL    *string
}

type productService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewProductService(log *slog.Logger, productRepo storage.ProductStorage) ProductService {
	return &productService{
		log:         log,
		productRepo: productRepo,
	}
}

func (s *productService) List(ctx context.Context, page int) (*ProductPage, error) {
	const op = "service.ProductService.List"

	if page < 1 {
		page = 1
	}

	total, err := s.productRepo.CountProducts(ctx)
	if err != nil {
		s.log.Error("failed to count products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	offset := (page - 1) * ProductsPerPage
	products, err := s.productRepo.ListProducts(ctx, ProductsPerPage, offset)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lastPage := (total + ProductsPerPage - 1) / ProductsPerPage
	if lastPage < 1 {
		lastPage = 1
	}

	return &ProductPage{
		Items:       products,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     ProductsPerPage,
		Total:       total,
	}, nil
}

func (s *productService) Get(ctx context.Context, productUUID string) (*models.Product, error) {
	const op = "service.ProductService.Get"

	product, err := s.productRepo.GetProductByUUID(ctx, productUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	const op = "service.ProductService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("name", in.Name))

	product := &models.Product{
		UUID:        uuid.NewString(),
		Slug:        makeSlug(in.Name),
		Name:        in.Name,
		Brand:       in.Brand,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}

	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product created", slog.String("uuid", created.UUID))
	return created, nil
}

func (s *productService) Update(ctx context.Context, productUUID string, in ProductUpdate) (*models.Product, error) {
	const op = "service.ProductService.Update"
	logger := s.log.With(slog.String("op", op), slog.String("uuid", productUUID))

	product, err := s.productRepo.GetProductByUUID(ctx, productUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// накладываем только переданные поля
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		logger.Error("failed to update product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product updated")
	return product, nil
}

func (s *productService) Delete(ctx context.Context, productUUID string) error {
	const op = "service.ProductService.Delete"
	logger := s.log.With(slog.String("op", op), slog.String("uuid", productUUID))

	product, err := s.productRepo.GetProductByUUID(ctx, productUUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.productRepo.DeleteProduct(ctx, product.ID); err != nil {
		logger.Error("failed to delete product", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product deleted")
	return nil
}

// makeSlug строит слаг вида "aqua-premium-1-5l-a1b2c3":
// имя приводится к нижнему регистру, не-алфавитные символы схлопываются
// в дефисы, в конец добавляется случайный суффикс для уникальности
func makeSlug(name string) string {
	var b strings.Builder
	prevDash := true // подавляем ведущий дефис
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevDash = false
		} else if !prevDash {
			b.WriteByte('-')
			prevDash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
