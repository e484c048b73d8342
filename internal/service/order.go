package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/water-shop/internal/domain/models"
	"github.com/linemk/water-shop/internal/storage"
	"github.com/shopspring/decimal"
)

// OrderService определяет интерфейс работы с заказами. Вся сверка остатков
// (списание при оформлении, возврат при отмене/удалении, повторное списание
// при реактивации) проходит только через методы этого сервиса.
type OrderService interface {
	CreateOrder(ctx context.Context, userID int64, in OrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]*models.Order, error)
	GetOrder(ctx context.Context, userID int64, orderUUID string) (*models.Order, error)
	UpdateOrder(ctx context.Context, userID int64, orderUUID string, in OrderUpdate) (*models.Order, error)
	DeleteOrder(ctx context.Context, userID int64, orderUUID string) error
}

type OrderItemInput struct {
	ProductUUID string
	Quantity    int
}

type OrderInput struct {
	CustomerName string
	Phone        string
	Address      string
	Items        []OrderItemInput
}

// OrderUpdate — частичное обновление: nil-поля не изменяются
type OrderUpdate struct {
	CustomerName *string
	Phone        *string
	Address      *string
	Status       *models.OrderStatus
}

type orderService struct {
	log         *slog.Logger
	db          *sql.DB
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
}

func NewOrderService(log *slog.Logger, db *sql.DB, productRepo storage.ProductStorage, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:         log,
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// CreateOrder оформляет заказ: резолвит каждую позицию по uuid товара,
// проверяет остаток, снимает снимок цены, считает сумму на сервере и
// атомарно списывает остатки вместе со вставкой заказа и позиций.
// Любая ошибка откатывает транзакцию целиком — частичного списания не бывает.
func (s *orderService) CreateOrder(ctx context.Context, userID int64, in OrderInput) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))
	logger.Info("starting order transaction", slog.Int("items", len(in.Items)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	// Сначала резолвим все позиции и проверяем остатки: при любой
	// некорректной позиции заказ не создаётся вовсе
	totalAmount := decimal.Zero
	items := make([]*models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := s.productRepo.GetProductByUUIDTx(ctx, tx, line.ProductUUID)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			if errors.Is(err, storage.ErrProductNotFound) {
				logger.Warn("product not found", slog.String("productUUID", line.ProductUUID))
				return nil, fmt.Errorf("%s: product %s: %w", op, line.ProductUUID, storage.ErrProductNotFound)
			}
			logger.Error("failed to get product", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to get product: %w", op, err)
		}

		if product.Stock < line.Quantity {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Warn("insufficient stock",
				slog.String("product", product.Name),
				slog.Int("available", product.Stock),
				slog.Int("requested", line.Quantity),
			)
			return nil, fmt.Errorf("%s: %w", op, &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   line.Quantity,
			})
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totalAmount = totalAmount.Add(subtotal)
		items = append(items, &models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price, // снимок цены на момент оформления
			Subtotal:    subtotal,
		})
	}

	order := &models.Order{
		UUID:         uuid.NewString(),
		OrderNumber:  newOrderNumber(),
		UserID:       userID,
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Address:      in.Address,
		TotalAmount:  totalAmount,
		Status:       models.StatusPending,
	}

	order, err = s.orderRepo.CreateOrderTx(ctx, tx, order)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	for _, item := range items {
		item.OrderID = order.ID
		if err := s.orderRepo.CreateOrderItemTx(ctx, tx, item); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Error("failed to create order item", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create order item: %w", op, err)
		}

		// условное списание: при гонке с параллельным заказом проигравший
		// получает ErrInsufficientStock и вся транзакция откатывается
		if err := s.productRepo.DecrementStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			if errors.Is(err, storage.ErrInsufficientStock) {
				logger.Warn("stock consumed concurrently", slog.String("product", item.ProductName))
				return nil, fmt.Errorf("%s: %w", op, &InsufficientStockError{
					ProductName: item.ProductName,
					Available:   0, // остаток разобран параллельной транзакцией
					Requested:   item.Quantity,
				})
			}
			logger.Error("failed to decrement stock", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to decrement stock: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	order.Items = items
	logger.Info("order created successfully",
		slog.String("orderNumber", order.OrderNumber),
		slog.String("total", totalAmount.StringFixed(2)),
	)
	return order, nil
}

// ListOrders возвращает заказы пользователя вместе с позициями
func (s *orderService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, order := range orders {
		items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
		if err != nil {
			s.log.Error("failed to get order items", slog.String("op", op), slog.Any("error", err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		order.Items = items
	}
	return orders, nil
}

// GetOrder возвращает один заказ; чужой заказ — ErrOrderAccessDenied
func (s *orderService) GetOrder(ctx context.Context, userID int64, orderUUID string) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.orderRepo.GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrOrderAccessDenied)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		s.log.Error("failed to get order items", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order.Items = items
	return order, nil
}

// UpdateOrder применяет частичное обновление полей доставки и/или статуса.
// Переход в cancelled возвращает остатки на склад, переход из cancelled
// повторно проверяет и списывает их; при нехватке транзакция откатывается
// и заказ остаётся в cancelled. Сами правила переходов не ограничены:
// допустим любой из четырёх статусов из любого другого.
func (s *orderService) UpdateOrder(ctx context.Context, userID int64, orderUUID string, in OrderUpdate) (*models.Order, error) {
	const op = "service.OrderService.UpdateOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("orderUUID", orderUUID))

	// страховка на случай вызова в обход хэндлера
	if in.Status != nil && !in.Status.Valid() {
		return nil, fmt.Errorf("%s: invalid order status %q", op, *in.Status)
	}

	existing, err := s.orderRepo.GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing.UserID != userID {
		logger.Warn("order belongs to another user")
		return nil, fmt.Errorf("%s: %w", op, ErrOrderAccessDenied)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	// блокируем строку заказа, чтобы параллельное изменение статуса
	// не привело к двойному возврату или двойному списанию
	order, err := s.orderRepo.LockOrderByIDTx(ctx, tx, existing.ID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to lock order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to lock order: %w", op, err)
	}

	oldStatus := order.Status
	if in.Status != nil && *in.Status != oldStatus {
		newStatus := *in.Status

		switch {
		case newStatus == models.StatusCancelled:
			// отмена: возвращаем остаток по каждой позиции
			if err := s.returnStockTx(ctx, tx, logger, order.ID); err != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					logger.Error("transaction rollback failed", slog.Any("error", rbErr))
				}
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		case oldStatus == models.StatusCancelled:
			// реактивация: остаток мог разобрать другой заказ — проверяем заново
			if err := s.reclaimStockTx(ctx, tx, logger, order.ID); err != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					logger.Error("transaction rollback failed", slog.Any("error", rbErr))
				}
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		order.Status = newStatus
	}

	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.Phone != nil {
		order.Phone = *in.Phone
	}
	if in.Address != nil {
		order.Address = *in.Address
	}

	if err := s.orderRepo.UpdateOrderTx(ctx, tx, order); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to update order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update order: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		logger.Error("failed to get order items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order.Items = items

	logger.Info("order updated successfully",
		slog.String("oldStatus", string(oldStatus)),
		slog.String("newStatus", string(order.Status)),
	)
	return order, nil
}

// DeleteOrder удаляет заказ. Если заказ ещё не отменён, остатки сначала
// возвращаются на склад; для отменённого заказа остатки уже возвращены,
// и повторный возврат не выполняется.
func (s *orderService) DeleteOrder(ctx context.Context, userID int64, orderUUID string) error {
	const op = "service.OrderService.DeleteOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("orderUUID", orderUUID))

	existing, err := s.orderRepo.GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if existing.UserID != userID {
		logger.Warn("order belongs to another user")
		return fmt.Errorf("%s: %w", op, ErrOrderAccessDenied)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	order, err := s.orderRepo.LockOrderByIDTx(ctx, tx, existing.ID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to lock order", slog.Any("error", err))
		return fmt.Errorf("%s: failed to lock order: %w", op, err)
	}

	if order.Status != models.StatusCancelled {
		if err := s.returnStockTx(ctx, tx, logger, order.ID); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.orderRepo.DeleteOrderTx(ctx, tx, order.ID); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to delete order", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete order: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order deleted successfully", slog.String("orderNumber", order.OrderNumber))
	return nil
}

// returnStockTx возвращает количество каждой позиции на склад
func (s *orderService) returnStockTx(ctx context.Context, tx *sql.Tx, logger *slog.Logger, orderID int64) error {
	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		logger.Error("failed to get order items", slog.Any("error", err))
		return fmt.Errorf("failed to get order items: %w", err)
	}

	for _, item := range items {
		if err := s.productRepo.IncrementStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
			logger.Error("failed to return stock", slog.Any("error", err))
			return fmt.Errorf("failed to return stock: %w", err)
		}
		logger.Info("stock returned",
			slog.String("product", item.ProductName),
			slog.Int("quantity", item.Quantity),
		)
	}
	return nil
}

// reclaimStockTx повторно списывает остатки при реактивации отменённого заказа
func (s *orderService) reclaimStockTx(ctx context.Context, tx *sql.Tx, logger *slog.Logger, orderID int64) error {
	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		logger.Error("failed to get order items", slog.Any("error", err))
		return fmt.Errorf("failed to get order items: %w", err)
	}

	for _, item := range items {
		product, err := s.productRepo.GetProductByIDTx(ctx, tx, item.ProductID)
		if err != nil {
			logger.Error("failed to get product", slog.Any("error", err))
			return fmt.Errorf("failed to get product: %w", err)
		}

		if product.Stock < item.Quantity {
			logger.Warn("insufficient stock for reactivation",
				slog.String("product", product.Name),
				slog.Int("available", product.Stock),
				slog.Int("requested", item.Quantity),
			)
			return &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}

		if err := s.productRepo.DecrementStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, storage.ErrInsufficientStock) {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}
			logger.Error("failed to decrement stock", slog.Any("error", err))
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		logger.Info("stock reclaimed",
			slog.String("product", product.Name),
			slog.Int("quantity", item.Quantity),
		)
	}
	return nil
}

// newOrderNumber генерирует человекочитаемый номер вида ORD-20260830-9F3A1C2B
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + time.Now().Format("20060102") + "-" + suffix
}
