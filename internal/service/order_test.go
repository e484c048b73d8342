package service_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/water-shop/internal/domain/models"
	"github.com/linemk/water-shop/internal/service"
	"github.com/linemk/water-shop/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductRepo — хранилище товаров в памяти для юнит-тестов сервиса.
// Транзакция (tx) игнорируется: управление Begin/Commit/Rollback проверяется
// через sqlmock, а откат состояния в тестах не требуется, потому что сервис
// проверяет все позиции до первого списания.
type fakeProductRepo struct {
	byUUID map[string]*models.Product
	byID   map[int64]*models.Product
}

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		byUUID: make(map[string]*models.Product),
		byID:   make(map[int64]*models.Product),
	}
}

func (f *fakeProductRepo) add(p *models.Product) {
	f.byUUID[p.UUID] = p
	f.byID[p.ID] = p
}

func (f *fakeProductRepo) ListProducts(_ context.Context, limit, offset int) ([]*models.Product, error) {
	var all []*models.Product
	for _, p := range f.byID {
		all = append(all, p)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeProductRepo) CountProducts(_ context.Context) (int, error) {
	return len(f.byID), nil
}

func (f *fakeProductRepo) GetProductByUUID(_ context.Context, uuid string) (*models.Product, error) {
	p, ok := f.byUUID[uuid]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetProductByUUIDTx(ctx context.Context, _ *sql.Tx, uuid string) (*models.Product, error) {
	return f.GetProductByUUID(ctx, uuid)
}

func (f *fakeProductRepo) GetProductByIDTx(_ context.Context, _ *sql.Tx, id int64) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	product.ID = int64(len(f.byID) + 1)
	f.add(product)
	return product, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, product *models.Product) error {
	if _, ok := f.byID[product.ID]; !ok {
		return storage.ErrProductNotFound
	}
	f.add(product)
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	p, ok := f.byID[id]
	if !ok {
		return storage.ErrProductNotFound
	}
	delete(f.byID, id)
	delete(f.byUUID, p.UUID)
	return nil
}

func (f *fakeProductRepo) DecrementStockTx(_ context.Context, _ *sql.Tx, productID int64, quantity int) error {
	p, ok := f.byID[productID]
	if !ok {
		return storage.ErrProductNotFound
	}
	// то же условие, что и в SQL-запросе: stock >= quantity
	if p.Stock < quantity {
		return storage.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (f *fakeProductRepo) IncrementStockTx(_ context.Context, _ *sql.Tx, productID int64, quantity int) error {
	p, ok := f.byID[productID]
	if !ok {
		return storage.ErrProductNotFound
	}
	p.Stock += quantity
	return nil
}

// fakeOrderRepo — хранилище заказов в памяти.
type fakeOrderRepo struct {
	nextID int64
	orders map[int64]*models.Order
	byUUID map[string]int64
	items  map[int64][]*models.OrderItem
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[int64]*models.Order),
		byUUID: make(map[string]int64),
		items:  make(map[int64][]*models.OrderItem),
	}
}

func (f *fakeOrderRepo) seed(order *models.Order, items []*models.OrderItem) {
	stored := *order
	f.orders[stored.ID] = &stored
	f.byUUID[stored.UUID] = stored.ID
	f.items[stored.ID] = items
	if stored.ID >= f.nextID {
		f.nextID = stored.ID + 1
	}
}

func (f *fakeOrderRepo) CreateOrderTx(_ context.Context, _ *sql.Tx, order *models.Order) (*models.Order, error) {
	f.nextID++
	order.ID = f.nextID
	stored := *order
	f.orders[order.ID] = &stored
	f.byUUID[order.UUID] = order.ID
	return order, nil
}

func (f *fakeOrderRepo) CreateOrderItemTx(_ context.Context, _ *sql.Tx, item *models.OrderItem) error {
	item.ID = int64(len(f.items[item.OrderID]) + 1)
	f.items[item.OrderID] = append(f.items[item.OrderID], item)
	return nil
}

func (f *fakeOrderRepo) GetOrdersByUserID(_ context.Context, userID int64) ([]*models.Order, error) {
	var orders []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			cp := *o
			orders = append(orders, &cp)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetOrderByUUID(_ context.Context, uuid string) (*models.Order, error) {
	id, ok := f.byUUID[uuid]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	cp := *f.orders[id]
	return &cp, nil
}

func (f *fakeOrderRepo) GetOrderItems(_ context.Context, orderID int64) ([]*models.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) LockOrderByIDTx(_ context.Context, _ *sql.Tx, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) UpdateOrderTx(_ context.Context, _ *sql.Tx, order *models.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return storage.ErrOrderNotFound
	}
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) DeleteOrderTx(_ context.Context, _ *sql.Tx, id int64) error {
	o, ok := f.orders[id]
	if !ok {
		return storage.ErrOrderNotFound
	}
	delete(f.orders, id)
	delete(f.byUUID, o.UUID)
	delete(f.items, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrderServiceForTest(t *testing.T) (service.OrderService, *fakeProductRepo, *fakeOrderRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo()
	svc := service.NewOrderService(testLogger(), db, productRepo, orderRepo)
	return svc, productRepo, orderRepo, mock, func() { db.Close() }
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func TestCreateOrder_Success(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 10,
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	order, err := svc.CreateOrder(context.Background(), 1, service.OrderInput{
		CustomerName: "Ivan Petrov",
		Phone:        "+79990001122",
		Address:      "Moscow, Tverskaya 1",
		Items:        []service.OrderItemInput{{ProductUUID: "prod-uuid-1", Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.NotEmpty(t, order.UUID)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	// сумма считается на сервере: 25.50 * 3
	assert.True(t, order.TotalAmount.Equal(mustDecimal(t, "76.50")), "total should be 76.50, got %s", order.TotalAmount)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.True(t, item.Price.Equal(mustDecimal(t, "25.50")))
	assert.True(t, item.Subtotal.Equal(mustDecimal(t, "76.50")))

	// остаток списан
	assert.Equal(t, 7, productRepo.byID[1].Stock)
	assert.Len(t, orderRepo.orders, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Blue Spring 0.5L",
		Price: mustDecimal(t, "12.00"), Stock: 2,
	})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), 1, service.OrderInput{
		CustomerName: "Ivan Petrov",
		Phone:        "+79990001122",
		Address:      "Moscow, Tverskaya 1",
		Items:        []service.OrderItemInput{{ProductUUID: "prod-uuid-1", Quantity: 5}},
	})
	require.Error(t, err)

	var stockErr *service.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Blue Spring 0.5L", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	// заказ не создан, остаток не тронут
	assert.Equal(t, 2, productRepo.byID[1].Stock)
	assert.Empty(t, orderRepo.orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_PartialFailureLeavesNoTraces(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	// первая позиция валидна, вторая ссылается на несуществующий товар
	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 10,
	})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), 1, service.OrderInput{
		CustomerName: "Ivan Petrov",
		Phone:        "+79990001122",
		Address:      "Moscow, Tverskaya 1",
		Items: []service.OrderItemInput{
			{ProductUUID: "prod-uuid-1", Quantity: 2},
			{ProductUUID: "no-such-uuid", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrProductNotFound))

	// валидная позиция не должна была списаться
	assert.Equal(t, 10, productRepo.byID[1].Stock)
	assert.Empty(t, orderRepo.orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_PriceSnapshot(t *testing.T) {
	svc, productRepo, _, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 10,
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	order, err := svc.CreateOrder(context.Background(), 1, service.OrderInput{
		CustomerName: "Ivan Petrov",
		Phone:        "+79990001122",
		Address:      "Moscow, Tverskaya 1",
		Items:        []service.OrderItemInput{{ProductUUID: "prod-uuid-1", Quantity: 1}},
	})
	require.NoError(t, err)

	// меняем цену товара после оформления
	productRepo.byID[1].Price = mustDecimal(t, "99.00")

	// позиция хранит снимок цены на момент оформления
	got, err := svc.GetOrder(context.Background(), 1, order.UUID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Price.Equal(mustDecimal(t, "25.50")))
	assert.True(t, got.TotalAmount.Equal(mustDecimal(t, "25.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_AccessDenied(t *testing.T) {
	svc, _, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	orderRepo.seed(&models.Order{
		ID: 1, UUID: "order-uuid-1", UserID: 2, Status: models.StatusPending,
	}, nil)

	_, err := svc.GetOrder(context.Background(), 1, "order-uuid-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrOrderAccessDenied))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_CancelReturnsStock(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 7,
	})
	orderRepo.seed(&models.Order{
		ID: 1, UUID: "order-uuid-1", UserID: 1, Status: models.StatusPending,
		TotalAmount: mustDecimal(t, "76.50"),
	}, []*models.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, ProductName: "Aqua Premium 1.5L", Quantity: 3,
			Price: mustDecimal(t, "25.50"), Subtotal: mustDecimal(t, "76.50")},
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	cancelled := models.StatusCancelled
	order, err := svc.UpdateOrder(context.Background(), 1, "order-uuid-1", service.OrderUpdate{
		Status: &cancelled,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, order.Status)
	// остаток вернулся на склад: 7 + 3
	assert.Equal(t, 10, productRepo.byID[1].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_ReactivateDecrementsAgain(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 10,
	})
	orderRepo.seed(&models.Order{
		ID: 1, UUID: "order-uuid-1", UserID: 1, Status: models.StatusCancelled,
		TotalAmount: mustDecimal(t, "76.50"),
	}, []*models.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, ProductName: "Aqua Premium 1.5L", Quantity: 3,
			Price: mustDecimal(t, "25.50"), Subtotal: mustDecimal(t, "76.50")},
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	processing := models.StatusProcessing
	order, err := svc.UpdateOrder(context.Background(), 1, "order-uuid-1", service.OrderUpdate{
		Status: &processing,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusProcessing, order.Status)
	// реактивация повторно списывает остаток: 10 - 3
	assert.Equal(t, 7, productRepo.byID[1].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_ReactivateInsufficientStock(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	// после отмены остаток разобрали другие заказы
	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 2,
	})
	orderRepo.seed(&models.Order{
		ID: 1, UUID: "order-uuid-1", UserID: 1, Status: models.StatusCancelled,
		TotalAmount: mustDecimal(t, "76.50"),
	}, []*models.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, ProductName: "Aqua Premium 1.5L", Quantity: 3,
			Price: mustDecimal(t, "25.50"), Subtotal: mustDecimal(t, "76.50")},
	})

	mock.ExpectBegin()
	mock.ExpectRollback()

	processing := models.StatusProcessing
	_, err := svc.UpdateOrder(context.Background(), 1, "order-uuid-1", service.OrderUpdate{
		Status: &processing,
	})
	require.Error(t, err)

	var stockErr *service.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	// заказ остался отменённым, остаток не изменился
	assert.Equal(t, models.StatusCancelled, orderRepo.orders[1].Status)
	assert.Equal(t, 2, productRepo.byID[1].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_AccessDenied(t *testing.T) {
	svc, _, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	orderRepo.seed(&models.Order{
		ID: 1, UUID: "order-uuid-1", UserID: 2, Status: models.StatusPending,
	}, nil)

	// проверка владельца выполняется до открытия транзакции
	phone := "+79990001122"
	_, err := svc.UpdateOrder(context.Background(), 1, "order-uuid-1", service.OrderUpdate{
		Phone: &phone,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrOrderAccessDenied))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_PartialFields(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 7,
	})
	orderRepo.seed(&models.Order{
		ID: 1, UUID: "order-uuid-1", UserID: 1, Status: models.StatusPending,
		CustomerName: "Ivan Petrov", Phone: "+79990001122", Address: "Moscow",
	}, []*models.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, ProductName: "Aqua Premium 1.5L", Quantity: 3,
			Price: mustDecimal(t, "25.50"), Subtotal: mustDecimal(t, "76.50")},
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	newAddress := "Moscow, Arbat 10"
	order, err := svc.UpdateOrder(context.Background(), 1, "order-uuid-1", service.OrderUpdate{
		Address: &newAddress,
	})
	require.NoError(t, err)

	// обновился только адрес, статус и остаток не тронуты
	assert.Equal(t, "Moscow, Arbat 10", order.Address)
	assert.Equal(t, "Ivan Petrov", order.CustomerName)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 7, productRepo.byID[1].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrder_ActiveReturnsStock(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 7,
	})
	orderRepo.seed(&models.Order{
		ID: 1, UUID: "order-uuid-1", UserID: 1, Status: models.StatusPending,
	}, []*models.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, ProductName: "Aqua Premium 1.5L", Quantity: 3,
			Price: mustDecimal(t, "25.50"), Subtotal: mustDecimal(t, "76.50")},
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.DeleteOrder(context.Background(), 1, "order-uuid-1")
	require.NoError(t, err)

	// остаток вернулся, заказ удалён
	assert.Equal(t, 10, productRepo.byID[1].Stock)
	assert.Empty(t, orderRepo.orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrder_CancelledNoDoubleCredit(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	// остаток уже возвращён при отмене заказа
	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "25.50"), Stock: 10,
	})
	orderRepo.seed(&models.Order{
		ID: 1, UUID: "order-uuid-1", UserID: 1, Status: models.StatusCancelled,
	}, []*models.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, ProductName: "Aqua Premium 1.5L", Quantity: 3,
			Price: mustDecimal(t, "25.50"), Subtotal: mustDecimal(t, "76.50")},
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.DeleteOrder(context.Background(), 1, "order-uuid-1")
	require.NoError(t, err)

	// повторного возврата не было: остаток прежний
	assert.Equal(t, 10, productRepo.byID[1].Stock)
	assert.Empty(t, orderRepo.orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Полный жизненный цикл заказа: оформление, отмена, реактивация, удаление.
// Остаток должен пройти путь 10 -> 7 -> 10 -> 7 -> 10.
func TestOrderLifecycle_StockReconciliation(t *testing.T) {
	svc, productRepo, orderRepo, mock, closeDB := newOrderServiceForTest(t)
	defer closeDB()

	productRepo.add(&models.Product{
		ID: 1, UUID: "prod-uuid-1", Name: "Aqua Premium 1.5L",
		Price: mustDecimal(t, "1000.00"), Stock: 10,
	})

	ctx := context.Background()

	// оформление
	mock.ExpectBegin()
	mock.ExpectCommit()
	order, err := svc.CreateOrder(ctx, 1, service.OrderInput{
		CustomerName: "Ivan Petrov",
		Phone:        "+79990001122",
		Address:      "Moscow, Tverskaya 1",
		Items:        []service.OrderItemInput{{ProductUUID: "prod-uuid-1", Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(mustDecimal(t, "3000.00")))
	assert.Equal(t, 7, productRepo.byID[1].Stock)

	// отмена
	mock.ExpectBegin()
	mock.ExpectCommit()
	cancelled := models.StatusCancelled
	_, err = svc.UpdateOrder(ctx, 1, order.UUID, service.OrderUpdate{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, 10, productRepo.byID[1].Stock)

	// реактивация
	mock.ExpectBegin()
	mock.ExpectCommit()
	processing := models.StatusProcessing
	_, err = svc.UpdateOrder(ctx, 1, order.UUID, service.OrderUpdate{Status: &processing})
	require.NoError(t, err)
	assert.Equal(t, 7, productRepo.byID[1].Stock)

	// удаление активного заказа возвращает остаток
	mock.ExpectBegin()
	mock.ExpectCommit()
	err = svc.DeleteOrder(ctx, 1, order.UUID)
	require.NoError(t, err)
	assert.Equal(t, 10, productRepo.byID[1].Stock)
	assert.Empty(t, orderRepo.orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}
