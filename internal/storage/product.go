package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/water-shop/internal/domain/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock возвращается условным декрементом, когда на складе
	// меньше, чем запрошено (в том числе при гонке двух заказов)
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductStorage описывает методы для работы с каталогом товаров.
// Заказная логика изменяет stock только через DecrementStockTx/IncrementStockTx.
type ProductStorage interface {
	ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error)
	CountProducts(ctx context.Context) (int, error)
	GetProductByUUID(ctx context.Context, uuid string) (*models.Product, error)
	GetProductByUUIDTx(ctx context.Context, tx *sql.Tx, uuid string) (*models.Product, error)
	GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	DecrementStockTx(ctx context.Context, tx *sql.Tx, productID int64, quantity int) error
	IncrementStockTx(ctx context.Context, tx *sql.Tx, productID int64, quantity int) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *productRepository {
	return &productRepository{db: db}
}

const productColumns = "id, uuid, slug, product_name, brand, category, price, stock, description, image_url, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.UUID, &p.Slug, &p.Name, &p.Brand, &p.Category,
		&p.Price, &p.Stock, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts возвращает страницу каталога, новые товары первыми
func (r *productRepository) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CountProducts(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *productRepository) GetProductByUUID(ctx context.Context, uuid string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE uuid = $1", uuid)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetProductByUUIDTx читает товар внутри транзакции заказа
func (r *productRepository) GetProductByUUIDTx(ctx context.Context, tx *sql.Tx, uuid string) (*models.Product, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE uuid = $1", uuid)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetProductByIDTx читает товар по внутреннему id внутри транзакции
// (используется при отмене/реактивации, где позиции хранят product_id)
func (r *productRepository) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (uuid, slug, product_name, brand, category, price, stock, description, image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		product.UUID, product.Slug, product.Name, product.Brand, product.Category,
		product.Price, product.Stock, product.Description, product.ImageURL,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProduct перезаписывает изменяемые поля товара
func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `UPDATE products
	          SET product_name = $1, brand = $2, category = $3, price = $4, stock = $5, description = $6, image_url = $7, updated_at = NOW()
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		product.Name, product.Brand, product.Category, product.Price, product.Stock,
		product.Description, product.ImageURL, product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStockTx атомарно списывает остаток. Условие stock >= quantity
// в самом запросе закрывает гонку двух одновременных заказов на последние
// единицы: проигравший получает ErrInsufficientStock, stock не уходит в минус.
func (r *productRepository) DecrementStockTx(ctx context.Context, tx *sql.Tx, productID int64, quantity int) error {
	query := "UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1"
	res, err := tx.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStockTx возвращает количество на склад при отмене или удалении заказа
func (r *productRepository) IncrementStockTx(ctx context.Context, tx *sql.Tx, productID int64, quantity int) error {
	query := "UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2"
	res, err := tx.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
