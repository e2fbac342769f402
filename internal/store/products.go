package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"shop-service/internal/models"
)

// Заголовок таблицы товаров. Порядок колонок фиксирован форматом файла.
var productHeader = []string{"id", "name", "price", "quantity", "description", "category"}

// ProductStoreInterface определяет интерфейс хранилища товаров
type ProductStoreInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Insert(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	RemoveByID(ctx context.Context, id int64) error
	RemoveByName(ctx context.Context, name string) error
}

// ProductStore работает с таблицей товаров в products.csv.
// Цикл "прочитать таблицу - изменить - записать" выполняется целиком
// под мьютексом, чтобы параллельные запросы не теряли изменения.
type ProductStore struct {
	store *Store
	mu    sync.Mutex
}

// NewProductStore создает новый экземпляр ProductStore
func NewProductStore(store *Store) *ProductStore {
	return &ProductStore{store: store}
}

// List возвращает все товары, перечитывая файл заново
func (p *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.read()
}

// Get находит товар по id линейным проходом по таблице
func (p *ProductStore) Get(ctx context.Context, id int64) (*models.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	products, err := p.read()
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, ErrNotFound
}

// Insert добавляет товар, присваивая ему id = max(существующих) + 1,
// либо 1 для пустой таблицы
func (p *ProductStore) Insert(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	products, err := p.read()
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, existing := range products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	product := models.Product{
		ID:          maxID + 1,
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		Category:    req.Category,
	}
	products = append(products, product)

	if err := p.write(products); err != nil {
		return nil, err
	}

	return &product, nil
}

// RemoveByID удаляет товар по id
func (p *ProductStore) RemoveByID(ctx context.Context, id int64) error {
	return p.remove(func(pr *models.Product) bool { return pr.ID == id })
}

// RemoveByName удаляет товар по точному совпадению имени
func (p *ProductStore) RemoveByName(ctx context.Context, name string) error {
	return p.remove(func(pr *models.Product) bool { return pr.Name == name })
}

// remove переписывает таблицу без строк, подошедших под предикат.
// Если ни одна строка не подошла, файл не трогается.
func (p *ProductStore) remove(match func(*models.Product) bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	products, err := p.read()
	if err != nil {
		return err
	}

	kept := make([]models.Product, 0, len(products))
	for _, product := range products {
		if !match(&product) {
			kept = append(kept, product)
		}
	}

	if len(kept) == len(products) {
		return ErrNotFound
	}

	// Результат пишется обратно в файл товаров
	return p.write(kept)
}

// read читает таблицу целиком. Отсутствующий файл трактуется как пустая
// таблица: создается файл с одной строкой заголовка.
func (p *ProductStore) read() ([]models.Product, error) {
	file, err := os.Open(p.store.productsPath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := p.write(nil); err != nil {
				return nil, err
			}
			return []models.Product{}, nil
		}
		return nil, fmt.Errorf("failed to open products file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}

	products := make([]models.Product, 0, len(records))
	for i, row := range records {
		if i == 0 {
			// строка заголовка
			continue
		}
		product, err := parseProductRow(row, i+1)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// write переписывает файл таблицы целиком, схлопывая строки,
// совпадающие по всем колонкам
func (p *ProductStore) write(products []models.Product) error {
	file, err := os.Create(p.store.productsPath)
	if err != nil {
		return fmt.Errorf("failed to create products file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(productHeader); err != nil {
		return fmt.Errorf("failed to write products header: %w", err)
	}

	seen := make(map[string]bool, len(products))
	for _, product := range products {
		row := []string{
			strconv.FormatInt(product.ID, 10),
			product.Name,
			strconv.FormatInt(product.Price, 10),
			strconv.FormatInt(product.Quantity, 10),
			product.Description,
			product.Category,
		}
		key := strings.Join(row, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write product row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush products file: %w", err)
	}

	return nil
}

// parseProductRow разбирает одну строку CSV в товар
func parseProductRow(row []string, line int) (models.Product, error) {
	if len(row) != len(productHeader) {
		return models.Product{}, fmt.Errorf("products row %d has %d columns, want %d", line, len(row), len(productHeader))
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("products row %d: bad id: %w", line, err)
	}
	price, err := strconv.ParseInt(row[2], 10, 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("products row %d: bad price: %w", line, err)
	}
	quantity, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("products row %d: bad quantity: %w", line, err)
	}

	return models.Product{
		ID:          id,
		Name:        row[1],
		Price:       price,
		Quantity:    quantity,
		Description: row[4],
		Category:    row[5],
	}, nil
}
