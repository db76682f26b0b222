package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/EduardKrecmer/pizzeria/internal/models"
)

// ErrOrderNotFound sa vracia pri neexistujúcom ID objednávky.
var ErrOrderNotFound = errors.New("objednávka sa nenašla")

const ordersSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id           TEXT NOT NULL DEFAULT '',
	customer_name        TEXT NOT NULL,
	customer_email       TEXT NOT NULL DEFAULT '',
	customer_phone       TEXT NOT NULL,
	delivery_address     TEXT NOT NULL DEFAULT '',
	delivery_city        TEXT NOT NULL DEFAULT '',
	delivery_city_part   TEXT NOT NULL DEFAULT '',
	delivery_postal_code TEXT NOT NULL DEFAULT '',
	delivery_type        TEXT NOT NULL,
	delivery_fee         REAL NOT NULL DEFAULT 0,
	notes                TEXT NOT NULL DEFAULT '',
	items                TEXT NOT NULL,
	total_amount         REAL NOT NULL,
	status               TEXT NOT NULL DEFAULT 'pending',
	created_at           TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

// OrderStore ukladá odoslané objednávky do SQLite databázy.
// Objednávka je od uloženia jediný trvalý záznam — košík sa po nej maže.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore otvorí databázu objednávok a založí schému.
func NewOrderStore(dbPath string) (*OrderStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("databázu objednávok sa nepodarilo otvoriť: %w", err)
	}

	// WAL a jeden writer — SQLite tu obsluhuje jediný proces.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("WAL režim sa nepodarilo zapnúť: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(ordersSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schému objednávok sa nepodarilo založiť: %w", err)
	}

	return &OrderStore{db: db}, nil
}

// Close zavrie databázové spojenie.
func (s *OrderStore) Close() error {
	return s.db.Close()
}

// Ping overí dostupnosť databázy.
func (s *OrderStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateOrder vloží objednávku a doplní do nej pridelené ID, stav
// a čas vytvorenia.
func (s *OrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("položky objednávky sa nepodarilo serializovať: %w", err)
	}

	order.Status = models.OrderStatusPending
	order.CreatedAt = time.Now()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (
			session_id, customer_name, customer_email, customer_phone,
			delivery_address, delivery_city, delivery_city_part, delivery_postal_code,
			delivery_type, delivery_fee, notes, items, total_amount, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.SessionID, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.DeliveryAddress, order.DeliveryCity, order.DeliveryCityPart, order.DeliveryPostalCode,
		string(order.DeliveryType), order.DeliveryFee, order.Notes, string(itemsJSON),
		order.TotalAmount, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("objednávku sa nepodarilo uložiť: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ID objednávky sa nepodarilo zistiť: %w", err)
	}
	order.ID = int(id)
	return nil
}

// GetOrderByID načíta jednu objednávku.
func (s *OrderStore) GetOrderByID(ctx context.Context, id int) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, customer_name, customer_email, customer_phone,
		       delivery_address, delivery_city, delivery_city_part, delivery_postal_code,
		       delivery_type, delivery_fee, notes, items, total_amount, status, created_at
		FROM orders WHERE id = ?`, id)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// GetAllOrders vráti objednávky od najnovšej.
func (s *OrderStore) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, customer_name, customer_email, customer_phone,
		       delivery_address, delivery_city, delivery_city_part, delivery_postal_code,
		       delivery_type, delivery_fee, notes, items, total_amount, status, created_at
		FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus zmení stav objednávky.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var deliveryType string
	var itemsJSON string

	err := row.Scan(
		&order.ID, &order.SessionID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.DeliveryAddress, &order.DeliveryCity, &order.DeliveryCityPart, &order.DeliveryPostalCode,
		&deliveryType, &order.DeliveryFee, &order.Notes, &itemsJSON,
		&order.TotalAmount, &order.Status, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.DeliveryType = models.DeliveryType(deliveryType)
	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("položky objednávky %d sa nepodarilo načítať: %w", order.ID, err)
	}
	return &order, nil
}
