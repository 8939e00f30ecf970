package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"mealdrop/internal/domain"
)

// PostgresRepository backs the three record collections with one SQL table
// each, keyed by (area, row key). Table names come from configuration so
// deployments can point at shared databases.
type PostgresRepository struct {
	DB *sql.DB

	mealsTable       string
	restaurantsTable string
	ordersTable      string
}

func NewPostgresRepository(db *sql.DB, mealsTable, restaurantsTable, ordersTable string) *PostgresRepository {
	return &PostgresRepository{
		DB:               db,
		mealsTable:       mealsTable,
		restaurantsTable: restaurantsTable,
		ordersTable:      ordersTable,
	}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			area TEXT NOT NULL,
			meal_id TEXT NOT NULL,
			restaurant_name TEXT NOT NULL DEFAULT '',
			dish_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			prep_minutes INT NOT NULL DEFAULT 0,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (area, meal_id))`, r.mealsTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			area TEXT NOT NULL,
			restaurant_key TEXT NOT NULL,
			restaurant_name TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (area, restaurant_key))`, r.restaurantsTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			area TEXT NOT NULL,
			order_id TEXT NOT NULL,
			customer_name TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			items_json TEXT NOT NULL DEFAULT '[]',
			total_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			estimated_minutes INT NOT NULL DEFAULT 0,
			receipt_qr BYTEA,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (area, order_id))`, r.ordersTable),
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) QueryMealsByArea(area string) ([]domain.Meal, error) {
	rows, err := r.DB.Query(fmt.Sprintf(`
		SELECT meal_id, area, restaurant_name, dish_name, description, prep_minutes, price, image_url, updated_at
		FROM %s
		WHERE area = $1
		ORDER BY dish_name`, r.mealsTable), area)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := []domain.Meal{}
	for rows.Next() {
		var m domain.Meal
		if err := rows.Scan(&m.MealID, &m.Area, &m.RestaurantName, &m.DishName, &m.Description,
			&m.PrepMinutes, &m.Price, &m.ImageURL, &m.UpdatedAt); err != nil {
			continue
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (r *PostgresRepository) UpsertMeal(m *domain.Meal) error {
	_, err := r.DB.Exec(fmt.Sprintf(`
		INSERT INTO %s (area, meal_id, restaurant_name, dish_name, description, prep_minutes, price, image_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (area, meal_id) DO UPDATE SET
			restaurant_name = EXCLUDED.restaurant_name,
			dish_name = EXCLUDED.dish_name,
			description = EXCLUDED.description,
			prep_minutes = EXCLUDED.prep_minutes,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at`, r.mealsTable),
		m.Area, m.MealID, m.RestaurantName, m.DishName, m.Description,
		m.PrepMinutes, m.Price, m.ImageURL, m.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetRestaurant(area, restaurantKey string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRow(fmt.Sprintf(`
		SELECT area, restaurant_key, restaurant_name, image_url, updated_at
		FROM %s
		WHERE area = $1 AND restaurant_key = $2`, r.restaurantsTable), area, restaurantKey).
		Scan(&rest.Area, &rest.RestaurantKey, &rest.RestaurantName, &rest.ImageURL, &rest.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) ListRestaurants(area string) ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(fmt.Sprintf(`
		SELECT area, restaurant_key, restaurant_name, image_url, updated_at
		FROM %s
		WHERE area = $1
		ORDER BY restaurant_name`, r.restaurantsTable), area)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.Area, &rest.RestaurantKey, &rest.RestaurantName, &rest.ImageURL, &rest.UpdatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) UpsertRestaurant(rest *domain.Restaurant) error {
	_, err := r.DB.Exec(fmt.Sprintf(`
		INSERT INTO %s (area, restaurant_key, restaurant_name, image_url, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (area, restaurant_key) DO UPDATE SET
			restaurant_name = EXCLUDED.restaurant_name,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at`, r.restaurantsTable),
		rest.Area, rest.RestaurantKey, rest.RestaurantName, rest.ImageURL, rest.UpdatedAt)
	return err
}

// CreateOrder is a plain insert: orders are immutable and a duplicate
// order id is a failure, never an overwrite.
func (r *PostgresRepository) CreateOrder(o *domain.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	_, err = r.DB.Exec(fmt.Sprintf(`
		INSERT INTO %s (area, order_id, customer_name, address, items_json, total_cost, estimated_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, r.ordersTable),
		o.Area, o.OrderID, o.CustomerName, o.Address, string(itemsJSON),
		o.TotalCost, o.EstimatedMinutes, o.CreatedAt)
	return err
}

func (r *PostgresRepository) GetOrder(area, orderID string) (*domain.Order, error) {
	var o domain.Order
	var itemsJSON string
	err := r.DB.QueryRow(fmt.Sprintf(`
		SELECT area, order_id, customer_name, address, items_json, total_cost, estimated_minutes, created_at
		FROM %s
		WHERE area = $1 AND order_id = $2`, r.ordersTable), area, orderID).
		Scan(&o.Area, &o.OrderID, &o.CustomerName, &o.Address, &itemsJSON,
			&o.TotalCost, &o.EstimatedMinutes, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.Items = []domain.OrderItem{}
	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}

func (r *PostgresRepository) SaveReceiptCode(area, orderID string, qr []byte) error {
	_, err := r.DB.Exec(fmt.Sprintf(
		`UPDATE %s SET receipt_qr = $1 WHERE area = $2 AND order_id = $3`, r.ordersTable),
		qr, area, orderID)
	return err
}

func (r *PostgresRepository) GetReceiptCode(area, orderID string) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRow(fmt.Sprintf(
		`SELECT receipt_qr FROM %s WHERE area = $1 AND order_id = $2`, r.ordersTable),
		area, orderID).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}
