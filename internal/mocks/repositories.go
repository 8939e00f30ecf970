// Package mocks holds testify mocks for the repository and auditor
// interfaces consumed by the service layer.
package mocks

import (
	"context"

	"mealdrop/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MealRepository struct {
	mock.Mock
}

func (m *MealRepository) QueryMealsByArea(area string) ([]domain.Meal, error) {
	args := m.Called(area)
	var meals []domain.Meal
	if args.Get(0) != nil {
		meals = args.Get(0).([]domain.Meal)
	}
	return meals, args.Error(1)
}

func (m *MealRepository) UpsertMeal(meal *domain.Meal) error {
	return m.Called(meal).Error(0)
}

type RestaurantRepository struct {
	mock.Mock
}

func (m *RestaurantRepository) GetRestaurant(area, restaurantKey string) (*domain.Restaurant, error) {
	args := m.Called(area, restaurantKey)
	var rest *domain.Restaurant
	if args.Get(0) != nil {
		rest = args.Get(0).(*domain.Restaurant)
	}
	return rest, args.Error(1)
}

func (m *RestaurantRepository) ListRestaurants(area string) ([]domain.Restaurant, error) {
	args := m.Called(area)
	var restaurants []domain.Restaurant
	if args.Get(0) != nil {
		restaurants = args.Get(0).([]domain.Restaurant)
	}
	return restaurants, args.Error(1)
}

func (m *RestaurantRepository) UpsertRestaurant(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(o *domain.Order) error {
	return m.Called(o).Error(0)
}

func (m *OrderRepository) GetOrder(area, orderID string) (*domain.Order, error) {
	args := m.Called(area, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) SaveReceiptCode(area, orderID string, qr []byte) error {
	return m.Called(area, orderID, qr).Error(0)
}

func (m *OrderRepository) GetReceiptCode(area, orderID string) ([]byte, error) {
	args := m.Called(area, orderID)
	var qr []byte
	if args.Get(0) != nil {
		qr = args.Get(0).([]byte)
	}
	return qr, args.Error(1)
}

type InvalidRequestAuditor struct {
	mock.Mock
}

func (m *InvalidRequestAuditor) PublishInvalid(ctx context.Context, event domain.AuditEvent) {
	m.Called(ctx, event)
}

func (m *InvalidRequestAuditor) Dropped() int64 {
	return m.Called().Get(0).(int64)
}

type ReceiptGenerator struct {
	mock.Mock
}

func (m *ReceiptGenerator) Generate(area, orderID string) ([]byte, error) {
	args := m.Called(area, orderID)
	var qr []byte
	if args.Get(0) != nil {
		qr = args.Get(0).([]byte)
	}
	return qr, args.Error(1)
}
