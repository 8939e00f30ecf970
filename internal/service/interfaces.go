package service

import (
	"context"

	"mealdrop/internal/domain"
)

type MealRepository interface {
	QueryMealsByArea(area string) ([]domain.Meal, error)
	UpsertMeal(m *domain.Meal) error
}

type RestaurantRepository interface {
	GetRestaurant(area, restaurantKey string) (*domain.Restaurant, error)
	ListRestaurants(area string) ([]domain.Restaurant, error)
	UpsertRestaurant(rest *domain.Restaurant) error
}

type OrderRepository interface {
	CreateOrder(o *domain.Order) error
	GetOrder(area, orderID string) (*domain.Order, error)
	SaveReceiptCode(area, orderID string, qr []byte) error
	GetReceiptCode(area, orderID string) ([]byte, error)
}

// InvalidRequestAuditor mirrors rejected input onto the audit queue.
// Implementations must be best effort and never return an error to the
// request path.
type InvalidRequestAuditor interface {
	PublishInvalid(ctx context.Context, event domain.AuditEvent)
	Dropped() int64
}

type CatalogServiceInterface interface {
	ListMeals(area string) ([]domain.Meal, error)
	ListRestaurants(area string) ([]domain.Restaurant, error)
	PublishMeal(ctx context.Context, req PublishMealRequest) (*domain.Meal, error)
}

type OrderServiceInterface interface {
	Submit(ctx context.Context, req SubmitOrderRequest) (*SubmitOrderResult, error)
	Get(area, orderID string) (*domain.Order, error)
	ReceiptCode(area, orderID string) ([]byte, error)
}
