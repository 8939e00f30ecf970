package service

import (
	"context"
	"fmt"
	"time"

	"mealdrop/internal/domain"
	"mealdrop/internal/validate"

	"github.com/google/uuid"
)

// Costing holds the additive ETA constants: a flat pickup and delivery
// offset plus a surcharge for every restaurant past the first involved in
// one order.
type Costing struct {
	PickupMinutes          int
	DeliveryMinutes        int
	ExtraRestaurantMinutes int
}

// SubmitOrderRequest carries the raw body of POST /api/orders. Items are
// meal references; pricing always comes from the Meals collection, never
// from the caller.
type SubmitOrderRequest struct {
	Area         string             `json:"area"`
	CustomerName string             `json:"customerName"`
	Address      string             `json:"address"`
	Items        []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	MealID   string `json:"mealId"`
	Quantity int    `json:"quantity"`
}

// SubmitOrderResult pairs the stored order with the meal references that
// were silently dropped because they did not resolve in the area.
type SubmitOrderResult struct {
	Order          *domain.Order
	DroppedMealIDs []string
}

type OrderService struct {
	orders  OrderRepository
	meals   MealRepository
	receipt ReceiptGenerator
	costing Costing
	now     func() time.Time
	newID   func() string
}

func NewOrderService(orders OrderRepository, meals MealRepository, receipt ReceiptGenerator, costing Costing) *OrderService {
	return &OrderService{
		orders:  orders,
		meals:   meals,
		receipt: receipt,
		costing: costing,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Submit validates the request, resolves meal references against the Meals
// collection, computes totals and persists one immutable order record.
// Unresolvable references are dropped; if nothing survives the order is
// rejected with ErrNoOrderableItems.
func (s *OrderService) Submit(ctx context.Context, req SubmitOrderRequest) (*SubmitOrderResult, error) {
	area := validate.String(req.Area)
	customerName := validate.String(req.CustomerName)
	address := validate.String(req.Address)

	var problems []string
	if area == "" {
		problems = append(problems, "missing or invalid 'area'")
	}
	if customerName == "" {
		problems = append(problems, "missing or invalid 'customerName'")
	}
	if address == "" {
		problems = append(problems, "missing or invalid 'address'")
	}
	if len(req.Items) == 0 {
		problems = append(problems, "missing or invalid 'items' (non-empty array required)")
	}
	for i, item := range req.Items {
		if !validate.Present(item.MealID) {
			problems = append(problems, fmt.Sprintf("item %d: missing or invalid 'mealId'", i))
		}
		if _, ok := validate.Quantity(item.Quantity); !ok {
			problems = append(problems, fmt.Sprintf("item %d: invalid 'quantity' (positive integer)", i))
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	meals, err := s.meals.QueryMealsByArea(area)
	if err != nil {
		return nil, fmt.Errorf("query meals for area %q: %w", area, err)
	}
	byID := make(map[string]domain.Meal, len(meals))
	for _, m := range meals {
		byID[m.MealID] = m
	}

	var (
		items       []domain.OrderItem
		dropped     []string
		totalCost   float64
		prepSum     int
		restaurants = map[string]struct{}{}
	)
	for _, ref := range req.Items {
		mealID := validate.String(ref.MealID)
		meal, ok := byID[mealID]
		if !ok {
			dropped = append(dropped, mealID)
			continue
		}
		quantity, _ := validate.Quantity(ref.Quantity)

		totalCost += meal.Price * float64(quantity)
		prepSum += meal.PrepMinutes * quantity
		restaurants[meal.RestaurantName] = struct{}{}

		items = append(items, domain.OrderItem{
			MealID:         meal.MealID,
			RestaurantName: meal.RestaurantName,
			DishName:       meal.DishName,
			PrepMinutes:    meal.PrepMinutes,
			Price:          meal.Price,
			Quantity:       quantity,
		})
	}
	if len(items) == 0 {
		return nil, ErrNoOrderableItems
	}

	order := &domain.Order{
		OrderID:          s.newID(),
		Area:             area,
		CustomerName:     customerName,
		Address:          address,
		Items:            items,
		TotalCost:        validate.Round2(totalCost),
		EstimatedMinutes: s.estimate(prepSum, len(restaurants)),
		CreatedAt:        s.now(),
	}
	if err := s.orders.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if s.receipt != nil {
		if qr, err := s.receipt.Generate(order.Area, order.OrderID); err == nil {
			_ = s.orders.SaveReceiptCode(order.Area, order.OrderID, qr)
		}
	}

	return &SubmitOrderResult{Order: order, DroppedMealIDs: dropped}, nil
}

func (s *OrderService) estimate(prepSum, distinctRestaurants int) int {
	extra := distinctRestaurants - 1
	if extra < 0 {
		extra = 0
	}
	return prepSum + s.costing.PickupMinutes + s.costing.DeliveryMinutes +
		s.costing.ExtraRestaurantMinutes*extra
}

func (s *OrderService) Get(area, orderID string) (*domain.Order, error) {
	return s.orders.GetOrder(area, orderID)
}

// ReceiptCode returns the stored receipt QR, regenerating and re-storing
// it when the original write was lost.
func (s *OrderService) ReceiptCode(area, orderID string) ([]byte, error) {
	qr, err := s.orders.GetReceiptCode(area, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.receipt != nil {
		if regenerated, err := s.receipt.Generate(area, orderID); err == nil {
			_ = s.orders.SaveReceiptCode(area, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
