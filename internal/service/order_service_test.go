package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mealdrop/internal/domain"
	"mealdrop/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var centralMeals = []domain.Meal{
	{MealID: "m-burger", Area: "Central", RestaurantName: "Central Kitchen 01", DishName: "Classic Burger", PrepMinutes: 12, Price: 9.99},
	{MealID: "m-bowl", Area: "Central", RestaurantName: "Central Kitchen 01", DishName: "Chicken Rice Bowl", PrepMinutes: 14, Price: 10.50},
	{MealID: "m-slice", Area: "Central", RestaurantName: "Central Kitchen 02", DishName: "Margherita Pizza Slice", PrepMinutes: 10, Price: 4.25},
}

func newTestOrderService(orders *mocks.OrderRepository, meals *mocks.MealRepository, costing Costing) *OrderService {
	svc := NewOrderService(orders, meals, nil, costing)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "order-fixed-id" }
	return svc
}

func TestOrderSubmitValidation(t *testing.T) {
	tests := []struct {
		name     string
		req      SubmitOrderRequest
		problems int
	}{
		{
			name:     "everything missing",
			req:      SubmitOrderRequest{},
			problems: 4,
		},
		{
			name: "blank strings count as absent",
			req: SubmitOrderRequest{
				Area: "  ", CustomerName: "\t", Address: " ",
				Items: []OrderItemRequest{{MealID: "m-burger"}},
			},
			problems: 3,
		},
		{
			name: "item problems are attributed by index",
			req: SubmitOrderRequest{
				Area: "Central", CustomerName: "Ada", Address: "1 Loop Rd",
				Items: []OrderItemRequest{{MealID: ""}, {MealID: "m-bowl", Quantity: -2}},
			},
			problems: 2,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := newTestOrderService(new(mocks.OrderRepository), new(mocks.MealRepository), Costing{})

			_, err := svc.Submit(context.Background(), testCase.req)

			ve, ok := AsValidation(err)
			require.True(t, ok, "expected ValidationError, got %v", err)
			assert.Len(t, ve.Problems, testCase.problems)
		})
	}
}

func TestOrderSubmitComputesTotals(t *testing.T) {
	mealRepo := new(mocks.MealRepository)
	orderRepo := new(mocks.OrderRepository)
	mealRepo.On("QueryMealsByArea", "Central").Return(centralMeals, nil).Once()
	orderRepo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	svc := newTestOrderService(orderRepo, mealRepo, Costing{PickupMinutes: 10, DeliveryMinutes: 20, ExtraRestaurantMinutes: 7})

	result, err := svc.Submit(context.Background(), SubmitOrderRequest{
		Area:         "Central",
		CustomerName: "Ada",
		Address:      "1 Loop Rd",
		Items: []OrderItemRequest{
			{MealID: "m-burger", Quantity: 1},
			{MealID: "m-bowl", Quantity: 2},
		},
	})
	require.NoError(t, err)

	order := result.Order
	// 9.99 + 10.50*2, single restaurant: prep 12 + 28, pickup 10, delivery 20.
	assert.Equal(t, 30.99, order.TotalCost)
	assert.Equal(t, 70, order.EstimatedMinutes)
	assert.Equal(t, "order-fixed-id", order.OrderID)
	assert.Len(t, order.Items, 2)
	assert.Empty(t, result.DroppedMealIDs)
	orderRepo.AssertExpectations(t)
}

func TestOrderSubmitExtraRestaurantSurcharge(t *testing.T) {
	mealRepo := new(mocks.MealRepository)
	orderRepo := new(mocks.OrderRepository)
	mealRepo.On("QueryMealsByArea", "Central").Return(centralMeals, nil).Once()
	orderRepo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	svc := newTestOrderService(orderRepo, mealRepo, Costing{PickupMinutes: 10, DeliveryMinutes: 15, ExtraRestaurantMinutes: 7})

	result, err := svc.Submit(context.Background(), SubmitOrderRequest{
		Area:         "Central",
		CustomerName: "Ada",
		Address:      "1 Loop Rd",
		Items: []OrderItemRequest{
			{MealID: "m-burger"},
			{MealID: "m-slice"},
		},
	})
	require.NoError(t, err)

	// Two distinct restaurants: 12 + 10 prep, 10 pickup, 15 delivery, 7 surcharge.
	assert.Equal(t, 54, result.Order.EstimatedMinutes)
	// Absent quantity defaults to 1.
	assert.Equal(t, 14.24, result.Order.TotalCost)
}

func TestOrderSubmitDropsUnresolvableReferences(t *testing.T) {
	mealRepo := new(mocks.MealRepository)
	orderRepo := new(mocks.OrderRepository)
	mealRepo.On("QueryMealsByArea", "Central").Return(centralMeals, nil).Once()
	orderRepo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	svc := newTestOrderService(orderRepo, mealRepo, Costing{PickupMinutes: 10, DeliveryMinutes: 15})

	result, err := svc.Submit(context.Background(), SubmitOrderRequest{
		Area:         "Central",
		CustomerName: "Ada",
		Address:      "1 Loop Rd",
		Items: []OrderItemRequest{
			{MealID: "m-burger"},
			{MealID: "m-ghost"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"m-ghost"}, result.DroppedMealIDs)
	assert.Len(t, result.Order.Items, 1)
	assert.Equal(t, 9.99, result.Order.TotalCost)
}

func TestOrderSubmitRejectsWhenNothingResolves(t *testing.T) {
	mealRepo := new(mocks.MealRepository)
	orderRepo := new(mocks.OrderRepository)
	mealRepo.On("QueryMealsByArea", "Central").Return(centralMeals, nil).Once()

	svc := newTestOrderService(orderRepo, mealRepo, Costing{})

	_, err := svc.Submit(context.Background(), SubmitOrderRequest{
		Area:         "Central",
		CustomerName: "Ada",
		Address:      "1 Loop Rd",
		Items:        []OrderItemRequest{{MealID: "m-ghost"}, {MealID: "m-phantom"}},
	})

	assert.ErrorIs(t, err, ErrNoOrderableItems)
	orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything)
}

func TestOrderSubmitEstimateMonotonicInQuantity(t *testing.T) {
	costing := Costing{PickupMinutes: 10, DeliveryMinutes: 15, ExtraRestaurantMinutes: 7}

	previous := 0
	for quantity := 1; quantity <= 4; quantity++ {
		mealRepo := new(mocks.MealRepository)
		orderRepo := new(mocks.OrderRepository)
		mealRepo.On("QueryMealsByArea", "Central").Return(centralMeals, nil).Once()
		orderRepo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()

		svc := newTestOrderService(orderRepo, mealRepo, costing)
		result, err := svc.Submit(context.Background(), SubmitOrderRequest{
			Area:         "Central",
			CustomerName: "Ada",
			Address:      "1 Loop Rd",
			Items:        []OrderItemRequest{{MealID: "m-bowl", Quantity: quantity}},
		})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.Order.EstimatedMinutes, previous)
		previous = result.Order.EstimatedMinutes
	}
}

func TestOrderSubmitStoreFailure(t *testing.T) {
	mealRepo := new(mocks.MealRepository)
	orderRepo := new(mocks.OrderRepository)
	mealRepo.On("QueryMealsByArea", "Central").Return(centralMeals, nil).Once()
	orderRepo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(errors.New("connection reset")).Once()

	svc := newTestOrderService(orderRepo, mealRepo, Costing{})

	_, err := svc.Submit(context.Background(), SubmitOrderRequest{
		Area:         "Central",
		CustomerName: "Ada",
		Address:      "1 Loop Rd",
		Items:        []OrderItemRequest{{MealID: "m-burger"}},
	})

	require.Error(t, err)
	if _, ok := AsValidation(err); ok {
		t.Fatalf("store failure must not surface as a validation error: %v", err)
	}
}

func TestOrderSubmitStoresReceiptCode(t *testing.T) {
	mealRepo := new(mocks.MealRepository)
	orderRepo := new(mocks.OrderRepository)
	receipt := new(mocks.ReceiptGenerator)
	mealRepo.On("QueryMealsByArea", "Central").Return(centralMeals, nil).Once()
	orderRepo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	receipt.On("Generate", "Central", "order-fixed-id").Return([]byte{0x89, 0x50}, nil).Once()
	orderRepo.On("SaveReceiptCode", "Central", "order-fixed-id", []byte{0x89, 0x50}).Return(nil).Once()

	svc := newTestOrderService(orderRepo, mealRepo, Costing{})
	svc.receipt = receipt

	_, err := svc.Submit(context.Background(), SubmitOrderRequest{
		Area:         "Central",
		CustomerName: "Ada",
		Address:      "1 Loop Rd",
		Items:        []OrderItemRequest{{MealID: "m-burger"}},
	})
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	receipt.AssertExpectations(t)
}

func TestReceiptCodeRegeneratesWhenMissing(t *testing.T) {
	orderRepo := new(mocks.OrderRepository)
	receipt := new(mocks.ReceiptGenerator)
	orderRepo.On("GetReceiptCode", "Central", "o-1").Return([]byte{}, nil).Once()
	receipt.On("Generate", "Central", "o-1").Return([]byte{0x01}, nil).Once()
	orderRepo.On("SaveReceiptCode", "Central", "o-1", []byte{0x01}).Return(nil).Once()

	svc := newTestOrderService(orderRepo, new(mocks.MealRepository), Costing{})
	svc.receipt = receipt

	qr, err := svc.ReceiptCode("Central", "o-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, qr)
}
