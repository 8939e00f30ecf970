package domain

import "time"

type Meal struct {
	MealID         string    `json:"mealId"`
	Area           string    `json:"area"`
	RestaurantName string    `json:"restaurantName"`
	DishName       string    `json:"dishName"`
	Description    string    `json:"description"`
	PrepMinutes    int       `json:"prepMinutes"`
	Price          float64   `json:"price"`
	ImageURL       string    `json:"imageUrl"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Restaurant struct {
	Area           string    `json:"area"`
	RestaurantKey  string    `json:"restaurantKey"`
	RestaurantName string    `json:"restaurantName"`
	ImageURL       string    `json:"imageUrl"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Order struct {
	OrderID          string      `json:"orderId"`
	Area             string      `json:"area"`
	CustomerName     string      `json:"customerName"`
	Address          string      `json:"address"`
	Items            []OrderItem `json:"items"`
	TotalCost        float64     `json:"totalCost"`
	EstimatedMinutes int         `json:"estimatedMinutes"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// OrderItem is a priced line item resolved from the Meals collection at
// submission time. The snapshot is what gets serialized into the order
// record, so later meal edits never change an existing receipt.
type OrderItem struct {
	MealID         string  `json:"mealId"`
	RestaurantName string  `json:"restaurantName"`
	DishName       string  `json:"dishName"`
	PrepMinutes    int     `json:"prepMinutes"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
}

// AuditEvent mirrors an invalid or partially-dropped request onto the
// audit queue. Best effort only; never blocks the caller.
type AuditEvent struct {
	Reason  string      `json:"reason"`
	Errors  []string    `json:"errors,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}
