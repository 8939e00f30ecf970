package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"mealdrop/internal/domain"
	"mealdrop/internal/validate"

	"github.com/google/uuid"
)

// PublishMealRequest carries the raw, untrusted body of POST /api/meals.
// Numeric fields stay float64 until coercion so fractional prep times are
// rejected instead of truncated.
type PublishMealRequest struct {
	MealID         string  `json:"mealId"`
	Area           string  `json:"area"`
	RestaurantName string  `json:"restaurantName"`
	DishName       string  `json:"dishName"`
	Description    string  `json:"description"`
	PrepMinutes    float64 `json:"prepMinutes"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"imageUrl"`
}

type CatalogService struct {
	meals       MealRepository
	restaurants RestaurantRepository
	auditor     InvalidRequestAuditor
	now         func() time.Time
}

func NewCatalogService(meals MealRepository, restaurants RestaurantRepository, auditor InvalidRequestAuditor) *CatalogService {
	return &CatalogService{
		meals:       meals,
		restaurants: restaurants,
		auditor:     auditor,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *CatalogService) ListMeals(area string) ([]domain.Meal, error) {
	return s.meals.QueryMealsByArea(area)
}

func (s *CatalogService) ListRestaurants(area string) ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurants(area)
}

// PublishMeal upserts a meal and denormalizes its restaurant into the
// Restaurants collection. The two writes are independent best effort: a
// restaurant failure after a stored meal is audited, not surfaced.
func (s *CatalogService) PublishMeal(ctx context.Context, req PublishMealRequest) (*domain.Meal, error) {
	var problems []string

	area := validate.String(req.Area)
	restaurantName := validate.String(req.RestaurantName)
	dishName := validate.String(req.DishName)

	if area == "" {
		problems = append(problems, "missing or invalid 'area'")
	}
	if restaurantName == "" {
		problems = append(problems, "missing or invalid 'restaurantName'")
	}
	if dishName == "" {
		problems = append(problems, "missing or invalid 'dishName'")
	}
	prepMinutes, ok := validate.IntMin(req.PrepMinutes, 1)
	if !ok {
		problems = append(problems, "missing or invalid 'prepMinutes' (integer >= 1)")
	}
	price, ok := validate.FloatMin(req.Price, 0)
	if !ok {
		problems = append(problems, "missing or invalid 'price' (number >= 0)")
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	mealID := validate.String(req.MealID)
	if mealID == "" {
		mealID = uuid.NewString()
	}

	meal := &domain.Meal{
		MealID:         mealID,
		Area:           area,
		RestaurantName: restaurantName,
		DishName:       dishName,
		Description:    validate.String(req.Description),
		PrepMinutes:    prepMinutes,
		Price:          price,
		ImageURL:       validate.String(req.ImageURL),
		UpdatedAt:      s.now(),
	}
	if err := s.meals.UpsertMeal(meal); err != nil {
		return nil, fmt.Errorf("upsert meal: %w", err)
	}

	s.denormalizeRestaurant(ctx, meal)

	return meal, nil
}

// denormalizeRestaurant keeps a lookup record keyed by the normalized
// restaurant name. An existing image URL is preserved when the publish
// request carries none, so repeated publishes cannot blank it out.
func (s *CatalogService) denormalizeRestaurant(ctx context.Context, meal *domain.Meal) {
	rest := &domain.Restaurant{
		Area:           meal.Area,
		RestaurantKey:  validate.RestaurantKey(meal.RestaurantName),
		RestaurantName: meal.RestaurantName,
		ImageURL:       meal.ImageURL,
		UpdatedAt:      s.now(),
	}
	if rest.ImageURL == "" {
		if existing, err := s.restaurants.GetRestaurant(rest.Area, rest.RestaurantKey); err == nil {
			rest.ImageURL = existing.ImageURL
		}
	}

	if err := s.restaurants.UpsertRestaurant(rest); err != nil {
		log.Printf("[mealdrop] restaurant denormalization failed for %s/%s: %v",
			rest.Area, rest.RestaurantKey, err)
		if s.auditor != nil {
			s.auditor.PublishInvalid(ctx, domain.AuditEvent{
				Reason:  "restaurant denormalization failed",
				Errors:  []string{err.Error()},
				Payload: rest,
				At:      s.now(),
			})
		}
	}
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
