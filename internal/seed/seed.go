// Package seed builds sample catalog data for the offline loader. Records
// go through the same storage upserts as the API, so reruns are idempotent.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"mealdrop/internal/domain"
	"mealdrop/internal/validate"

	"github.com/google/uuid"
)

type sampleMeal struct {
	dishName    string
	description string
	prepMinutes int
	price       float64
}

var sampleMeals = []sampleMeal{
	{"Classic Burger", "Beef patty, cheese, pickles, house sauce.", 12, 9.99},
	{"Chicken Rice Bowl", "Grilled chicken, rice, veggies, spicy mayo.", 14, 10.50},
	{"Margherita Pizza Slice", "Tomato, mozzarella, basil.", 10, 4.25},
}

// BuiltIn generates the hard-coded sample set: per area, ten restaurants
// with three meals each.
func BuiltIn(areas []string, now time.Time) ([]domain.Restaurant, []domain.Meal) {
	var restaurants []domain.Restaurant
	var meals []domain.Meal

	for _, area := range areas {
		for i := 1; i <= 10; i++ {
			name := fmt.Sprintf("%s Kitchen %02d", area, i)
			restaurants = append(restaurants, domain.Restaurant{
				Area:           area,
				RestaurantKey:  validate.RestaurantKey(name),
				RestaurantName: name,
				UpdatedAt:      now,
			})
			for _, s := range sampleMeals {
				meals = append(meals, domain.Meal{
					MealID:         uuid.NewString(),
					Area:           area,
					RestaurantName: name,
					DishName:       s.dishName,
					Description:    s.description,
					PrepMinutes:    s.prepMinutes,
					Price:          s.price,
					UpdatedAt:      now,
				})
			}
		}
	}
	return restaurants, meals
}

// ReadRestaurantsCSV parses a restaurants file with a header row naming
// at least area and restaurantName; imageUrl is optional.
func ReadRestaurantsCSV(path string, now time.Time) ([]domain.Restaurant, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var restaurants []domain.Restaurant
	for i, row := range rows {
		area := validate.String(row["area"])
		name := validate.String(row["restaurantName"])
		if area == "" || name == "" {
			return nil, fmt.Errorf("%s row %d: area and restaurantName are required", path, i+2)
		}
		restaurants = append(restaurants, domain.Restaurant{
			Area:           area,
			RestaurantKey:  validate.RestaurantKey(name),
			RestaurantName: name,
			ImageURL:       validate.String(row["imageUrl"]),
			UpdatedAt:      now,
		})
	}
	return restaurants, nil
}

// ReadMealsCSV parses a meals file with columns matching the meal
// attributes: area, restaurantName, dishName, description, prepMinutes,
// price, imageUrl. A missing mealId column gets a fresh identifier.
func ReadMealsCSV(path string, now time.Time) ([]domain.Meal, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var meals []domain.Meal
	for i, row := range rows {
		area := validate.String(row["area"])
		dishName := validate.String(row["dishName"])
		if area == "" || dishName == "" {
			return nil, fmt.Errorf("%s row %d: area and dishName are required", path, i+2)
		}

		prepMinutes, err := strconv.Atoi(validate.String(row["prepMinutes"]))
		if err != nil || prepMinutes < 1 {
			return nil, fmt.Errorf("%s row %d: invalid prepMinutes %q", path, i+2, row["prepMinutes"])
		}
		price, err := strconv.ParseFloat(validate.String(row["price"]), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("%s row %d: invalid price %q", path, i+2, row["price"])
		}

		mealID := validate.String(row["mealId"])
		if mealID == "" {
			mealID = uuid.NewString()
		}
		meals = append(meals, domain.Meal{
			MealID:         mealID,
			Area:           area,
			RestaurantName: validate.String(row["restaurantName"]),
			DishName:       dishName,
			Description:    validate.String(row["description"]),
			PrepMinutes:    prepMinutes,
			Price:          price,
			ImageURL:       validate.String(row["imageUrl"]),
			UpdatedAt:      now,
		})
	}
	return meals, nil
}

func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
