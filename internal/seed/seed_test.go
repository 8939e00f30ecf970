package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInShape(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	restaurants, meals := BuiltIn([]string{"Central", "North"}, now)

	assert.Len(t, restaurants, 20)
	assert.Len(t, meals, 60)

	assert.Equal(t, "Central Kitchen 01", restaurants[0].RestaurantName)
	assert.Equal(t, "central-kitchen-01", restaurants[0].RestaurantKey)
	assert.Equal(t, "Central", restaurants[0].Area)

	seen := map[string]bool{}
	for _, m := range meals {
		require.NotEmpty(t, m.MealID)
		require.False(t, seen[m.MealID], "duplicate meal id %s", m.MealID)
		seen[m.MealID] = true
		assert.GreaterOrEqual(t, m.PrepMinutes, 1)
		assert.GreaterOrEqual(t, m.Price, 0.0)
	}
}

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadRestaurantsCSV(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeTempCSV(t, "restaurants.csv",
		"area,restaurantName,imageUrl\n"+
			"Central,Mario's Place,https://cdn.example.com/marios.png\n"+
			"North, Side Door ,\n")

	restaurants, err := ReadRestaurantsCSV(path, now)
	require.NoError(t, err)
	require.Len(t, restaurants, 2)

	assert.Equal(t, "mario's-place", restaurants[0].RestaurantKey)
	assert.Equal(t, "https://cdn.example.com/marios.png", restaurants[0].ImageURL)
	assert.Equal(t, "Side Door", restaurants[1].RestaurantName)
}

func TestReadRestaurantsCSVRejectsMissingFields(t *testing.T) {
	path := writeTempCSV(t, "restaurants.csv",
		"area,restaurantName\nCentral,\n")

	_, err := ReadRestaurantsCSV(path, time.Now())
	assert.Error(t, err)
}

func TestReadMealsCSV(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeTempCSV(t, "meals.csv",
		"area,restaurantName,dishName,description,prepMinutes,price,imageUrl\n"+
			"Central,Mario's Place,Lasagna,Layers.,18,11.50,\n")

	meals, err := ReadMealsCSV(path, now)
	require.NoError(t, err)
	require.Len(t, meals, 1)

	assert.NotEmpty(t, meals[0].MealID)
	assert.Equal(t, "Lasagna", meals[0].DishName)
	assert.Equal(t, 18, meals[0].PrepMinutes)
	assert.Equal(t, 11.50, meals[0].Price)
}

func TestReadMealsCSVRejectsBadNumbers(t *testing.T) {
	path := writeTempCSV(t, "meals.csv",
		"area,restaurantName,dishName,description,prepMinutes,price,imageUrl\n"+
			"Central,Mario's Place,Lasagna,Layers.,zero,11.50,\n")

	_, err := ReadMealsCSV(path, time.Now())
	assert.Error(t, err)
}
