// Offline seed loader. Populates the Restaurants and Meals collections
// from CSV files, or from the built-in sample set when no files are given.
// Not part of the request-serving path.
package main

import (
	"database/sql"
	"flag"
	"log"
	"strings"
	"time"

	"mealdrop/internal/config"
	"mealdrop/internal/domain"
	"mealdrop/internal/seed"
	"mealdrop/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	areasFlag := flag.String("areas", "Central,North,South", "comma-separated areas for built-in sample data")
	restaurantsCSV := flag.String("restaurants", "", "path to a restaurants CSV file")
	mealsCSV := flag.String("meals", "", "path to a meals CSV file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	repo := storage.NewPostgresRepository(db, cfg.MealsTable, cfg.RestaurantsTable, cfg.OrdersTable)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema: ", err)
	}

	now := time.Now().UTC()

	var restaurants []domain.Restaurant
	var meals []domain.Meal
	if *restaurantsCSV != "" || *mealsCSV != "" {
		if *restaurantsCSV != "" {
			if restaurants, err = seed.ReadRestaurantsCSV(*restaurantsCSV, now); err != nil {
				log.Fatal("Failed to read restaurants CSV: ", err)
			}
		}
		if *mealsCSV != "" {
			if meals, err = seed.ReadMealsCSV(*mealsCSV, now); err != nil {
				log.Fatal("Failed to read meals CSV: ", err)
			}
		}
	} else {
		areas := strings.Split(*areasFlag, ",")
		for i := range areas {
			areas[i] = strings.TrimSpace(areas[i])
		}
		restaurants, meals = seed.BuiltIn(areas, now)
	}

	for i := range restaurants {
		if err := repo.UpsertRestaurant(&restaurants[i]); err != nil {
			log.Fatalf("Failed to seed restaurant %s/%s: %v",
				restaurants[i].Area, restaurants[i].RestaurantKey, err)
		}
	}
	for i := range meals {
		if err := repo.UpsertMeal(&meals[i]); err != nil {
			log.Fatalf("Failed to seed meal %s/%s: %v", meals[i].Area, meals[i].MealID, err)
		}
	}

	log.Printf("Seeded %d restaurants and %d meals", len(restaurants), len(meals))
}
