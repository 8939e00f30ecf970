package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	httpapi "mealdrop/internal/api/http"
	"mealdrop/internal/config"
	"mealdrop/internal/service"
	"mealdrop/internal/storage"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db := mustInitPostgres(cfg.PostgresDSN)
	defer db.Close()

	repo := storage.NewPostgresRepository(db, cfg.MealsTable, cfg.RestaurantsTable, cfg.OrdersTable)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema: ", err)
	}

	var auditor service.InvalidRequestAuditor = service.NopAuditor{}
	if cfg.KafkaBroker != "" {
		publisher := storage.NewAuditPublisher(&kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBroker),
			Topic:    cfg.AuditTopic,
			Balancer: &kafka.LeastBytes{},
		})
		defer publisher.Close()
		auditor = publisher
	} else {
		log.Println("KAFKA_BROKER not set, invalid-request auditing disabled")
	}

	catalogSvc := service.NewCatalogService(repo, repo, auditor)
	orderSvc := service.NewOrderService(repo, repo,
		service.QRReceiptGenerator{BaseURL: "http://localhost:" + cfg.Port},
		service.Costing{
			PickupMinutes:          cfg.PickupMinutes,
			DeliveryMinutes:        cfg.DeliveryMinutes,
			ExtraRestaurantMinutes: cfg.ExtraRestaurantMinutes,
		})

	r := mux.NewRouter()
	httpapi.NewHandler(catalogSvc, orderSvc, auditor).RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:         86400,
	})
	handler := c.Handler(r)

	log.Println("Mealdrop API starting on port " + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

func mustInitPostgres(dsn string) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}
