package main

import (
	"log"
	"os"
	"time"

	"checkout-service/internal/controllers/http"
	"checkout-service/internal/infra"
	mmysql "checkout-service/internal/infra/mysql"
	"checkout-service/internal/infra/rabbitmq"
	mysqlrepo "checkout-service/internal/repository/mysql"
	"checkout-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(200)
	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	catalogRepo := mysqlrepo.NewCatalogRepository(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)
	taxRepo := mysqlrepo.NewTaxRateRepository(db)

	gateway := infra.NewPaymentClient(
		os.Getenv("PAYMENT_GATEWAY_URL"),
		os.Getenv("PAYMENT_GATEWAY_KEY"),
		5*time.Second,
	)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "checkout.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	catalogSvc := services.NewCatalogService(catalogRepo)
	taxSvc := services.NewTaxService(taxRepo)
	taxSvc.SetRedisClient(redisClient)
	cartSvc := services.NewCartService(cartRepo, catalogRepo)
	checkoutSvc := services.NewCheckoutService(orderRepo, cartRepo, taxSvc, gateway, publisher)
	webhookSvc := services.NewWebhookService(orderRepo, os.Getenv("WEBHOOK_SECRET"))

	handler := http.NewHandler(catalogSvc, taxSvc, cartSvc, checkoutSvc, webhookSvc, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting checkout service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
