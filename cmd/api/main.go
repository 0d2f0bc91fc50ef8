package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"stockpulse/internal/handler"
	"stockpulse/pkg/news"
	"stockpulse/pkg/prices"
	"stockpulse/pkg/usage"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	avKey := os.Getenv("ALPHA_VANTAGE_API_KEY")
	if avKey == "" {
		slog.Warn("ALPHA_VANTAGE_API_KEY is not set, news requests will fail")
	}

	var meter usage.Meter = usage.NewMemoryMeter()
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		meter = usage.NewRedisMeter(redis.NewClient(opt))
		slog.Info("usage metering backed by redis")
	}

	newsSvc := news.NewService(news.Config{
		APIKey: avKey,
		Meter:  meter,
	})
	priceSvc := prices.NewFinnhubClient(os.Getenv("FINNHUB_API_KEY"))
	stockHandler := handler.NewStockHandler(newsSvc, priceSvc)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/stocks/search", stockHandler.Search)
	r.GET("/api/stocks/:symbol/historical", stockHandler.GetHistorical)
	r.GET("/api/stocks/:symbol/news", stockHandler.GetNews)
	r.GET("/health", stockHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err := r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
