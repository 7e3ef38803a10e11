package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-storefront/internal/auth"
	"ms-storefront/internal/cart"
	"ms-storefront/internal/cart/cart_api"
	"ms-storefront/internal/config"
	"ms-storefront/internal/database/migrations"
	"ms-storefront/internal/kafka"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/menu"
	menudb "ms-storefront/internal/menu/db"
	"ms-storefront/internal/menu/menu_api"
	"ms-storefront/internal/order"
	orderdb "ms-storefront/internal/order/db"
	"ms-storefront/internal/order/order_api"
	"ms-storefront/internal/order/pickuppass"
	holdredis "ms-storefront/internal/order/redis"
	"ms-storefront/internal/storefront"
	storefrontdb "ms-storefront/internal/storefront/db"
	"ms-storefront/internal/storefront/storefront_api"
)

func subscribeSlotHoldExpiry(rdb *redis.Client, producer *kafka.Producer, svc *order.OrderService, logger *logger.Logger, kafkaBrokers []string) {
	ctx := context.Background()

	val, err := rdb.ConfigGet(ctx, "notify-keyspace-events").Result()
	if err != nil {
		logger.Error("REDIS", fmt.Sprintf("Failed to get keyspace config: %v", err))
	} else {
		logger.Info("REDIS", fmt.Sprintf("Current keyspace notifications setting: %v", val))
		setting, ok := "", false
		if len(val) >= 2 {
			setting, ok = val[1].(string)
		}
		if !ok || !strings.Contains(setting, "x") || !strings.Contains(setting, "E") {
			logger.Warn("REDIS", "Keyspace notifications not properly configured for expiry events!")
		}
	}

	pubsub := rdb.PSubscribe(ctx, "__keyevent@0__:expired")
	logger.Info("REDIS", fmt.Sprintf("Subscribed to Redis keyevent expired notifications (DB %d)", rdb.Options().DB))

	go func() {
		for msg := range pubsub.Channel() {
			eventID, slotAt, ok := holdredis.ParseHoldKey(msg.Payload)
			if !ok {
				continue
			}
			logger.Info("SLOT_RELEASE", fmt.Sprintf("Slot hold expired for event %s at %s", eventID, slotAt.Format(time.RFC3339)))

			cancelled, err := svc.CancelExpiredSlotHold(eventID, slotAt)
			if err != nil {
				logger.Error("SLOT_RELEASE", fmt.Sprintf("Failed to cancel order on expired hold (event %s): %v", eventID, err))
			} else if cancelled != nil {
				logger.Info("SLOT_RELEASE", fmt.Sprintf("Order %s cancelled due to slot hold expiry", cancelled.OrderID))
			} else {
				logger.Info("SLOT_RELEASE", fmt.Sprintf("No pending order on slot %s for event %s", slotAt.Format(time.RFC3339), eventID))
			}

			payload := map[string]string{
				"event_id":  eventID,
				"pickup_at": slotAt.Format(time.RFC3339),
			}
			value, err := json.Marshal(payload)
			if err != nil {
				logger.Error("SLOT_RELEASE", fmt.Sprintf("Failed to marshal slot release payload: %v", err))
				continue
			}

			err = producer.Publish(kafka.TopicSlotsReleased, eventID, value)
			if err != nil {
				logger.Error("SLOT_RELEASE", fmt.Sprintf("Failed to publish slot release event: %v", err))
				err = kafka.CreateTopicIfNotExists(kafkaBrokers, kafka.TopicSlotsReleased)
				if err != nil {
					logger.Error("KAFKA", fmt.Sprintf("Failed to create topic: %v", err))
				} else if err = producer.Publish(kafka.TopicSlotsReleased, eventID, value); err != nil {
					logger.Error("SLOT_RELEASE", fmt.Sprintf("Still failed to publish after topic creation: %v", err))
				} else {
					logger.LogKafka("PUBLISH", kafka.TopicSlotsReleased, fmt.Sprintf("Published slot release for event %s after retry", eventID))
				}
			} else {
				logger.LogKafka("PUBLISH", kafka.TopicSlotsReleased, fmt.Sprintf("Published slot release for event %s", eventID))
			}
		}
	}()
}

func verifyConnections(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*bun.DB, *redis.Client) {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		logger.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			logger.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		logger.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	logger.Info("DATABASE", "✅ PostgreSQL connection successful")

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}

	_, err = redisClient.ConfigSet(ctx, "notify-keyspace-events", "Ex").Result()
	if err != nil {
		logger.Warn("REDIS", fmt.Sprintf("Failed to enable keyspace notifications: %v", err))
	} else {
		logger.Info("REDIS", "Keyspace notifications enabled for expired events")
	}

	logger.Info("DATABASE", fmt.Sprintf("✅ Redis connection successful to %s (DB: %d)", cfg.Redis.Addr, redisClient.Options().DB))
	return bunDB, redisClient
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Storefront Service initialization")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	logger.Info("APP", "Verifying database connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, logger)
	defer bunDB.Close()
	defer redisClient.Close()

	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
	if err := runner.MigrateUp(); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
	}
	logger.Info("DATABASE", "Schema migrations applied")

	logger.Info("KAFKA", fmt.Sprintf("Using Kafka brokers: %v", cfg.Kafka.Brokers))
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer kafkaProducer.Close()
	logger.Info("KAFKA", "Kafka producer initialized successfully")

	requiredTopics := []string{
		cfg.Kafka.Topics.OrderCreated,
		cfg.Kafka.Topics.OrderUpdated,
		cfg.Kafka.Topics.OrderCanceled,
		cfg.Kafka.Topics.SlotsReleased,
	}
	if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
		logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	} else {
		logger.Info("KAFKA", "Required topics ensured successfully")
	}

	cartStore := cart.NewStore(redisClient, cfg.Redis.CartTTL)
	slotHolds := holdredis.NewHolds(redisClient, cfg.Redis.HoldTTL)

	storefrontService := storefront.NewService(&storefrontdb.DB{Bun: bunDB})
	menuService := menu.NewService(&menudb.DB{Bun: bunDB})
	orderService := order.NewOrderService(
		&orderdb.DB{Bun: bunDB},
		slotHolds,
		kafkaProducer,
		cartStore,
	)

	storefrontHandler := storefront_api.NewHandler(storefrontService, logger)
	menuHandler := menu_api.NewHandler(menuService, logger)
	cartHandler := cart_api.NewHandler(cartStore, logger)
	orderHandler := &order_api.Handler{
		OrderService: orderService,
		Passes:       pickuppass.NewGenerator(cfg.Auth.PassSecret),
		Logger:       logger,
	}

	authMiddleware, err := auth.Middleware(cfg.Auth.OIDCIssuer)
	if err != nil {
		logger.Warn("AUTH", fmt.Sprintf("OIDC provider unavailable, merchant routes disabled: %v", err))
	}

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		// --- Public Routes ---
		storefrontHandler.RegisterPublicRoutes(r)
		menuHandler.RegisterPublicRoutes(r)
		cartHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)
		logger.Info("ROUTER", "Public storefront, menu, cart and order routes registered under /api")

		// --- Merchant Routes ---
		if authMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				storefrontHandler.RegisterMerchantRoutes(r)
				menuHandler.RegisterMerchantRoutes(r)
			})
			logger.Info("ROUTER", "Merchant routes registered under /api/merchant with OIDC middleware")
		}
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("REDIS", "Starting slot hold expiry subscription")
	subscribeSlotHoldExpiry(redisClient, kafkaProducer, orderService, logger, cfg.Kafka.Brokers)

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Storefront Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "Server gracefully stopped")
	}
}
