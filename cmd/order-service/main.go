// @title       Storefront Order Service
// @version     1.0
// @description Order lifecycle and payment reconciliation core.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/storefront-labs/orderflow/docs"
	"github.com/storefront-labs/orderflow/internal/checkout"
	"github.com/storefront-labs/orderflow/internal/config"
	"github.com/storefront-labs/orderflow/internal/database"
	"github.com/storefront-labs/orderflow/internal/gateway"
	"github.com/storefront-labs/orderflow/internal/httpx"
	"github.com/storefront-labs/orderflow/internal/order"
	"github.com/storefront-labs/orderflow/internal/payment"
	"github.com/storefront-labs/orderflow/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	pool, err := database.NewPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}

	orders := order.NewPGRepo(pool)
	payments := payment.NewPGRepo(pool)
	svc := checkout.NewService(orders, payments)

	adapters := map[gateway.Type]gateway.Adapter{}
	if cfg.StripeWebhookSecret != "" {
		adapters[gateway.TypeStripe] = gateway.NewStripe(cfg.StripeWebhookSecret)
	}
	if cfg.JazzCashSalt != "" {
		adapters[gateway.TypeJazzCash] = gateway.NewJazzCash(cfg.JazzCashSalt)
	}

	if cfg.SweepInterval > 0 {
		var checkers []gateway.StatusChecker
		if cfg.StripeAPIKey != "" {
			checkers = append(checkers, gateway.NewStripeChecker(cfg.StripeAPIKey))
		}
		sweeper := worker.NewSweeper(svc, payments, checkers, cfg.SweepInterval, cfg.SweepStuckAfter)
		go sweeper.Run(ctx)
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/orders", createOrderHandler(svc))
	r.GET("/orders", listOrdersHandler(svc))
	r.GET("/orders/:id", getOrderHandler(svc))
	r.GET("/orders/:id/payments", listOrderPaymentsHandler(svc))
	r.POST("/orders/:id/payments", startPaymentHandler(svc))
	r.POST("/webhooks/:gateway", webhookHandler(svc, adapters))

	admin := r.Group("/", httpx.AdminAuth(cfg.AdminTokenHash))
	admin.POST("/orders/:id/cancel", cancelOrderHandler(svc))
	admin.POST("/orders/:id/fulfill", fulfillOrderHandler(svc))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		log.Printf("order-service listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
