package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-gateway/internal/api"
	"storefront-gateway/internal/config"
	"storefront-gateway/internal/modules/address"
	"storefront-gateway/internal/modules/cart"
	"storefront-gateway/internal/modules/checkout"
	"storefront-gateway/internal/modules/orders"
	"storefront-gateway/internal/modules/session"
	"storefront-gateway/internal/upstream"
	emailSvc "storefront-gateway/pkg/email"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// 1. --- Configuration ---
	// A missing upstream base URL is a startup misconfiguration and fails here.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Upstream Client ---
	// The one external collaborator: the black-box commerce backend.
	upstreamClient := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout())

	// 4. --- Email (optional) ---
	var emailer emailSvc.ServiceInterface = emailSvc.NoopSender{}
	if cfg.EmailEnabled {
		sender, err := emailSvc.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			log.Fatalf("Failed to initialize SES sender: %v", err)
		}
		emailer = sender
	}
	templates, err := emailSvc.NewTemplateManager()
	if err != nil {
		log.Fatalf("Failed to parse email templates: %v", err)
	}

	// 5. --- Dependency Injection (Wiring everything up) ---
	sessionService := session.NewService(upstreamClient, cfg.JWTSecret, cfg.SessionTTL())
	sessionHandler := session.NewHandler(sessionService)

	cartService := cart.NewService(upstreamClient)
	cartHandler := cart.NewHandler(cartService)

	addressService := address.NewService(upstreamClient)
	addressHandler := address.NewHandler(addressService)

	checkoutService := checkout.NewService(upstreamClient, cartService, addressService, emailer, templates)
	checkoutHandler := checkout.NewHandler(checkoutService)

	orderService := orders.NewService(upstreamClient)
	orderHandler := orders.NewHandler(orderService)

	// 6. --- Initialize Router ---
	api.SetupRoutes(e, cfg.JWTSecret,
		sessionHandler,
		cartHandler,
		addressHandler,
		checkoutHandler,
		orderHandler,
	)

	// 7. --- Start Server with graceful shutdown ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server, an error occurred: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown: ", err)
	}
	log.Println("Server exiting")
}
