package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"luxetickets/config"
	"luxetickets/internal/catalog"
	"luxetickets/internal/handlers"
	"luxetickets/internal/notify"
	"luxetickets/internal/services"
	"luxetickets/internal/services/payment"
	"luxetickets/internal/store/memstore"
	"luxetickets/internal/store/pbstore"
	"luxetickets/internal/store/redisstore"
	"luxetickets/internal/tickets"
	_ "luxetickets/migrations"
	"luxetickets/monitoring"
	"luxetickets/security"
	"luxetickets/utils"
)

// repositories are the Identity and Commerce stores behind the services.
type repositories struct {
	users    services.UserRepository
	sessions services.SessionRepository
	carts    services.CartRepository
	bookings services.BookingRepository
	seats    services.SeatInventory
}

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	repos, redisClient, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Redis backed helpers stay off when running on the memory driver.
	var cache redis.Cmdable
	if redisClient != nil {
		cache = redisClient
	}

	monitor := monitoring.NewMonitor(cache, cfg.MetricsInterval)
	limiter := security.NewRateLimiter(cache, cfg.AuthAttemptsPerMinute, cfg.RequestsPerSecond, cfg.RequestBurst)

	// Realtime notifications
	var notifier services.Notifier
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		publisher := notify.NewPubNubPublisher(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubSecretKey)
		notifier = notify.NewBookingNotifier(publisher, utils.NewCircuitBreaker("pubnub"))
	} else {
		slog.Warn("PubNub keys not set, booking notifications disabled")
	}

	// Initialize services
	events := catalog.New(pbstore.NewEventSource(app))
	tokens := security.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)

	authService := services.NewAuthService(repos.users, repos.sessions, tokens, monitor)
	cartService := services.NewCartService(repos.carts, events, repos.seats, monitor)
	bookingService := services.NewBookingService(repos.bookings, repos.seats, notifier, monitor)
	checkoutService := services.NewCheckoutService(repos.carts, repos.seats, bookingService,
		payment.NewSimulatedRegistry(cfg.PaymentSimulationDelay), monitor)
	seatService := services.NewSeatService(repos.seats, events, cfg.SimulatedBookedSeats)
	supportService := services.NewSupportService(pbstore.NewSubmissionStore(app))

	// Initialize handlers
	session := handlers.NewSessionMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(events)
	seatHandler := handlers.NewSeatHandler(seatService)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	renderer := tickets.NewRenderer(cfg.SessionSecret)
	bookingHandler := handlers.NewBookingHandler(bookingService, renderer)
	supportHandler := handlers.NewSupportHandler(supportService)
	adminHandler := handlers.NewAdminHandler(supportService, bookingService, renderer)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.IsDevelopment(),
	})

	// Start background tasks
	go monitor.Run(ctx)
	go limiter.RunJanitor(ctx, time.Minute, 10*time.Minute)
	if cfg.EnableMetrics {
		go serveMetrics(ctx, cfg.MetricsPort)
	}

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		if err := events.Reload(ctx); err != nil {
			return fmt.Errorf("load event catalog: %w", err)
		}

		requireUser := session.RequireUser()

		api := e.Router.Group("/api/v1")
		api.BindFunc(limiter.AntiBotMiddleware())
		api.BindFunc(limiter.RequestRateLimit())

		// Auth endpoints
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register).BindFunc(limiter.AuthRateLimit())
		auth.POST("/login", authHandler.Login).BindFunc(limiter.AuthRateLimit())
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me).BindFunc(requireUser)
		auth.PATCH("/profile", authHandler.UpdateProfile).BindFunc(requireUser)

		// Catalog endpoints
		api.GET("/events", eventHandler.ListEvents)
		api.GET("/events/search", eventHandler.SearchEvents)
		api.GET("/events/featured", eventHandler.FeaturedEvents)
		api.GET("/events/upcoming", eventHandler.UpcomingEvents)
		api.GET("/events/{id}", eventHandler.GetEvent)
		api.GET("/events/{id}/seats", seatHandler.GetSeats)

		// Cart endpoints
		cart := api.Group("/cart")
		cart.BindFunc(requireUser)
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.DELETE("/items/{id}", cartHandler.RemoveItem)
		cart.POST("/quote", cartHandler.Quote)

		api.POST("/checkout", checkoutHandler.Checkout).BindFunc(requireUser)

		// Booking endpoints
		bookings := api.Group("/bookings")
		bookings.BindFunc(requireUser)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/{id}", bookingHandler.GetBooking)
		bookings.POST("/{id}/cancel", bookingHandler.CancelBooking)
		bookings.GET("/{id}/qr", bookingHandler.GetQRCode)
		bookings.GET("/{id}/ticket", bookingHandler.DownloadTicket)
		api.GET("/dashboard", bookingHandler.Dashboard).BindFunc(requireUser)

		// Support endpoints
		api.POST("/contact", supportHandler.SubmitContact)
		api.POST("/feedback", supportHandler.SubmitFeedback).BindFunc(session.OptionalUser())

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Bind(apis.RequireSuperuserAuth())
		admin.GET("/contacts", adminHandler.GetContacts)
		admin.POST("/contacts/{id}/resolve", adminHandler.ResolveContact)
		admin.GET("/feedback", adminHandler.GetFeedback)
		admin.POST("/tickets/verify", adminHandler.VerifyTicket)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if redisClient != nil {
				if err := utils.RedisHealthCheck(e.Request.Context(), redisClient); err != nil {
					return e.JSON(http.StatusServiceUnavailable, map[string]string{
						"status": "unhealthy",
						"error":  err.Error(),
					})
				}
			}
			return e.JSON(http.StatusOK, map[string]any{
				"status":  "healthy",
				"storage": cfg.StorageDriver,
				"events":  len(events.All(e.Request.Context())),
			})
		})

		slog.Info("Server routes registered", "storage", cfg.StorageDriver)

		return e.Next()
	})

	setupEventHooks(app, events)

	return app.Start()
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, *redis.Client, error) {
	switch cfg.StorageDriver {
	case "memory":
		slog.Warn("Using in-memory storage, data is lost on restart")
		return repositories{
			users:    memstore.NewUserStore(),
			sessions: memstore.NewSessionStore(),
			carts:    memstore.NewCartStore(),
			bookings: memstore.NewBookingStore(),
			seats:    memstore.NewSeatStore(),
		}, nil, nil
	case "redis", "":
		client, err := utils.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			users:    redisstore.NewUserStore(client),
			sessions: redisstore.NewSessionStore(client),
			carts:    redisstore.NewCartStore(client),
			bookings: redisstore.NewBookingStore(client),
			seats:    redisstore.NewSeatStore(client),
		}, client, nil
	}
	return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// setupEventHooks keeps the in-memory catalog in sync with edits made in
// the PocketBase dashboard.
func setupEventHooks(app *pocketbase.PocketBase, events *catalog.Catalog) {
	reload := func(e *core.RecordEvent) error {
		if err := events.Reload(context.Background()); err != nil {
			slog.Error("Failed to reload event catalog",
				"eventID", e.Record.Id,
				"error", err,
			)
		} else {
			slog.Info("Reloaded event catalog", "eventID", e.Record.Id)
		}
		return e.Next()
	}

	app.OnRecordAfterCreateSuccess("events").BindFunc(reload)
	app.OnRecordAfterUpdateSuccess("events").BindFunc(reload)
	app.OnRecordAfterDeleteSuccess("events").BindFunc(reload)
}

// serveMetrics exposes Prometheus metrics on their own port.
func serveMetrics(ctx context.Context, port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("Metrics server listening", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server stopped", "error", err)
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	slog.Info("Shutdown signal received, cleaning up...")
	cancel()
}
