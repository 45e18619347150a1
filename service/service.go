package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colemanmx/coleman-mx/internal/email"
	"github.com/colemanmx/coleman-mx/internal/gsuite"
	"github.com/colemanmx/coleman-mx/internal/handlers"
	"github.com/colemanmx/coleman-mx/internal/printful"
	"github.com/colemanmx/coleman-mx/internal/recaptcha"
	"github.com/colemanmx/coleman-mx/internal/shopify"
	"github.com/colemanmx/coleman-mx/internal/stripe"
	"github.com/colemanmx/coleman-mx/storage"
)

type Service struct {
	storage         *storage.Storage
	config          *Config
	printfulHandler *handlers.PrintfulHandler
	contactHandler  *handlers.ContactHandler
	bookingHandler  *handlers.BookingHandler
	productsHandler *handlers.ProductsHandler
	checkoutHandler *handlers.CheckoutHandler
	emailService    *email.Service
}

func New(store *storage.Storage, config *Config) *Service {
	ctx := context.Background()

	emailService := email.NewService(email.Config{
		Host:       config.Email.Host,
		Port:       config.Email.Port,
		Username:   config.Email.Username,
		Password:   config.Email.Password,
		From:       config.Email.From,
		InternalTo: config.Email.InternalTo,
	}, store.Queries)

	verifier := recaptcha.NewVerifier(config.Recaptcha.SecretKey, config.Recaptcha.MinScore)

	printfulClient := printful.NewClient("", config.Printful.APIKey, config.Printful.StoreID)
	if config.Printful.APIKey != "" && config.Printful.StoreID == "" {
		resolver := printful.NewStoreResolver(printfulClient, nil)
		if pfStore, err := resolver.Default(ctx); err != nil {
			slog.Warn("could not resolve default printful store", "error", err)
		} else {
			slog.Info("resolved default printful store", "store_id", pfStore.ID, "store_name", pfStore.Name)
			printfulClient = printful.NewClient("", config.Printful.APIKey, pfStore.ID)
		}
	}
	printfulHandler := handlers.NewPrintfulHandler(printfulClient, printful.NewMemoryCache())

	var shop *shopify.Client
	if config.Shopify.StoreDomain != "" && config.Shopify.StorefrontAccessToken != "" {
		shop = shopify.NewClient(config.Shopify.StoreDomain, config.Shopify.StorefrontAccessToken)
	} else {
		slog.Warn("shopify storefront not configured, shop catalog disabled")
	}
	var productsHandler *handlers.ProductsHandler
	if shop != nil {
		productsHandler = handlers.NewProductsHandler(shop)
	} else {
		productsHandler = handlers.NewProductsHandler(nil)
	}

	var sheet *gsuite.SheetsClient
	if config.Google.SpreadsheetID != "" {
		var err error
		sheet, err = gsuite.NewSheetsClient(ctx, config.Google.SpreadsheetID)
		if err != nil {
			slog.Error("failed to initialize sheets client", "error", err)
			sheet = nil
		}
	}
	var cal *gsuite.CalendarClient
	if config.Google.CalendarID != "" {
		var err error
		cal, err = gsuite.NewCalendarClient(ctx, config.Google.CalendarID)
		if err != nil {
			slog.Error("failed to initialize calendar client", "error", err)
			cal = nil
		}
	}

	stripeService := stripe.NewStripeService(
		config.BaseURL+"/coaching/thanks",
		config.BaseURL+"/coaching",
	)

	bookingHandler := handlers.NewBookingHandler(store, emailService, verifier, sheetOrNil(sheet), calendarOrNil(cal))

	return &Service{
		storage:         store,
		config:          config,
		printfulHandler: printfulHandler,
		contactHandler:  handlers.NewContactHandler(store, emailService, verifier),
		bookingHandler:  bookingHandler,
		productsHandler: productsHandler,
		checkoutHandler: handlers.NewCheckoutHandler(stripeService),
		emailService:    emailService,
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.HandleHealth)

	api := e.Group("/api")

	// Printful order preparation
	api.POST("/printful/orders", s.printfulHandler.HandleCreateDraftOrder)
	api.POST("/printful/orders/:id/confirm", s.printfulHandler.HandleConfirmOrder)
	api.POST("/printful/quotes", s.printfulHandler.HandleCreateQuote)

	// Contact and coaching bookings
	api.POST("/contact", s.contactHandler.HandleSubmitContact)
	api.POST("/bookings", s.bookingHandler.HandleCreateBooking)
	api.GET("/bookings/slots", s.bookingHandler.HandleListSlots)

	// Shop and payments
	api.GET("/products", s.productsHandler.HandleListProducts)
	api.GET("/checkout/packages", s.checkoutHandler.HandleListCoachingPackages)
	api.POST("/checkout/session", s.checkoutHandler.HandleCreateCheckoutSession)
}

// HandleHealth handles GET /health - liveness probe
func (s *Service) HandleHealth(c echo.Context) error {
	if err := s.storage.DB().PingContext(c.Request().Context()); err != nil {
		slog.Error("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// sheetOrNil avoids handing a typed nil to the booking handler's
// interface fields.
func sheetOrNil(s *gsuite.SheetsClient) handlers.BookingSheet {
	if s == nil {
		return nil
	}
	return s
}

func calendarOrNil(c *gsuite.CalendarClient) handlers.AvailabilityCalendar {
	if c == nil {
		return nil
	}
	return c
}
