package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"forge-backend/internal/cache"
	"forge-backend/internal/config"
	"forge-backend/internal/database"
	"forge-backend/internal/db"
	"forge-backend/internal/handlers"
	"forge-backend/internal/health"
	h "forge-backend/internal/http"
	"forge-backend/internal/middleware"
	"forge-backend/internal/render"
	"forge-backend/internal/repositories"
	"forge-backend/internal/services"
)

// pdfBackend picks the render backend from configuration. Unknown engine
// names fall back to the native renderer.
func pdfBackend(cfg *config.Config) render.Backend {
	switch cfg.PDF.Engine {
	case "wkhtmltopdf", "converter":
		timeout := time.Duration(cfg.PDF.TimeoutSeconds) * time.Second
		log.Printf("[PDF] Using external converter: %s (timeout %s)", cfg.PDF.ConverterPath, timeout)
		return render.NewConverterBackend(cfg.PDF.ConverterPath, cfg.PDF.ConverterArgs, timeout)
	case "native", "":
		log.Println("[PDF] Using native renderer")
		return render.NewNativeBackend()
	default:
		log.Printf("[PDF] Unknown engine %q, using native renderer", cfg.PDF.Engine)
		return render.NewNativeBackend()
	}
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	migrationsDir := flag.String("migrations", "migrations", "Directory with SQL migrations")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (PDFs render on every request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool, *migrationsDir)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	sessionRepo := repositories.NewSessionRepository(pool)
	companyRepo := repositories.NewCompanyRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	templateRepo := repositories.NewTemplateRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)

	// Sweep expired sessions in the background
	go func() {
		for range time.Tick(time.Hour) {
			sweepCtx, sweepCancel := context.WithTimeout(context.Background(), 10*time.Second)
			if n, err := sessionRepo.DeleteExpired(sweepCtx); err != nil {
				log.Printf("[Sessions] Sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("[Sessions] Removed %d expired session(s)", n)
			}
			sweepCancel()
		}
	}()

	// Initialize the render pipeline
	resolver := render.NewResolver(templateRepo)
	backend := pdfBackend(cfg)

	// Initialize services
	userService := services.NewUserService(userRepo, sessionRepo, cfg.Session.DurationDays)
	invoiceService := services.NewInvoiceService(invoiceRepo, resolver)
	pdfService := services.NewPDFService(invoiceRepo, resolver, backend)
	aiService := services.NewAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model, invoiceRepo)

	// Receipt storage is optional; without it the receipt-url endpoint
	// answers 503
	receiptService, err := services.NewReceiptService(cfg)
	if err != nil {
		log.Printf("[Receipts] Disabled: %v", err)
		receiptService = nil
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionRepo, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.Cookie.Secure)
	companyHandler := handlers.NewCompanyHandler(companyRepo, userRepo)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, pdfService)
	templateHandler := handlers.NewTemplateHandler(templateRepo)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo, receiptService)
	aiHandler := handlers.NewAIHandler(aiService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	router := h.NewRouter(
		authHandler,
		companyHandler,
		invoiceHandler,
		templateHandler,
		expenseHandler,
		aiHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery, request logging and CORS
	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
