package http

import (
	"forge-backend/internal/handlers"
	"forge-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	companyHandler *handlers.CompanyHandler,
	invoiceHandler *handlers.InvoiceHandler,
	templateHandler *handlers.TemplateHandler,
	expenseHandler *handlers.ExpenseHandler,
	aiHandler *handlers.AIHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Runs after route matching, so the metrics path label carries the route
	// template instead of raw URLs
	r.Use(middleware.MetricsMiddleware)

	// Public routes - Authentication
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	// Protected routes - Current user
	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PATCH")

	// Protected routes - Company
	companyAPI := r.PathPrefix("/company").Subrouter()
	companyAPI.Use(authMiddleware.Authenticate)
	companyAPI.HandleFunc("", companyHandler.CreateCompany).Methods("POST")
	companyAPI.HandleFunc("", companyHandler.GetCompany).Methods("GET")
	companyAPI.HandleFunc("", companyHandler.UpdateCompany).Methods("PATCH")

	// Protected routes - Invoices
	invoicesAPI := r.PathPrefix("/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.UpdateInvoice).Methods("PATCH")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.DeleteInvoice).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.DownloadPDF).Methods("GET")

	// Protected routes - Invoice templates
	templatesAPI := r.PathPrefix("/templates").Subrouter()
	templatesAPI.Use(authMiddleware.Authenticate)
	templatesAPI.HandleFunc("", templateHandler.CreateTemplate).Methods("POST")
	templatesAPI.HandleFunc("", templateHandler.ListTemplates).Methods("GET")
	templatesAPI.HandleFunc("/{id}", templateHandler.GetTemplate).Methods("GET")
	templatesAPI.HandleFunc("/{id}", templateHandler.UpdateTemplate).Methods("PATCH")
	templatesAPI.HandleFunc("/{id}", templateHandler.DeleteTemplate).Methods("DELETE")

	// Protected routes - Expenses
	expensesAPI := r.PathPrefix("/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.Authenticate)
	expensesAPI.HandleFunc("", expenseHandler.CreateExpense).Methods("POST")
	expensesAPI.HandleFunc("", expenseHandler.ListExpenses).Methods("GET")
	expensesAPI.HandleFunc("/receipt-url", expenseHandler.ReceiptUploadURL).Methods("POST")
	expensesAPI.HandleFunc("/{id}", expenseHandler.UpdateExpense).Methods("PATCH")
	expensesAPI.HandleFunc("/{id}", expenseHandler.DeleteExpense).Methods("DELETE")

	// Protected routes - AI assistance
	aiAPI := r.PathPrefix("/ai").Subrouter()
	aiAPI.Use(authMiddleware.Authenticate)
	aiAPI.HandleFunc("/line-item-improve", aiHandler.ImproveLineItem).Methods("POST")
	aiAPI.HandleFunc("/line-item-last", aiHandler.LastLineItem).Methods("GET")

	// Health endpoint (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
