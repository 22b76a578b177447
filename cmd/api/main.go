// cmd/api/main.go
// Main entry point for the application.
// Bootstraps all components and starts the server.

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unistaylk/unistay-backend/internal/auth"
	"github.com/unistaylk/unistay-backend/internal/bookings"
	"github.com/unistaylk/unistay-backend/internal/common/database"
	"github.com/unistaylk/unistay-backend/internal/config"
	"github.com/unistaylk/unistay-backend/internal/faq"
	"github.com/unistaylk/unistay-backend/internal/listings"
	"github.com/unistaylk/unistay-backend/internal/notifications"
	"github.com/unistaylk/unistay-backend/internal/profile"
	"github.com/unistaylk/unistay-backend/internal/realtime"
	"github.com/unistaylk/unistay-backend/internal/verification"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting UniStay Hostel Marketplace API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Println("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	sqlxDB := sqlx.NewDb(db, "postgres")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without catalog cache and signin throttling", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize Profile module
	log.Println("\n👤 Step 7: Initializing Profile module...")
	profileRepo := profile.NewPostgresRepository(sqlxDB)
	profileService := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profile module initialized")

	// 8. Initialize Auth module
	log.Println("\n🔐 Step 8: Initializing authentication module...")
	authRepo := auth.NewPostgresRepository(sqlxDB)
	authConfig := &auth.Config{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
		BCryptCost:         cfg.BCryptCost,
		GoogleClientID:     cfg.GoogleClientID,
	}

	authService := auth.NewService(authRepo, redisClient, profileService, authConfig)
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication module initialized")

	// 9. Initialize realtime hub
	log.Println("\n🔌 Step 9: Initializing realtime hub...")
	var hub *realtime.Hub
	if cfg.EnableRealtime {
		hub = realtime.NewHub()
		go hub.Run()
		log.Println("✅ Realtime hub started")
	} else {
		log.Println("⚠️  Realtime events disabled")
	}

	// 10. Initialize Listings module
	log.Println("\n🏠 Step 10: Initializing Listings module...")
	listingsRepo := listings.NewPostgresRepository(sqlxDB)

	listingsUploads := listings.NewUploadService(listings.UploadConfig{
		UseS3:              cfg.UseS3,
		S3Bucket:           cfg.S3Bucket,
		AWSRegion:          cfg.AWSRegion,
		AWSAccessKeyID:     cfg.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.AWSSecretAccessKey,
		LocalUploadDir:     cfg.LocalUploadDir,
		BaseURL:            cfg.BaseURL,
		MaxSizeMB:          cfg.MaxPhotoSizeMB,
	})
	if cfg.UseS3 {
		log.Println("   ✅ Using S3 for listing photos")
	} else {
		log.Println("   ✅ Using local storage for listing photos")
	}

	var listingsPublisher listings.EventPublisher
	if hub != nil {
		listingsPublisher = hub
	}

	listingsService := listings.NewService(listingsRepo, redisClient, listingsUploads, listingsPublisher, &listings.Config{
		DefaultPriceMin:      float64(cfg.DefaultPriceMin),
		DefaultPriceMax:      float64(cfg.DefaultPriceMax),
		DefaultMaxDistanceKm: cfg.DefaultMaxDistanceKm,
		CacheTTL:             cfg.CatalogCacheTTL,
		MaxPhotos:            cfg.MaxListingPhotos,
	})
	listingsHandler := listings.NewHandler(listingsService)
	log.Println("✅ Listings module initialized")

	// 11. Initialize Notifications module
	log.Println("\n🔔 Step 11: Initializing Notifications module...")
	var emailProvider notifications.EmailProvider
	switch cfg.EmailProvider {
	case "sendgrid":
		emailProvider = notifications.NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom)
		log.Println("   ✅ Using SendGrid for emails")
	case "smtp":
		emailProvider = notifications.NewSMTPEmailProvider(
			cfg.SMTPHost,
			fmt.Sprintf("%d", cfg.SMTPPort),
			cfg.SMTPUsername,
			cfg.SMTPPassword,
			cfg.EmailFrom,
		)
		log.Println("   ✅ Using SMTP for emails")
	default:
		emailProvider = notifications.NewMockEmailProvider()
		log.Println("   ⚠️  Using mock email provider (development mode)")
	}

	var smsProvider notifications.SMSProvider
	switch cfg.SMSProvider {
	case "twilio":
		smsProvider = notifications.NewTwilioSMSProvider(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioPhoneNumber,
		)
		log.Println("   ✅ Using Twilio for SMS")
	default:
		smsProvider = notifications.NewMockSMSProvider()
		log.Println("   ⚠️  Using mock SMS provider (development mode)")
	}

	notificationsService := notifications.NewService(emailProvider, smsProvider, authService, profileService)
	log.Println("✅ Notifications module initialized")

	// 12. Initialize Bookings module
	log.Println("\n📅 Step 12: Initializing Bookings module...")
	bookingsRepo := bookings.NewPostgresRepository(sqlxDB)

	var bookingNotifier bookings.Notifier
	if cfg.EnableNotifications {
		bookingNotifier = notificationsService
	}
	var bookingsPublisher bookings.Publisher
	if hub != nil {
		bookingsPublisher = hub
	}

	bookingsService := bookings.NewService(bookingsRepo, listingsService, profileService, bookingNotifier, bookingsPublisher)
	bookingsHandler := bookings.NewHandler(bookingsService)
	log.Println("✅ Bookings module initialized")

	// 13. Initialize Verification module
	log.Println("\n🪪 Step 13: Initializing Verification module...")
	verificationRepo := verification.NewPostgresRepository(sqlxDB)
	verificationUploads := verification.NewUploadService(verification.UploadConfig{
		UseS3:              cfg.UseS3,
		S3Bucket:           cfg.S3Bucket,
		AWSRegion:          cfg.AWSRegion,
		AWSAccessKeyID:     cfg.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.AWSSecretAccessKey,
		LocalUploadDir:     cfg.LocalUploadDir,
		BaseURL:            cfg.BaseURL,
	})

	var verificationNotifier verification.Notifier
	if cfg.EnableNotifications {
		verificationNotifier = notificationsService
	}

	verificationService := verification.NewService(verificationRepo, verificationUploads, profileService, verificationNotifier)
	verificationHandler := verification.NewHandler(verificationService)
	log.Println("✅ Verification module initialized")

	// 14. Initialize FAQ module
	log.Println("\n📚 Step 14: Initializing FAQ module...")
	faqRepo := faq.NewPostgresRepository(sqlxDB)
	faqService := faq.NewService(faqRepo)
	if err := faqService.SeedDefaults(context.Background()); err != nil {
		log.Printf("⚠️  Warning: Failed to seed default FAQs: %v", err)
	}
	faqHandler := faq.NewHandler(faqService)
	log.Println("✅ FAQ module initialized")

	// 15. Setup routes
	log.Println("\n🛣️  Step 15: Setting up routes...")
	router := mux.NewRouter()

	// Static files for uploads
	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.LocalUploadDir))))
		log.Println("   ✅ Static file server configured")
	}

	// Health check and metrics
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/api", apiInfo).Methods("GET")

	auth.RegisterRoutes(router, authHandler, authMiddleware, cfg.EnableOAuth)
	if cfg.EnableOAuth {
		log.Println("   ✅ Auth routes registered (Google sign-in enabled)")
	} else {
		log.Println("   ✅ Auth routes registered (Google sign-in disabled)")
	}

	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	log.Println("   ✅ Profile routes registered")

	listings.RegisterRoutes(router, listingsHandler, authMiddleware)
	log.Println("   ✅ Listings routes registered")

	bookings.RegisterRoutes(router, bookingsHandler, authMiddleware)
	log.Println("   ✅ Bookings routes registered")

	verification.RegisterRoutes(router, verificationHandler, authMiddleware)
	log.Println("   ✅ Verification routes registered")

	faq.RegisterRoutes(router, faqHandler)
	log.Println("   ✅ FAQ routes registered")

	if hub != nil {
		realtimeHandler := realtime.NewHandler(hub, authService)
		router.HandleFunc("/ws", realtimeHandler.ServeWS).Methods("GET")
		log.Println("   ✅ WebSocket route registered")
	}

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 16. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	if hub != nil {
		log.Println("   - Shutting down realtime hub...")
		hub.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// apiInfo returns API information
func apiInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{
		"name": "UniStay API",
		"version": "1.0.0",
		"status": "running",
		"endpoints": {
			"health": "GET /health",
			"metrics": "GET /metrics",
			"auth": {
				"signup": "POST /api/auth/signup",
				"signin": "POST /api/auth/signin",
				"google": "POST /api/auth/google",
				"refresh": "POST /api/auth/refresh",
				"logout": "POST /api/auth/logout",
				"me": "GET /api/v1/me"
			},
			"profile": {
				"get": "GET /api/v1/profile",
				"update": "PUT /api/v1/profile",
				"university": "PUT /api/v1/profile/university"
			},
			"listings": {
				"all": "GET /api/v1/listings",
				"search": "GET /api/v1/listings/search",
				"detail": "GET /api/v1/listings/{id}",
				"mine": "GET /api/v1/listings/mine",
				"create": "POST /api/v1/listings",
				"update": "PATCH /api/v1/listings/{id}",
				"photos": "POST /api/v1/listings/{id}/photos",
				"removePhoto": "DELETE /api/v1/listings/{id}/photos/{index}",
				"universities": "GET /api/v1/universities"
			},
			"bookings": {
				"create": "POST /api/v1/bookings",
				"mine": "GET /api/v1/bookings/mine",
				"requests": "GET /api/v1/bookings/requests",
				"decide": "PUT /api/v1/bookings/{id}/status",
				"dashboard": "GET /api/v1/dashboard/landlord"
			},
			"verification": {
				"submit": "POST /api/v1/verification",
				"status": "GET /api/v1/verification"
			},
			"faq": "GET /api/faq",
			"realtime": "GET /ws?token=<access token>"
		}
	}`))
}

// Middleware functions

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sql.DB) error {
	migrations := []string{
		// Users table
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255),
			role VARCHAR(20) NOT NULL DEFAULT 'student',
			provider VARCHAR(50) DEFAULT 'local',
			provider_id VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Sessions table
		`CREATE TABLE IF NOT EXISTS sessions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token TEXT NOT NULL UNIQUE,
			refresh_token TEXT NOT NULL UNIQUE,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Profiles table
		`CREATE TABLE IF NOT EXISTS profiles (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL,
			university VARCHAR(120),
			phone VARCHAR(20),
			photo_url TEXT,
			verification_status VARCHAR(20) NOT NULL DEFAULT 'none',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Listings table
		`CREATE TABLE IF NOT EXISTS listings (
			id SERIAL PRIMARY KEY,
			landlord_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(150) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2),
			location VARCHAR(200) NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			distance_km DOUBLE PRECISION,
			gender VARCHAR(10),
			amenities TEXT[] NOT NULL DEFAULT '{}',
			photos TEXT[] NOT NULL DEFAULT '{}',
			rating DOUBLE PRECISION DEFAULT 0,
			reviews INTEGER DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Bookings table
		`CREATE TABLE IF NOT EXISTS bookings (
			id SERIAL PRIMARY KEY,
			student_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			student_name VARCHAR(100) NOT NULL DEFAULT '',
			landlord_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			listing_id INTEGER NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
			listing_title VARCHAR(150) NOT NULL DEFAULT '',
			room_type VARCHAR(60) NOT NULL DEFAULT 'Single Room',
			move_in_date DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Verifications table
		`CREATE TABLE IF NOT EXISTS verifications (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(20) NOT NULL,
			nic VARCHAR(20) NOT NULL,
			student_id_number VARCHAR(50),
			nic_photo_url TEXT,
			student_id_photo_url TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			reviewed_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// FAQs table
		`CREATE TABLE IF NOT EXISTS faqs (
			id SERIAL PRIMARY KEY,
			category VARCHAR(50) NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_refresh_token ON sessions(refresh_token)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_landlord ON listings(landlord_id)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_active_created ON listings(active, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_student ON bookings(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_landlord ON bookings(landlord_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_landlord_status ON bookings(landlord_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_verifications_user ON verifications(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_verifications_status ON verifications(status)`,
		`CREATE INDEX IF NOT EXISTS idx_faqs_category ON faqs(category)`,
	}

	for i, migration := range migrations {
		log.Printf("   - Running migration %d/%d...", i+1, len(migrations))
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Println("   ✅ All migrations executed successfully")
	return nil
}
