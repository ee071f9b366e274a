// @title           QuoteCompare API
// @version         1.0
// @description     Quote normalization and dynamic costing backend - all endpoints used in the application.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"backend/handlers"
	"backend/seed"
	"backend/services"
	"backend/storage"
	"context"
	"database/sql"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:9000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
			if cronLogger != nil {
				cronLogger.Printf("%s completed successfully", name)
			}
		}
	}()
}

// reportPendingBacklog counts quotes that have been sitting in review for
// more than a day and mails the digest to admins.
func reportPendingBacklog(db *sql.DB, emailService *services.EmailService) error {
	var stale int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM quotes
		WHERE status = 'pending' AND created_at < NOW() - INTERVAL '1 day'
	`).Scan(&stale)
	if err != nil {
		return err
	}
	if stale == 0 {
		return nil
	}
	log.Printf("Review backlog: %d quotes pending for more than 24h", stale)
	return emailService.NotifyPendingBacklog(stale)
}

func main() {
	seedFlag := flag.Bool("seed", false, "reload the quotes table with generated market data and exit")
	flag.Parse()

	db := storage.InitDB()
	// GORM is only used for schema migration
	_ = storage.InitGormDB()

	if *seedFlag {
		if err := seed.Run(db, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		return
	}

	emailService := services.NewEmailService(db)

	// Daily maintenance at 00:30
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 0 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			if cronLogger != nil {
				cronLogger.Println("Previous cron still running. Skipping this run.")
			}
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "CleanupExpiredSessions", func(ctx context.Context) error {
			return storage.CleanupExpiredSessions(db)
		}, cronLogger)

		safeGo(ctx, &wg, "PendingBacklogReport", func(ctx context.Context) error {
			return reportPendingBacklog(db, emailService)
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}

	c.Start()

	r := gin.Default()

	r.Use(cors.New(CORSConfig()))

	// ==================== 1. AUTH & SESSIONS ====================
	r.POST("/api/auth/register", handlers.RegisterHandler(db))
	r.POST("/api/auth/login", handlers.LoginHandler(db))
	r.POST("/api/auth/refresh-token", handlers.RefreshTokenHandler(db))
	r.POST("/api/auth/validate-session", handlers.ValidateSession(db))
	r.POST("/api/auth/logout", handlers.LogoutHandler(db))
	r.POST("/api/auth/forgot-password", handlers.ForgetPasswordHandler(db, emailService))
	r.POST("/api/auth/reset-password/:token", handlers.ResetPasswordHandler(db))
	r.POST("/api/auth/change-password", handlers.RequireAuth(db), handlers.ChangePasswordHandler(db))

	// ==================== 2. QUOTES & COMPARISON ====================
	r.GET("/api/quotes", handlers.GetQuotes(db))
	r.POST("/api/quotes", handlers.RequireAuth(db), handlers.CreateQuote(db, emailService))
	r.GET("/api/quotes/catalog", handlers.GetQuoteCatalog(db))
	r.GET("/api/quotes/pending", handlers.RequireAuth(db), handlers.RequireAdmin(), handlers.GetPendingQuotes(db))
	r.PATCH("/api/quotes/:id/status", handlers.RequireAuth(db), handlers.RequireAdmin(), handlers.UpdateQuoteStatus(db))

	// ==================== 3. EXPORTS & LABELS ====================
	r.GET("/api/export/comparison.csv", handlers.RequireAuth(db), handlers.ExportComparisonCSV(db))
	r.GET("/api/export/comparison.xlsx", handlers.RequireAuth(db), handlers.ExportComparisonExcel(db))
	r.GET("/api/export/comparison.pdf", handlers.RequireAuth(db), handlers.GenerateComparisonPDF(db))
	r.GET("/api/quotes/:id/qr", handlers.GenerateQuoteQRCodeJPEG(db))
	r.GET("/api/qr/material", handlers.GenerateMaterialQRCodePNG())

	// ==================== 4. DASHBOARD & ACTIVITY ====================
	r.GET("/api/dashboard", handlers.RequireAuth(db), handlers.RequireAdmin(), handlers.GetDashboardStats(db))
	r.GET("/api/logs", handlers.RequireAuth(db), handlers.RequireAdmin(), handlers.GetActivityLogsHandler(db))

	// ==================== 5. USERS ====================
	r.GET("/api/users", handlers.RequireAuth(db), handlers.RequireAdmin(), handlers.GetAllUsers(db))
	r.PUT("/api/users/:id/suspend", handlers.RequireAuth(db), handlers.RequireAdmin(), handlers.SetUserSuspension(db))

	// ==================== 6. SWAGGER ====================
	r.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			doc, err := swag.ReadDoc()
			if err != nil {
				c.String(http.StatusInternalServerError, `{"error":"swagger doc not found"}`)
				return
			}
			c.Header("Content-Type", "application/json")
			c.String(http.StatusOK, doc)
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"))(c)
	})

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
