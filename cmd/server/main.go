package main

import (
	"book-management/pkg/database"
	"book-management/pkg/models"
	"book-management/pkg/scheduler"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var db *gorm.DB

func main() {
	log.Println("Starting book management service...")

	db = database.InitDB()

	seedAdminUser()

	sched := scheduler.New()
	sched.Add("overdue-scan", parseInterval("OVERDUE_SCAN_INTERVAL", 10*time.Second), checkOverdueBooks)
	sched.Add("violation-audit", parseInterval("VIOLATION_AUDIT_INTERVAL", 10*time.Second), checkUserViolations)
	sched.Start()
	defer sched.Stop()

	server := gin.Default()

	server.POST("/api/auth/register", register)
	server.POST("/api/auth/login", login)
	server.GET("/manage/health", healthCheck)

	api := server.Group("/api", authRequired())
	api.POST("/auth/logout", logout)
	api.GET("/books", getBooks)
	api.GET("/books/:id", getBook)
	api.GET("/users/:id", getUser)
	api.POST("/borrows", borrowBook)
	api.PUT("/borrows/return/:recordId", returnBook)
	api.GET("/borrows/user/:userId", getBorrowsByUser)
	api.GET("/borrows/user/:userId/current", getCurrentBorrowsByUser)
	api.POST("/comments", addComment)
	api.GET("/comments/book/:bookId", getCommentsByBook)
	api.GET("/violations/user/:userId", getViolationsByUser)

	admin := server.Group("/api", authRequired(), adminRequired())
	admin.GET("/users", getUsers)
	admin.PUT("/users", updateUser)
	admin.PUT("/users/:id/violation", increaseViolation)
	admin.PUT("/users/:id/violation/reset", resetViolation)
	admin.PUT("/users/:id/status", toggleUserStatus)
	admin.POST("/books", addBook)
	admin.PUT("/books", updateBook)
	admin.DELETE("/books/:id", deleteBook)
	admin.GET("/borrows", getAllBorrows)
	admin.PUT("/comments/audit/:commentId", auditComment)
	admin.DELETE("/comments/:commentId", deleteComment)
	admin.GET("/comments/pending", getPendingComments)
	admin.GET("/violations", getAllViolations)
	admin.DELETE("/violations/:id", deleteViolation)

	port := getEnv("PORT", "8080")
	log.Printf("Book management service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func seedAdminUser() {
	username := getEnv("ADMIN_USERNAME", "admin")

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "admin")), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		Username: username,
		Password: string(hash),
		Role:     models.RoleAdmin,
		Enabled:  true,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		log.Printf("Failed to create admin user: %v", err)
		return
	}
	log.Printf("Created admin user: %s", username)
}

func healthCheck(ctx *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"details": "Book management service is active",
	})
}

func parseInterval(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	interval, err := time.ParseDuration(value)
	if err != nil || interval <= 0 {
		log.Printf("Invalid %s value %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return interval
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
