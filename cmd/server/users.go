package main

import (
	"book-management/pkg/models"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Matches $2a$/$2b$/$2y$ hashes so an update does not re-hash a
// password that is already hashed.
var bcryptPattern = regexp.MustCompile(`^\$2[aby]\$\d+\$.+$`)

const autoDisableThreshold = 3

func getUsers(c *gin.Context) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func getUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func updateUser(c *gin.Context) {
	var request struct {
		ID             uint   `json:"id" binding:"required"`
		Username       string `json:"username" binding:"required"`
		Password       string `json:"password"`
		Role           string `json:"role"`
		Enabled        bool   `json:"enabled"`
		ViolationCount int    `json:"violationCount"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	var user models.User
	if err := db.First(&user, request.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if request.Password != "" && !bcryptPattern.MatchString(request.Password) {
		hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}
		user.Password = string(hash)
	}

	user.Username = request.Username
	user.Role = request.Role
	user.Enabled = request.Enabled
	user.ViolationCount = request.ViolationCount

	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	log.Printf("Updated user: userId=%d, username=%s", user.ID, user.Username)
	c.JSON(http.StatusOK, user)
}

func increaseViolation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := increaseViolationCount(db, uint(id)); err != nil {
		workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "violation count increased"})
}

func resetViolation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	// Re-enabling is a separate explicit admin action.
	user.ViolationCount = 0
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset violation count"})
		return
	}

	log.Printf("Reset violation count: userId=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "violation count reset"})
}

func toggleUserStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	enabled, err := strconv.ParseBool(c.Query("enabled"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled query parameter is required"})
		return
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.Enabled = enabled
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user status"})
		return
	}

	log.Printf("Toggled user status: userId=%d, enabled=%v", user.ID, enabled)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user status updated"})
}

// increaseViolationCount bumps the counter and disables the account
// the moment it reaches the threshold.
func increaseViolationCount(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return ErrUserNotFound
	}

	user.ViolationCount++
	if user.ViolationCount >= autoDisableThreshold {
		user.Enabled = false
		log.Printf("User reached %d violations, disabled: userId=%d, username=%s",
			autoDisableThreshold, user.ID, user.Username)
	}

	if err := tx.Save(&user).Error; err != nil {
		return err
	}

	log.Printf("Violation count increased: userId=%d, count=%d", user.ID, user.ViolationCount)
	return nil
}
