package main

import (
	"book-management/pkg/models"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func getAllViolations(c *gin.Context) {
	var violations []models.Violation
	if err := db.Find(&violations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, violations)
}

func getViolationsByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var violations []models.Violation
	if err := db.Where("user_id = ?", userID).Find(&violations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, violations)
}

func deleteViolation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid violation id"})
		return
	}

	if err := db.Delete(&models.Violation{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete violation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "violation deleted"})
}
