package main

import (
	"book-management/pkg/models"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// gracePeriodDays is the window after borrowing before a loan counts
// as overdue.
const gracePeriodDays = 7

func borrowBook(c *gin.Context) {
	var request struct {
		UserID uint `json:"userId" binding:"required"`
		BookID uint `json:"bookId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	record := models.BorrowRecord{
		UserID:     request.UserID,
		BookID:     request.BookID,
		BorrowTime: today(),
		Returned:   false,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := decreaseStock(tx, request.BookID); err != nil {
			return err
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return increaseBorrowCount(tx, request.BookID)
	})
	if err != nil {
		workflowError(c, err)
		return
	}

	log.Printf("Book borrowed: recordId=%d, userId=%d, bookId=%d", record.ID, record.UserID, record.BookID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "book borrowed",
		"record":  record,
	})
}

func returnBook(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("recordId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	var record models.BorrowRecord
	var overdueDays int

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, recordID).Error; err != nil {
			return ErrRecordNotFound
		}
		if record.Returned {
			return ErrAlreadyReturned
		}

		returnDate := today()
		overdueDays = daysBetween(record.BorrowTime, returnDate) - gracePeriodDays
		if overdueDays < 0 {
			overdueDays = 0
		}

		record.Returned = true
		record.ReturnTime = &returnDate
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		if err := increaseStock(tx, record.BookID); err != nil {
			return err
		}

		if overdueDays > 0 {
			violation := models.Violation{
				UserID:        record.UserID,
				BookID:        record.BookID,
				ViolationDate: returnDate,
				Reason:        "overdue return",
				OverdueDays:   overdueDays,
			}
			if err := tx.Create(&violation).Error; err != nil {
				return err
			}
			return increaseViolationCount(tx, record.UserID)
		}
		return nil
	})
	if err != nil {
		workflowError(c, err)
		return
	}

	log.Printf("Book returned: recordId=%d, bookId=%d, overdueDays=%d", record.ID, record.BookID, overdueDays)

	response := gin.H{
		"success": true,
		"message": "book returned",
		"record":  record,
	}
	if overdueDays > 0 {
		response["message"] = "book returned (" + strconv.Itoa(overdueDays) + " days overdue)"
		response["overdue"] = true
		response["overdueDays"] = overdueDays
		response["violation"] = true
	}
	c.JSON(http.StatusOK, response)
}

func getAllBorrows(c *gin.Context) {
	var records []models.BorrowRecord
	if err := db.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func getBorrowsByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var records []models.BorrowRecord
	if err := db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func getCurrentBorrowsByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var records []models.BorrowRecord
	if err := db.Where("user_id = ? AND returned = ?", userID, false).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// today returns the current date truncated to midnight UTC. Loan
// bookkeeping works in whole days.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
