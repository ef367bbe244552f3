package main

import (
	"book-management/pkg/models"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func addComment(c *gin.Context) {
	var request struct {
		UserID  uint   `json:"userId" binding:"required"`
		BookID  uint   `json:"bookId" binding:"required"`
		Score   int    `json:"score"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	comment := models.BookComment{
		UserID:  request.UserID,
		BookID:  request.BookID,
		Score:   request.Score,
		Content: request.Content,
		IsAudit: false,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, request.UserID).Error; err != nil {
			return ErrUserNotFound
		}
		var book models.Book
		if err := tx.First(&book, request.BookID).Error; err != nil {
			return ErrBookNotFound
		}

		if request.Score < 1 || request.Score > 5 {
			return ErrInvalidScore
		}

		var existing models.BookComment
		if err := tx.Where("user_id = ? AND book_id = ? AND is_deleted = ?",
			request.UserID, request.BookID, false).First(&existing).Error; err == nil {
			return ErrDuplicateComment
		}

		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		// Pending comments are excluded from the aggregate, so this is
		// a no-op until the comment is approved.
		return recomputeBookScore(tx, request.BookID)
	})
	if err != nil {
		workflowError(c, err)
		return
	}

	log.Printf("Comment added: id=%d, userId=%d, bookId=%d", comment.ID, comment.UserID, comment.BookID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "comment submitted, pending review",
		"comment": comment,
	})
}

func auditComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	pass, err := strconv.ParseBool(c.Query("pass"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pass query parameter is required"})
		return
	}

	var comment models.BookComment
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, commentID).Error; err != nil {
			return ErrCommentNotFound
		}

		comment.IsAudit = pass
		if err := tx.Save(&comment).Error; err != nil {
			return err
		}

		// Approval is the only event that adds a comment into the aggregate.
		if pass {
			return recomputeBookScore(tx, comment.BookID)
		}
		return nil
	})
	if err != nil {
		workflowError(c, err)
		return
	}

	message := "comment approved"
	if !pass {
		message = "comment rejected"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "comment": comment})
}

func deleteComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var comment models.BookComment
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, commentID).Error; err != nil {
			return ErrCommentNotFound
		}

		comment.IsDeleted = true
		if err := tx.Save(&comment).Error; err != nil {
			return err
		}
		return recomputeBookScore(tx, comment.BookID)
	})
	if err != nil {
		workflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "comment deleted", "comment": comment})
}

func getCommentsByBook(c *gin.Context) {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var book models.Book
	if err := db.First(&book, bookID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	comments, err := visibleComments(db, uint(bookID), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

func getPendingComments(c *gin.Context) {
	query := db.Where("is_audit = ? AND is_deleted = ?", false, false)
	if bookIDStr := c.Query("bookId"); bookIDStr != "" {
		bookID, err := strconv.Atoi(bookIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
			return
		}
		query = query.Where("book_id = ?", bookID)
	}

	var comments []models.BookComment
	if err := query.Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// visibleComments applies the moderation visibility rule: admins see
// every non-deleted comment, everyone else sees approved comments plus
// their own pending ones. Insertion order.
func visibleComments(tx *gorm.DB, bookID uint, user models.User) ([]models.BookComment, error) {
	var comments []models.BookComment

	if user.Role == models.RoleAdmin {
		err := tx.Where("book_id = ? AND is_deleted = ?", bookID, false).
			Order("id").Find(&comments).Error
		return comments, err
	}

	err := tx.Where("book_id = ? AND is_deleted = ? AND (is_audit = ? OR user_id = ?)",
		bookID, false, true, user.ID).
		Order("id").Find(&comments).Error
	return comments, err
}

// recomputeBookScore rewrites the book's aggregate from the approved,
// non-deleted comments.
func recomputeBookScore(tx *gorm.DB, bookID uint) error {
	var book models.Book
	if err := tx.First(&book, bookID).Error; err != nil {
		return ErrBookNotFound
	}

	var avgScore float64
	err := tx.Model(&models.BookComment{}).
		Where("book_id = ? AND is_audit = ? AND is_deleted = ?", bookID, true, false).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avgScore).Error
	if err != nil {
		return err
	}

	var commentCount int64
	err = tx.Model(&models.BookComment{}).
		Where("book_id = ? AND is_audit = ? AND is_deleted = ?", bookID, true, false).
		Count(&commentCount).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Book{}).Where("id = ?", bookID).
		Updates(map[string]interface{}{
			"avg_score":     avgScore,
			"comment_count": commentCount,
		}).Error
}
