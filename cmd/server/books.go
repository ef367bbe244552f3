package main

import (
	"book-management/pkg/models"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func getBooks(c *gin.Context) {
	var books []models.Book
	if err := db.Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, books)
}

func getBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var book models.Book
	if err := db.First(&book, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func addBook(c *gin.Context) {
	var request struct {
		Name        string `json:"name" binding:"required"`
		Author      string `json:"author" binding:"required"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Publish     string `json:"publish"`
		Stock       int    `json:"stock"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if request.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
		return
	}

	var existing models.Book
	if err := db.Where("name = ? AND author = ?", request.Name, request.Author).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "book already exists (same name and author)"})
		return
	}

	book := models.Book{
		BookUid:     uuid.New().String(),
		Name:        request.Name,
		Author:      request.Author,
		Category:    request.Category,
		Description: request.Description,
		Publish:     request.Publish,
		Stock:       request.Stock,
	}
	if err := db.Create(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create book"})
		return
	}

	log.Printf("Added book: id=%d, name=%s, author=%s", book.ID, book.Name, book.Author)
	c.JSON(http.StatusOK, book)
}

func updateBook(c *gin.Context) {
	var request struct {
		ID          uint   `json:"id" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Author      string `json:"author" binding:"required"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Publish     string `json:"publish"`
		Stock       int    `json:"stock"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	var book models.Book
	if err := db.First(&book, request.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	book.Name = request.Name
	book.Author = request.Author
	book.Category = request.Category
	book.Description = request.Description
	book.Publish = request.Publish
	book.Stock = request.Stock

	if err := db.Save(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update book"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func deleteBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	if err := db.Delete(&models.Book{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete book"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "book deleted"})
}

func decreaseStock(tx *gorm.DB, bookID uint) error {
	var book models.Book
	if err := tx.First(&book, bookID).Error; err != nil {
		return ErrBookNotFound
	}
	if book.Stock <= 0 {
		return ErrInsufficientStock
	}
	book.Stock--
	return tx.Save(&book).Error
}

func increaseStock(tx *gorm.DB, bookID uint) error {
	var book models.Book
	if err := tx.First(&book, bookID).Error; err != nil {
		return ErrBookNotFound
	}
	book.Stock++
	return tx.Save(&book).Error
}

func increaseBorrowCount(tx *gorm.DB, bookID uint) error {
	var book models.Book
	if err := tx.First(&book, bookID).Error; err != nil {
		return ErrBookNotFound
	}
	book.BorrowCount++
	return tx.Save(&book).Error
}
