package main

import (
	"book-management/pkg/models"
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	gin.SetMode(gin.TestMode)
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database")
	}
	testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Book{},
		&models.BorrowRecord{},
		&models.Violation{},
		&models.BookComment{},
	)
	return testDB
}

func newJSONContext(method, target string, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body != nil {
		data, _ := json.Marshal(body)
		c.Request = httptest.NewRequest(method, target, bytes.NewBuffer(data))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	return w, c
}

func decodeResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return response
}

func createTestUser(testDB *gorm.DB, username, role string) models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{
		Username: username,
		Password: string(hash),
		Role:     role,
		Enabled:  true,
	}
	testDB.Create(&user)
	return user
}

func createTestBook(testDB *gorm.DB, name string, stock int) models.Book {
	book := models.Book{
		BookUid: uuid.New().String(),
		Name:    name,
		Author:  "Test Author",
		Stock:   stock,
	}
	testDB.Create(&book)
	return book
}
