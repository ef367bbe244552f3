package main

import (
	"book-management/pkg/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverdueScanFlagsOpenLoans(t *testing.T) {
	db = setupTestDB()
	user := createTestUser(db, "alice", models.RoleUser)
	book := createTestBook(db, "Overdue Book", 0)

	record := models.BorrowRecord{
		UserID:     user.ID,
		BookID:     book.ID,
		BorrowTime: today().AddDate(0, 0, -10),
	}
	db.Create(&record)

	assert.NoError(t, checkOverdueBooks())

	var violation models.Violation
	err := db.Where("user_id = ?", user.ID).First(&violation).Error
	assert.NoError(t, err)
	assert.Equal(t, 3, violation.OverdueDays)
	assert.Equal(t, "book overdue, not returned", violation.Reason)

	var updatedUser models.User
	db.First(&updatedUser, user.ID)
	assert.Equal(t, 1, updatedUser.ViolationCount)

	// The scan is purely punitive: the loan stays open, stock untouched.
	var updatedRecord models.BorrowRecord
	db.First(&updatedRecord, record.ID)
	assert.False(t, updatedRecord.Returned)

	var updatedBook models.Book
	db.First(&updatedBook, book.ID)
	assert.Equal(t, 0, updatedBook.Stock)
}

func TestOverdueScanReflagsEveryCycle(t *testing.T) {
	db = setupTestDB()
	user := createTestUser(db, "alice", models.RoleUser)
	book := createTestBook(db, "Overdue Book", 0)

	db.Create(&models.BorrowRecord{
		UserID:     user.ID,
		BookID:     book.ID,
		BorrowTime: today().AddDate(0, 0, -10),
	})

	assert.NoError(t, checkOverdueBooks())
	assert.NoError(t, checkOverdueBooks())

	var violations int64
	db.Model(&models.Violation{}).Where("user_id = ?", user.ID).Count(&violations)
	assert.Equal(t, int64(2), violations)

	var updatedUser models.User
	db.First(&updatedUser, user.ID)
	assert.Equal(t, 2, updatedUser.ViolationCount)
}

func TestOverdueScanIgnoresRecentAndReturnedLoans(t *testing.T) {
	db = setupTestDB()
	user := createTestUser(db, "alice", models.RoleUser)
	book := createTestBook(db, "Fine Book", 1)

	returnTime := today()
	db.Create(&models.BorrowRecord{UserID: user.ID, BookID: book.ID, BorrowTime: today().AddDate(0, 0, -3)})
	db.Create(&models.BorrowRecord{
		UserID: user.ID, BookID: book.ID,
		BorrowTime: today().AddDate(0, 0, -20),
		Returned:   true, ReturnTime: &returnTime,
	})

	assert.NoError(t, checkOverdueBooks())

	var violations int64
	db.Model(&models.Violation{}).Count(&violations)
	assert.Equal(t, int64(0), violations)
}

func TestOverdueScanDisablesAtThreshold(t *testing.T) {
	db = setupTestDB()
	user := createTestUser(db, "alice", models.RoleUser)
	user.ViolationCount = 2
	db.Save(&user)
	book := createTestBook(db, "Overdue Book", 0)

	db.Create(&models.BorrowRecord{
		UserID:     user.ID,
		BookID:     book.ID,
		BorrowTime: today().AddDate(0, 0, -8),
	})

	assert.NoError(t, checkOverdueBooks())

	var updated models.User
	db.First(&updated, user.ID)
	assert.Equal(t, 3, updated.ViolationCount)
	assert.False(t, updated.Enabled)
}

func TestViolationAuditDisablesOverThreshold(t *testing.T) {
	db = setupTestDB()

	offender := createTestUser(db, "offender", models.RoleUser)
	offender.ViolationCount = 3
	db.Save(&offender)

	clean := createTestUser(db, "clean", models.RoleUser)
	clean.ViolationCount = 2
	db.Save(&clean)

	alreadyDisabled := createTestUser(db, "gone", models.RoleUser)
	alreadyDisabled.ViolationCount = 5
	alreadyDisabled.Enabled = false
	db.Save(&alreadyDisabled)

	assert.NoError(t, checkUserViolations())

	var updated models.User
	db.First(&updated, offender.ID)
	assert.False(t, updated.Enabled)

	updated = models.User{}
	db.First(&updated, clean.ID)
	assert.True(t, updated.Enabled)

	updated = models.User{}
	db.First(&updated, alreadyDisabled.ID)
	assert.False(t, updated.Enabled)
}
