package main

import (
	"book-management/pkg/models"
	"log"

	"gorm.io/gorm"
)

// checkOverdueBooks flags every open loan past the grace period. It is
// purely punitive: the loan stays open and stock is untouched, and the
// same loan is re-flagged on every cycle until it is returned. A bad
// record is logged and skipped so one row cannot halt the scan.
func checkOverdueBooks() error {
	cutoff := today().AddDate(0, 0, -gracePeriodDays)

	var overdueRecords []models.BorrowRecord
	err := db.Where("returned = ? AND borrow_time < ?", false, cutoff).Find(&overdueRecords).Error
	if err != nil {
		return err
	}

	if len(overdueRecords) == 0 {
		return nil
	}

	log.Printf("Found %d overdue loan(s)", len(overdueRecords))

	for _, record := range overdueRecords {
		overdueDays := daysBetween(record.BorrowTime, today()) - gracePeriodDays

		err := db.Transaction(func(tx *gorm.DB) error {
			violation := models.Violation{
				UserID:        record.UserID,
				BookID:        record.BookID,
				ViolationDate: today(),
				Reason:        "book overdue, not returned",
				OverdueDays:   overdueDays,
			}
			if err := tx.Create(&violation).Error; err != nil {
				return err
			}
			return increaseViolationCount(tx, record.UserID)
		})
		if err != nil {
			log.Printf("Failed to process overdue record: recordId=%d, error=%v", record.ID, err)
			continue
		}

		log.Printf("Flagged overdue loan: userId=%d, bookId=%d, overdueDays=%d",
			record.UserID, record.BookID, overdueDays)
	}

	return nil
}

// checkUserViolations is the reconciliation safety net behind the
// synchronous disable in increaseViolationCount: it only touches users
// that are still enabled with a counter at or past the threshold.
func checkUserViolations() error {
	var users []models.User
	err := db.Where("enabled = ? AND violation_count >= ?", true, autoDisableThreshold).Find(&users).Error
	if err != nil {
		return err
	}

	for _, user := range users {
		user.Enabled = false
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Failed to disable user: userId=%d, error=%v", user.ID, err)
			continue
		}
		log.Printf("User disabled by violation audit: userId=%d, username=%s, violations=%d",
			user.ID, user.Username, user.ViolationCount)
	}

	if len(users) > 0 {
		log.Printf("Violation audit disabled %d user(s)", len(users))
	}
	return nil
}
