package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Expected business failures. Handlers surface these as
// {success:false, message} so callers branch on the flag,
// while anything else is reported as a transport-level error.
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrRecordNotFound    = errors.New("borrow record not found")
	ErrAlreadyReturned   = errors.New("record already returned")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidScore      = errors.New("score must be between 1 and 5")
	ErrDuplicateComment  = errors.New("user has already commented on this book")
	ErrCommentNotFound   = errors.New("comment not found")
)

var businessErrors = []error{
	ErrBookNotFound,
	ErrInsufficientStock,
	ErrRecordNotFound,
	ErrAlreadyReturned,
	ErrUserNotFound,
	ErrInvalidScore,
	ErrDuplicateComment,
	ErrCommentNotFound,
}

func isBusinessError(err error) bool {
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return true
		}
	}
	return false
}

func workflowError(c *gin.Context, err error) {
	if isBusinessError(err) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
