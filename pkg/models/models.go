package models

import (
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Password       string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"size:20;not null;default:'USER'" json:"role"`
	Enabled        bool      `gorm:"not null;default:true" json:"enabled"`
	ViolationCount int       `gorm:"not null;default:0" json:"violationCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BookUid      string    `gorm:"type:uuid;uniqueIndex;not null" json:"bookUid"`
	Name         string    `gorm:"not null" json:"name"`
	Author       string    `gorm:"not null" json:"author"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Publish      string    `json:"publish"`
	Stock        int       `gorm:"not null;default:0" json:"stock"`
	BorrowCount  int       `gorm:"not null;default:0" json:"borrowCount"`
	AvgScore     float64   `gorm:"not null;default:0" json:"avgScore"`
	CommentCount int64     `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BorrowRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"userId"`
	BookID     uint       `gorm:"not null;index" json:"bookId"`
	BorrowTime time.Time  `json:"borrowTime"`
	ReturnTime *time.Time `json:"returnTime"`
	Returned   bool       `gorm:"not null;default:false" json:"returned"`
}

type Violation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	BookID        uint      `gorm:"not null" json:"bookId"`
	ViolationDate time.Time `json:"violationDate"`
	Reason        string    `json:"reason"`
	OverdueDays   int       `gorm:"not null;default:0" json:"overdueDays"`
}

type BookComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	BookID    uint      `gorm:"not null;index" json:"bookId"`
	Score     int       `gorm:"not null" json:"score"`
	Content   string    `json:"content"`
	IsAudit   bool      `gorm:"not null;default:false" json:"isAudit"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `json:"createTime"`
	UpdatedAt time.Time `json:"updateTime"`
}
