package gorm

import (
	"time"

	"github.com/poyobook/poyobook/internal/core/domain"
)

type userRow struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null;size:20"`
	PasswordHash string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Verified     bool   `gorm:"not null;default:false"`
	APIKey       string
	Tier         int  `gorm:"not null;default:0"`
	Admin        bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type boardRow struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"uniqueIndex;not null"`
	Type            string `gorm:"not null"`
	Name            string `gorm:"uniqueIndex;not null"`
	Domain          string `gorm:"uniqueIndex;not null"`
	Views           int64  `gorm:"not null;default:0"`
	TotalEntries    int64  `gorm:"not null;default:0"`
	Tier            int    `gorm:"not null;default:1"`
	BrushColor      string `gorm:"not null;default:'#000000'"`
	BackgroundColor string `gorm:"not null;default:'#FFFFFF'"`
	CustomCSS       string

	ShowCaptcha      bool `gorm:"not null"`
	ShowNames        bool `gorm:"not null"`
	ShowDescriptions bool `gorm:"not null"`
	OnIndex          bool `gorm:"not null;default:false"`

	CreatedAt   time.Time
	LastUpdated time.Time

	Entries []entryRow `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

func (boardRow) TableName() string { return "boards" }

type entryRow struct {
	ID          uint `gorm:"primaryKey"`
	BoardID     uint `gorm:"index;not null"`
	Message     string
	Author      string
	Website     string
	ImageName   string
	Creator     string
	Description string
	CreatedAt   time.Time
}

func (entryRow) TableName() string { return "entries" }

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Verified:     r.Verified,
		APIKey:       r.APIKey,
		Tier:         r.Tier,
		Admin:        r.Admin,
		CreatedAt:    r.CreatedAt,
	}
}

func (r *boardRow) toDomain() *domain.Board {
	return &domain.Board{
		ID:               r.ID,
		UserID:           r.UserID,
		Type:             domain.BoardType(r.Type),
		Name:             r.Name,
		Domain:           r.Domain,
		Views:            r.Views,
		TotalEntries:     r.TotalEntries,
		Tier:             r.Tier,
		BrushColor:       r.BrushColor,
		BackgroundColor:  r.BackgroundColor,
		CustomCSS:        r.CustomCSS,
		ShowCaptcha:      r.ShowCaptcha,
		ShowNames:        r.ShowNames,
		ShowDescriptions: r.ShowDescriptions,
		OnIndex:          r.OnIndex,
		CreatedAt:        r.CreatedAt,
		LastUpdated:      r.LastUpdated,
	}
}

func (r *entryRow) toDomain() *domain.Entry {
	return &domain.Entry{
		ID:          r.ID,
		BoardID:     r.BoardID,
		Message:     r.Message,
		Author:      r.Author,
		Website:     r.Website,
		ImageName:   r.ImageName,
		Creator:     r.Creator,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
