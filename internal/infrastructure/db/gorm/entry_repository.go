package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/poyobook/poyobook/internal/core/domain"
)

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) FindByID(ctx context.Context, id uint) (*domain.Entry, error) {
	var row entryRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return row.toDomain(), nil
}

func (r *EntryRepository) ListByBoard(ctx context.Context, boardID uint) ([]domain.Entry, error) {
	var rows []entryRow
	if err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	entries := make([]domain.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *rows[i].toDomain())
	}
	return entries, nil
}

// Create inserts the entry row and bumps the board's denormalized counter
// and last-updated timestamp in one transaction.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := entryRow{
			BoardID:     entry.BoardID,
			Message:     entry.Message,
			Author:      entry.Author,
			Website:     entry.Website,
			ImageName:   entry.ImageName,
			Creator:     entry.Creator,
			Description: entry.Description,
			CreatedAt:   time.Now().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		res := tx.Model(&boardRow{}).Where("id = ?", entry.BoardID).Updates(map[string]any{
			"total_entries": gorm.Expr("total_entries + 1"),
			"last_updated":  time.Now().UTC(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBoardNotFound
		}

		entry.ID = row.ID
		entry.CreatedAt = row.CreatedAt
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrBoardNotFound) {
			return err
		}
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// Delete removes the entry and decrements the counter in one transaction.
func (r *EntryRepository) Delete(ctx context.Context, boardID, entryID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("board_id = ? AND id = ?", boardID, entryID).Delete(&entryRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrEntryNotFound
		}

		return tx.Model(&boardRow{}).Where("id = ?", boardID).Updates(map[string]any{
			"total_entries": gorm.Expr("total_entries - 1"),
			"last_updated":  time.Now().UTC(),
		}).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return err
		}
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
