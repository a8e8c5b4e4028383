package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/poyobook/poyobook/internal/core/domain"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) FindByID(ctx context.Context, id uint) (*domain.Board, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *BoardRepository) FindByOwner(ctx context.Context, userID uint) (*domain.Board, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *BoardRepository) FindByName(ctx context.Context, name string) (*domain.Board, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *BoardRepository) FindByDomain(ctx context.Context, host string) (*domain.Board, error) {
	return r.findOne(ctx, "domain = ?", host)
}

func (r *BoardRepository) findOne(ctx context.Context, query string, arg any) (*domain.Board, error) {
	var row boardRow
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board: %w", err)
	}
	return row.toDomain(), nil
}

func (r *BoardRepository) ListOnIndex(ctx context.Context) ([]domain.Board, error) {
	var rows []boardRow
	if err := r.db.WithContext(ctx).Where("on_index = ?", true).Order("last_updated DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	boards := make([]domain.Board, 0, len(rows))
	for i := range rows {
		boards = append(boards, *rows[i].toDomain())
	}
	return boards, nil
}

func (r *BoardRepository) UpdateConfig(ctx context.Context, boardID uint, cfg domain.BoardConfig) error {
	updates := map[string]any{}
	if cfg.ShowCaptcha != nil {
		updates["show_captcha"] = *cfg.ShowCaptcha
	}
	if cfg.ShowNames != nil {
		updates["show_names"] = *cfg.ShowNames
	}
	if cfg.ShowDescriptions != nil {
		updates["show_descriptions"] = *cfg.ShowDescriptions
	}
	if cfg.OnIndex != nil {
		updates["on_index"] = *cfg.OnIndex
	}
	if cfg.BrushColor != nil {
		updates["brush_color"] = *cfg.BrushColor
	}
	if cfg.BackgroundColor != nil {
		updates["background_color"] = *cfg.BackgroundColor
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&boardRow{}).Where("id = ?", boardID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update board config: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepository) UpdateCustomCSS(ctx context.Context, boardID uint, css string) error {
	res := r.db.WithContext(ctx).Model(&boardRow{}).Where("id = ?", boardID).Update("custom_css", css)
	if res.Error != nil {
		return fmt.Errorf("update custom css: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepository) IncrementViews(ctx context.Context, boardID uint) error {
	res := r.db.WithContext(ctx).Model(&boardRow{}).Where("id = ?", boardID).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return fmt.Errorf("increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}
