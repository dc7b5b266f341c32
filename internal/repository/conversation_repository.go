package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mellow-ai/internal/model"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Create(turn *model.Conversation) error {
	if err := r.db.Create(turn).Error; err != nil {
		return fmt.Errorf("create conversation failed: %w", err)
	}
	return nil
}

// ListRecent returns the most recent turns, newest first.
func (r *ConversationRepository) ListRecent(limit int) ([]model.Conversation, error) {
	if limit <= 0 || limit > 200 {
		limit = 10
	}

	var turns []model.Conversation
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&turns).Error; err != nil {
		return nil, fmt.Errorf("list conversations failed: %w", err)
	}
	return turns, nil
}

func (r *ConversationRepository) GetByID(id uint) (*model.Conversation, error) {
	var turn model.Conversation
	if err := r.db.First(&turn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation failed: %w", err)
	}
	return &turn, nil
}

func (r *ConversationRepository) DeleteByID(id uint) (bool, error) {
	result := r.db.Delete(&model.Conversation{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete conversation failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ConversationRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Conversation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count conversations failed: %w", err)
	}
	return count, nil
}

func (r *ConversationRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Conversation{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count recent conversations failed: %w", err)
	}
	return count, nil
}

// RecentUserMessages returns up to limit recent user messages for analysis.
func (r *ConversationRepository) RecentUserMessages(limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	var messages []string
	if err := r.db.Model(&model.Conversation{}).
		Order("created_at DESC").
		Limit(limit).
		Pluck("user_message", &messages).Error; err != nil {
		return nil, fmt.Errorf("list user messages failed: %w", err)
	}
	return messages, nil
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DailyCounts buckets conversations per calendar day since the given time.
func (r *ConversationRepository) DailyCounts(since time.Time) ([]DailyCount, error) {
	var rows []DailyCount
	if err := r.db.Model(&model.Conversation{}).
		Select("DATE(created_at) AS date, COUNT(id) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("group conversations by day failed: %w", err)
	}
	return rows, nil
}
