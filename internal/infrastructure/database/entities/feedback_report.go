package entities

import (
	"time"

	"gorm.io/datatypes"
)

// FeedbackReport represents a persisted response quality review.
type FeedbackReport struct {
	ID            uint           `gorm:"primaryKey"`
	PublicID      string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserPrompt    string         `gorm:"type:text;not null"`
	BotResponse   string         `gorm:"type:text;not null"`
	Scores        datatypes.JSON `gorm:"type:jsonb"`
	Notes         string         `gorm:"type:text"`
	WeightedScore float64        `gorm:"not null;default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

// TableName specifies the table name for FeedbackReport.
func (FeedbackReport) TableName() string {
	return "feedback_reports"
}
