package entities

import (
	"time"

	"gorm.io/datatypes"
)

// ChatSession represents the persisted chat session record. Messages are
// stored denormalized as a JSON array since they are only ever read and
// written as a whole transcript.
type ChatSession struct {
	ID           uint           `gorm:"primaryKey"`
	PublicID     string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	Model        string         `gorm:"type:varchar(128);not null"`
	Messages     datatypes.JSON `gorm:"type:jsonb"`
	IsProcessing bool           `gorm:"not null;default:false"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ChatSession.
func (ChatSession) TableName() string {
	return "chat_sessions"
}
