package entities

import "time"

// KnowledgeDocument represents the persisted knowledge base entry.
type KnowledgeDocument struct {
	ID        uint      `gorm:"primaryKey"`
	PublicID  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Title     string    `gorm:"type:varchar(512);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for KnowledgeDocument.
func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
