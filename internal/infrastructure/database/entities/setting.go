package entities

import "time"

// Setting represents a single service level key/value setting.
type Setting struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"type:varchar(128);uniqueIndex;not null"`
	Value     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Setting.
func (Setting) TableName() string {
	return "settings"
}
