package models

import "time"

// StorageSlot is a single named entry of the local key-value store.
// The whole application list lives in one slot as serialized text.
type StorageSlot struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default table name
func (StorageSlot) TableName() string {
	return "storage_slots"
}
