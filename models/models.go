package models

import "time"

// Model is the base for all persisted entities. No soft delete: referential
// actions (cascade, set null) must fire on real deletes.
type Model struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
