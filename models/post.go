package models

// Post is a published entry. The publication time is CreatedAt and is never
// touched by edits. Author deletion cascades; group deletion clears GroupID.
type Post struct {
	Model
	Text     string `json:"text" gorm:"type:text;not null"`
	AuthorID uint   `json:"author_id" gorm:"not null;index"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uint  `json:"group_id"`
	Group    *Group `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image    string `json:"image,omitempty"`
}
