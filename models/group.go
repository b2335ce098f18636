package models

// Group is a named category a post may optionally belong to.
type Group struct {
	Model
	Title       string `json:"title" conform:"trim" binding:"required"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null" conform:"trim,lower"`
	Description string `json:"description" gorm:"type:varchar(600)" conform:"trim"`
	Posts       []Post `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
}
