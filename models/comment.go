package models

// Comment is an append-only remark on a post. Post deletion keeps the comment
// row with post_id cleared; author deletion cascades.
type Comment struct {
	Model
	Text     string `json:"text" gorm:"type:text;not null"`
	AuthorID uint   `json:"author_id" gorm:"not null;index"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	PostID   *uint  `json:"post_id" gorm:"index"`
	Post     *Post  `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL"`
}
