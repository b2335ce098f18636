package models

import "time"

// Follow is a directed subscription: UserID follows AuthorID. The composite
// unique index and the check constraint keep duplicates and self-follows out
// even under concurrent inserts.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_author;check:chk_no_self_follow,user_id <> author_id"`
	AuthorID  uint      `json:"author_id" gorm:"not null;uniqueIndex:idx_user_author;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
