package models

import "time"

// Category groups products. Slug is derived from Name and unique.
type Category struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(120);not null"`
	Slug      string    `gorm:"column:slug;type:varchar(140);not null;uniqueIndex:categories_slug_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
