package domain

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey"`
	ParentID  *int64    `gorm:"index:ux_categories_parent_name,priority:1"`
	Name      string    `gorm:"type:text;not null;index:ux_categories_parent_name,priority:2"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Category) TableName() string { return "categories" }

// CategoryAttribute binds an attribute definition to a category with a
// required-or-optional flag. Composite key of (category, attribute).
type CategoryAttribute struct {
	CategoryID  int64 `gorm:"primaryKey"`
	AttributeID int64 `gorm:"primaryKey"`
	IsRequired  bool  `gorm:"not null;default:false"`
}

func (CategoryAttribute) TableName() string { return "category_attributes" }
