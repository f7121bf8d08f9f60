package model

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	Category    string  `gorm:"type:varchar(100);index" json:"category"`
	Stock       int     `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	ImageURL    string  `gorm:"type:text" json:"image_url"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}
