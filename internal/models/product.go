package models

import "time"

// ProductType categorizes a donated item.
type ProductType string

const (
	TypeShoes       ProductType = "shoes"
	TypeShirts      ProductType = "shirts"
	TypePants       ProductType = "pants"
	TypeSkirt       ProductType = "skirt"
	TypeDress       ProductType = "dress"
	TypeJacket      ProductType = "jacket"
	TypeAccessories ProductType = "accessories"
)

// ProductGender is the optional gender classification of an item.
type ProductGender string

const (
	GenderMale      ProductGender = "male"
	GenderFemale    ProductGender = "female"
	GenderNonBinary ProductGender = "non-binary"
)

// Product represents a catalog item. Items are never physically deleted:
// IsHidden soft-deletes and IsSold archives, both one-way flags.
type Product struct {
	ID                     string        `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductType            ProductType   `json:"productType" gorm:"type:varchar(50)" validate:"required,oneof=shoes shirts pants skirt dress jacket accessories"`
	ProductGender          ProductGender `json:"productGender" gorm:"type:varchar(50)" validate:"omitempty,oneof=male female non-binary"`
	ProductSizeShoe        string        `json:"productSizeShoe" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	ProductSizes           string        `json:"productSizes" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	ProductSizePantsWaist  string        `json:"productSizePantsWaist" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	ProductSizePantsInseam string        `json:"productSizePantsInseam" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	ProductDescription     string        `json:"productDescription" gorm:"type:text" validate:"omitempty,max=2000"`
	ProductImage           string        `json:"productImage" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	IsHidden               bool          `json:"isHidden" gorm:"default:false"`
	IsSold                 bool          `json:"isSold" gorm:"default:false"`

	// CreatedByID is set once at creation and never changes. UpdatedByID is
	// rewritten on every update. Neither is enforced with a foreign key, so a
	// deleted user leaves dangling references here.
	CreatedByID string  `json:"-" gorm:"type:varchar(36)"`
	CreatedBy   *User   `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	UpdatedByID *string `json:"-" gorm:"type:varchar(36)"`
	UpdatedBy   *User   `json:"updatedBy,omitempty" gorm:"foreignKey:UpdatedByID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
