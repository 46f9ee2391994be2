package models

import (
	"context"
	"errors"
	"time"

	"github.com/garnishedge/garnishedge_backend/config"
	"gorm.io/gorm"
)

// AchBankDetails holds the originating bank identity for a company. The
// first 8 digits of the routing number become the originating DFI id and
// trace number prefix.
type AchBankDetails struct {
	ID int `gorm:"primary_key" json:"id"`

	CompanyId                string `gorm:"size:20;index;not null" json:"company_id" binding:"required"`
	OriginatingRoutingNumber string `gorm:"size:9;not null" json:"originating_routing_number" binding:"required,len=9"`
	OriginatingBankName      string `gorm:"size:255;default:'Wells Fargo Garnishment'" json:"originating_bank_name"`

	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AchBankDetails) TableName() string {
	return "ach_bank_details"
}

// GetActiveBankDetails loads the active originating bank row for a company,
// or the first active row when companyId is blank.
func GetActiveBankDetails(ctx context.Context, companyId string) (*AchBankDetails, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).Where("is_active = ?", true)
	if companyId != "" {
		query = query.Where("company_id = ?", companyId)
	}

	var details AchBankDetails
	err := query.Order("id").First(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &details, nil
}
