package models

import (
	"context"
	"errors"
	"time"

	"github.com/garnishedge/garnishedge_backend/config"
	"gorm.io/gorm"
)

// AchGarnishmentConfig is the singleton record describing how garnishment
// remittance files are originated: payment type, service class, and the
// receiving (PEO's disbursement) bank.
type AchGarnishmentConfig struct {
	ID int `gorm:"primary_key" json:"id"`

	PaymentType             string `gorm:"size:3;not null" json:"payment_type" binding:"required,oneof=CCD CTX PPD"`
	ServiceClassCode        string `gorm:"size:3;not null" json:"service_class_code" binding:"required,oneof=200 220 225"`
	MedicalSupportIndicator string `gorm:"size:1;default:'N'" json:"medical_support_indicator"`

	CompanyName string `gorm:"size:255;not null" json:"company_name" binding:"required"`
	CompanyId   string `gorm:"size:20;not null" json:"company_id" binding:"required"`

	AccountType string `gorm:"size:10" json:"account_type" binding:"omitempty,oneof=checking savings"`
	// TransactionCode may be blank; ResolveTransactionCode derives the
	// credit code from the account type in that case.
	TransactionCode string `gorm:"size:2" json:"transaction_code"`

	// PeosBankRoutingNumber is the immediate destination of the file.
	PeosBankRoutingNumber string `gorm:"size:50;not null" json:"peos_bank_routing_number" binding:"required"`
	PeosBankName          string `gorm:"size:255;default:'Wells Fargo Garnishment'" json:"peos_bank_name"`

	EntryDescription string `gorm:"size:10;default:'GARNISH'" json:"entry_description"`

	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AchGarnishmentConfig) TableName() string {
	return "ach_garnishment_configs"
}

// ResolveTransactionCode returns the configured transaction code, deriving
// the plain credit code from the account type when none is stored.
func (c *AchGarnishmentConfig) ResolveTransactionCode() string {
	if c.TransactionCode != "" {
		return c.TransactionCode
	}
	if c.AccountType == "savings" {
		return "32"
	}
	return "22"
}

// GetActiveAchConfig loads the active configuration row. Its absence is
// fatal for file generation.
func GetActiveAchConfig(ctx context.Context) (*AchGarnishmentConfig, error) {
	db := config.GetDB()

	var cfg AchGarnishmentConfig
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}
