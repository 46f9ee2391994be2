package models

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/garnishedge/garnishedge_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AchFile stores metadata for one generated remittance file. The payload
// itself is returned in the HTTP response (and optionally archived to GCS);
// only this row is persisted.
//
// The (pay_date, file_id_modifier) unique index is the reservation that
// makes sequence allocation safe under concurrency: two runs for the same
// pay date cannot both commit the same modifier.
type AchFile struct {
	ID int `gorm:"primary_key" json:"id"`

	FileName   string `gorm:"size:255;not null" json:"file_name"`
	FileFormat string `gorm:"size:10;default:'txt'" json:"file_format"`
	FileUrl    string `gorm:"size:512" json:"file_url"`
	FileSize   int    `json:"file_size"` // bytes

	GeneratedAt time.Time `gorm:"autoCreateTime;index" json:"generated_at"`
	GeneratedBy string    `gorm:"size:100" json:"generated_by"`

	PayDate            time.Time       `gorm:"type:date;index;uniqueIndex:uniq_paydate_modifier,priority:1" json:"pay_date"`
	AgencyPayee        string          `gorm:"size:255" json:"agency_payee"`
	TotalPaymentCount  int             `gorm:"default:0" json:"total_payment_count"`
	TotalPaymentAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_payment_amount"`

	BatchId        string `gorm:"size:50;index" json:"batch_id"`
	FileIdModifier string `gorm:"size:1;uniqueIndex:uniq_paydate_modifier,priority:2" json:"file_id_modifier"`

	// JSON arrays, matching how the register endpoint returns them.
	AssociatedCaseIds     string `gorm:"type:text" json:"associated_case_ids"`
	TransactionReferences string `gorm:"type:text" json:"transaction_references"`

	IsActive *bool  `gorm:"not null;default:true" json:"is_active"`
	Notes    string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AchFile) TableName() string {
	return "ach_files"
}

// AchFileFilter narrows the register listing.
type AchFileFilter struct {
	PayDate    *time.Time
	BatchId    string
	FileFormat string
}

// ListAchFiles returns active metadata rows, newest first.
func ListAchFiles(ctx context.Context, filter AchFileFilter) ([]*AchFile, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).Where("is_active = ?", true)
	if filter.PayDate != nil {
		query = query.Where("pay_date = ?", filter.PayDate.Format("2006-01-02"))
	}
	if filter.BatchId != "" {
		query = query.Where("batch_id = ?", filter.BatchId)
	}
	if filter.FileFormat != "" {
		query = query.Where("file_format = ?", filter.FileFormat)
	}

	var files []*AchFile
	if err := query.Order("generated_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// UsedFileIdModifiers returns the modifiers already claimed for a pay date.
// Must run on the allocation transaction so it observes reserved rows.
func UsedFileIdModifiers(tx *gorm.DB, payDate time.Time) ([]string, error) {
	var modifiers []string
	err := tx.Model(&AchFile{}).
		Where("pay_date = ?", payDate.Format("2006-01-02")).
		Where("file_id_modifier <> ''").
		Pluck("file_id_modifier", &modifiers).Error
	if err != nil {
		return nil, err
	}
	return modifiers, nil
}

// MaxBatchNumber returns the highest numeric batch id stored for a pay
// date. Non-numeric batch ids are ignored, as if absent.
func MaxBatchNumber(tx *gorm.DB, payDate time.Time) (int, error) {
	var batchIds []string
	err := tx.Model(&AchFile{}).
		Where("pay_date = ?", payDate.Format("2006-01-02")).
		Pluck("batch_id", &batchIds).Error
	if err != nil {
		return 0, err
	}

	max := 0
	for _, id := range batchIds {
		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}
