// seed-ach-config creates or updates the ACH garnishment configuration and
// originating bank details used by file generation. Values come from env so
// the same binary seeds dev and staging.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-ach-config
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/garnishedge/garnishedge_backend/config"
	"github.com/garnishedge/garnishedge_backend/models"
	"github.com/garnishedge/garnishedge_backend/utils"
	"gorm.io/gorm"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	companyId := envOr("SEED_COMPANY_ID", "1234567890")

	cfg := models.AchGarnishmentConfig{
		PaymentType:             envOr("SEED_PAYMENT_TYPE", "CCD"),
		ServiceClassCode:        envOr("SEED_SERVICE_CLASS_CODE", "200"),
		MedicalSupportIndicator: "N",
		CompanyName:             envOr("SEED_COMPANY_NAME", "GARNISHEDGE PAYROLL"),
		CompanyId:               companyId,
		AccountType:             envOr("SEED_ACCOUNT_TYPE", "checking"),
		PeosBankRoutingNumber:   envOr("SEED_DEST_ROUTING", "091000019"),
		PeosBankName:            envOr("SEED_DEST_BANK_NAME", "Wells Fargo Garnishment"),
		EntryDescription:        envOr("SEED_ENTRY_DESCRIPTION", "GARNISH"),
		IsActive:                utils.NewTrue(),
	}

	var existingCfg models.AchGarnishmentConfig
	err := db.WithContext(ctx).Where("company_id = ?", cfg.CompanyId).First(&existingCfg).Error
	switch {
	case err == nil:
		cfg.ID = existingCfg.ID
		if err := db.WithContext(ctx).Save(&cfg).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to update ach config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("updated ach_garnishment_configs id=%d\n", cfg.ID)
	case err == gorm.ErrRecordNotFound:
		if err := db.WithContext(ctx).Create(&cfg).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create ach config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created ach_garnishment_configs id=%d\n", cfg.ID)
	default:
		fmt.Fprintf(os.Stderr, "failed to lookup ach config: %v\n", err)
		os.Exit(1)
	}

	bank := models.AchBankDetails{
		CompanyId:                companyId,
		OriginatingRoutingNumber: envOr("SEED_ORIGIN_ROUTING", "121000248"),
		OriginatingBankName:      envOr("SEED_ORIGIN_BANK_NAME", "Wells Fargo Garnishment"),
		IsActive:                 utils.NewTrue(),
	}

	var existingBank models.AchBankDetails
	err = db.WithContext(ctx).Where("company_id = ?", bank.CompanyId).First(&existingBank).Error
	switch {
	case err == nil:
		bank.ID = existingBank.ID
		if err := db.WithContext(ctx).Save(&bank).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to update bank details: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("updated ach_bank_details id=%d\n", bank.ID)
	case err == gorm.ErrRecordNotFound:
		if err := db.WithContext(ctx).Create(&bank).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create bank details: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created ach_bank_details id=%d\n", bank.ID)
	default:
		fmt.Fprintf(os.Stderr, "failed to lookup bank details: %v\n", err)
		os.Exit(1)
	}
}
