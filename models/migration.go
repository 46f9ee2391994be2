package models

import (
	"log"

	"github.com/garnishedge/garnishedge_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&AchGarnishmentConfig{}, &AchBankDetails{}, &AchFile{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
