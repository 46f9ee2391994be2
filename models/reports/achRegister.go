// Package reports builds spreadsheet exports of generation metadata for
// back-office reconciliation.
package reports

import (
	"fmt"

	"github.com/garnishedge/garnishedge_backend/models"
	"github.com/xuri/excelize/v2"
)

// BuildAchRegister renders the generated-file register as a workbook. The
// caller owns the returned file and is responsible for writing it out.
func BuildAchRegister(files []*models.AchFile) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Sheet1"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	// Add headers
	f.SetCellValue(sheetName, "A1", "FileName")
	f.SetCellValue(sheetName, "B1", "Format")
	f.SetCellValue(sheetName, "C1", "PayDate")
	f.SetCellValue(sheetName, "D1", "BatchId")
	f.SetCellValue(sheetName, "E1", "Modifier")
	f.SetCellValue(sheetName, "F1", "PaymentCount")
	f.SetCellValue(sheetName, "G1", "PaymentAmount")
	f.SetCellValue(sheetName, "H1", "AgencyPayee")
	f.SetCellValue(sheetName, "I1", "GeneratedAt")
	f.SetCellValue(sheetName, "J1", "GeneratedBy")

	// Add data
	for i, d := range files {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+row, d.FileName)
		f.SetCellValue(sheetName, "B"+row, d.FileFormat)
		f.SetCellValue(sheetName, "C"+row, d.PayDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, "D"+row, d.BatchId)
		f.SetCellValue(sheetName, "E"+row, d.FileIdModifier)
		f.SetCellValue(sheetName, "F"+row, d.TotalPaymentCount)
		f.SetCellValue(sheetName, "G"+row, d.TotalPaymentAmount.InexactFloat64())
		f.SetCellValue(sheetName, "H"+row, d.AgencyPayee)
		f.SetCellValue(sheetName, "I"+row, d.GeneratedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, "J"+row, d.GeneratedBy)
	}

	return f, nil
}
