package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

// exportColumns is the column order of job exports.
var exportColumns = []string{
	"id", domain.FieldTitle, domain.FieldEmail, domain.FieldCompany, domain.FieldCity,
	domain.FieldState, domain.FieldCountry, domain.FieldPostalCode, domain.FieldPostCategory,
	domain.FieldPostSubcategory, domain.FieldDateStart, domain.FieldDateEnd, domain.FieldAddress,
	domain.FieldPhone, domain.FieldCellphone, domain.FieldAmountToPay, domain.FieldPaymentComission,
	domain.FieldSlug, domain.FieldDeleted, "created_at",
}

func (u *jobUsecase) ExportJobs(ctx context.Context, format string) ([]byte, string, error) {
	jobs, err := u.rules.repo.FetchAll(ctx)
	if err != nil {
		return nil, "", err
	}

	stamp := u.now().Format("20060102_150405")
	switch format {
	case "xlsx", "":
		data, err := exportExcel(jobs)
		return data, fmt.Sprintf("jobs_%s.xlsx", stamp), err
	case "csv":
		data, err := exportCSV(jobs)
		return data, fmt.Sprintf("jobs_%s.csv", stamp), err
	default:
		return nil, "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", format))
	}
}

func exportExcel(jobs []domain.Job) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Jobs"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx := range jobs {
		for colIdx, value := range exportRow(&jobs[rowIdx]) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(jobs []domain.Job) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for i := range jobs {
		if err := w.Write(exportRow(&jobs[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}

// exportRow renders j in exportColumns order.
func exportRow(j *domain.Job) []string {
	area := func(a *domain.PostArea) string {
		if a == nil {
			return ""
		}
		return a.Name
	}
	str := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	amount, commission := "", ""
	if j.AmountToPay != nil {
		amount = strconv.Itoa(*j.AmountToPay)
	}
	if j.PaymentComission != nil {
		commission = strconv.Itoa(j.PaymentComission.Percentage)
	}
	return []string{
		j.ID.String(), j.Title, j.Email, str(j.Company), str(j.City),
		str(j.State), str(j.Country), str(j.PostalCode), area(j.PostCategory),
		area(j.PostSubcategory), j.DateStart.Format(time.RFC3339), j.DateEnd.Format(time.RFC3339), str(j.Address),
		str(j.Phone), str(j.Cellphone), amount, commission,
		j.Slug, strconv.FormatBool(j.Deleted), j.CreatedAt.Format(time.RFC3339),
	}
}
