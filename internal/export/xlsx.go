// Package export renders financial reports as spreadsheets for the admin panel.
package export

import (
	"fmt"
	"io"
	"time"

	"charity-transparency/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary    = "Summary"
	SheetMonthly    = "Monthly"
	SheetCategories = "Categories"
	SheetTimeline   = "Timeline"

	AnonymousDonor = "Anonymous"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout      = "2006-01-02 15:04"
)

// WriteFinancialReportXLSX writes the report as a workbook with one sheet per
// report section
func WriteFinancialReportXLSX(w io.Writer, report *models.FinancialReport) error {
	if report == nil {
		return fmt.Errorf("report is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	loc := reportLocation(report.Timezone)

	sheets := []struct {
		name    string
		headers []interface{}
		rows    [][]interface{}
		widths  float64
	}{
		{SheetSummary, []interface{}{"Metric", "Value"}, summaryRows(report), 28},
		{SheetMonthly, []interface{}{"Month", "Donations", "Expenses", "Balance", "Running Balance", "Donation Count", "Expense Count"}, monthlyRows(report), 18},
		{SheetCategories, []interface{}{"Category", "Total", "Count", "Percentage"}, categoryRows(report), 18},
		{SheetTimeline, []interface{}{"Date", "Type", "Description", "Name", "Category", "Amount"}, timelineRows(report, loc), 22},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}

		if err := writeTable(f, sheet.name, header, sheet.headers, sheet.rows); err != nil {
			return err
		}

		lastCol, _ := excelize.ColumnNumberToName(len(sheet.headers))
		if err := f.SetColWidth(sheet.name, "A", lastCol, sheet.widths); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, headers []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func summaryRows(report *models.FinancialReport) [][]interface{} {
	s := report.Summary
	return [][]interface{}{
		{"View", report.View},
		{"Timezone", report.Timezone},
		{"Generated At", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Total Donations", amount(s.TotalDonations)},
		{"Total Expenses", amount(s.TotalExpenses)},
		{"Balance", amount(s.Balance)},
		{"Donation Count", s.DonationCount},
		{"Expense Count", s.ExpenseCount},
		{"Unique Donors", s.UniqueDonors},
		{"Average Donation", amount(s.AverageDonation)},
		{"Utilization Rate (%)", amount(s.UtilizationRate)},
		{"Campaign Donations", amount(s.CampaignDonations)},
		{"Campaign Donation Count", s.CampaignDonationCount},
		{"General Donations", amount(s.GeneralDonations)},
		{"General Donation Count", s.GeneralDonationCount},
		{"Skipped Records", report.SkippedRecords},
	}
}

func monthlyRows(report *models.FinancialReport) [][]interface{} {
	rows := make([][]interface{}, 0, len(report.Monthly))
	for _, m := range report.Monthly {
		rows = append(rows, []interface{}{
			m.Month,
			amount(m.DonationTotal),
			amount(m.ExpenseTotal),
			amount(m.Balance),
			amount(m.RunningBalance),
			m.DonationCount,
			m.ExpenseCount,
		})
	}
	return rows
}

func categoryRows(report *models.FinancialReport) [][]interface{} {
	rows := make([][]interface{}, 0, len(report.Categories))
	for _, c := range report.Categories {
		rows = append(rows, []interface{}{c.Category, amount(c.Total), c.Count, amount(c.Percentage)})
	}
	return rows
}

func timelineRows(report *models.FinancialReport, loc *time.Location) [][]interface{} {
	rows := make([][]interface{}, 0, len(report.Timeline))
	for _, entry := range report.Timeline {
		name := ""
		if entry.Type == models.TimelineTypeDonation {
			name = AnonymousDonor
			if entry.Name != nil {
				name = *entry.Name
			}
		}
		rows = append(rows, []interface{}{
			entry.Date.In(loc).Format(dateLayout),
			entry.Type,
			entry.Description,
			name,
			entry.Category,
			amount(entry.Amount),
		})
	}
	return rows
}

func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func reportLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
