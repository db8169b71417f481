package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/energen/genquote/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds a workbook with a summary sheet and one sheet per
// quarter of the schedule.
func (g *Generator) Generate(doc model.QuoteDocument) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, doc); err != nil {
		return nil, err
	}

	for _, quarter := range doc.Schedule.Quarters {
		sheetName := sanitizeSheetName(quarter.Label)
		file.NewSheet(sheetName)
		if err := g.writeQuarter(file, sheetName, quarter); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, doc model.QuoteDocument) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Quote Number")
	set("B1", doc.Quote.QuoteNumber)
	set("A2", "Customer")
	set("B2", doc.Quote.Customer.CompanyName)
	set("A3", "Project")
	set("B3", doc.Quote.ProjectName)
	set("A4", "Contract Start")
	set("B4", formatDate(doc.Schedule.StartDate))
	set("A5", "First Service Month")
	set("B5", doc.Schedule.FirstServiceMonth.String())
	set("A6", "Generator Units")
	set("B6", len(doc.Quote.Units))
	set("A7", "Annual Total")
	set("B7", formatAmount(doc.Schedule.AnnualTotal))

	tableRow := 9
	set(fmt.Sprintf("A%d", tableRow), "Quarter")
	set(fmt.Sprintf("B%d", tableRow), "Month")
	set(fmt.Sprintf("C%d", tableRow), "Visits")
	set(fmt.Sprintf("D%d", tableRow), "Quarter Total")

	for i, quarter := range doc.Schedule.Quarters {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), quarter.Label)
		set(fmt.Sprintf("B%d", row), quarter.Month.String())
		set(fmt.Sprintf("C%d", row), len(quarter.Visits))
		set(fmt.Sprintf("D%d", row), formatAmount(quarter.Total))
	}

	if len(doc.Schedule.Warnings) > 0 {
		row := tableRow + len(doc.Schedule.Quarters) + 2
		set(fmt.Sprintf("A%d", row), "Scheduling Notes")
		for i, w := range doc.Schedule.Warnings {
			set(fmt.Sprintf("A%d", row+1+i), fmt.Sprintf("[%s] Q%d", strings.ToUpper(string(w.Severity)), w.Quarter))
			set(fmt.Sprintf("B%d", row+1+i), w.Message)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "C", 10)
	_ = file.SetColWidth(sheet, "D", "D", 16)
	return nil
}

func (g *Generator) writeQuarter(file *excelize.File, sheet string, quarter model.Quarter) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Quarter")
	set("B1", quarter.Label)
	set("A2", "Month")
	set("B2", quarter.Month.String())
	set("A3", "Visits")
	set("B3", len(quarter.Visits))
	set("A4", "Quarter Total")
	set("B4", formatAmount(quarter.Total))

	tableRow := 6
	headers := []string{"Visit Day", "Date", "Unit", "Service", "Hours", "Cost", "Over Budget"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	row := tableRow + 1
	for _, visit := range quarter.Visits {
		for _, line := range visit.Lines {
			set(fmt.Sprintf("A%d", row), visit.Day)
			set(fmt.Sprintf("B%d", row), formatVisitDate(visit.Date))
			set(fmt.Sprintf("C%d", row), line.AssetID)
			set(fmt.Sprintf("D%d", row), line.ServiceName)
			set(fmt.Sprintf("E%d", row), line.Hours)
			set(fmt.Sprintf("F%d", row), formatAmount(line.Cost))
			if visit.OverBudget {
				set(fmt.Sprintf("G%d", row), "YES")
			}
			row++
		}
	}

	_ = file.SetColWidth(sheet, "A", "B", 12)
	_ = file.SetColWidth(sheet, "C", "D", 32)
	_ = file.SetColWidth(sheet, "E", "G", 12)
	return nil
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Quarter"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	if len(value) > 31 {
		value = value[:31]
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatVisitDate(t *time.Time) string {
	if t == nil {
		return "TBD"
	}
	return t.Format("2006-01-02")
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
