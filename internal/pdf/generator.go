package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/energen/genquote/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the quote as a quarterly service table.
func (g *Generator) Generate(doc model.QuoteDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Generator Maintenance Service Quote", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Quote %s", doc.Quote.QuoteNumber), "", 1, "C", false, 0, "")
	if doc.Quote.ProjectName != "" {
		pdf.CellFormat(0, 6, doc.Quote.ProjectName, "", 1, "C", false, 0, "")
	}
	if doc.Quote.RFPNumber != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("RFP %s", doc.Quote.RFPNumber), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	g.addCustomerBlock(pdf, doc.Quote.Customer)
	pdf.Ln(2)
	g.addContractBlock(pdf, doc.Quote.Contract, doc.Schedule)
	pdf.Ln(4)

	for _, quarter := range doc.Schedule.Quarters {
		g.addQuarter(pdf, quarter)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Annual Contract Total: $%s", formatAmount(doc.Schedule.AnnualTotal)), "", 1, "R", false, 0, "")

	if len(doc.Schedule.Warnings) > 0 {
		g.addWarnings(pdf, doc.Schedule.Warnings)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) addCustomerBlock(pdf *gofpdf.Fpdf, customer model.Customer) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Customer", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		customer.CompanyName,
		fmt.Sprintf("Contact: %s", safeValue(customer.ContactName)),
		fmt.Sprintf("%s, %s %s %s", safeValue(customer.Address), safeValue(customer.City), customer.State, customer.Zip),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func (g *Generator) addContractBlock(pdf *gofpdf.Fpdf, contract model.Contract, sched model.Schedule) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Contract Terms", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		fmt.Sprintf("Start date: %s", formatDate(sched.StartDate)),
		fmt.Sprintf("First service month: %s", sched.FirstServiceMonth.String()),
		fmt.Sprintf("Crew: %d technician(s), %.1f hours per technician per day", contract.CrewSize, contract.HoursPerTech),
		fmt.Sprintf("Weather profile: %s", safeValue(contract.WeatherProfile)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func (g *Generator) addQuarter(pdf *gofpdf.Fpdf, quarter model.Quarter) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, quarter.Label, "", 1, "L", false, 0, "")

	headers := []string{"Visit", "Unit", "Service", "Hours", "Cost"}
	colWidths := []float64{18, 40, 72, 20, 30}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, visit := range quarter.Visits {
		day := fmt.Sprintf("Day %d", visit.Day)
		if visit.Date == nil {
			day += " (TBD)"
		}
		for i, line := range visit.Lines {
			label := day
			if i > 0 {
				label = ""
			}
			row := []string{
				label,
				line.AssetID,
				line.ServiceName,
				fmt.Sprintf("%.1f", line.Hours),
				formatAmount(line.Cost),
			}
			drawTableRow(pdf, g.fontName, row, colWidths, false)
		}
		if visit.OverBudget {
			pdf.SetTextColor(200, 0, 0)
			pdf.MultiCell(0, 5, fmt.Sprintf("Day %d exceeds the crew's daily labor budget (%.1f hours).", visit.Day, visit.TotalHours), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}

	pdf.SetFont(g.fontName, "B", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Quarter total: $%s", formatAmount(quarter.Total)), "", 1, "R", false, 0, "")
	pdf.Ln(2)
}

func (g *Generator) addWarnings(pdf *gofpdf.Fpdf, warnings []model.ScheduleWarning) {
	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Scheduling Notes", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	for _, w := range warnings {
		text := fmt.Sprintf("[%s] Q%d: %s", strings.ToUpper(string(w.Severity)), w.Quarter, w.Message)
		if w.Recommendation != "" {
			text += ". " + w.Recommendation
		}
		pdf.MultiCell(0, 5, text, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("01/02/2006")
}
