package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/flouswise/finance/internal/model"
	"github.com/flouswise/finance/pkg/currency"
	"github.com/flouswise/finance/pkg/datetime"
)

// ReportSource serves the stored analytics a report is built from.
type ReportSource interface {
	GetHealthScore(ctx context.Context, userID string) (*model.HealthScore, error)
	GetRatios(ctx context.Context, userID string) (*model.Ratios, error)
	GetSpending(ctx context.Context, userID string) (*model.SpendingBreakdown, error)
	GetNetWorthTrend(ctx context.Context, userID string, monthsBack int) ([]model.NetWorthDataPoint, error)
}

// ProfileReader loads a single profile.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
}

// ExportService renders analytics as downloadable PDF and CSV documents.
type ExportService struct {
	analytics ReportSource
	profiles  ProfileReader
	now       func() time.Time
}

func NewExportService(analytics ReportSource, profiles ProfileReader) *ExportService {
	return &ExportService{analytics: analytics, profiles: profiles, now: time.Now}
}

// AnalyticsReportData contains the data needed for PDF report generation.
type AnalyticsReportData struct {
	FullName    string
	Currency    currency.Currency
	HealthScore *model.HealthScore
	Ratios      *model.Ratios
	Spending    *model.SpendingBreakdown
	GeneratedAt time.Time
}

// NetWorthCSV exports the net worth trend of the last monthsBack months.
func (s *ExportService) NetWorthCSV(ctx context.Context, userID string, monthsBack int) ([]byte, error) {
	points, err := s.analytics.GetNetWorthTrend(ctx, userID, monthsBack)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Date", "Net Worth"}); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range points {
		row := []string{p.Date.UTC().Format(time.RFC3339), p.NetWorth.StringFixed(2)}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}

// AnalyticsReportPDF gathers the stored analytics of a user and renders them.
func (s *ExportService) AnalyticsReportPDF(ctx context.Context, userID string) ([]byte, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	score, err := s.analytics.GetHealthScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	ratios, err := s.analytics.GetRatios(ctx, userID)
	if err != nil {
		return nil, err
	}
	spending, err := s.analytics.GetSpending(ctx, userID)
	if err != nil {
		return nil, err
	}

	return RenderAnalyticsReport(AnalyticsReportData{
		FullName:    profile.BasicInformation.FullName,
		Currency:    currency.Currency(profile.Currency),
		HealthScore: score,
		Ratios:      ratios,
		Spending:    spending,
		GeneratedAt: s.now(),
	})
}

// RenderAnalyticsReport lays out the health report as an A4 PDF.
func RenderAnalyticsReport(data AnalyticsReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 12, "FlousWise", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 14)
	pdf.SetTextColor(108, 117, 125)
	subtitle := "Financial Health Report"
	if data.FullName != "" {
		subtitle += " - " + data.FullName
	}
	pdf.CellFormat(0, 8, latin1(pdf, subtitle), "", 1, "C", false, 0, "")
	if line, ok := currencyLine(data); ok {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, latin1(pdf, line), "", 1, "C", false, 0, "")
	}

	pdf.Ln(10)

	score := data.HealthScore
	section(pdf, "Health Score")

	pdf.SetFont("Arial", "B", 28)
	r, g, b := statusColor(score.Status)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(0, 14, fmt.Sprintf("%d / 100  %s", score.OverallScore, score.Status), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	tableHeader(pdf, []string{"Component", "Weight", "Score"}, []float64{90, 40, 40})
	pdf.SetFont("Arial", "", 10)
	components := []struct {
		name   string
		weight string
		score  int
	}{
		{"Income Stability", "20%", score.IncomeStability},
		{"Expense Management", "20%", score.ExpenseManagement},
		{"Debt Health", "20%", score.DebtHealth},
		{"Emergency Fund", "25%", score.EmergencyFund},
		{"Savings Rate", "15%", score.SavingsRate},
	}
	for _, c := range components {
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(90, 7, c.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, c.weight, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", c.score), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(10)

	ratios := data.Ratios
	section(pdf, "Financial Ratios")
	tableHeader(pdf, []string{"Ratio", "Value", "Status"}, []float64{90, 40, 40})
	pdf.SetFont("Arial", "", 10)
	ratioRows := []struct {
		name   string
		value  string
		status string
	}{
		{"Debt to Income", fmt.Sprintf("%.1f%%", ratios.DebtToIncomeRatio), ratios.DebtToIncomeStatus},
		{"Savings Rate", fmt.Sprintf("%.1f%%", ratios.SavingsRate), ratios.SavingsRateStatus},
		{"Emergency Fund", fmt.Sprintf("%.1f months", ratios.EmergencyFundMonths), ratios.EmergencyFundStatus},
		{"Expense to Income", fmt.Sprintf("%.1f%%", ratios.ExpenseToIncomeRatio), ratios.ExpenseToIncomeStatus},
	}
	for _, row := range ratioRows {
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(90, 7, row.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row.value, "1", 0, "R", false, 0, "")
		r, g, b := statusColor(row.status)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(40, 7, row.status, "1", 1, "R", false, 0, "")
	}

	pdf.Ln(10)

	spending := data.Spending
	section(pdf, "Spending by Category")
	tableHeader(pdf, []string{"Category", "Amount", "% of Total"}, []float64{80, 50, 40})
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(33, 37, 41)
	for _, name := range model.SpendingCategories {
		amount := currency.NewMoney(spending.Categories[name], data.Currency)
		pdf.CellFormat(80, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, amount.FormatCode(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.1f%%", spending.Percentages[name]), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, currency.NewMoney(spending.TotalExpenses, data.Currency).FormatCode(), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "", "1", 1, "R", false, 0, "")

	if len(spending.Insights) > 0 {
		pdf.Ln(5)
		bullets(pdf, spending.Insights)
	}

	if len(score.Recommendations) > 0 {
		pdf.Ln(10)
		section(pdf, "Recommendations")
		bullets(pdf, score.Recommendations)
	}

	// Footer
	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(108, 117, 125)
	footer := fmt.Sprintf("Generated by FlousWise on %s - scores calculated %s",
		data.GeneratedAt.Format(datetime.ReportDateFormat),
		score.CalculatedAt.Format(datetime.ReportDateTimeFormat))
	pdf.CellFormat(0, 5, footer, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// currencyLine names the report currency and the monthly spending total.
func currencyLine(data AnalyticsReportData) (string, bool) {
	info, ok := currency.GetInfo(data.Currency)
	if !ok || data.Spending == nil {
		return "", false
	}
	return fmt.Sprintf("Amounts in %s. Monthly spending: %s",
		info.Name, currency.NewMoney(data.Spending.TotalExpenses, data.Currency).FormatCode()), true
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(5)
}

func tableHeader(pdf *gofpdf.Fpdf, titles []string, widths []float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(248, 249, 250)
	pdf.SetTextColor(33, 37, 41)
	for i, title := range titles {
		align := "R"
		if i == 0 {
			align = "L"
		}
		ln := 0
		if i == len(titles)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, title, "1", ln, align, true, 0, "")
	}
}

func bullets(pdf *gofpdf.Fpdf, lines []string) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(33, 37, 41)
	for _, line := range lines {
		pdf.MultiCell(0, 6, latin1(pdf, "- "+line), "", "L", false)
	}
}

// latin1 converts free text to the code page of the core fonts.
func latin1(pdf *gofpdf.Fpdf, s string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(s)
}

// statusColor covers health labels and ratio bands; both use "Good".
func statusColor(status string) (int, int, int) {
	switch status {
	case model.HealthStatusExcellent, model.HealthStatusGood:
		return 40, 167, 69
	case model.HealthStatusFair, model.RatioStatusWarning:
		return 255, 153, 0
	case model.HealthStatusPoor, model.RatioStatusCritical:
		return 220, 53, 69
	default:
		return 33, 37, 41
	}
}
