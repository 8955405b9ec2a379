package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

func (r *ExportRepositoryImpl) ExportToCSV(report entity.MonetizationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Period Start", "Period End", "Last Updated",
		"Total Revenue", "CPM", "RPM",
		"Monetized Playbacks", "Ad Impressions", "Total Views",
		"Revenue Change %", "Projected Monthly Revenue",
		"Ad Type Breakdown", "Top Earning Videos",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	record := []string{
		report.PeriodStart,
		report.PeriodEnd,
		report.LastUpdated,
		fmt.Sprintf("$%.2f", report.TotalRevenue),
		fmt.Sprintf("$%.2f", report.CPM),
		fmt.Sprintf("$%.2f", report.RPM),
		fmt.Sprintf("%d", report.MonetizedPlaybacks),
		fmt.Sprintf("%d", report.AdImpressions),
		fmt.Sprintf("%d", report.TotalViews),
		fmt.Sprintf("%.1f", report.RevenueChange),
		fmt.Sprintf("$%.2f", report.ProjectedMonthlyRevenue),
		cleanRichTags(formatAdTypeBreakdown(report.AdTypeBreakdown)),
		cleanRichTags(formatTopVideos(report.TopEarningVideos)),
	}
	if err := writer.Write(record); err != nil {
		return "", fmt.Errorf("error writing CSV record: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.MonetizationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.MonetizationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{192, 0, 0}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		content = cleanRichTags(content)
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  YouTube Monetization Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Period: %s to %s", report.PeriodStart, report.PeriodEnd)), "", 1, "L", true, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Last updated: %s", report.LastUpdated)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	// Resumo de receita com variação percentual
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
	pdf.Cell(0, 8, "Revenue Summary")
	pdf.Ln(7)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	valueStr := fmt.Sprintf("$%.2f", report.TotalRevenue)
	pdf.Cell(pdf.GetStringWidth(valueStr), 12, tr(valueStr))

	if report.RevenueChange > 0.01 {
		pdf.SetTextColor(0, 128, 0)
	} else if report.RevenueChange < -0.01 {
		pdf.SetTextColor(192, 0, 0)
	}
	changeText := formatChangeSuffix(report.RevenueChange)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95-pdf.GetStringWidth(valueStr), 12, tr(changeText), "", 1, "L", false, 0, "")
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.Ln(6)

	metrics := fmt.Sprintf(
		"RPM: $%.2f (%.1f%%)\nCPM: $%.2f (%.1f%%)\nMonetized Playbacks: %d (%.1f%%)\nAd Impressions: %d\nTotal Views: %d\nProjected Monthly Revenue: $%.2f",
		report.RPM, report.RPMChange,
		report.CPM, report.CPMChange,
		report.MonetizedPlaybacks, report.PlaybacksChange,
		report.AdImpressions,
		report.TotalViews,
		report.ProjectedMonthlyRevenue,
	)
	drawSection("Key Metrics", metrics)
	drawSection("Revenue By Ad Type", formatAdTypeBreakdown(report.AdTypeBreakdown))
	drawSection("Top Earning Videos", formatTopVideos(report.TopEarningVideos))

	// Série diária para o gráfico de tendência
	if len(report.RevenueChart.Labels) > 0 {
		var b strings.Builder
		for i, label := range report.RevenueChart.Labels {
			if i < len(report.RevenueChart.Values) {
				b.WriteString(fmt.Sprintf("%s: $%.2f\n", label, report.RevenueChart.Values[i]))
			}
		}
		drawSection("Daily Revenue", b.String())
	}

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by YouTube Monetization Dashboard (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr("Page 1"), "", 0, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// formatChangeSuffix formata a variação percentual exibida ao lado do valor.
// Quedas usam a seta para baixo com a magnitude, sem repetir o sinal.
func formatChangeSuffix(change float64) string {
	if change > 0.01 {
		return fmt.Sprintf("  (▲ +%.1f%%)", change)
	}
	if change < -0.01 {
		return fmt.Sprintf("  (▼ %.1f%%)", -change)
	}
	return "  (0.0%)"
}

func formatAdTypeBreakdown(breakdown map[string]entity.AdTypeShare) string {
	if len(breakdown) == 0 {
		return ""
	}

	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	// Ordena por receita decrescente; empates por nome para saída estável.
	sort.Slice(names, func(i, j int) bool {
		if breakdown[names[i]].Revenue != breakdown[names[j]].Revenue {
			return breakdown[names[i]].Revenue > breakdown[names[j]].Revenue
		}
		return names[i] < names[j]
	})

	var lines []string
	for _, name := range names {
		share := breakdown[name]
		lines = append(lines, fmt.Sprintf("%s: $%.2f (%.1f%%)", name, share.Revenue, share.Percentage))
	}
	return strings.Join(lines, "\n")
}

func formatTopVideos(videos []entity.VideoEarnings) string {
	var lines []string
	for _, v := range videos {
		lines = append(lines, fmt.Sprintf("%s: $%.2f (%d views)", v.Title, v.Revenue, v.Views))
	}
	return strings.Join(lines, "\n")
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
