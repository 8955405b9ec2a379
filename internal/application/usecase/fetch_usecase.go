package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pterm/pterm"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/repository"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/shared/types"
)

const defaultWindowDays = 30

// FetchUseCase handles the main fetch-and-publish functionality.
type FetchUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	publishRepo   repository.PublishRepository
	exportRepo    repository.ExportRepository
	console       types.ConsoleInterface
	now           func() time.Time
}

// NewFetchUseCase creates a new fetch use case.
func NewFetchUseCase(
	analyticsRepo repository.AnalyticsRepository,
	publishRepo repository.PublishRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *FetchUseCase {
	return &FetchUseCase{
		analyticsRepo: analyticsRepo,
		publishRepo:   publishRepo,
		exportRepo:    exportRepo,
		console:       console,
		now:           time.Now,
	}
}

// WithClock substitui a fonte de tempo. Usado em testes para saída determinística.
func (uc *FetchUseCase) WithClock(now func() time.Time) *FetchUseCase {
	uc.now = now
	return uc
}

// Run executa o ciclo completo: busca, deriva métricas, publica e exibe.
func (uc *FetchUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	days := args.Days
	if days <= 0 {
		days = defaultWindowDays
	}
	maxVideos := args.MaxVideos
	if maxVideos <= 0 {
		maxVideos = 5
	}

	window := entity.DefaultWindow(uc.now(), days)

	status := uc.console.Status("Fetching YouTube Analytics data...")
	progress := uc.console.ProgressWithTotal(6)

	report, err := uc.buildReportWithProgress(ctx, window, maxVideos, progress, status)
	progress.Stop()
	if err != nil {
		status.Stop()
		return err
	}

	// Publica o artefato antes de qualquer saída de console, para que uma falha
	// de renderização nunca deixe o artefato desatualizado.
	status.Update("Publishing artifact...")
	location, err := uc.publishRepo.Publish(ctx, report)
	status.Stop()
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Artifact published to %s", location)

	uc.displayReport(report, window)

	// Exporta os relatórios se solicitado
	if args.ReportName != "" && len(args.ReportType) > 0 {
		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				csvPath, err := uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to CSV: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
				}
			case "json":
				jsonPath, err := uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to JSON: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
				}
			case "pdf":
				pdfPath, err := uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to PDF: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
				}
			}
		}
	}

	return nil
}

// BuildReport busca todos os dados do período e monta o relatório publicável.
func (uc *FetchUseCase) BuildReport(
	ctx context.Context,
	window entity.ReportingWindow,
	maxVideos int64,
) (entity.MonetizationReport, error) {
	return uc.buildReportWithProgress(ctx, window, maxVideos, noopProgress{}, noopStatus{})
}

func (uc *FetchUseCase) buildReportWithProgress(
	ctx context.Context,
	window entity.ReportingWindow,
	maxVideos int64,
	progress types.ProgressHandle,
	status types.StatusHandle,
) (entity.MonetizationReport, error) {
	var report entity.MonetizationReport

	// Etapa 1: métricas principais do período
	status.Update("Getting core metrics...")
	current, err := uc.analyticsRepo.GetCoreMetrics(ctx, window)
	if err != nil {
		return report, fmt.Errorf("getting core metrics: %w", err)
	}
	progress.Increment() // 1/6

	// Etapa 2: período anterior para as variações percentuais
	status.Update("Getting previous period metrics...")
	previous, err := uc.analyticsRepo.GetPreviousPeriodMetrics(ctx, window)
	if err != nil {
		return report, fmt.Errorf("getting previous period metrics: %w", err)
	}
	progress.Increment() // 2/6

	// Etapa 3: série diária de receita
	status.Update("Getting daily revenue...")
	daily, err := uc.analyticsRepo.GetDailyRevenue(ctx, window)
	if err != nil {
		return report, fmt.Errorf("getting daily revenue: %w", err)
	}
	progress.Increment() // 3/6

	// Etapa 4: receita por tipo de anúncio
	status.Update("Getting ad type breakdown...")
	adTypes, err := uc.analyticsRepo.GetAdTypeRevenue(ctx, window)
	if err != nil {
		return report, fmt.Errorf("getting ad type revenue: %w", err)
	}
	progress.Increment() // 4/6

	// Etapa 5: vídeos com maior receita
	status.Update("Getting top earning videos...")
	topVideos, err := uc.analyticsRepo.GetTopEarningVideos(ctx, window, maxVideos)
	if err != nil {
		return report, fmt.Errorf("getting top earning videos: %w", err)
	}
	progress.Increment() // 5/6

	// Etapa 6: resolve os títulos via Data API. Falha aqui não derruba a
	// execução: o artefato sai com títulos de fallback.
	status.Update("Resolving video titles...")
	topVideos = uc.resolveVideoTitles(ctx, topVideos)
	progress.Increment() // 6/6

	currentRPM := entity.CalculateRPM(current.Revenue, current.Views)
	previousRPM := entity.CalculateRPM(previous.Revenue, previous.Views)

	report = entity.MonetizationReport{
		SchemaVersion:           entity.SchemaVersion,
		LastUpdated:             uc.now().UTC().Format("2006-01-02 15:04:05") + " UTC",
		PeriodStart:             window.StartDate(),
		PeriodEnd:               window.EndDate(),
		TotalRevenue:            entity.Round2(current.Revenue),
		CPM:                     entity.Round2(current.CPM),
		RPM:                     entity.Round2(currentRPM),
		MonetizedPlaybacks:      current.MonetizedPlaybacks,
		AdImpressions:           current.AdImpressions,
		TotalViews:              current.Views,
		RevenueChange:           entity.Round1(entity.PercentChange(current.Revenue, previous.Revenue)),
		RPMChange:               entity.Round1(entity.PercentChange(currentRPM, previousRPM)),
		CPMChange:               entity.Round1(entity.PercentChange(current.CPM, previous.CPM)),
		PlaybacksChange:         entity.Round1(entity.PercentChange(float64(current.MonetizedPlaybacks), float64(previous.MonetizedPlaybacks))),
		RevenueChart:            buildRevenueChart(daily),
		AdTypeBreakdown:         buildAdTypeBreakdown(adTypes),
		TopEarningVideos:        topVideos,
		ProjectedMonthlyRevenue: entity.ProjectMonthlyRevenue(current.Revenue, window.Days()),
	}

	return report, nil
}

// resolveVideoTitles preenche os títulos dos vídeos via Data API.
// Vídeos sem título resolvido recebem o fallback "Video <id>".
func (uc *FetchUseCase) resolveVideoTitles(ctx context.Context, videos []entity.VideoEarnings) []entity.VideoEarnings {
	if len(videos) == 0 {
		return videos
	}

	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.VideoID)
	}

	titles, err := uc.analyticsRepo.GetVideoTitles(ctx, ids)
	if err != nil {
		uc.console.LogWarning("Could not resolve video titles: %s", err)
		titles = nil
	}

	for i := range videos {
		if title, ok := titles[videos[i].VideoID]; ok && title != "" {
			videos[i].Title = title
		} else {
			videos[i].Title = fmt.Sprintf("Video %s", videos[i].VideoID)
		}
	}

	return videos
}

// buildRevenueChart converte a série diária para o layout labels/values do
// gráfico. Datas "2006-01-02" viram rótulos "Jan 02"; datas não parseáveis
// mantêm o valor bruto.
func buildRevenueChart(daily []entity.DailyRevenue) entity.RevenueChart {
	chart := entity.RevenueChart{
		Labels: make([]string, 0, len(daily)),
		Values: make([]float64, 0, len(daily)),
	}

	for _, d := range daily {
		label := d.Date
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			label = t.Format("Jan 02")
		}
		chart.Labels = append(chart.Labels, label)
		chart.Values = append(chart.Values, entity.Round2(d.Revenue))
	}

	return chart
}

// buildAdTypeBreakdown calcula a fatia percentual de cada tipo de anúncio.
// O denominador é a soma das receitas de anúncio, não a receita total do
// período: receita não-anúncio (Premium etc.) fica fora e as fatias somam 100%.
func buildAdTypeBreakdown(adTypes []entity.AdTypeRevenue) map[string]entity.AdTypeShare {
	totalAdRevenue := 0.0
	for _, at := range adTypes {
		totalAdRevenue += at.Revenue
	}

	breakdown := make(map[string]entity.AdTypeShare, len(adTypes))

	for _, at := range adTypes {
		percentage := 0.0
		if totalAdRevenue > 0 {
			percentage = entity.Round1((at.Revenue / totalAdRevenue) * 100)
		}
		breakdown[at.AdType] = entity.AdTypeShare{
			Percentage: percentage,
			Revenue:    entity.Round2(at.Revenue),
		}
	}

	return breakdown
}

// displayReport renderiza o relatório no console: tabela de métricas,
// barras de tendência diária e detalhamentos.
func (uc *FetchUseCase) displayReport(report entity.MonetizationReport, window entity.ReportingWindow) {
	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn(fmt.Sprintf("Value\n(%s to %s)", report.PeriodStart, report.PeriodEnd))
	table.AddColumn("Change")

	table.AddRow("Total Revenue",
		pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprintf("$%.2f", report.TotalRevenue),
		formatChange(report.RevenueChange))
	table.AddRow("RPM",
		fmt.Sprintf("$%.2f", report.RPM),
		formatChange(report.RPMChange))
	table.AddRow("CPM",
		fmt.Sprintf("$%.2f", report.CPM),
		formatChange(report.CPMChange))
	table.AddRow("Monetized Playbacks",
		fmt.Sprintf("%d", report.MonetizedPlaybacks),
		formatChange(report.PlaybacksChange))
	table.AddRow("Ad Impressions", fmt.Sprintf("%d", report.AdImpressions), "")
	table.AddRow("Total Views", fmt.Sprintf("%d", report.TotalViews), "")
	table.AddRow("Projected Monthly Revenue",
		pterm.FgCyan.Sprintf("$%.2f", report.ProjectedMonthlyRevenue), "")

	uc.console.Print(table.Render())

	// Barras de tendência diária
	if len(report.RevenueChart.Labels) > 0 {
		points := make([]types.DailyRevenuePoint, 0, len(report.RevenueChart.Labels))
		for i, label := range report.RevenueChart.Labels {
			if i < len(report.RevenueChart.Values) {
				points = append(points, types.DailyRevenuePoint{Day: label, Revenue: report.RevenueChart.Values[i]})
			}
		}
		uc.console.DisplayRevenueBars(points)
	}

	// Detalhamento por tipo de anúncio
	if len(report.AdTypeBreakdown) > 0 {
		names := make([]string, 0, len(report.AdTypeBreakdown))
		for name := range report.AdTypeBreakdown {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if report.AdTypeBreakdown[names[i]].Revenue != report.AdTypeBreakdown[names[j]].Revenue {
				return report.AdTypeBreakdown[names[i]].Revenue > report.AdTypeBreakdown[names[j]].Revenue
			}
			return names[i] < names[j]
		})

		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprint("Revenue By Ad Type"))
		for _, name := range names {
			share := report.AdTypeBreakdown[name]
			uc.console.Printf("  %s: $%.2f (%.1f%%)\n", name, share.Revenue, share.Percentage)
		}
	}

	// Top vídeos
	if len(report.TopEarningVideos) > 0 {
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprint("Top Earning Videos"))
		for i, v := range report.TopEarningVideos {
			uc.console.Printf("  %d. %s: %s (%d views)\n", i+1, v.Title,
				pterm.FgGreen.Sprintf("$%.2f", v.Revenue), v.Views)
		}
	}
}

// formatChange formata uma variação percentual com seta e cor.
func formatChange(change float64) string {
	if change > 0 {
		return pterm.FgGreen.Sprintf("⬆ %.1f%%", change)
	}
	if change < 0 {
		return pterm.FgRed.Sprintf("⬇ %.1f%%", -change)
	}
	return pterm.FgYellow.Sprint("➡ 0.0%")
}

// noopProgress e noopStatus satisfazem as interfaces de console quando o
// relatório é montado fora do fluxo interativo.
type noopProgress struct{}

func (noopProgress) Increment() {}
func (noopProgress) Stop()      {}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}
