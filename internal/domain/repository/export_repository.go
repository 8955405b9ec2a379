package repository

import (
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report entity.MonetizationReport, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.MonetizationReport, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.MonetizationReport, filename string, outputDir string) (string, error)
}
