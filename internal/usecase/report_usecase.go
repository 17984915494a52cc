package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/geo"
)

// ReportUsecase - PDF отчёт по проверке маршрута
type ReportUsecase interface {
	// GeneratePDF строит отчёт CheckRoute и рендерит его в PDF
	GeneratePDF(ctx context.Context, routeName string, line geo.Polyline, at *time.Time) ([]byte, error)
}

type reportUsecase struct {
	intersectionUC IntersectionUsecase
	logger         *zap.Logger
}

// NewReportUsecase создаёт usecase PDF отчётов
func NewReportUsecase(intersectionUC IntersectionUsecase, logger *zap.Logger) ReportUsecase {
	return &reportUsecase{
		intersectionUC: intersectionUC,
		logger:         logger,
	}
}

func (u *reportUsecase) GeneratePDF(ctx context.Context, routeName string, line geo.Polyline, at *time.Time) ([]byte, error) {
	report, err := u.intersectionUC.CheckRoute(ctx, line, at)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("RangeGuard Route Safety Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "RangeGuard Route Safety Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	if routeName != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Route: %s", routeName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Checked at: %s", report.CheckTime.Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Route points: %d, length: %.1f km", len(line), geo.LengthMeters(line)/1000), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, report.Message, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(report.Zones) > 0 {
		u.renderConflictTable(pdf, report.Zones)
	}

	if len(report.Skipped) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("%d zone(s) skipped due to invalid geometry", len(report.Skipped)), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		u.logger.Error("Failed to render PDF report", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}
	return buf.Bytes(), nil
}

func (u *reportUsecase) renderConflictTable(pdf *fpdf.Fpdf, conflicts []domain.ZoneConflict) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(55, 7, "Zone", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 7, "Association", "1", 0, "L", true, 0, "")
	pdf.CellFormat(28, 7, "Conflict", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Overlap", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Active window", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, c := range conflicts {
		window := fmt.Sprintf("%s - %s",
			c.StartTime.Format("2006-01-02"),
			c.EndTime.Format("2006-01-02"))
		pdf.CellFormat(55, 6, c.ZoneName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, c.Association, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, string(c.ConflictType), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%d%%", c.OverlapPercent), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, window, "1", 1, "C", false, 0, "")
	}
}
