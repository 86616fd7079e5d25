package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
)

// ── report errors ──

var (
	ErrInvalidChartPayload = errors.New("invalid payload: missing reportData or charts")
	ErrChartImage          = errors.New("chart image could not be decoded")
)

const (
	peakStartMinutes = 8 * 60
	peakEndMinutes   = 18 * 60

	// chartWidthMM is the printed chart width; chartMaxPixels caps the
	// embedded bitmap.
	chartWidthMM   = 140.0
	chartMaxPixels = 1200
)

// ReportService 报表业务接口
type ReportService interface {
	UtilizationReport(ctx context.Context) (*dto.UtilizationReport, error)
	RenderCSV(report *dto.UtilizationReport) ([]byte, error)
	RenderPDF(report *dto.UtilizationReport) ([]byte, error)
	// ChartPDF renders a client computed report with its chart images.
	ChartPDF(req *dto.ChartReportRequest) ([]byte, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Compute ──────────────────────

func (s *reportService) UtilizationReport(ctx context.Context) (*dto.UtilizationReport, error) {
	rooms, err := s.repo.LectureRoom.List(ctx)
	if err != nil {
		s.logger.Error("list lecture rooms failed", zap.Error(err))
		return nil, err
	}
	schedules, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("list schedules failed", zap.Error(err))
		return nil, err
	}
	return buildUtilizationReport(rooms, schedules), nil
}

func buildUtilizationReport(rooms []model.LectureRoom, schedules []model.Schedule) *dto.UtilizationReport {
	// per room booking counts in first-seen order
	var roomOrder []string
	roomCounts := make(map[string]int)
	eventCounts := make(map[string]int)
	var eventOrder []string
	peak, offPeak := 0, 0

	for _, sc := range schedules {
		if _, seen := roomCounts[sc.RoomName]; !seen {
			roomOrder = append(roomOrder, sc.RoomName)
		}
		roomCounts[sc.RoomName]++

		if _, seen := eventCounts[sc.EventType]; !seen {
			eventOrder = append(eventOrder, sc.EventType)
		}
		eventCounts[sc.EventType]++

		if isPeak(sc) {
			peak++
		} else {
			offPeak++
		}
	}

	rate := "0.00"
	if len(rooms) > 0 {
		rate = fixed2(float64(len(roomOrder)) / float64(len(rooms)) * 100)
	}
	peakPct := "0.00"
	if len(schedules) > 0 {
		peakPct = fixed2(float64(peak) / float64(len(schedules)) * 100)
	}

	resources, resourceOrder := equipmentUsage(rooms)

	return &dto.UtilizationReport{
		Summary: dto.UtilizationSummary{
			TotalRooms:      len(rooms),
			UsedRooms:       len(roomOrder),
			UtilizationRate: rate,
			MostUsedRoom:    mostUsedRoom(roomOrder, roomCounts),
			LeastUsedRoom:   leastUsedRoom(roomOrder, roomCounts),
		},
		EventTypeUsage: eventCounts,
		ResourceUsage:  resources,
		PeakAnalysis: dto.PeakAnalysis{
			PeakUsage:      peak,
			OffPeakUsage:   offPeak,
			PeakPercentage: peakPct,
		},
		EventTypeOrder: eventOrder,
		ResourceOrder:  resourceOrder,
	}
}

// mostUsedRoom keeps the later room on a tie.
func mostUsedRoom(order []string, counts map[string]int) string {
	best, bestCount := "None", 0
	for _, name := range order {
		if !(bestCount > counts[name]) {
			best, bestCount = name, counts[name]
		}
	}
	return best
}

// leastUsedRoom keeps the later room on a tie.
func leastUsedRoom(order []string, counts map[string]int) string {
	best, bestCount := "None", math.MaxInt
	for _, name := range order {
		if !(bestCount < counts[name]) {
			best, bestCount = name, counts[name]
		}
	}
	return best
}

// isPeak reports whether a booking lies wholly inside 08:00-18:00. An
// unreadable start time counts as off-peak.
func isPeak(sc model.Schedule) bool {
	start, err := parseClock(sc.StartTime)
	if err != nil {
		return false
	}
	return start >= peakStartMinutes && start+sc.Duration <= peakEndMinutes
}

// ────────────────────── CSV ──────────────────────

func (s *reportService) RenderCSV(report *dto.UtilizationReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	sections := [][][]string{
		{
			{"Room Utilization Summary"},
			{"Total Rooms", strconv.Itoa(report.Summary.TotalRooms)},
			{"Rooms Used", strconv.Itoa(report.Summary.UsedRooms)},
			{"Utilization Rate", report.Summary.UtilizationRate + "%"},
			{"Most Used Room", report.Summary.MostUsedRoom},
			{"Least Used Room", report.Summary.LeastUsedRoom},
		},
		countRows("Room Usage by Event Type", "", report.EventTypeUsage, report.EventTypeOrder),
		countRows("Resources Utilization", "Total quantity of ", report.ResourceUsage, report.ResourceOrder),
		{
			{"Peak vs Off-Peak Usage (8 AM - 6 PM)"},
			{"Peak Usage", strconv.Itoa(report.PeakAnalysis.PeakUsage)},
			{"Off-Peak Usage", strconv.Itoa(report.PeakAnalysis.OffPeakUsage)},
			{"Peak Usage Percentage", report.PeakAnalysis.PeakPercentage + "%"},
		},
	}

	for i, section := range sections {
		if i > 0 {
			// csv.Writer quotes a lone empty field, so blank separators go
			// straight to the buffer.
			w.Flush()
			buf.WriteByte('\n')
		}
		if err := w.WriteAll(section); err != nil {
			return nil, fmt.Errorf("write csv: %w", err)
		}
	}

	// no newline after the last record
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func countRows(title, labelPrefix string, counts map[string]int, order []string) [][]string {
	rows := [][]string{{title}}
	for _, k := range orderedKeys(counts, order) {
		rows = append(rows, []string{labelPrefix + k, strconv.Itoa(counts[k])})
	}
	return rows
}

// orderedKeys returns order when it covers m, and the sorted keys otherwise.
// Reports decoded from JSON carry no order.
func orderedKeys(m map[string]int, order []string) []string {
	if len(order) == len(m) {
		return order
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ────────────────────── PDF ──────────────────────

func (s *reportService) RenderPDF(report *dto.UtilizationReport) ([]byte, error) {
	doc := newReportPDF("", s.now())

	doc.section("1. Room Utilization Summary")
	doc.summary(report.Summary)
	doc.gap()

	doc.section("2. Room Usage by Event Type")
	for _, k := range orderedKeys(report.EventTypeUsage, report.EventTypeOrder) {
		doc.line(fmt.Sprintf("%s: %d", k, report.EventTypeUsage[k]))
	}
	doc.gap()

	doc.section("3. Resources Utilization")
	doc.line("Total quantities of resources across all rooms:")
	doc.pdf.Ln(2)
	for _, k := range orderedKeys(report.ResourceUsage, report.ResourceOrder) {
		doc.line(fmt.Sprintf("Total quantity of %s: %d", k, report.ResourceUsage[k]))
	}
	doc.gap()

	doc.section("4. Peak vs Off-Peak Usage (8 AM - 6 PM)")
	doc.peak(report.PeakAnalysis)

	return doc.bytes()
}

func (s *reportService) ChartPDF(req *dto.ChartReportRequest) ([]byte, error) {
	if req == nil || req.ReportData == nil || req.Charts == nil ||
		req.Charts.PieChart == "" || req.Charts.BarChart == "" {
		return nil, ErrInvalidChartPayload
	}
	report := req.ReportData

	doc := newReportPDF("A4", s.now())

	doc.section("1. Room Utilization Summary")
	doc.summary(report.Summary)

	doc.pdf.AddPage()
	doc.section("2. Room Usage by Event Type")
	doc.line("Distribution of room usage across different event types")
	doc.pdf.Ln(2)
	if err := doc.chart("pieChart", req.Charts.PieChart); err != nil {
		s.logger.Warn("pie chart rejected", zap.Error(err))
		return nil, err
	}

	doc.pdf.AddPage()
	doc.section("3. Resources Utilization")
	doc.line("Total quantities of resources across all rooms")
	doc.pdf.Ln(2)
	if err := doc.chart("barChart", req.Charts.BarChart); err != nil {
		s.logger.Warn("bar chart rejected", zap.Error(err))
		return nil, err
	}

	doc.pdf.AddPage()
	doc.section("4. Peak vs Off-Peak Usage (8 AM - 6 PM)")
	doc.peak(report.PeakAnalysis)

	return doc.bytes()
}

// reportPDF wraps an fpdf document with the report's text styles.
type reportPDF struct {
	pdf *fpdf.Fpdf
}

func newReportPDF(size string, now time.Time) *reportPDF {
	if size == "" {
		size = "Letter"
	}
	pdf := fpdf.New("P", "mm", size, "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetTitle("Room Utilization Summary Report", false)
	pdf.SetCreationDate(now)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 10, "Room Utilization Summary Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Generated on: "+now.Format("1/2/2006, 3:04:05 PM"), "", 1, "C", false, 0, "")
	pdf.Ln(6)
	return &reportPDF{pdf: pdf}
}

func (d *reportPDF) section(title string) {
	d.pdf.SetFont("Helvetica", "U", 14)
	d.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	d.pdf.Ln(2)
	d.pdf.SetFont("Helvetica", "", 12)
}

func (d *reportPDF) line(text string) {
	d.pdf.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
}

func (d *reportPDF) gap() { d.pdf.Ln(6) }

func (d *reportPDF) summary(sum dto.UtilizationSummary) {
	d.line(fmt.Sprintf("Total Rooms: %d", sum.TotalRooms))
	d.line(fmt.Sprintf("Rooms Used: %d", sum.UsedRooms))
	d.line(fmt.Sprintf("Utilization Rate: %s%%", sum.UtilizationRate))
	d.line("Most Used Room: " + sum.MostUsedRoom)
	d.line("Least Used Room: " + sum.LeastUsedRoom)
}

func (d *reportPDF) peak(p dto.PeakAnalysis) {
	d.line(fmt.Sprintf("Peak Usage: %d", p.PeakUsage))
	d.line(fmt.Sprintf("Off-Peak Usage: %d", p.OffPeakUsage))
	d.line(fmt.Sprintf("Peak Usage Percentage: %s%%", p.PeakPercentage))
}

// chart decodes a base64 image data URL, shrinks it to chartMaxPixels wide
// and places it centred below the cursor.
func (d *reportPDF) chart(name, dataURL string) error {
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return fmt.Errorf("%w: %s is not a data URL", ErrChartImage, name)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrChartImage, name, err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrChartImage, name, err)
	}
	if img.Bounds().Dx() > chartMaxPixels {
		img = imaging.Resize(img, chartMaxPixels, 0, imaging.Lanczos)
	}

	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrChartImage, name, err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	d.pdf.RegisterImageOptionsReader(name, opts, &png)

	pageW, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	w := math.Min(chartWidthMM, pageW-left-right)
	d.pdf.ImageOptions(name, (pageW-w)/2, d.pdf.GetY(), w, 0, true, opts, 0, "")
	return d.pdf.Error()
}

func (d *reportPDF) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
