package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
)

func setupTestReportService() (*reportService, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewReportService(repo, testLogger).(*reportService)
	svc.now = fixedClock(testToday)
	return svc, mocks
}

func bookings(specs ...[3]interface{}) []*model.Schedule {
	out := make([]*model.Schedule, 0, len(specs))
	for _, s := range specs {
		out = append(out, &model.Schedule{
			RoomName:  s[0].(string),
			EventType: s[1].(string),
			StartTime: s[2].(string),
			Duration:  60,
		})
	}
	return out
}

func TestUtilizationReport(t *testing.T) {
	svc, mocks := setupTestReportService()
	for _, name := range []string{"A101", "B202", "C303", "D404"} {
		mocks.lectureRoom.add(roomFixture(name, "Audio System"))
	}
	mocks.lectureRoom.rooms[0].Quantity["Projectors"] = 2

	mocks.schedule.schedules = bookings(
		[3]interface{}{"A101", "Lecture", "08:00"}, // peak
		[3]interface{}{"B202", "Exam", "17:00"},    // ends 18:00, peak
		[3]interface{}{"A101", "Lecture", "17:30"}, // ends 18:30
		[3]interface{}{"B202", "Meeting", "07:30"}, // starts early
	)

	report, err := svc.UtilizationReport(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	s := report.Summary
	if s.TotalRooms != 4 || s.UsedRooms != 2 || s.UtilizationRate != "50.00" {
		t.Errorf("unexpected summary %+v", s)
	}
	// A101 and B202 tie at two bookings; the later one wins both ways
	if s.MostUsedRoom != "B202" || s.LeastUsedRoom != "B202" {
		t.Errorf("tie should resolve to the later room: most=%s least=%s", s.MostUsedRoom, s.LeastUsedRoom)
	}

	if report.EventTypeUsage["Lecture"] != 2 || report.EventTypeUsage["Exam"] != 1 || report.EventTypeUsage["Meeting"] != 1 {
		t.Errorf("unexpected event usage %v", report.EventTypeUsage)
	}
	if got := strings.Join(report.EventTypeOrder, ","); got != "Lecture,Exam,Meeting" {
		t.Errorf("event types should keep first-seen order, got %s", got)
	}
	if report.ResourceUsage["Projectors"] != 2 || report.ResourceUsage["Audio System"] != 4 {
		t.Errorf("unexpected resources %v", report.ResourceUsage)
	}

	p := report.PeakAnalysis
	if p.PeakUsage != 2 || p.OffPeakUsage != 2 || p.PeakPercentage != "50.00" {
		t.Errorf("unexpected peak analysis %+v", p)
	}
}

func TestUtilizationReport_Empty(t *testing.T) {
	svc, _ := setupTestReportService()

	report, err := svc.UtilizationReport(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Summary.MostUsedRoom != "None" || report.Summary.LeastUsedRoom != "None" {
		t.Errorf("期望 None/None，实际 %s/%s", report.Summary.MostUsedRoom, report.Summary.LeastUsedRoom)
	}
	if report.Summary.UtilizationRate != "0.00" || report.PeakAnalysis.PeakPercentage != "0.00" {
		t.Errorf("rates should be 0.00: %+v %+v", report.Summary, report.PeakAnalysis)
	}
}

func TestMostAndLeastUsedRoom(t *testing.T) {
	order := []string{"A101", "B202", "C303"}
	counts := map[string]int{"A101": 3, "B202": 1, "C303": 2}
	if got := mostUsedRoom(order, counts); got != "A101" {
		t.Errorf("期望 A101，实际 %s", got)
	}
	if got := leastUsedRoom(order, counts); got != "B202" {
		t.Errorf("期望 B202，实际 %s", got)
	}
}

func TestRenderCSV(t *testing.T) {
	svc, mocks := setupTestReportService()
	mocks.lectureRoom.add(roomFixture("A101"))
	mocks.lectureRoom.add(roomFixture("B202"))
	mocks.schedule.schedules = bookings(
		[3]interface{}{"A101", "Seminar/Workshop", "09:00"},
		[3]interface{}{"A101", "Lecture", "20:00"},
	)

	report, err := svc.UtilizationReport(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	out, err := svc.RenderCSV(report)
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"Room Utilization Summary",
		"Total Rooms,2",
		"Rooms Used,1",
		"Utilization Rate,50.00%",
		"Most Used Room,A101",
		"Least Used Room,A101",
		"",
		"Room Usage by Event Type",
		"Seminar/Workshop,1",
		"Lecture,1",
		"",
		"Resources Utilization",
		"Total quantity of Projectors,0",
		"Total quantity of Whiteboard,0",
		"Total quantity of Smartboard,0",
		"Total quantity of Computers,0",
		"Total quantity of Podium,0",
		"Total quantity of Audio System,0",
		"",
		"Peak vs Off-Peak Usage (8 AM - 6 PM)",
		"Peak Usage,1",
		"Off-Peak Usage,1",
		"Peak Usage Percentage,50.00%",
	}, "\n")

	if string(out) != want {
		t.Errorf("csv mismatch\n期望:\n%s\n实际:\n%s", want, out)
	}
}

func TestRenderPDF(t *testing.T) {
	svc, mocks := setupTestReportService()
	mocks.lectureRoom.add(roomFixture("A101"))

	report, _ := svc.UtilizationReport(context.Background())
	out, err := svc.RenderPDF(report)
	if err != nil {
		t.Fatalf("RenderPDF 应成功: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 68, G: 114, B: 196, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestChartPDF(t *testing.T) {
	svc, _ := setupTestReportService()
	report := &dto.UtilizationReport{
		Summary:      dto.UtilizationSummary{TotalRooms: 3, UsedRooms: 1, UtilizationRate: "33.33", MostUsedRoom: "A101", LeastUsedRoom: "A101"},
		PeakAnalysis: dto.PeakAnalysis{PeakUsage: 1, PeakPercentage: "100.00"},
	}

	out, err := svc.ChartPDF(&dto.ChartReportRequest{
		ReportData: report,
		Charts:     &dto.ReportCharts{PieChart: pngDataURL(t, 400, 300), BarChart: pngDataURL(t, 2400, 900)},
	})
	if err != nil {
		t.Fatalf("ChartPDF 应成功: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestChartPDF_InvalidPayload(t *testing.T) {
	svc, _ := setupTestReportService()
	report := &dto.UtilizationReport{}
	chart := pngDataURL(t, 10, 10)

	tests := []struct {
		name string
		req  *dto.ChartReportRequest
	}{
		{"nil", nil},
		{"no report", &dto.ChartReportRequest{Charts: &dto.ReportCharts{PieChart: chart, BarChart: chart}}},
		{"no charts", &dto.ChartReportRequest{ReportData: report}},
		{"no bar chart", &dto.ChartReportRequest{ReportData: report, Charts: &dto.ReportCharts{PieChart: chart}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ChartPDF(tt.req); !errors.Is(err, ErrInvalidChartPayload) {
				t.Errorf("期望 ErrInvalidChartPayload，实际 %v", err)
			}
		})
	}
}

func TestChartPDF_UndecodableImage(t *testing.T) {
	svc, _ := setupTestReportService()
	req := &dto.ChartReportRequest{
		ReportData: &dto.UtilizationReport{},
		Charts: &dto.ReportCharts{
			PieChart: pngDataURL(t, 10, 10),
			BarChart: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a png")),
		},
	}
	if _, err := svc.ChartPDF(req); !errors.Is(err, ErrChartImage) {
		t.Errorf("期望 ErrChartImage，实际 %v", err)
	}

	req.Charts.BarChart = "no comma here"
	if _, err := svc.ChartPDF(req); !errors.Is(err, ErrChartImage) {
		t.Errorf("期望 ErrChartImage，实际 %v", err)
	}
}
