package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
)

// ── export errors ──

var (
	ErrExportNoEntries    = errors.New("no timetable entries to export")
	ErrExportGenerateFail = errors.New("export file could not be generated")
)

// defaultEventMinutes is used when an entry carries neither a duration nor a
// time slot range.
const defaultEventMinutes = 60

var weekdayColumns = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// ExportService 导出业务接口
//
// Exports are returned as buffers; the handler sets the attachment headers.
//   - xlsx: a weekday × start time grid plus a flat entry sheet
//   - ics: one VEVENT per entry, weekday labelled entries repeat weekly
type ExportService interface {
	ExportTimetableXLSX(ctx context.Context) (*bytes.Buffer, string, error)
	ExportTimetableICS(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) entries(ctx context.Context) ([]model.Timetable, error) {
	entries, err := s.repo.Timetable.List(ctx)
	if err != nil {
		s.logger.Error("list timetable entries failed", zap.Error(err))
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrExportNoEntries
	}
	return entries, nil
}

// ═══════════════════════════════════════════════════════════
// ExportTimetableXLSX
// ═══════════════════════════════════════════════════════════
//
// Sheet "Timetable":
//   - row 1: title, merged across the grid
//   - row 2: Time | Monday ... Sunday
//   - one row per distinct start time, cells list "event (room)"
//
// Sheet "Entries": every entry as stored. Entries whose day or start time
// cannot be resolved appear only here.

func (s *exportService) ExportTimetableXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, "", err
	}

	type gridKey struct {
		day   time.Weekday
		start string
	}
	grid := make(map[gridKey][]string)
	startSeen := make(map[string]bool)
	var starts []string

	for _, e := range entries {
		day, ok := entryWeekday(e)
		if !ok {
			continue
		}
		start, ok := entryStart(e)
		if !ok {
			continue
		}
		hhmm := fmt.Sprintf("%02d:%02d", start/60, start%60)
		if !startSeen[hhmm] {
			startSeen[hhmm] = true
			starts = append(starts, hhmm)
		}
		k := gridKey{day: day, start: hhmm}
		grid[k] = append(grid[k], entryLabel(e))
	}
	sort.Strings(starts)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", colName(len(weekdayColumns)), 26)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	// title
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Timetable (%s)", s.now().Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", cell(colName(len(weekdayColumns)), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// header
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Time")
	for i, d := range weekdayColumns {
		f.SetCellValue(sheetName, cell(colName(i+1), row), d.String())
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(weekdayColumns)), row), headerStyle)

	// grid
	row = 3
	for _, start := range starts {
		f.SetCellValue(sheetName, cell("A", row), start)
		for i, d := range weekdayColumns {
			text := "-"
			if labels, ok := grid[gridKey{day: d, start: start}]; ok {
				text = strings.Join(labels, "\n")
			}
			f.SetCellValue(sheetName, cell(colName(i+1), row), text)
		}
		f.SetCellStyle(sheetName, cell("B", row), cell(colName(len(weekdayColumns)), row), wrapStyle)
		row++
	}

	if err := writeEntrySheet(f, entries, headerStyle); err != nil {
		s.logger.Error("write entry sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("timetable_%s.xlsx", s.now().Format("20060102")), nil
}

var entryColumns = []string{
	"Date", "Start", "Duration", "Room", "Event", "Code", "Faculty", "Department",
	"Priority", "Created By", "Email", "Student", "Lecturer", "Time Slot",
}

func writeEntrySheet(f *excelize.File, entries []model.Timetable, headerStyle int) error {
	sheetName := "Entries"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}
	for i, h := range entryColumns {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(entryColumns)-1), 1), headerStyle)
	f.SetColWidth(sheetName, "A", colName(len(entryColumns)-1), 16)

	for r, e := range entries {
		values := []interface{}{
			e.Date, e.StartTime, e.Duration, e.RoomName, e.EventName, e.Code, e.Faculty, e.Department,
			e.PriorityLevel, e.CreatedBy, e.Email, e.StudentID, e.LecturerID, e.TimeSlot,
		}
		if err := f.SetSheetRow(sheetName, cell("A", r+2), &values); err != nil {
			return err
		}
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// ExportTimetableICS
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportTimetableICS(ctx context.Context) ([]byte, string, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//study-sphere//timetable//EN")
	cal.SetXWRCalName("Timetable")

	skipped := 0
	for _, e := range entries {
		start, weekly, ok := entryStartTime(e, now)
		if !ok {
			skipped++
			continue
		}

		ev := cal.AddEvent(entryUID(e))
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(time.Duration(entryMinutes(e)) * time.Minute))
		ev.SetSummary(entryLabel(e))
		if e.RoomName != "" {
			ev.SetLocation(e.RoomName)
		}
		if desc := entryDescription(e); desc != "" {
			ev.SetDescription(desc)
		}
		if rule := entryRecurrence(e, weekly); rule != "" {
			ev.AddRrule(rule)
		}
	}
	if skipped > 0 {
		s.logger.Info("timetable entries without a resolvable start left out of calendar", zap.Int("skipped", skipped))
	}

	return []byte(cal.Serialize()), fmt.Sprintf("timetable_%s.ics", now.Format("20060102")), nil
}

// ── entry helpers ──

// entryWeekday reads a weekday label ("Monday") or a stored date.
func entryWeekday(e model.Timetable) (time.Weekday, bool) {
	if d, ok := weekdayLabel(e.Date); ok {
		return d, true
	}
	t, err := parseBookingDate(e.Date)
	if err != nil {
		return 0, false
	}
	return t.Weekday(), true
}

func weekdayLabel(s string) (time.Weekday, bool) {
	s = strings.TrimSpace(s)
	for _, d := range weekdayColumns {
		if strings.EqualFold(s, d.String()) {
			return d, true
		}
	}
	return 0, false
}

// entryStart returns minutes after midnight from startTime, or from the
// first half of a "9:00AM - 10:00AM" time slot.
func entryStart(e model.Timetable) (int, bool) {
	if m, err := parseClock(e.StartTime); err == nil {
		return m, true
	}
	if e.TimeSlot == "" {
		return 0, false
	}
	from, _, _ := strings.Cut(e.TimeSlot, "-")
	return parseKitchenClock(from)
}

func parseKitchenClock(s string) (int, bool) {
	t, err := time.Parse("3:04PM", strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// entryMinutes is the stored duration, else the time slot range, else an
// hour.
func entryMinutes(e model.Timetable) int {
	if e.Duration > 0 {
		return e.Duration
	}
	if from, to, ok := strings.Cut(e.TimeSlot, "-"); ok {
		a, okA := parseKitchenClock(from)
		b, okB := parseKitchenClock(to)
		if okA && okB && b > a {
			return b - a
		}
	}
	return defaultEventMinutes
}

// entryStartTime resolves the first occurrence of an entry. Weekday labelled
// entries start on the next such day, today included, and repeat weekly.
func entryStartTime(e model.Timetable, now time.Time) (time.Time, bool, bool) {
	minutes, ok := entryStart(e)
	if !ok {
		return time.Time{}, false, false
	}
	clock := time.Duration(minutes) * time.Minute

	if d, ok := weekdayLabel(e.Date); ok {
		y, m, day := now.Date()
		today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
		ahead := (int(d) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, ahead).Add(clock), true, true
	}

	t, err := parseBookingDate(e.Date)
	if err != nil {
		return time.Time{}, false, false
	}
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location()).Add(clock), false, true
}

func entryRecurrence(e model.Timetable, weekly bool) string {
	if e.Recurrence == model.RecurrenceYes {
		switch e.RecurrenceFrequency {
		case "Daily":
			return "FREQ=DAILY"
		case "Weekly":
			return "FREQ=WEEKLY"
		case "Monthly":
			return "FREQ=MONTHLY"
		}
	}
	if weekly {
		return "FREQ=WEEKLY"
	}
	return ""
}

func entryLabel(e model.Timetable) string {
	name := e.EventName
	if name == "" {
		name = e.Code
	}
	if name == "" {
		name = e.EventType
	}
	if name == "" {
		name = "Timetable entry"
	}
	if e.RoomName != "" {
		name += " (" + e.RoomName + ")"
	}
	return name
}

func entryDescription(e model.Timetable) string {
	var parts []string
	add := func(label, v string) {
		if v != "" {
			parts = append(parts, label+": "+v)
		}
	}
	add("Code", e.Code)
	add("Faculty", e.Faculty)
	add("Department", e.Department)
	add("Lecturer", e.LecturerID)
	add("Student", e.StudentID)
	add("Contact", e.Email)
	return strings.Join(parts, "\n")
}

func entryUID(e model.Timetable) string {
	if e.ID.IsZero() {
		return fmt.Sprintf("%s-%s-%s@study-sphere", e.RoomName, e.Date, e.StartTime)
	}
	return e.ID.Hex() + "@study-sphere"
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
