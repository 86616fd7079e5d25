package dto

// ── utilization report ──

// UtilizationReport room usage across every schedule.
type UtilizationReport struct {
	Summary        UtilizationSummary `json:"summary"`
	EventTypeUsage map[string]int     `json:"eventTypeUsage"`
	ResourceUsage  map[string]int     `json:"resourceUsage"`
	PeakAnalysis   PeakAnalysis       `json:"peakAnalysis"`

	// first-seen order of the map keys, used by the csv and pdf renderings
	EventTypeOrder []string `json:"-"`
	ResourceOrder  []string `json:"-"`
}

// UtilizationSummary headline figures. Rates are percentages with two
// decimals.
type UtilizationSummary struct {
	TotalRooms      int    `json:"totalRooms"`
	UsedRooms       int    `json:"usedRooms"`
	UtilizationRate string `json:"utilizationRate"`
	MostUsedRoom    string `json:"mostUsedRoom"`
	LeastUsedRoom   string `json:"leastUsedRoom"`
}

// PeakAnalysis schedules inside and outside 08:00-18:00.
type PeakAnalysis struct {
	PeakUsage      int    `json:"peakUsage"`
	OffPeakUsage   int    `json:"offPeakUsage"`
	PeakPercentage string `json:"peakPercentage"`
}

// ChartReportRequest a rendered report plus chart images as data URLs.
type ChartReportRequest struct {
	ReportData *UtilizationReport `json:"reportData"`
	Charts     *ReportCharts      `json:"charts"`
}

// ReportCharts base64 PNG data URLs.
type ReportCharts struct {
	PieChart string `json:"pieChart"`
	BarChart string `json:"barChart"`
}
