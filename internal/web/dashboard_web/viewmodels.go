package dashboard_web

import "html/template"

type NavItemVM struct {
	Label  string
	Icon   string
	Href   string
	Active bool
}

type NoticeVM struct {
	Text string
	Kind string // "toast" or "success"
}

type LayoutVM struct {
	Title  string
	Nav    []NavItemVM
	Notice *NoticeVM
}

type OptionVM struct {
	Value    string
	Label    string
	Selected bool
}

type MetricVM struct {
	Label string
	Value string
	Delta string
	Tone  string
	Help  string
}

type RecommendationVM struct {
	TrainLabel string
	Location   string
	Minutes    int
	Reason     string
}

type TrainsTableVM struct {
	UpdatedAt string
	Rows      []TrainRowVM
}

type TrainRowVM struct {
	ID       string
	Type     string
	NextStop string
	ETA      string
	Status   string
	Tone     string
}

type LivePageVM struct {
	Layout         LayoutVM
	Headline       []MetricVM
	Recommendation RecommendationVM
	ManualActions  []OptionVM
	EventLog       []string
	MapURL         string
	MapCaption     string
	Trains         TrainsTableVM
	PollSeconds    int
}

type ScenarioVM struct {
	Type            string
	Types           []OptionVM
	ShowDelay       bool
	ShowUnscheduled bool
	ShowMaintenance bool

	TrainID      string
	DelayMinutes int
	DelayMin     int
	DelayMax     int

	TrainTypes     []OptionVM
	DepartureTime  string
	StartingPoints []OptionVM

	TrackSections []OptionVM
	BlockHours    int
	BlockMin      int
	BlockMax      int
}

type SimulationPageVM struct {
	Layout        LayoutVM
	Scenario      ScenarioVM
	SimulationRun bool
	Impact        []MetricVM
	Warning       string
	Prompt        string
	MapURL        string
	MapCaption    string
}

// ChartPointVM is one data point, listed alongside the chart as its readable
// fallback.
type ChartPointVM struct {
	Label string
}

type ChartVM struct {
	Title  string
	SVG    template.HTML
	Points []ChartPointVM
}

type AuditRowVM struct {
	Timestamp string
	User      string
	EventType string
	Details   string
}

type PerformancePageVM struct {
	Layout      LayoutVM
	Periods     []OptionVM
	Punctuality ChartVM
	Delay       ChartVM
	Users       []OptionVM
	EventTypes  []OptionVM
	AuditRows   []AuditRowVM
}
