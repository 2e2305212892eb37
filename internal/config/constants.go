package config

import "gdchart/pkg/contracts/domain"

// Application constants
const (
	AppName = "gdchart"

	DateLayout = domain.DateLayout

	// Data
	DefaultDataDir    = "data"
	DefaultScopeStart = "2013-07-01"
	CleanedFileName   = "united_competitive_results_post_ferguson.csv"
	LatestFileSuffix  = "_latest.csv"
	ExtractedPattern  = `_extracted_(\d{14})\.csv$`
	ExtractedLayout   = "20060102150405"

	// Cumulative goal difference modes
	CumulativeDerive = "derive"
	CumulativeTrust  = "trust"

	// Row error policies
	PolicyFail = "fail"
	PolicySkip = "skip"

	// Chart variants
	VariantSimple      = "simple"
	VariantManager     = "manager"
	VariantManagerType = "manager_type"

	// Chart layouts
	LayoutStandard = "standard"
	LayoutWide     = "wide"

	DefaultChartTitle = "Cumulative Goal Difference for Manchester United F.C. post Alex Ferguson"
	LineColour        = "#c3102b"
	TimeframeColour   = "#eee"
	GridColour        = "#eee"
	AxisTextColour    = "#777"

	// Output
	DefaultOutputDir   = "out"
	DefaultMetricsFile = "gdchart.prom"

	FormatHTML = "html"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatPNG  = "png"

	ChartHTMLFile   = "chart.html"
	ChartPNGFile    = "chart.png"
	MatchesCSVFile  = "matches.csv"
	WorkbookFile    = "matches.xlsx"
	DatasetJSONFile = "dataset.json"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Competitions excluded before normalization.
const (
	FriendliesCompetition   = "Club Friendlies"
	PreSeasonCompetitionTag = "Champions Cup"
)
