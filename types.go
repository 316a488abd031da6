package mcgen

// OutputType selects how an achievement image is delivered.
type OutputType string

// OutputType values. Anything else is treated as OutputInline.
const (
	OutputInline   OutputType = ""
	OutputDownload OutputType = "download"
)

// label is the metrics and stats name of the output type.
func (o OutputType) label() string {
	if o == OutputDownload {
		return "download"
	}
	return "inline"
}

// AchievementRequest is the query or body of the achievement endpoint.
type AchievementRequest struct {
	Background string     `json:"background" form:"background"`
	Title      string     `json:"title" form:"title"`
	Text       string     `json:"text" form:"text"`
	Output     OutputType `json:"output" form:"output"`
	Scale      int        `json:"scale" form:"scale"`
}

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BackgroundsResponse lists the available backgrounds.
type BackgroundsResponse struct {
	Backgrounds []string `json:"backgrounds"`
}

// BackgroundStat is the number of images generated with one background.
type BackgroundStat struct {
	Background string
	Count      int
}

// DailyStat is the number of images generated on one day (YYYY-MM-DD).
type DailyStat struct {
	Day   string
	Count int
}
