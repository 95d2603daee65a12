package analysis

// Report contains pre-computed views of lint results.
// Computed once by Analyze, used by the structured renderers.
type Report struct {
	// Files lists every inspected file in path order, including clean ones.
	Files []FileReport `json:"files"`

	// ByRule counts offenses per rule.
	ByRule []RuleCount `json:"-"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`
}

// FileReport holds the offenses remaining in one file.
type FileReport struct {
	Path     string    `json:"path"`
	Offenses []Offense `json:"offenses"`
	Modified bool      `json:"modified,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Offense is one reported diagnostic.
type Offense struct {
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	RuleID      string   `json:"cop_name"`
	RuleName    string   `json:"rule_name,omitempty"`
	Correctable bool     `json:"correctable"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Location    Location `json:"location"`
}

// Location is a 1-based source span. LastColumn is inclusive.
type Location struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	LastLine    int `json:"last_line"`
	LastColumn  int `json:"last_column"`
	Length      int `json:"length"`
}

// RuleCount is the number of offenses reported by one rule.
type RuleCount struct {
	RuleID      string
	RuleName    string
	Count       int
	Correctable int
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Offenses          int `json:"offense_count"`
	TargetFiles       int `json:"target_file_count"`
	InspectedFiles    int `json:"inspected_file_count"`
	FilesWithOffenses int `json:"files_with_offenses"`
	Correctable       int `json:"correctable_count"`
	Corrected         int `json:"corrected_count"`
	TodosAdded        int `json:"todo_count"`
	Suppressed        int `json:"suppressed_count"`
	Errors            int `json:"error_count"`
	Warnings          int `json:"warning_count"`
	Infos             int `json:"info_count"`
}

// HasOffenses returns true if there are any offenses.
func (t Totals) HasOffenses() bool {
	return t.Offenses > 0
}

// HasErrors returns true if any offense has error severity.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}
