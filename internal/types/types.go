package types

// Severity is the operational urgency tier assigned to a finding, first by
// pattern metadata and later possibly revised downward by validation.
type Severity string

const (
	SevCritical Severity = "CRITICAL"
	SevHigh     Severity = "HIGH"
	SevMedium   Severity = "MEDIUM"
	SevLow      Severity = "LOW"
	SevInfo     Severity = "INFO"
)

// Rank orders severities for gating comparisons. Higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 4
	case SevHigh:
		return 3
	case SevMedium:
		return 2
	case SevLow:
		return 1
	default:
		return 0
	}
}

// Confidence is the validator's estimate that a finding is a genuine secret
// rather than a false positive.
type Confidence string

const (
	ConfHigh   Confidence = "HIGH"
	ConfMedium Confidence = "MEDIUM"
	ConfLow    Confidence = "LOW"
)

const (
	// MaxValueLen bounds the matched value stored on a finding. Matching
	// always happens against the untruncated line text.
	MaxValueLen = 100
	// MaxLineLen bounds the stored line context.
	MaxLineLen = 200
)

// Finding is one raw (file, line, rule) match. Confidence and Validation are
// empty until the finding passes through the validator.
type Finding struct {
	File         string            `json:"file"`
	Line         int               `json:"line"`
	PatternName  string            `json:"pattern_name"`
	Severity     Severity          `json:"severity"`
	MatchedValue string            `json:"matched_value"`
	LineContent  string            `json:"line_content"`
	Warning      string            `json:"warning,omitempty"`
	Confidence   Confidence        `json:"confidence,omitempty"`
	Validation   *ValidationResult `json:"validation,omitempty"`
}

// ValidationResult records why a finding's confidence and severity were
// adjusted. It is derived from its finding and never persisted on its own.
type ValidationResult struct {
	OriginalSeverity Severity   `json:"original_severity"`
	UpdatedSeverity  Severity   `json:"updated_severity"`
	Confidence       Confidence `json:"confidence"`
	IsPlaceholder    bool       `json:"is_placeholder"`
	IsExample        bool       `json:"is_example"`
	IsTest           bool       `json:"is_test"`
	IsInComment      bool       `json:"is_in_comment"`
	HighEntropy      bool       `json:"high_entropy"`
	Entropy          float64    `json:"entropy"`
	ValueLength      int        `json:"value_length"`
}

// Secret is a single pattern match inside a historical blob.
type Secret struct {
	PatternName  string   `json:"pattern_name"`
	Severity     Severity `json:"severity"`
	MatchedValue string   `json:"matched_value"`
	Line         int      `json:"line"`
	LineContent  string   `json:"line_content"`
}

// HistoryFinding groups the secrets found in one file at one commit. A commit
// may appear multiple times, once per affected file.
type HistoryFinding struct {
	CommitHash     string   `json:"commit_hash"`
	CommitHashFull string   `json:"commit_hash_full"`
	Author         string   `json:"author"`
	Date           string   `json:"date"`
	Message        string   `json:"message"`
	File           string   `json:"file"`
	Secrets        []Secret `json:"secrets"`
}

// Truncate shortens s to at most n bytes for presentation.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
