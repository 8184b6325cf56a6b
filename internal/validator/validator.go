// Package validator re-scores raw scan findings to separate genuine secrets
// from placeholders and examples. It is a pure, order-preserving pass:
// validating one finding never depends on another, and identical input
// always produces identical output.
package validator

import (
	"math"

	"github.com/keyhound/keyhound/internal/types"
)

// Options tune the two numeric heuristics. Config files may override the
// defaults; zero values mean "use the default".
type Options struct {
	EntropyThreshold float64
	MinSecretLength  int
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{EntropyThreshold: EntropyThreshold, MinSecretLength: MinSecretLength}
}

// Validate attaches a ValidationResult to every finding and rewrites its
// severity/confidence using the default thresholds. All downgrade checks are
// cumulative and only ever move a finding toward "less alarming"; the entropy
// and structural-format checks are the sole positive evidence that can hold
// or restore HIGH confidence.
func Validate(findings []types.Finding) []types.Finding {
	return ValidateWith(findings, DefaultOptions())
}

// ValidateWith is Validate with explicit thresholds. Zero values fall back
// to the defaults.
func ValidateWith(findings []types.Finding, opts Options) []types.Finding {
	if opts.EntropyThreshold <= 0 {
		opts.EntropyThreshold = EntropyThreshold
	}
	if opts.MinSecretLength <= 0 {
		opts.MinSecretLength = MinSecretLength
	}
	out := make([]types.Finding, len(findings))
	for i, f := range findings {
		out[i] = validateOne(f, opts)
	}
	return out
}

func validateOne(f types.Finding, opts Options) types.Finding {
	value := f.MatchedValue
	original := f.Severity

	var isPlaceholder, isExample, isTest, inComment, highEntropy bool
	confidence := types.ConfHigh
	updated := original

	if containsPlaceholderTerm(value) {
		isPlaceholder = true
		confidence = types.ConfLow
		updated = types.SevInfo
	}
	if matchesPlaceholderFormat(value) {
		isPlaceholder = true
		confidence = types.ConfLow
		updated = types.SevInfo
	}
	if isKnownExample(value) {
		isExample = true
		confidence = types.ConfLow
		updated = types.SevInfo
	}
	if isExampleFile(f.File) {
		isExample = true
		confidence = types.ConfLow
		updated = types.SevInfo
	}

	if isTestFile(f.File) {
		isTest = true
		// Secrets do leak through test fixtures, so only soften confidence.
		if confidence == types.ConfHigh {
			confidence = types.ConfMedium
		}
	}

	if isCommentedOut(f.LineContent) {
		inComment = true
		// A commented-out secret is lower risk but may point at a live one
		// nearby, so it is capped rather than suppressed.
		if updated == types.SevCritical || updated == types.SevHigh {
			updated = types.SevMedium
		}
		confidence = types.ConfMedium
	}

	entropy := Entropy(value)
	if entropy >= opts.EntropyThreshold {
		highEntropy = true
		if !isPlaceholder && !isExample {
			confidence = types.ConfHigh
		}
	} else if !isPlaceholder && !isExample {
		confidence = types.ConfMedium
	}

	if isLikelyBase64(value) || isUUID(value) {
		if !isPlaceholder && !isExample {
			confidence = types.ConfHigh
		}
	}

	if len(value) < opts.MinSecretLength {
		confidence = types.ConfLow
		updated = types.SevInfo
	}

	f.Severity = updated
	f.Confidence = confidence
	f.Validation = &types.ValidationResult{
		OriginalSeverity: original,
		UpdatedSeverity:  updated,
		Confidence:       confidence,
		IsPlaceholder:    isPlaceholder,
		IsExample:        isExample,
		IsTest:           isTest,
		IsInComment:      inComment,
		HighEntropy:      highEntropy,
		Entropy:          math.Round(entropy*100) / 100,
		ValueLength:      len(value),
	}
	return f
}

// Categorized buckets findings by their final severity.
type Categorized struct {
	Critical []types.Finding `json:"critical"`
	High     []types.Finding `json:"high"`
	Medium   []types.Finding `json:"medium"`
	Low      []types.Finding `json:"low"`
	Info     []types.Finding `json:"info"`
}

// Categorize is a pure projection of findings into severity buckets.
func Categorize(findings []types.Finding) Categorized {
	var c Categorized
	for _, f := range findings {
		switch f.Severity {
		case types.SevCritical:
			c.Critical = append(c.Critical, f)
		case types.SevHigh:
			c.High = append(c.High, f)
		case types.SevMedium:
			c.Medium = append(c.Medium, f)
		case types.SevLow:
			c.Low = append(c.Low, f)
		case types.SevInfo:
			c.Info = append(c.Info, f)
		}
	}
	return c
}

// Summary counts findings per final severity bucket.
type Summary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// Summarize derives the validation summary from categorized findings.
func Summarize(c Categorized) Summary {
	return Summary{
		Total:    len(c.Critical) + len(c.High) + len(c.Medium) + len(c.Low) + len(c.Info),
		Critical: len(c.Critical),
		High:     len(c.High),
		Medium:   len(c.Medium),
		Low:      len(c.Low),
		Info:     len(c.Info),
	}
}
