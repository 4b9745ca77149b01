package validation

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmatsuda/bundle-tools/internal/dictionary"
	"golang.org/x/sync/errgroup"
)

// Options configures one validation run. Strict escalates cross-file
// reference findings from warnings to errors.
type Options struct {
	DataDir         string
	DictionariesDir string
	ProvenanceDir   string
	Strict          bool
}

// ValidateBundle loads the bundle and evaluates every rule against every
// dataset, collecting all findings before deciding the verdict. Content
// violations never abort the run; only setup errors do.
func ValidateBundle(opts Options) (*Report, error) {
	bundle, err := LoadBundle(opts)
	if err != nil {
		return nil, err
	}
	return ValidateLoaded(bundle, opts.Strict), nil
}

// ValidateLoaded runs all checks against an already loaded bundle.
// Dataset/dictionary pairs are independent, so they are checked
// concurrently and the merged report re-sorted for determinism.
func ValidateLoaded(bundle *Bundle, strict bool) *Report {
	report := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Strict:      strict,
	}
	report.Violations = append(report.Violations, bundle.FileViolations...)

	keySets := bundle.KeySets()

	var mu sync.Mutex
	g := new(errgroup.Group)
	for _, pair := range bundle.Pairs {
		pair := pair
		g.Go(func() error {
			found := checkPair(pair, keySets, strict)
			mu.Lock()
			report.Violations = append(report.Violations, found...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // checkPair never errors; the group only bounds the fan-out

	report.finalize()
	return report
}

// checkPair evaluates every rule for one dataset/dictionary pair.
func checkPair(pair Pair, keySets map[string]map[string]struct{}, strict bool) []Violation {
	violations := append([]Violation(nil), pair.LoadViolations...)
	if pair.Dataset == nil || pair.Dictionary == nil {
		return violations
	}

	violations = append(violations, CheckSchema(pair.Dataset, pair.Dictionary)...)
	violations = append(violations, CheckIdentifiers(pair.Dataset, pair.Dictionary)...)
	violations = append(violations, CheckEnums(pair.Dataset, pair.Dictionary)...)
	violations = append(violations, CheckDates(pair.Dataset, pair.Dictionary)...)
	violations = append(violations, CheckReferences(pair.Dataset, pair.Dictionary, keySets, strict)...)
	violations = append(violations, CheckHygiene(pair.Dataset)...)

	annotateRowIDs(violations, pair)
	return violations
}

// annotateRowIDs fills the RowID locator on row-level violations that
// lack one, using the dataset's ID column when the dictionary declares
// one. Makes report lines addressable by stable ID instead of raw line.
func annotateRowIDs(violations []Violation, pair Pair) {
	idCol := ""
	for _, entry := range pair.Dictionary.Entries {
		if entry.Type == dictionary.TypeID && pair.Dataset.HasColumn(entry.Column) {
			idCol = entry.Column
			break
		}
	}
	if idCol == "" {
		return
	}

	byLine := make(map[int]string, len(pair.Dataset.Rows))
	for _, row := range pair.Dataset.Rows {
		byLine[row.Line] = row.Values[idCol]
	}
	for i := range violations {
		if violations[i].RowID == "" && violations[i].Line > 0 {
			violations[i].RowID = byLine[violations[i].Line]
		}
	}
}
