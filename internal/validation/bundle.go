package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmatsuda/bundle-tools/internal/dictionary"
	"github.com/jmatsuda/bundle-tools/internal/table"
	"golang.org/x/sync/errgroup"
)

// provenanceTable is the conventional name of the cross-reference target
// shipped under the provenance directory.
const provenanceTable = "sources"

// Pair is one dataset together with its dictionary. When either file is
// malformed its table is nil and LoadViolations carries the parse
// finding; the rest of the bundle still validates.
type Pair struct {
	Name           string
	Dataset        *table.Table
	Dictionary     *dictionary.Dictionary
	LoadViolations []Violation
}

// Bundle is the fully loaded input of one validation run.
type Bundle struct {
	Pairs []Pair

	// Tables indexes every successfully parsed table (datasets plus the
	// provenance sources table) by name for reference resolution.
	Tables map[string]*table.Table

	// FileViolations holds findings not tied to a dataset pair, such as
	// a malformed provenance table.
	FileViolations []Violation
}

// DictionaryPath returns the conventional dictionary path for a dataset
// file: dictionaries/<dataset>_dictionary.csv.
func DictionaryPath(dictionariesDir, datasetPath string) string {
	base := strings.TrimSuffix(filepath.Base(datasetPath), filepath.Ext(datasetPath))
	return filepath.Join(dictionariesDir, base+"_dictionary.csv")
}

// LoadBundle discovers and reads every dataset/dictionary pair plus the
// optional provenance sources table. Missing directories or files are
// fatal *SetupError; malformed CSV content is recorded as a per-file
// violation and loading continues.
func LoadBundle(opts Options) (*Bundle, error) {
	datasets, err := discoverDatasets(opts.DataDir)
	if err != nil {
		return nil, err
	}

	// Every dataset must have its dictionary before anything is read.
	for _, path := range datasets {
		dictPath := DictionaryPath(opts.DictionariesDir, path)
		if _, err := os.Stat(dictPath); err != nil {
			return nil, &SetupError{Path: dictPath, Message: "dictionary not found", Cause: err}
		}
	}

	bundle := &Bundle{
		Pairs:  make([]Pair, len(datasets)),
		Tables: make(map[string]*table.Table),
	}

	g := new(errgroup.Group)
	for i, path := range datasets {
		i, path := i, path
		g.Go(func() error {
			pair, err := loadPair(path, DictionaryPath(opts.DictionariesDir, path))
			if err != nil {
				return err
			}
			bundle.Pairs[i] = pair
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, pair := range bundle.Pairs {
		if pair.Dataset != nil {
			bundle.Tables[pair.Dataset.Name] = pair.Dataset
		}
	}

	// The provenance table is optional; when present it joins the
	// reference-target index under its conventional name.
	if opts.ProvenanceDir != "" {
		provPath := filepath.Join(opts.ProvenanceDir, provenanceTable+".csv")
		if _, err := os.Stat(provPath); err == nil {
			prov, err := table.Read(provPath)
			if err != nil {
				bundle.FileViolations = append(bundle.FileViolations, parseViolation(provenanceTable, err))
			} else {
				bundle.Tables[provenanceTable] = prov
			}
		}
	}

	return bundle, nil
}

// KeySets builds the reference-resolution index: for every foreign key
// any dictionary declares, the set of non-empty values in the referenced
// table column. References whose target table or column is absent get no
// entry, which the reference check reports as an unresolvable target.
func (b *Bundle) KeySets() map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{})
	for _, pair := range b.Pairs {
		if pair.Dictionary == nil {
			continue
		}
		for _, entry := range pair.Dictionary.Entries {
			ref := entry.References
			if ref == nil {
				continue
			}
			key := ref.Table + "." + ref.Column
			if _, done := sets[key]; done {
				continue
			}
			target, ok := b.Tables[ref.Table]
			if !ok || !target.HasColumn(ref.Column) {
				continue
			}
			sets[key] = target.KeySet(ref.Column)
		}
	}
	return sets
}

func discoverDatasets(dataDir string) ([]string, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, &SetupError{Path: dataDir, Message: "data directory not found", Cause: err}
	}
	if !info.IsDir() {
		return nil, &SetupError{Path: dataDir, Message: "data path is not a directory"}
	}

	matches, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return nil, &SetupError{Path: dataDir, Message: "failed to list datasets", Cause: err}
	}
	if len(matches) == 0 {
		return nil, &SetupError{Path: dataDir, Message: "no datasets found"}
	}
	sort.Strings(matches)
	return matches, nil
}

// loadPair reads one dataset and its dictionary. Malformed content is
// demoted to per-file violations; anything else (unreadable file) is a
// fatal setup error.
func loadPair(datasetPath, dictPath string) (Pair, error) {
	name := strings.TrimSuffix(filepath.Base(datasetPath), filepath.Ext(datasetPath))
	pair := Pair{Name: name}

	ds, err := table.Read(datasetPath)
	switch {
	case err == nil:
		pair.Dataset = ds
	case isContentError(err):
		pair.LoadViolations = append(pair.LoadViolations, parseViolation(name, err))
	default:
		return Pair{}, &SetupError{Path: datasetPath, Message: "unreadable dataset", Cause: err}
	}

	dict, err := dictionary.Load(dictPath)
	switch {
	case err == nil:
		pair.Dictionary = dict
	case isContentError(err):
		pair.LoadViolations = append(pair.LoadViolations, parseViolation(name, err))
	default:
		return Pair{}, &SetupError{Path: dictPath, Message: "unreadable dictionary", Cause: err}
	}

	return pair, nil
}

// isContentError distinguishes malformed file content (validate the rest
// of the bundle) from I/O failures (abort the run).
func isContentError(err error) bool {
	var perr *table.ParseError
	var eerr *dictionary.EntryError
	return errors.As(err, &perr) || errors.As(err, &eerr)
}

// parseViolation converts a file-load failure into a file-level error
// violation so the rest of the bundle can keep validating.
func parseViolation(dataset string, err error) Violation {
	v := Violation{
		Severity: SeverityError,
		Dataset:  dataset,
		Rule:     RuleParse,
		Message:  err.Error(),
	}
	var perr *table.ParseError
	if errors.As(err, &perr) {
		v.Line = perr.Line
		v.Message = fmt.Sprintf("malformed CSV in %s line %d: %v", perr.Path, perr.Line, perr.Cause)
	}
	return v
}
