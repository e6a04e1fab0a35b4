package rankings

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// nullMarkers are cell values treated as missing, in addition to blank cells.
var nullMarkers = []string{"NA", "N/A", "NaN", "nan", "null", "NULL", "-", "<nil>"}

// Load reads a rankings file and returns the rows that carry all required
// columns. A file whose rows are all incomplete yields an empty Dataset.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Kind: NotFound, Path: path, Err: err}
		}
		return nil, malformed(path, fmt.Errorf("read file: %w", err))
	}
	var rows [][]string
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSX(data)
	} else {
		rows, err = readDelimited(bytes.TrimPrefix(data, utf8BOM), sniffDelimiter(path))
	}
	if err != nil {
		return nil, malformed(path, err)
	}
	return fromRows(rows, path)
}

var frameOptions = []dataframe.LoadOption{
	dataframe.HasHeader(true),
	dataframe.DetectTypes(false),
	dataframe.DefaultType(series.String),
	dataframe.NaNValues(nullMarkers),
}

// readDelimited splits a csv/tsv body into rows. Rows may be shorter or
// longer than the header.
func readDelimited(data []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// fromRows validates the header and loads the body into a frame. A header
// with no data rows is an empty dataset, not an error.
func fromRows(rows [][]string, path string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, malformed(path, errors.New("file is empty"))
	}
	rows = padRows(rows)
	rows[0] = uniqueHeader(rows[0])
	if _, err := resolveColumns(rows[0]); err != nil {
		return nil, malformed(path, err)
	}
	if len(rows) == 1 {
		return &Dataset{Source: path}, nil
	}
	df := dataframe.LoadRecords(rows, frameOptions...)
	if df.Err != nil {
		return nil, malformed(path, fmt.Errorf("load frame: %w", df.Err))
	}
	return fromFrame(df, path)
}

// uniqueHeader keeps the first column of each trimmed name and suffixes later
// repeats, so the frame loader does not rename the first one. Blank names
// become column_N.
func uniqueHeader(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[strings.TrimSpace(n)] = true
	}
	taken := make(map[string]bool, len(names))
	for i, n := range names {
		key := strings.TrimSpace(n)
		if key == "" {
			key = fmt.Sprintf("column_%d", i+1)
			n = key
		}
		if taken[key] {
			for k := 2; ; k++ {
				cand := fmt.Sprintf("%s_%d", key, k)
				if !taken[cand] && !seen[cand] {
					key, n = cand, cand
					break
				}
			}
		}
		taken[key] = true
		out[i] = n
	}
	return out
}

func fromFrame(df dataframe.DataFrame, path string) (*Dataset, error) {
	cols, err := resolveColumns(df.Names())
	if err != nil {
		return nil, malformed(path, err)
	}
	sub := df.Select(cols)
	if sub.Err != nil {
		return nil, malformed(path, fmt.Errorf("select columns: %w", sub.Err))
	}

	ds := &Dataset{Source: path, RawRows: df.Nrow()}
	rows := sub.Records()
	if len(rows) > 0 {
		// first row is the header
		rows = rows[1:]
	}
	for i, row := range rows {
		rec, ok, err := parseRow(row)
		if err != nil {
			// +2: one for the header line, one for 1-based numbering
			return nil, malformed(path, fmt.Errorf("line %d: %w", i+2, err))
		}
		if ok {
			ds.records = append(ds.records, rec)
		}
	}
	return ds, nil
}

// resolveColumns maps the required names onto the file's actual header
// names, tolerating surrounding whitespace.
func resolveColumns(names []string) ([]string, error) {
	byTrimmed := make(map[string]string, len(names))
	for _, n := range names {
		key := strings.TrimSpace(string(bytes.TrimPrefix([]byte(n), utf8BOM)))
		if _, dup := byTrimmed[key]; !dup {
			byTrimmed[key] = n
		}
	}
	var missing []string
	out := make([]string, 0, len(RequiredColumns))
	for _, want := range RequiredColumns {
		actual, ok := byTrimmed[want]
		if !ok {
			missing = append(missing, want)
			continue
		}
		out = append(out, actual)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// parseRow converts the five required cells. ok is false when any cell is
// null; err is set when a present cell cannot be interpreted.
func parseRow(row []string) (Record, bool, error) {
	if len(row) < len(RequiredColumns) {
		return Record{}, false, nil
	}
	for _, v := range row[:len(RequiredColumns)] {
		if isNull(v) {
			return Record{}, false, nil
		}
	}
	rank, err := parseRank(row[0])
	if err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", ColRank, err)
	}
	overall, err := parseScore(row[1])
	if err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", ColOverall, err)
	}
	research, err := parseScore(row[2])
	if err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", ColResearch, err)
	}
	return Record{
		Rank:          rank,
		OverallScore:  overall,
		ResearchScore: research,
		Location:      NormalizeLocation(row[3]),
		Name:          strings.TrimSpace(row[4]),
	}, true, nil
}

func isNull(v string) bool {
	s := strings.TrimSpace(v)
	if s == "" {
		return true
	}
	for _, m := range nullMarkers {
		if s == m {
			return true
		}
	}
	return false
}

// NormalizeLocation trims and NFC-normalizes a country name so composed and
// decomposed spellings group together.
func NormalizeLocation(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// parseRank accepts plain ranks, tied ranks ("=201"), open bands ("1501+")
// and closed bands ("201–250"); bands resolve to their lower bound.
func parseRank(s string) (int, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "=")
	raw = strings.TrimSuffix(raw, "+")
	n, err := strconv.Atoi(raw)
	if err != nil {
		lo, _, _ := splitBand(raw)
		n, err = strconv.Atoi(lo)
	}
	if err != nil {
		return 0, fmt.Errorf("not an integer rank: %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("rank must be positive: %q", s)
	}
	return n, nil
}

// parseScore accepts plain numbers and bands ("50.6–54.9"); bands resolve to
// their midpoint.
func parseScore(s string) (float64, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "=")
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("not a number: %q", s)
		}
		return v, nil
	}
	lo, hi, banded := splitBand(raw)
	a, err := strconv.ParseFloat(lo, 64)
	if err != nil || math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if !banded {
		return a, nil
	}
	b, err := strconv.ParseFloat(hi, 64)
	if err != nil || math.IsNaN(b) || math.IsInf(b, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return (a + b) / 2, nil
}

func splitBand(s string) (lo, hi string, ok bool) {
	for _, sep := range []string{"–", "—", "-"} {
		// i > 0 keeps a leading minus sign intact
		if i := strings.Index(s, sep); i > 0 {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):]), true
		}
	}
	return s, "", false
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
