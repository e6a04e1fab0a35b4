package rankings

// Required header names of the rankings export.
const (
	ColRank     = "University Rank"
	ColOverall  = "OverAll Score"
	ColResearch = "Research Score"
	ColLocation = "Location"
	ColName     = "Name of University"
)

// RequiredColumns lists the columns a rankings file must carry, in the order
// they are read into a Record.
var RequiredColumns = []string{ColRank, ColOverall, ColResearch, ColLocation, ColName}

// Record is one cleaned row of the rankings table. Every field is present.
type Record struct {
	Rank          int     `json:"rank" yaml:"rank"`
	OverallScore  float64 `json:"overall_score" yaml:"overall_score"`
	ResearchScore float64 `json:"research_score" yaml:"research_score"`
	Location      string  `json:"location" yaml:"location"`
	Name          string  `json:"name" yaml:"name"`
}

// Dataset is the cleaned, file-ordered collection of records. It is not
// modified after construction; accessors hand out copies.
type Dataset struct {
	// Source is the path the dataset was loaded from, if any.
	Source string
	// RawRows counts data rows read before cleaning.
	RawRows int

	records []Record
}

// NewDataset builds a dataset from already-clean records.
func NewDataset(records []Record) *Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{RawRows: len(cp), records: cp}
}

// Len returns the number of clean records. A nil dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Empty reports whether cleaning left no rows.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// Dropped returns how many raw rows were excluded by cleaning.
func (d *Dataset) Dropped() int {
	if d == nil {
		return 0
	}
	return d.RawRows - len(d.records)
}

// At returns the i-th record in file order.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Records returns a copy of all records in file order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}
