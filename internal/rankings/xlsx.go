package rankings

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

type xlsxWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"`
	} `xml:"sheets>sheet"`
}

type xlsxRels struct {
	Items []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xlsxText struct {
	T    string `xml:"t"`
	Runs []struct {
		T string `xml:"t"`
	} `xml:"r"`
}

func (x xlsxText) String() string {
	if len(x.Runs) == 0 {
		return x.T
	}
	var b strings.Builder
	b.WriteString(x.T)
	for _, r := range x.Runs {
		b.WriteString(r.T)
	}
	return b.String()
}

type xlsxSST struct {
	Items []xlsxText `xml:"si"`
}

type xlsxSheet struct {
	Rows []struct {
		Cells []struct {
			Ref    string   `xml:"r,attr"`
			Type   string   `xml:"t,attr"`
			Value  string   `xml:"v"`
			Inline xlsxText `xml:"is"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

// readXLSX returns the first worksheet as rows of cell strings. Empty cells
// between populated ones come back as "".
func readXLSX(data []byte) ([][]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	var wb xlsxWorkbook
	if err := unmarshalZip(zr, "xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	if len(wb.Sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	target := "xl/worksheets/sheet1.xml"
	var rels xlsxRels
	if err := unmarshalZip(zr, "xl/_rels/workbook.xml.rels", &rels); err == nil {
		for _, r := range rels.Items {
			if r.ID == wb.Sheets[0].RID {
				target = sheetPath(r.Target)
				break
			}
		}
	}
	var sst xlsxSST
	// shared strings are optional
	_ = unmarshalZip(zr, "xl/sharedStrings.xml", &sst)

	var sheet xlsxSheet
	if err := unmarshalZip(zr, target, &sheet); err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		var cells []string
		for _, c := range row.Cells {
			col := len(cells)
			if c.Ref != "" {
				col = columnIndex(c.Ref)
			}
			for len(cells) <= col {
				cells = append(cells, "")
			}
			switch c.Type {
			case "s":
				var idx int
				if _, err := fmt.Sscanf(c.Value, "%d", &idx); err == nil && idx >= 0 && idx < len(sst.Items) {
					cells[col] = sst.Items[idx].String()
				}
			case "inlineStr":
				cells[col] = c.Inline.String()
			default:
				cells[col] = c.Value
			}
		}
		out = append(out, cells)
	}
	return padRows(out), nil
}

func unmarshalZip(zr *zip.Reader, name string, v any) error {
	f, err := zr.Open(name)
	if err != nil {
		return fmt.Errorf("xlsx part %s: %w", name, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read xlsx part %s: %w", name, err)
	}
	if err := xml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode xlsx part %s: %w", name, err)
	}
	return nil
}

// sheetPath turns a relationship target into a zip entry name. Targets are
// relative to xl/ unless they start with a slash.
func sheetPath(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("xl", target)
}

// columnIndex maps a cell reference like "C12" to 2.
func columnIndex(ref string) int {
	idx := 0
	for _, r := range strings.ToUpper(ref) {
		if r < 'A' || r > 'Z' {
			break
		}
		idx = idx*26 + int(r-'A'+1)
	}
	return max(idx-1, 0)
}

// padRows gives every row the header's width so the frame loader sees a
// rectangular table.
func padRows(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	for i, r := range rows {
		for len(r) < width {
			r = append(r, "")
		}
		rows[i] = r
	}
	return rows
}
