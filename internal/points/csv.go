package points

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Column names recognised in the header (compared lower-cased).
const (
	ColID       = "id"
	ColX        = "latentx1"
	ColY        = "latentx2"
	ColAttr1    = "design_var_1"
	ColAttr2    = "design_var_2"
	ColFeasible = "feasible"
)

var (
	lineBreak = regexp.MustCompile(`\r\n|\r|\n`)
	// Anchors bind to each alternative: "true..." or "...1".
	feasiblePattern = regexp.MustCompile(`(?i)^true|1$`)
)

// MatchFeasible reports whether a feasible cell counts as true.
func MatchFeasible(cell string) bool {
	return feasiblePattern.MatchString(cell)
}

// DetectDelimiter picks tab, then semicolon, then comma by presence in the
// header line. Data cells may contain the other delimiters.
func DetectDelimiter(header string) rune {
	switch {
	case strings.ContainsRune(header, '\t'):
		return '\t'
	case strings.ContainsRune(header, ';'):
		return ';'
	default:
		return ','
	}
}

type columns struct {
	id, x, y, attr1, attr2, feasible int
}

func findColumns(header []string) (columns, error) {
	c := columns{id: -1, x: -1, y: -1, attr1: -1, attr2: -1, feasible: -1}
	for i, h := range header {
		idx := &c.id
		switch strings.ToLower(strings.TrimSpace(h)) {
		case ColID:
		case ColX:
			idx = &c.x
		case ColY:
			idx = &c.y
		case ColAttr1:
			idx = &c.attr1
		case ColAttr2:
			idx = &c.attr2
		case ColFeasible:
			idx = &c.feasible
		default:
			continue
		}
		if *idx == -1 {
			*idx = i
		}
	}
	var missing []string
	if c.x == -1 {
		missing = append(missing, ColX)
	}
	if c.y == -1 {
		missing = append(missing, ColY)
	}
	if len(missing) > 0 {
		return c, &SchemaError{Missing: missing}
	}
	return c, nil
}

// splitLine splits one line on delim. Double-quoted fields are honoured;
// a line the csv reader rejects falls back to a plain split.
func splitLine(line string, delim rune) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		fields = strings.Split(line, string(delim))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Parse turns delimited text into a Dataset. Rows whose coordinates are not
// finite numbers are skipped without error.
func Parse(text string) (Dataset, error) {
	var lines []string
	for _, l := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, &SchemaError{Missing: []string{ColX, ColY}}
	}
	delim := DetectDelimiter(lines[0])
	cols, err := findColumns(splitLine(lines[0], delim))
	if err != nil {
		return nil, err
	}
	data := make(Dataset, 0, len(lines)-1)
	for i, line := range lines[1:] {
		row := splitLine(line, delim)
		x, okX := parseCoord(cell(row, cols.x))
		y, okY := parseCoord(cell(row, cols.y))
		if !okX || !okY {
			continue
		}
		id := cell(row, cols.id)
		if id == "" {
			id = strconv.Itoa(i)
		}
		data = append(data, Record{
			ID:       id,
			X:        x,
			Y:        y,
			Attr1:    cell(row, cols.attr1),
			Attr2:    cell(row, cols.attr2),
			Feasible: MatchFeasible(cell(row, cols.feasible)),
		})
	}
	return data, nil
}

// ParseReader reads r fully and parses it.
func ParseReader(r io.Reader) (Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(string(b))
}

// LoadFile parses a local delimited file.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReader(f)
}

// WriteCSV writes the records comma-delimited under a header that Parse
// reads back into identical records.
func (d Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColID, ColX, ColY, ColAttr1, ColAttr2, ColFeasible}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range d {
		row := []string{
			r.ID,
			strconv.FormatFloat(r.X, 'g', -1, 64),
			strconv.FormatFloat(r.Y, 'g', -1, 64),
			r.Attr1,
			r.Attr2,
			strconv.FormatBool(r.Feasible),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
