package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// header maps column names to their index. When a name repeats, the first
// occurrence wins.
type header map[string]int

func parseHeader(names []string) header {
	h := make(header, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if i == 0 {
			n = strings.TrimPrefix(n, "\ufeff")
		}
		if _, dup := h[n]; !dup {
			h[n] = i
		}
	}
	return h
}

func (h header) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Load reads the catalog CSV at path.
func Load(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return records, nil
}

// Read parses a catalog from r. The first row is the header; columns are
// matched by name and extra columns are ignored.
func Read(r io.Reader) ([]*Record, error) {
	cr := csv.NewReader(r)
	names, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty catalog", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := parseHeader(names)
	if err := h.require(RequiredColumns...); err != nil {
		return nil, err
	}

	var records []*Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		records = append(records, &Record{
			Line:          line,
			Filename:      h.get(row, ColFilename),
			Version:       h.get(row, ColVersion),
			LocalFile:     h.get(row, ColLocalFile),
			Variable:      h.get(row, ColVariable),
			Model:         h.get(row, ColModel),
			Experiment:    h.get(row, ColExperiment),
			Domain:        h.get(row, ColDomain),
			Institute:     h.get(row, ColInstitute),
			Ensemble:      h.get(row, ColEnsemble),
			TimeFrequency: h.get(row, ColTimeFrequency),
			Time:          h.get(row, ColTime),
			Size:          h.get(row, ColSize),
			ChecksumType:  h.get(row, ColChecksumType),
			Checksum:      h.get(row, ColChecksum),
			Project:       h.get(row, ColProject),
			Realm:         h.get(row, ColRealm),
		})
	}
	return records, nil
}
