package portal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/imobo/imobo/internal/encoding"
	"github.com/imobo/imobo/internal/lead"
)

// Parser reads listing-portal CSV exports and produces lead params. It
// auto-detects which portal produced the file by matching column headers
// against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]lead.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching portal format found")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Portal exports often carry preamble rows before the real header, so the
// whole file is scanned, not just the first row.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts leads from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file
// (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]lead.CreateParams, error) {
	nameIdx := cols[p.NameCol]
	emailIdx := cols[p.EmailCol]
	phoneIdx := cols[p.PhoneCol]
	propertyIdx := cols[p.PropertyCol]

	messageIdx := -1
	if p.MessageCol != "" {
		if idx, ok := cols[p.MessageCol]; ok {
			messageIdx = idx
		}
	}

	var leads []lead.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		name := cellValue(row, nameIdx)
		if name == "" {
			// Footer or separator row.
			continue
		}

		email := cellValue(row, emailIdx)
		phone := cellValue(row, phoneIdx)

		if email == "" && phone == "" {
			return nil, fmt.Errorf("row %d: lead %q has no contact details", rowNum, name)
		}

		leads = append(leads, lead.CreateParams{
			Name:        name,
			Email:       email,
			Phone:       phone,
			PropertyRef: cellValue(row, propertyIdx),
			Source:      p.Name,
			Notes:       cellValue(row, messageIdx),
		})
	}

	return leads, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
