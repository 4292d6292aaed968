package params

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
)

// The workbook follows Invest Europe Table 7: eight metadata rows, a header
// row, then one policy per row. Column A is a reference number we ignore.
const (
	SheetName = "Sheet1"

	metadataRowCount = 8
	headerRowCount   = 1

	colReference  = 0
	colPolicy     = 1
	colScope      = 2
	colComponents = 3
	colTargets    = 4
	colTimeline   = 5
	colWeight     = 6
)

const defaultWeight = 1.0

// categoriesByPolicy maps the Table 7 policy names onto ESG categories.
// Unknown policy names fall back to Governance.
var categoriesByPolicy = map[string]esg.ESGCategory{
	"Environmental policy":                               esg.CategoryEnvironmental,
	"Anti-discrimination and equal opportunities policy": esg.CategorySocial,
	"Diversity & inclusion policy":                       esg.CategorySocial,
	"(Occupational) Health & Safety policy":              esg.CategorySocial,
	"Human rights policy":                                esg.CategorySocial,
	"Anti-corruption & anti-bribery policy":              esg.CategoryGovernance,
	"Privacy of employees & customers policy":            esg.CategoryGovernance,
	"Supply chain & responsible procurement policy":      esg.CategoryGovernance,
	"Cybersecurity & data management policy":             esg.CategoryGovernance,
}

func CategoryFor(policyName string) esg.ESGCategory {
	if category, ok := categoriesByPolicy[strings.TrimSpace(policyName)]; ok {
		return category
	}
	return esg.CategoryGovernance
}

// RowError reports a workbook row that could not be turned into a parameter.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResult keeps parameters in workbook row order. Rows that fail
// validation are reported in RowErrors instead of being silently dropped.
type ParseResult struct {
	Parameters []esg.ESGParameter `json:"parameters"`
	RowErrors  []RowError         `json:"row_errors,omitempty"`
}

// ParseWorkbook reads an Invest Europe Table 7 workbook. Entirely empty rows
// are skipped, rows with content but no policy name become row errors.
func ParseWorkbook(r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", SheetName, err)
	}

	dataStart := metadataRowCount + headerRowCount
	if len(rows) <= dataStart {
		return nil, fmt.Errorf("workbook has no parameter rows below row %d", dataStart)
	}

	result := &ParseResult{}
	for i, row := range rows[dataStart:] {
		rowNumber := dataStart + i + 1

		policyName := cell(row, colPolicy)
		if policyName == "" {
			if !rowIsEmpty(row) {
				result.RowErrors = append(result.RowErrors, RowError{Row: rowNumber, Message: "policy name is required"})
			}
			continue
		}

		weight := defaultWeight
		if raw := cell(row, colWeight); raw != "" {
			weight, err = strconv.ParseFloat(raw, 64)
			if err != nil || weight <= 0 {
				result.RowErrors = append(result.RowErrors, RowError{Row: rowNumber, Message: fmt.Sprintf("invalid weight %q", raw)})
				continue
			}
		}

		result.Parameters = append(result.Parameters, esg.ESGParameter{
			Category:    CategoryFor(policyName),
			Name:        policyName,
			Description: cell(row, colScope),
			Components:  cell(row, colComponents),
			Targets:     cell(row, colTargets),
			Timeline:    cell(row, colTimeline),
			Weight:      weight,
		})
	}

	if len(result.Parameters) == 0 {
		return nil, fmt.Errorf("workbook contains no usable parameter rows")
	}
	return result, nil
}

// ValidateCoverage requires at least one policy per ESG category.
func ValidateCoverage(parameters []esg.ESGParameter) error {
	counts := map[esg.ESGCategory]int{}
	for _, p := range parameters {
		counts[p.Category]++
	}

	var missing []string
	for _, category := range []esg.ESGCategory{esg.CategoryEnvironmental, esg.CategorySocial, esg.CategoryGovernance} {
		if counts[category] == 0 {
			missing = append(missing, string(category))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("parameters missing coverage for: %s", strings.Join(missing, ", "))
	}
	return nil
}

// GetRows trims trailing empty cells per row, so index past the slice end
// just means the cell was empty.
func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func rowIsEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
