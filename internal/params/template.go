package params

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var templateMetadata = []string{
	"Invest Europe ESG Parameters Template",
	"Based on Table 7 - Policies",
	"",
	"Instructions:",
	"1. Fill in the policy details below",
	"2. Do not modify column names or structure",
	"3. Upload this file to the ESG Policy Generator",
	"",
}

var templateHeader = []string{
	"Reference",
	"Policy",
	"Possible scope",
	"Possible components",
	"Possible targets",
	"Possible timeline",
}

var templateExampleRows = [][]string{
	{"1", "Environmental policy", "Company operations, supply chain", "Carbon reduction, waste management", "50% reduction by 2030", "Annual reporting"},
	{"2", "Diversity & inclusion policy", "Hiring, promotion, leadership", "Inclusive hiring practices, pay equity reviews", "40% leadership diversity by 2028", "Quarterly review"},
	{"3", "Anti-corruption & anti-bribery policy", "All business dealings", "Training, whistleblower channel, vendor screening", "100% staff trained within first year", "Annual refresh"},
}

// WriteTemplate renders a blank Table 7 workbook that ParseWorkbook accepts
// as-is, example rows included, plus an Instructions sheet.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, line := range templateMetadata {
		if err := setCell(f, SheetName, 1, i+1, line); err != nil {
			return err
		}
	}

	headerRow := len(templateMetadata) + 1
	for col, name := range templateHeader {
		if err := setCell(f, SheetName, col+1, headerRow, name); err != nil {
			return err
		}
	}

	for rowOffset, example := range templateExampleRows {
		for col, value := range example {
			if err := setCell(f, SheetName, col+1, headerRow+1+rowOffset, value); err != nil {
				return err
			}
		}
	}

	if err := writeInstructionsSheet(f); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeInstructionsSheet(f *excelize.File) error {
	const sheet = "Instructions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %q: %w", sheet, err)
	}

	lines := []string{
		"Column Descriptions:",
		"",
		"Reference - Optional. Row number from Table 7",
		"Policy - Required. Policy name; recognized names map to an ESG category, others default to Governance",
		"Possible scope - Optional. What the policy should cover",
		"Possible components - Optional. One component per line",
		"Possible targets - Optional. One target per line",
		"Possible timeline - Optional. One phase per line",
		"",
		"A seventh column may hold a positive numeric weight; omitted weights default to 1.0.",
		"Keep the eight rows above the header untouched, data is read from the row after the header.",
	}
	for i, line := range lines {
		if err := setCell(f, sheet, 1, i+1, line); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", col, row, err)
	}
	if err = f.SetCellValue(sheet, cellName, value); err != nil {
		return fmt.Errorf("setting %s!%s: %w", sheet, cellName, err)
	}
	return nil
}
