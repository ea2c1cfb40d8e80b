package analysis

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteReportXLSX renders the per-file stats and the aggregate row into an
// XLSX workbook and returns its bytes.
func WriteReportXLSX(stats []FileStats, sum Summary) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Coverage"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook only carries the report.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"File",
		"Label",
		"Fields",
		"Heuristics",
		"Fallback",
		"Found",
		"Missing",
		"Coverage %",
		"Heuristics %",
		"Cache Hit",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, st := range stats {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, st.File)
		write(2, st.Label)
		write(3, st.TotalFields)
		write(4, st.Heuristics)
		write(5, st.Fallback)
		write(6, st.Found)
		write(7, st.Missing)
		write(8, fmt.Sprintf("%.1f", st.Coverage()))
		write(9, fmt.Sprintf("%.1f", st.HeuristicsCoverage()))
		write(10, st.CacheHit)
		if st.Err != nil {
			write(11, st.Err.Error())
		}
		row++
	}

	// Aggregate row.
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	write(1, "TOTAL")
	write(3, sum.TotalFields)
	write(4, sum.HeuristicFields)
	write(5, sum.FallbackFields)
	write(6, sum.FoundFields)
	write(7, sum.TotalFields-sum.FoundFields)
	if sum.TotalFields > 0 {
		write(8, fmt.Sprintf("%.1f", float64(sum.FoundFields)/float64(sum.TotalFields)*100))
		write(9, fmt.Sprintf("%.1f", float64(sum.HeuristicFields)/float64(sum.TotalFields)*100))
	}

	_ = f.SetColWidth(sheet, "A", "A", 40)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "G", 11)
	_ = f.SetColWidth(sheet, "H", "I", 13)
	_ = f.SetColWidth(sheet, "K", "K", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
