// Package exporter writes dashboard tables as spreadsheets.
package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/modules/catalog"
	"github.com/aristath/industry-overview/internal/modules/performance"
	"github.com/aristath/industry-overview/internal/modules/trends"
)

const (
	AveragesSheet = "Averages"
	TrendSheet    = "Trend"
)

// MetricWorkbook holds the detailed tables of one metric.
type MetricWorkbook struct {
	Metric   catalog.Metric
	Averages []performance.LabelledAverage
	Trend    domain.Result[trends.Report]
}

// WriteXLSX renders wb as an .xlsx document. The trend sheet is written only
// when the trend result carries data.
func WriteXLSX(w io.Writer, wb MetricWorkbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), AveragesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := make([][]interface{}, 0, len(wb.Averages))
	for _, a := range wb.Averages {
		rows = append(rows, []interface{}{a.Company, a.AverageValue, a.YearsOfData, string(a.CompanyType)})
	}
	if err := writeTable(f, AveragesSheet, header,
		[]interface{}{"Company", fmt.Sprintf("Avg. %s (%s)", wb.Metric.Name, wb.Metric.Unit), "Data Points (Max 3)", "Company Type"},
		rows); err != nil {
		return err
	}

	if wb.Trend.IsOK() {
		if _, err := f.NewSheet(TrendSheet); err != nil {
			return fmt.Errorf("failed to add trend sheet: %w", err)
		}
		rows = rows[:0]
		for _, y := range wb.Trend.Data.Years {
			rows = append(rows, []interface{}{y.Year, y.MeanChange, y.MedianChange, y.CompanyCount})
		}
		if err := writeTable(f, TrendSheet, header,
			[]interface{}{"Year", "Mean YoY Change (%)", "Median YoY Change (%)", "Companies"},
			rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, style int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
