package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/types"
)

const (
	sheetSummary = "Product Summary"
	sheetSpecs   = "Specifications"
	sheetReviews = "Review Analysis"
)

// WriteWorkbook writes the three analysis sheets. The price column of
// the summary sheet gets a 3-color-scale conditional format.
func (r *Renderer) WriteWorkbook(frames analysis.Frames, products []*types.Product, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}

	idx, err := f.NewSheet(sheetSummary)
	if err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}
	if err := writeFrame(f, sheetSummary, frames.Products, headerStyle); err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}
	if err := formatPriceScale(f, frames.Products); err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}

	if _, err := f.NewSheet(sheetSpecs); err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}
	if err := writeSpecs(f, products, headerStyle); err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}

	if _, err := f.NewSheet(sheetReviews); err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}
	if err := writeFrame(f, sheetReviews, frames.Reviews, headerStyle); err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}

	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}

	if err := f.SaveAs(path); err != nil {
		return &types.ReportError{Artifact: "xlsx", Path: path, Err: err}
	}
	return nil
}

// writeFrame dumps a dataframe onto a sheet, header row first.
// Numeric cells are written as numbers so Excel can aggregate them.
func writeFrame(f *excelize.File, sheet string, df dataframe.DataFrame, headerStyle int) error {
	records := df.Records()
	for rowIdx, row := range records {
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if rowIdx == 0 {
				if err := f.SetCellValue(sheet, cell, val); err != nil {
					return err
				}
				continue
			}
			if num, err := strconv.ParseFloat(val, 64); err == nil && val != "" {
				if err := f.SetCellValue(sheet, cell, num); err != nil {
					return err
				}
			} else if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if len(records) > 0 && len(records[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(records[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
		endCol, err := excelize.ColumnNumberToName(len(records[0]))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", endCol, 22); err != nil {
			return err
		}
	}
	return nil
}

// formatPriceScale applies the red-yellow-green scale over the price
// column of the summary sheet.
func formatPriceScale(f *excelize.File, products dataframe.DataFrame) error {
	priceCol := 0
	for i, name := range products.Names() {
		if name == "price" {
			priceCol = i + 1
			break
		}
	}
	if priceCol == 0 || products.Nrow() == 0 {
		return nil
	}

	top, err := excelize.CoordinatesToCellName(priceCol, 2)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(priceCol, products.Nrow()+1)
	if err != nil {
		return err
	}

	return f.SetConditionalFormat(sheetSummary, fmt.Sprintf("%s:%s", top, bottom), []excelize.ConditionalFormatOptions{
		{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "min",
			MidType:  "percentile",
			MidValue: "50",
			MaxType:  "max",
			MinColor: "#63BE7B",
			MidColor: "#FFEB84",
			MaxColor: "#F8696B",
		},
	})
}

// writeSpecs lays out one row per product with the union of spec keys
// as columns, alphabetical for stable output.
func writeSpecs(f *excelize.File, products []*types.Product, headerStyle int) error {
	keySet := make(map[string]bool)
	for _, p := range products {
		for k := range p.Specs {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	header := append([]string{"name"}, keys...)
	for colIdx, h := range header {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSpecs, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, p := range products {
		row := append([]string{p.Name}, make([]string, len(keys))...)
		for i, k := range keys {
			row[i+1] = p.Specs[k]
		}
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetSpecs, cell, val); err != nil {
				return err
			}
		}
	}

	if len(header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetSpecs, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	return nil
}
