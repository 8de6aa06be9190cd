package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Write serializes the workbook as xlsx.
func (workbook *Workbook) Write(w io.Writer) error {
	file, err := workbook.xlsx()
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Msg("Workbook could not be closed.")
		}
	}()
	return file.Write(w)
}

func (workbook *Workbook) xlsx() (*excelize.File, error) {
	if len(workbook.Sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	file := excelize.NewFile()
	styles := make(map[Style]int)
	for i, sheet := range workbook.Sheets {
		var err error
		if i == 0 {
			err = file.SetSheetName(file.GetSheetName(0), sheet.Name)
		} else {
			_, err = file.NewSheet(sheet.Name)
		}
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("could not create sheet %q: %w", sheet.Name, err)
		}
		if err = writeSheet(file, sheet, styles); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("could not write sheet %q: %w", sheet.Name, err)
		}
	}
	file.SetActiveSheet(0)
	return file, nil
}

func writeSheet(file *excelize.File, sheet *Sheet, styles map[Style]int) error {
	for r, cells := range sheet.Rows {
		for c, cell := range cells {
			if cell.Value == nil && cell.Style == (Style{}) {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if cell.Value != nil {
				if err = file.SetCellValue(sheet.Name, axis, cell.Value); err != nil {
					return err
				}
			}
			if cell.Style == (Style{}) {
				continue
			}
			id, ok := styles[cell.Style]
			if !ok {
				if id, err = file.NewStyle(cell.Style.xlsx()); err != nil {
					return err
				}
				styles[cell.Style] = id
			}
			if err = file.SetCellStyle(sheet.Name, axis, axis, id); err != nil {
				return err
			}
		}
	}
	for _, merge := range sheet.Merges {
		from, err := excelize.CoordinatesToCellName(merge.FromCol, merge.Row)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(merge.ToCol, merge.Row)
		if err != nil {
			return err
		}
		if err = file.MergeCell(sheet.Name, from, to); err != nil {
			return err
		}
	}
	for c, width := range sheet.Widths {
		if width <= 0 {
			continue
		}
		column, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err = file.SetColWidth(sheet.Name, column, column, width); err != nil {
			return err
		}
	}
	return nil
}

func (style Style) xlsx() *excelize.Style {
	result := &excelize.Style{}
	if style.Fill != "" {
		result.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{style.Fill}}
	}
	if style.Bold || style.FontColor != "" || style.Size > 0 {
		result.Font = &excelize.Font{Bold: style.Bold, Color: style.FontColor, Size: style.Size}
	}
	if style.Border {
		result.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}
	if style.Align != "" || style.Wrap {
		result.Alignment = &excelize.Alignment{Horizontal: style.Align, Vertical: "center", WrapText: style.Wrap}
	}
	return result
}
