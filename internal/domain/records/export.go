package records

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	ExportFileName = "sheep_data"
	CSVMimeType    = "text/csv"
	XLSXMimeType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	xlsxSheet = "Sheep Records"
)

// WriteCSV escribe encabezado + filas. Devuelve la cantidad de filas de datos.
func WriteCSV(w io.Writer, rows []Row) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range rows {
		vals, err := r.Values()
		if err != nil {
			return i, err
		}
		if err := cw.Write(vals); err != nil {
			return i, fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return len(rows), cw.Error()
}

// ExportCSV arma el CSV del join completo. Con el storage vacío devuelve n=0
// y el que llama decide qué mostrar.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, int, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}
	var buf bytes.Buffer
	n, err := WriteCSV(&buf, rows)
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), n, nil
}

func (s *Service) ExportXLSX(ctx context.Context) ([]byte, int, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}
	b, err := GenerateXLSX(rows)
	if err != nil {
		return nil, 0, err
	}
	return b, len(rows), nil
}

var xlsxColumnWidths = map[string]float64{
	"tag_id":       15,
	"dob_purchase": 14,
	"notes":        30,
	"details":      60,
	"recorded_at":  22,
}

// GenerateXLSX genera la planilla con una hoja y encabezado con estilo.
func GenerateXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(xlsxSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		if w, ok := xlsxColumnWidths[name]; ok {
			colName, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetColWidth(xlsxSheet, colName, colName, w); err != nil {
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for i, r := range rows {
		vals, err := r.Values()
		if err != nil {
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		line := make([]any, len(vals))
		for j, v := range vals {
			line[j] = v
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &line); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
