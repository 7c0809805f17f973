package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
)

const (
	sheetName    = "Register"
	titleRow     = 1
	headerRow    = 3
	dataRowStart = 4
)

var registerHeaders = []interface{}{
	"Doc Number", "Type", "Date", "Client", "Phone", "Vehicle / Item",
	"Price", "Subtotal", "Total Paid", "Balance", "Created",
}

// RegisterWriter renders the document register as an XLSX workbook
type RegisterWriter struct {
	companyName string
	logger      *zap.Logger
}

// NewRegisterWriter creates a register writer. companyName titles the sheet.
func NewRegisterWriter(companyName string, logger *zap.Logger) *RegisterWriter {
	return &RegisterWriter{
		companyName: companyName,
		logger:      logger,
	}
}

// WriteRegister writes one row per document followed by a totals row
func (r *RegisterWriter) WriteRegister(ctx context.Context, w io.Writer, rows []port.RegisterRow) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := r.fillTitle(file, len(rows)); err != nil {
		return fmt.Errorf("failed to fill title: %w", err)
	}
	if err := r.fillHeader(file); err != nil {
		return fmt.Errorf("failed to fill header: %w", err)
	}
	if err := r.fillRows(ctx, file, rows); err != nil {
		return fmt.Errorf("failed to fill rows: %w", err)
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	r.logger.Info("Register written", zap.Int("row_count", len(rows)))
	return nil
}

func (r *RegisterWriter) fillTitle(file *excelize.File, count int) error {
	title := "Document Register"
	if r.companyName != "" {
		title = r.companyName + " - " + title
	}
	if err := file.SetCellValue(sheetName, cellName(1, titleRow), title); err != nil {
		return err
	}
	r.setCell(file, cellName(1, titleRow+1), fmt.Sprintf("%d documents", count))
	return nil
}

func (r *RegisterWriter) fillHeader(file *excelize.File) error {
	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start := cellName(1, headerRow)
	end := cellName(len(registerHeaders), headerRow)
	if err := file.SetSheetRow(sheetName, start, &registerHeaders); err != nil {
		return err
	}
	if err := file.SetCellStyle(sheetName, start, end, style); err != nil {
		r.logger.Warn("Failed to style header row", zap.Error(err))
	}
	if err := file.SetColWidth(sheetName, "A", "F", 18); err != nil {
		r.logger.Warn("Failed to set column width", zap.Error(err))
	}
	return nil
}

func (r *RegisterWriter) fillRows(ctx context.Context, file *excelize.File, rows []port.RegisterRow) error {
	price, subtotal, paid, balance := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		d := row.Document
		title := d.VehicleTitle
		if title == "" && len(d.Items) > 0 {
			title = d.Items[0].Description
		}
		values := []interface{}{
			d.DocNumber, d.Type.Label(), d.Date, d.ClientName, d.ClientPhone, title,
			d.VehiclePrice, row.Subtotal, row.TotalPaid, row.Balance,
			excelTime(d.CreatedAt),
		}
		if err := file.SetSheetRow(sheetName, cellName(1, dataRowStart+i), &values); err != nil {
			return fmt.Errorf("failed to set row %d: %w", dataRowStart+i, err)
		}

		price = price.Add(decimal.NewFromFloat(d.VehiclePrice))
		subtotal = subtotal.Add(decimal.NewFromFloat(row.Subtotal))
		paid = paid.Add(decimal.NewFromFloat(row.TotalPaid))
		balance = balance.Add(decimal.NewFromFloat(row.Balance))
	}

	totalRow := dataRowStart + len(rows)
	totals := []interface{}{"TOTAL", "", "", "", "", "",
		price.InexactFloat64(), subtotal.InexactFloat64(), paid.InexactFloat64(), balance.InexactFloat64()}
	return file.SetSheetRow(sheetName, cellName(1, totalRow), &totals)
}

// setCell sets a cell value, logging instead of failing
func (r *RegisterWriter) setCell(file *excelize.File, cell string, value interface{}) {
	if err := file.SetCellValue(sheetName, cell, value); err != nil {
		r.logger.Warn("Failed to set cell value",
			zap.String("sheet", sheetName),
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// excelTime formats epoch milliseconds in UTC; zero stays blank
func excelTime(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}

var _ port.RegisterExporter = (*RegisterWriter)(nil)
