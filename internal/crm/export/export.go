// Package export renders the enquiry pipeline as an XLSX workbook for the
// sales team's offline reporting.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/velora/crm/internal/crm/models"
	"github.com/xuri/excelize/v2"
)

var pipelineHeader = []string{
	"Enquiry ID", "Title", "Status", "Priority", "Source",
	"PO Number", "PO Value", "PO Date", "Date of Receipt", "Lost Reason",
}

// WritePipeline writes one row per enquiry into a "Pipeline" sheet.
func WritePipeline(w io.Writer, enquiries []models.Enquiry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Pipeline"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range pipelineHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for i, enq := range enquiries {
		row := []any{
			enq.ID,
			enq.Title,
			string(enq.Status),
			string(enq.Priority),
			string(enq.Source),
			deref(enq.PurchaseOrderNumber),
			derefFloat(enq.POValue),
			dateString(enq.PODate),
			dateString(enq.DateOfReceipt),
			lostReason(enq.LostReason),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func lostReason(r *models.LostReason) string {
	if r == nil {
		return ""
	}
	return string(*r)
}
