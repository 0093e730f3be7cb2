package controller

import (
	"github.com/velora/crm/internal/crm/models"
)

// The status engine writes every status-dependent column explicitly on each
// transition: a supplied value when the target status gives the column
// meaning, NULL otherwise. Omission never appears in the resulting column
// map, so stale purchase-order data cannot survive a transition and applying
// the same transition twice is a no-op.

// suppliedOrNull resolves a three-state field under the reset policy: a
// supplied value is written as-is, everything else (unset or explicit null)
// is written as NULL.
func suppliedOrNull[T any](o models.Optional[T]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

// enquiryStatusColumns builds the full column map for an enquiry status
// transition.
func enquiryStatusColumns(status models.EnquiryStatus, f *models.StatusFields) map[string]any {
	if f == nil {
		f = &models.StatusFields{}
	}
	cols := map[string]any{
		"status":                status,
		"purchase_order_number": nil,
		"po_value":              nil,
		"po_date":               nil,
		"date_of_receipt":       nil,
		"receipt_number":        nil,
		"lost_reason":           nil,
	}
	if status.RequiresPOFields() {
		cols["purchase_order_number"] = suppliedOrNull(f.PurchaseOrderNumber)
		cols["po_value"] = suppliedOrNull(f.POValue)
		cols["po_date"] = suppliedOrNull(f.PODate)
		cols["date_of_receipt"] = suppliedOrNull(f.DateOfReceipt)
		cols["receipt_number"] = suppliedOrNull(f.ReceiptNumber)
	}
	if status == models.EnquiryLost {
		cols["lost_reason"] = suppliedOrNull(f.LostReason)
	}
	return cols
}

// quotationStatusColumns builds the full column map for a quotation status
// transition. Quotations carry no receipt columns.
func quotationStatusColumns(status models.QuotationStatus, f *models.StatusFields) map[string]any {
	if f == nil {
		f = &models.StatusFields{}
	}
	cols := map[string]any{
		"status":                status,
		"purchase_order_number": nil,
		"po_value":              nil,
		"po_date":               nil,
		"lost_reason":           nil,
	}
	if status.RequiresPOFields() {
		cols["purchase_order_number"] = suppliedOrNull(f.PurchaseOrderNumber)
		cols["po_value"] = suppliedOrNull(f.POValue)
		cols["po_date"] = suppliedOrNull(f.PODate)
	}
	if status == models.QuotationLost {
		cols["lost_reason"] = suppliedOrNull(f.LostReason)
	}
	return cols
}
