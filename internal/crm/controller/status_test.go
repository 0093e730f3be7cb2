package controller

import (
	"context"
	"fmt"
	"testing"
	"time"

	e "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnquiryStatusPropagatesToAllRevisions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "pump skid")
	q1 := env.createQuotation(t, enquiry.ID, "Q-001")
	q2 := env.createQuotation(t, enquiry.ID, "Q-001-R1")

	updated, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryLost, &models.StatusFields{
		LostReason: models.Some(models.LostReasonPrice),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryLost, updated.Status)

	assert.Equal(t, models.QuotationLost, env.quotationStatus(t, q1.ID), "first revision should follow")
	assert.Equal(t, models.QuotationLost, env.quotationStatus(t, q2.ID), "second revision should follow")
}

func TestEnquiryStatusPropagationIsUnconditional(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "override any quotation state")
	quotation := env.createQuotation(t, enquiry.ID, "Q-010")

	// Put the quotation in a state the enquiry side would now contradict.
	_, err := env.quotations.UpdateQuotationStatus(ctx, quotation.ID, models.QuotationWon, nil)
	require.NoError(t, err)

	_, err = env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryDead, nil)
	require.NoError(t, err)

	assert.Equal(t, models.QuotationDead, env.quotationStatus(t, quotation.ID),
		"enquiry-driven sync overrides quotation state without exception")
}

func TestEnquiryStatusRcdMapsToReceived(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "order received")
	quotation := env.createQuotation(t, enquiry.ID, "Q-020")

	receipt := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	updated, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryReceived, &models.StatusFields{
		DateOfReceipt: models.Some(receipt),
		ReceiptNumber: models.Some("RCPT-77"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryReceived, updated.Status)
	require.NotNil(t, updated.DateOfReceipt)
	assert.True(t, receipt.Equal(*updated.DateOfReceipt))

	assert.Equal(t, models.QuotationReceived, env.quotationStatus(t, quotation.ID),
		"RCD on the enquiry maps to RECEIVED on quotations")
}

func TestEnquiryStatusRcdRequiresDateOfReceipt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "missing receipt date")

	for name, fields := range map[string]*models.StatusFields{
		"no fields at all": nil,
		"explicit null":    {DateOfReceipt: models.Null[time.Time]()},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryReceived, fields)
			var ve *e.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, "dateOfReceipt", ve.Fields[0].Field)
		})
	}

	// Nothing was written.
	assert.Equal(t, models.EnquiryLive, env.enquiryStatus(t, enquiry.ID))
}

func TestQuotationStatusPropagatesToEnquiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "follows quotation")
	quotation := env.createQuotation(t, enquiry.ID, "Q-030")

	updated, err := env.quotations.UpdateQuotationStatus(ctx, quotation.ID, models.QuotationBudgetary, nil)
	require.NoError(t, err)
	assert.Equal(t, models.QuotationBudgetary, updated.Status)
	assert.Equal(t, models.EnquiryBudgetary, env.enquiryStatus(t, enquiry.ID))
}

func TestQuotationStatusReceivedMapsToRcd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "received via quotation")
	quotation := env.createQuotation(t, enquiry.ID, "Q-040")

	received := time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC)
	_, err := env.quotations.UpdateQuotationStatus(ctx, quotation.ID, models.QuotationReceived, &models.StatusFields{
		PurchaseOrderNumber: models.Some("PO-555"),
		DateOfReceipt:       models.Some(received),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryReceived, env.enquiryStatus(t, enquiry.ID),
		"RECEIVED on the quotation maps to RCD on the enquiry")

	updated, err := env.repo.GetEnquiry(ctx, enquiry.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.DateOfReceipt)
	assert.True(t, received.Equal(*updated.DateOfReceipt),
		"the receipt date travels with the propagated RCD")
}

func TestQuotationStatusReceivedRequiresDateOfReceipt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "receipt gate on quotation")
	quotation := env.createQuotation(t, enquiry.ID, "Q-041")

	cases := map[string]*models.StatusFields{
		"no fields at all": nil,
		"explicit null":    {DateOfReceipt: models.Null[time.Time]()},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.quotations.UpdateQuotationStatus(ctx, quotation.ID, models.QuotationReceived, fields)

			var ve *e.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, "dateOfReceipt", ve.Fields[0].Field)

			assert.Equal(t, models.QuotationLive, env.quotationStatus(t, quotation.ID),
				"a rejected transition leaves the quotation untouched")
			assert.Equal(t, models.EnquiryLive, env.enquiryStatus(t, enquiry.ID),
				"nothing propagates from a rejected transition")
		})
	}
}

func TestRcdEnquirySuppressesQuotationPropagation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "protected once received")
	quotation := env.createQuotation(t, enquiry.ID, "Q-050")

	_, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryReceived, &models.StatusFields{
		DateOfReceipt: models.Some(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	// The quotation itself still moves; the enquiry does not.
	updated, err := env.quotations.UpdateQuotationStatus(ctx, quotation.ID, models.QuotationLost, &models.StatusFields{
		LostReason: models.Some(models.LostReasonDelivery),
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuotationLost, updated.Status, "primary write still applies")
	assert.Equal(t, models.EnquiryReceived, env.enquiryStatus(t, enquiry.ID),
		"an RCD enquiry is never moved by quotation-driven sync")
}

func TestEnquiryStatusUpdateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "apply twice")
	env.createQuotation(t, enquiry.ID, "Q-060")

	fields := &models.StatusFields{
		PurchaseOrderNumber: models.Some("PO-900"),
		POValue:             models.Some(42000.0),
	}
	first, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryWon, fields)
	require.NoError(t, err)
	second, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryWon, fields)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.PurchaseOrderNumber, second.PurchaseOrderNumber)
	assert.Equal(t, first.POValue, second.POValue)
	assert.Equal(t, first.LostReason, second.LostReason)
}

func TestWonPersistsPOFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "full po data")
	poDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	updated, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryWon, &models.StatusFields{
		PurchaseOrderNumber: models.Some("PO-123"),
		POValue:             models.Some(150000.0),
		PODate:              models.Some(poDate),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.PurchaseOrderNumber)
	assert.Equal(t, "PO-123", *updated.PurchaseOrderNumber)
	require.NotNil(t, updated.POValue)
	assert.Equal(t, 150000.0, *updated.POValue)
	require.NotNil(t, updated.PODate)
	assert.True(t, poDate.Equal(*updated.PODate))
	assert.Nil(t, updated.LostReason)
}

func TestTransitionAwayClearsPOFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "po data must not survive")
	_, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryWon, &models.StatusFields{
		PurchaseOrderNumber: models.Some("PO-321"),
		POValue:             models.Some(88000.0),
		PODate:              models.Some(time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	updated, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryLive, nil)
	require.NoError(t, err)

	assert.Equal(t, models.EnquiryLive, updated.Status)
	assert.Nil(t, updated.PurchaseOrderNumber)
	assert.Nil(t, updated.POValue)
	assert.Nil(t, updated.PODate)
	assert.Nil(t, updated.DateOfReceipt)
	assert.Nil(t, updated.ReceiptNumber)
}

func TestLostReasonExclusivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "won lost won")
	_, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryWon, &models.StatusFields{
		PurchaseOrderNumber: models.Some("PO-111"),
	})
	require.NoError(t, err)

	lost, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryLost, &models.StatusFields{
		LostReason: models.Some(models.LostReasonSpecification),
	})
	require.NoError(t, err)
	require.NotNil(t, lost.LostReason)
	assert.Equal(t, models.LostReasonSpecification, *lost.LostReason)
	assert.Nil(t, lost.PurchaseOrderNumber, "LOST clears the PO number")

	won, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryWon, &models.StatusFields{
		PurchaseOrderNumber: models.Some("PO-112"),
	})
	require.NoError(t, err)
	assert.Nil(t, won.LostReason, "leaving LOST clears the lost reason")
	require.NotNil(t, won.PurchaseOrderNumber)
	assert.Equal(t, "PO-112", *won.PurchaseOrderNumber)
}

func TestWonWithoutPOFieldsIsAccepted(t *testing.T) {
	env := newTestEnv(t)

	enquiry := env.createEnquiry(t, "won without paperwork yet")
	updated, err := env.enquiries.UpdateEnquiryStatus(context.Background(), enquiry.ID, models.EnquiryWon, nil)
	require.NoError(t, err, "PO fields are optional even when the status gives them meaning")
	assert.Equal(t, models.EnquiryWon, updated.Status)
	assert.Nil(t, updated.PurchaseOrderNumber)
}

func TestEnquiryStatusInvalid(t *testing.T) {
	env := newTestEnv(t)

	enquiry := env.createEnquiry(t, "bad status")
	_, err := env.enquiries.UpdateEnquiryStatus(context.Background(), enquiry.ID, models.EnquiryStatus("won"), nil)
	var ve *e.ValidationError
	require.ErrorAs(t, err, &ve, "status values are not case-folded")
	assert.Equal(t, "status", ve.Fields[0].Field)
}

func TestEnquiryStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.enquiries.UpdateEnquiryStatus(context.Background(), 99999, models.EnquiryDead, nil)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestQuotationStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quotations.UpdateQuotationStatus(context.Background(), uuid.New(), models.QuotationDead, nil)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestQuotationStatusMissingEnquirySkipsPropagation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "soon to vanish")
	quotation := env.createQuotation(t, enquiry.ID, "Q-070")

	// Remove only the parent row, leaving the quotation dangling.
	require.NoError(t, env.repo.Exec(ctx, "DELETE FROM enquiries WHERE id = ?", enquiry.ID))

	updated, err := env.quotations.UpdateQuotationStatus(ctx, quotation.ID, models.QuotationDead, nil)
	require.NoError(t, err, "a missing propagation target must not fail the primary write")
	assert.Equal(t, models.QuotationDead, updated.Status)
}

func TestQuotationStatusCarriesFieldPolicyToEnquiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "po data flows both ways")
	quotation := env.createQuotation(t, enquiry.ID, "Q-080")

	_, err := env.quotations.UpdateQuotationStatus(ctx, quotation.ID, models.QuotationWon, &models.StatusFields{
		PurchaseOrderNumber: models.Some("PO-777"),
		POValue:             models.Some(64000.0),
	})
	require.NoError(t, err)

	propagated, err := env.repo.GetEnquiry(ctx, enquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryWon, propagated.Status)
	require.NotNil(t, propagated.PurchaseOrderNumber)
	assert.Equal(t, "PO-777", *propagated.PurchaseOrderNumber)
	require.NotNil(t, propagated.POValue)
	assert.Equal(t, 64000.0, *propagated.POValue)
}

func TestStatusUpdateWithoutQuotationsSucceeds(t *testing.T) {
	env := newTestEnv(t)

	enquiry := env.createEnquiry(t, "no revisions")
	updated, err := env.enquiries.UpdateEnquiryStatus(context.Background(), enquiry.ID, models.EnquiryBudgetary, nil)
	require.NoError(t, err, "an enquiry without quotations still transitions")
	assert.Equal(t, models.EnquiryBudgetary, updated.Status)
}

func TestEnquiryStatusPropagationFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	enquiry := env.createEnquiry(t, "atomic pair")
	quotation := env.createQuotation(t, enquiry.ID, "Q-090")

	// Make the propagated write fail after the primary write has already run.
	require.NoError(t, env.repo.Exec(ctx, fmt.Sprintf(
		"CREATE TRIGGER block_propagation BEFORE UPDATE ON quotations WHEN NEW.enquiry_id = %d BEGIN SELECT RAISE(ABORT, 'propagation blocked'); END",
		enquiry.ID)))

	_, err := env.enquiries.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryDead, nil)
	require.Error(t, err)

	assert.Equal(t, models.EnquiryLive, env.enquiryStatus(t, enquiry.ID),
		"the primary write must not survive a failed propagation")
	assert.Equal(t, models.QuotationLive, env.quotationStatus(t, quotation.ID))
}
