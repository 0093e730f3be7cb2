package models

// EnquiryStatus is the closed status set for enquiries.
type EnquiryStatus string

const (
	EnquiryLive      EnquiryStatus = "LIVE"
	EnquiryBudgetary EnquiryStatus = "BUDGETARY"
	// EnquiryReceived ("RCD") marks the order as received. Relative to
	// quotation-driven sync it is protected: propagation never moves an
	// enquiry out of RCD.
	EnquiryReceived EnquiryStatus = "RCD"
	EnquiryWon      EnquiryStatus = "WON"
	EnquiryLost     EnquiryStatus = "LOST"
	EnquiryDead     EnquiryStatus = "DEAD"
)

// QuotationStatus is the closed status set for quotations.
type QuotationStatus string

const (
	QuotationLive      QuotationStatus = "LIVE"
	QuotationBudgetary QuotationStatus = "BUDGETARY"
	QuotationReceived  QuotationStatus = "RECEIVED"
	QuotationWon       QuotationStatus = "WON"
	QuotationLost      QuotationStatus = "LOST"
	QuotationDead      QuotationStatus = "DEAD"
)

// EnquiryStatuses lists every valid enquiry status.
var EnquiryStatuses = []EnquiryStatus{
	EnquiryLive, EnquiryBudgetary, EnquiryReceived, EnquiryWon, EnquiryLost, EnquiryDead,
}

// QuotationStatuses lists every valid quotation status.
var QuotationStatuses = []QuotationStatus{
	QuotationLive, QuotationBudgetary, QuotationReceived, QuotationWon, QuotationLost, QuotationDead,
}

// Valid reports membership in the enquiry status set.
func (s EnquiryStatus) Valid() bool {
	for _, v := range EnquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid reports membership in the quotation status set.
func (s QuotationStatus) Valid() bool {
	for _, v := range QuotationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// The two status sets map 1:1 by name except for the renamed
// RCD <-> RECEIVED pairing.

// QuotationStatus returns the quotation status an enquiry status propagates as.
func (s EnquiryStatus) QuotationStatus() QuotationStatus {
	if s == EnquiryReceived {
		return QuotationReceived
	}
	return QuotationStatus(s)
}

// EnquiryStatus returns the enquiry status a quotation status propagates as.
func (s QuotationStatus) EnquiryStatus() EnquiryStatus {
	if s == QuotationReceived {
		return EnquiryReceived
	}
	return EnquiryStatus(s)
}

// RequiresPOFields reports whether purchase-order fields are meaningful for
// the status. For every other status they are forced to null on transition.
func (s EnquiryStatus) RequiresPOFields() bool {
	return s == EnquiryWon || s == EnquiryReceived
}

// RequiresPOFields reports whether purchase-order fields are meaningful for
// the status.
func (s QuotationStatus) RequiresPOFields() bool {
	return s == QuotationWon || s == QuotationReceived
}

// LostReason explains a LOST status; it is persisted only while the record
// is LOST and cleared on any other transition.
type LostReason string

const (
	LostReasonPrice         LostReason = "PRICE"
	LostReasonDelivery      LostReason = "DELIVERY"
	LostReasonSpecification LostReason = "SPECIFICATION"
	LostReasonNoResponse    LostReason = "NO_RESPONSE"
	LostReasonOther         LostReason = "OTHER"
)

// LostReasons lists every valid lost reason.
var LostReasons = []LostReason{
	LostReasonPrice, LostReasonDelivery, LostReasonSpecification, LostReasonNoResponse, LostReasonOther,
}

// Valid reports membership in the lost reason set.
func (r LostReason) Valid() bool {
	for _, v := range LostReasons {
		if r == v {
			return true
		}
	}
	return false
}
