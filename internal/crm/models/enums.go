package models

// Priority ranks how urgently an enquiry should be worked.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// Source records how an enquiry reached us.
type Source string

const (
	SourceEmail     Source = "EMAIL"
	SourcePhone     Source = "PHONE"
	SourceWebsite   Source = "WEBSITE"
	SourceReferral  Source = "REFERRAL"
	SourceTradeShow Source = "TRADE_SHOW"
)

var Sources = []Source{SourceEmail, SourcePhone, SourceWebsite, SourceReferral, SourceTradeShow}

func (s Source) Valid() bool {
	for _, v := range Sources {
		if s == v {
			return true
		}
	}
	return false
}

// DesignRequired flags whether an enquiry needs design work before quoting.
type DesignRequired string

const (
	DesignRequiredYes DesignRequired = "YES"
	DesignRequiredNo  DesignRequired = "NO"
)

var DesignRequiredValues = []DesignRequired{DesignRequiredYes, DesignRequiredNo}

func (d DesignRequired) Valid() bool {
	return d == DesignRequiredYes || d == DesignRequiredNo
}

// CustomerType classifies the company on an enquiry.
type CustomerType string

const (
	CustomerTypeEndUser CustomerType = "END_USER"
	CustomerTypeOEM     CustomerType = "OEM"
	CustomerTypeDealer  CustomerType = "DEALER"
	CustomerTypeEPC     CustomerType = "EPC"
)

var CustomerTypes = []CustomerType{CustomerTypeEndUser, CustomerTypeOEM, CustomerTypeDealer, CustomerTypeEPC}

func (c CustomerType) Valid() bool {
	for _, v := range CustomerTypes {
		if c == v {
			return true
		}
	}
	return false
}

// CommunicationKind is the channel of a logged customer interaction.
type CommunicationKind string

const (
	CommunicationCall    CommunicationKind = "CALL"
	CommunicationEmail   CommunicationKind = "EMAIL"
	CommunicationMeeting CommunicationKind = "MEETING"
	CommunicationNote    CommunicationKind = "NOTE"
)

var CommunicationKinds = []CommunicationKind{
	CommunicationCall, CommunicationEmail, CommunicationMeeting, CommunicationNote,
}

func (k CommunicationKind) Valid() bool {
	for _, v := range CommunicationKinds {
		if k == v {
			return true
		}
	}
	return false
}
