package handlers

import (
	"time"

	"github.com/velora/crm/internal/crm/models"
)

// Response views decouple the wire shape from the gorm models.

type companyView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Industry string        `json:"industry,omitempty"`
	Website  string        `json:"website,omitempty"`
	Offices  []officeView  `json:"offices,omitempty"`
	Plants   []plantView   `json:"plants,omitempty"`
	Contacts []contactView `json:"contacts,omitempty"`
}

type officeView struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	IsHead  bool   `json:"isHead"`
}

type plantView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type contactView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

func toCompanyView(c *models.Company) companyView {
	view := companyView{
		ID:       c.ID.String(),
		Name:     c.Name,
		Industry: c.Industry,
		Website:  c.Website,
	}
	for _, o := range c.Offices {
		view.Offices = append(view.Offices, officeView{
			ID: o.ID.String(), Address: o.Address, City: o.City, State: o.State, Pincode: o.Pincode, IsHead: o.IsHead,
		})
	}
	for _, p := range c.Plants {
		view.Plants = append(view.Plants, plantView{
			ID: p.ID.String(), Name: p.Name, Address: p.Address, City: p.City, State: p.State,
		})
	}
	for _, ct := range c.Contacts {
		view.Contacts = append(view.Contacts, contactView{
			ID: ct.ID.String(), Name: ct.Name, Designation: ct.Designation, Email: ct.Email, Phone: ct.Phone,
		})
	}
	return view
}

type enquiryView struct {
	ID                  int              `json:"id"`
	Title               string           `json:"title"`
	Description         string           `json:"description,omitempty"`
	Status              string           `json:"status"`
	Priority            string           `json:"priority,omitempty"`
	Source              string           `json:"source,omitempty"`
	DesignRequired      string           `json:"designRequired,omitempty"`
	CustomerType        string           `json:"customerType,omitempty"`
	CompanyID           *string          `json:"companyId,omitempty"`
	PurchaseOrderNumber *string          `json:"purchaseOrderNumber"`
	POValue             *float64         `json:"poValue"`
	PODate              *string          `json:"poDate"`
	DateOfReceipt       *string          `json:"dateOfReceipt"`
	ReceiptNumber       *string          `json:"receiptNumber"`
	LostReason          *string          `json:"lostReason"`
	Items               []itemView       `json:"items,omitempty"`
	Quotations          []quotationView  `json:"quotations,omitempty"`
}

type itemView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit,omitempty"`
}

func toEnquiryView(e *models.Enquiry) enquiryView {
	view := enquiryView{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		Status:              string(e.Status),
		Priority:            string(e.Priority),
		Source:              string(e.Source),
		DesignRequired:      string(e.DesignRequired),
		CustomerType:        string(e.CustomerType),
		PurchaseOrderNumber: e.PurchaseOrderNumber,
		POValue:             e.POValue,
		PODate:              dateView(e.PODate),
		DateOfReceipt:       dateView(e.DateOfReceipt),
		ReceiptNumber:       e.ReceiptNumber,
		LostReason:          reasonView(e.LostReason),
	}
	if e.CompanyID != nil {
		id := e.CompanyID.String()
		view.CompanyID = &id
	}
	for _, item := range e.Items {
		view.Items = append(view.Items, itemView{
			ID: item.ID.String(), Description: item.Description, Quantity: item.Quantity, Unit: item.Unit,
		})
	}
	for i := range e.Quotations {
		view.Quotations = append(view.Quotations, toQuotationView(&e.Quotations[i]))
	}
	return view
}

type quotationView struct {
	ID                  string          `json:"id"`
	EnquiryID           int             `json:"enquiryId"`
	Number              string          `json:"number"`
	Revision            int             `json:"revision"`
	Status              string          `json:"status"`
	Value               float64         `json:"value"`
	Currency            string          `json:"currency,omitempty"`
	ValidTo             *string         `json:"validTo,omitempty"`
	PurchaseOrderNumber *string         `json:"purchaseOrderNumber"`
	POValue             *float64        `json:"poValue"`
	PODate              *string         `json:"poDate"`
	LostReason          *string         `json:"lostReason"`
	Items               []lineItemView  `json:"items,omitempty"`
}

type lineItemView struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
}

func toQuotationView(q *models.Quotation) quotationView {
	view := quotationView{
		ID:                  q.ID.String(),
		EnquiryID:           q.EnquiryID,
		Number:              q.Number,
		Revision:            q.Revision,
		Status:              string(q.Status),
		Value:               q.Value,
		Currency:            q.Currency,
		ValidTo:             dateView(q.ValidTo),
		PurchaseOrderNumber: q.PurchaseOrderNumber,
		POValue:             q.POValue,
		PODate:              dateView(q.PODate),
		LostReason:          reasonView(q.LostReason),
	}
	for _, item := range q.Items {
		view.Items = append(view.Items, lineItemView{
			ID: item.ID.String(), Description: item.Description, Quantity: item.Quantity, Unit: item.Unit, UnitPrice: item.UnitPrice,
		})
	}
	return view
}

type communicationView struct {
	ID              string  `json:"id"`
	EnquiryID       int     `json:"enquiryId"`
	ContactPersonID *string `json:"contactPersonId,omitempty"`
	Kind            string  `json:"kind"`
	Summary         string  `json:"summary"`
	OccurredAt      string  `json:"occurredAt"`
}

func toCommunicationView(c *models.Communication) communicationView {
	view := communicationView{
		ID:         c.ID.String(),
		EnquiryID:  c.EnquiryID,
		Kind:       string(c.Kind),
		Summary:    c.Summary,
		OccurredAt: c.OccurredAt.Format(time.RFC3339),
	}
	if c.ContactPersonID != nil {
		id := c.ContactPersonID.String()
		view.ContactPersonID = &id
	}
	return view
}

func dateView(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func reasonView(r *models.LostReason) *string {
	if r == nil {
		return nil
	}
	s := string(*r)
	return &s
}
