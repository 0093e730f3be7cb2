package handlers

import (
	"time"

	errs "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/velora/crm/internal/crm/validate"
	"github.com/google/uuid"
)

// Request DTOs decode the wire payload with three-state fields, get
// normalized and validated, and convert into domain models. Dates travel as
// ISO strings and become time values here, at the persistence boundary.

type createCompanyRequest struct {
	Name     string                   `json:"name"`
	Industry models.Optional[string]  `json:"industry"`
	Website  models.Optional[string]  `json:"website"`
	Offices  []officeRequest          `json:"offices"`
	Plants   []plantRequest           `json:"plants"`
	Contacts []contactRequest         `json:"contacts"`
}

type officeRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	IsHead  bool   `json:"isHead"`
}

type plantRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type contactRequest struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func (r *createCompanyRequest) toModel() (*models.Company, error) {
	ve := &errs.ValidationError{}
	name := validate.Required("name", r.Name, ve)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	company := &models.Company{Name: name}
	if v, ok := validate.String(r.Industry).Get(); ok {
		company.Industry = v
	}
	if v, ok := validate.String(r.Website).Get(); ok {
		company.Website = v
	}
	for _, o := range r.Offices {
		company.Offices = append(company.Offices, models.Office{
			Address: o.Address, City: o.City, State: o.State, Pincode: o.Pincode, IsHead: o.IsHead,
		})
	}
	for _, p := range r.Plants {
		company.Plants = append(company.Plants, models.Plant{
			Name: p.Name, Address: p.Address, City: p.City, State: p.State,
		})
	}
	for _, c := range r.Contacts {
		company.Contacts = append(company.Contacts, models.ContactPerson{
			Name: c.Name, Designation: c.Designation, Email: c.Email, Phone: c.Phone,
		})
	}
	return company, nil
}

type updateCompanyRequest struct {
	Name     models.Optional[string] `json:"name"`
	Industry models.Optional[string] `json:"industry"`
	Website  models.Optional[string] `json:"website"`
}

func (r *updateCompanyRequest) toUpdate(id uuid.UUID) *models.CompanyUpdate {
	return &models.CompanyUpdate{
		ID:       id,
		Name:     validate.String(r.Name),
		Industry: validate.String(r.Industry),
		Website:  validate.String(r.Website),
	}
}

type createEnquiryRequest struct {
	Title           string                  `json:"title"`
	Description     models.Optional[string] `json:"description"`
	Priority        models.Optional[string] `json:"priority"`
	Source          models.Optional[string] `json:"source"`
	DesignRequired  models.Optional[string] `json:"designRequired"`
	CustomerType    models.Optional[string] `json:"customerType"`
	CompanyID       models.Optional[string] `json:"companyId"`
	ContactPersonID models.Optional[string] `json:"contactPersonId"`
	Items           []enquiryItemRequest    `json:"items"`
}

type enquiryItemRequest struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

func (r *createEnquiryRequest) toModel() (*models.Enquiry, error) {
	ve := &errs.ValidationError{}
	title := validate.Required("title", r.Title, ve)

	enquiry := &models.Enquiry{Title: title}
	if v, ok := validate.String(r.Description).Get(); ok {
		enquiry.Description = v
	}
	if v, ok := validate.OptionalEnum[models.Priority]("priority", r.Priority, ve).Get(); ok {
		enquiry.Priority = v
	}
	if v, ok := validate.OptionalEnum[models.Source]("source", r.Source, ve).Get(); ok {
		enquiry.Source = v
	}
	if v, ok := validate.OptionalEnum[models.DesignRequired]("designRequired", r.DesignRequired, ve).Get(); ok {
		enquiry.DesignRequired = v
	}
	if v, ok := validate.OptionalEnum[models.CustomerType]("customerType", r.CustomerType, ve).Get(); ok {
		enquiry.CustomerType = v
	}
	if v, ok := validate.OptionalUUID("companyId", r.CompanyID, ve).Get(); ok {
		enquiry.CompanyID = &v
	}
	if v, ok := validate.OptionalUUID("contactPersonId", r.ContactPersonID, ve).Get(); ok {
		enquiry.ContactPersonID = &v
	}
	for _, item := range r.Items {
		enquiry.Items = append(enquiry.Items, models.EnquiryItem{
			Description: item.Description, Quantity: item.Quantity, Unit: item.Unit,
		})
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return enquiry, nil
}

type updateEnquiryRequest struct {
	Title          models.Optional[string] `json:"title"`
	Description    models.Optional[string] `json:"description"`
	Priority       models.Optional[string] `json:"priority"`
	Source         models.Optional[string] `json:"source"`
	DesignRequired models.Optional[string] `json:"designRequired"`
	CustomerType   models.Optional[string] `json:"customerType"`
	CompanyID      models.Optional[string] `json:"companyId"`
}

func (r *updateEnquiryRequest) toUpdate(id int) (*models.EnquiryUpdate, error) {
	ve := &errs.ValidationError{}
	update := &models.EnquiryUpdate{
		ID:             id,
		Title:          validate.String(r.Title),
		Description:    validate.String(r.Description),
		Priority:       validate.OptionalEnum[models.Priority]("priority", r.Priority, ve),
		Source:         validate.OptionalEnum[models.Source]("source", r.Source, ve),
		DesignRequired: validate.OptionalEnum[models.DesignRequired]("designRequired", r.DesignRequired, ve),
		CustomerType:   validate.OptionalEnum[models.CustomerType]("customerType", r.CustomerType, ve),
		CompanyID:      validate.OptionalUUID("companyId", r.CompanyID, ve),
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return update, nil
}

// statusRequest is shared by both status operations; irrelevant fields for
// an entity are simply never read.
type statusRequest struct {
	Status              string                   `json:"status"`
	PurchaseOrderNumber models.Optional[string]  `json:"purchaseOrderNumber"`
	POValue             models.Optional[float64] `json:"poValue"`
	PODate              models.Optional[string]  `json:"poDate"`
	DateOfReceipt       models.Optional[string]  `json:"dateOfReceipt"`
	ReceiptNumber       models.Optional[string]  `json:"receiptNumber"`
	LostReason          models.Optional[string]  `json:"lostReason"`
}

func (r *statusRequest) toFields() (*models.StatusFields, error) {
	ve := &errs.ValidationError{}
	fields := &models.StatusFields{
		PurchaseOrderNumber: validate.String(r.PurchaseOrderNumber),
		POValue:             validate.Number(r.POValue),
		PODate:              toDate(validate.Date("poDate", r.PODate, ve)),
		DateOfReceipt:       toDate(validate.Date("dateOfReceipt", r.DateOfReceipt, ve)),
		ReceiptNumber:       validate.String(r.ReceiptNumber),
		LostReason:          validate.OptionalEnum[models.LostReason]("lostReason", r.LostReason, ve),
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return fields, nil
}

// toDate converts a validated ISO date string into a time value, keeping the
// three-state semantics.
func toDate(o models.Optional[string]) models.Optional[time.Time] {
	if !o.IsSet() {
		return models.Optional[time.Time]{}
	}
	if o.IsNull() {
		return models.Null[time.Time]()
	}
	v, _ := o.Get()
	t, err := time.Parse(validate.ISODateFormat, v)
	if err != nil {
		return models.Optional[time.Time]{}
	}
	return models.Some(t)
}

type createQuotationRequest struct {
	EnquiryID int                        `json:"enquiryId"`
	Number    string                     `json:"number"`
	Revision  int                        `json:"revision"`
	Value     models.Optional[float64]   `json:"value"`
	Currency  models.Optional[string]    `json:"currency"`
	ValidTo   models.Optional[string]    `json:"validTo"`
	Items     []quotationItemRequest     `json:"items"`
}

type quotationItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
}

func (r *createQuotationRequest) toModel() (*models.Quotation, error) {
	ve := &errs.ValidationError{}
	number := validate.Required("number", r.Number, ve)
	if r.EnquiryID == 0 {
		ve.Add("enquiryId", "required")
	}
	validTo := toDate(validate.Date("validTo", r.ValidTo, ve))
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	quotation := &models.Quotation{
		EnquiryID: r.EnquiryID,
		Number:    number,
		Revision:  r.Revision,
	}
	if v, ok := validate.Number(r.Value).Get(); ok {
		quotation.Value = v
	}
	if v, ok := validate.String(r.Currency).Get(); ok {
		quotation.Currency = v
	}
	if v, ok := validTo.Get(); ok {
		quotation.ValidTo = &v
	}
	for _, item := range r.Items {
		quotation.Items = append(quotation.Items, models.QuotationItem{
			Description: item.Description, Quantity: item.Quantity, Unit: item.Unit, UnitPrice: item.UnitPrice,
		})
	}
	return quotation, nil
}

type updateQuotationRequest struct {
	Number   models.Optional[string]  `json:"number"`
	Revision models.Optional[int]     `json:"revision"`
	Value    models.Optional[float64] `json:"value"`
	Currency models.Optional[string]  `json:"currency"`
	ValidTo  models.Optional[string]  `json:"validTo"`
}

func (r *updateQuotationRequest) toUpdate(id uuid.UUID) (*models.QuotationUpdate, error) {
	ve := &errs.ValidationError{}
	update := &models.QuotationUpdate{
		ID:       id,
		Number:   validate.String(r.Number),
		Revision: r.Revision,
		Value:    validate.Number(r.Value),
		Currency: validate.String(r.Currency),
		ValidTo:  toDate(validate.Date("validTo", r.ValidTo, ve)),
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return update, nil
}

type createCommunicationRequest struct {
	EnquiryID       int                     `json:"enquiryId"`
	ContactPersonID models.Optional[string] `json:"contactPersonId"`
	Kind            string                  `json:"kind"`
	Summary         string                  `json:"summary"`
	OccurredAt      models.Optional[string] `json:"occurredAt"`
}

func (r *createCommunicationRequest) toModel() (*models.Communication, error) {
	ve := &errs.ValidationError{}
	if r.EnquiryID == 0 {
		ve.Add("enquiryId", "required")
	}
	summary := validate.Required("summary", r.Summary, ve)
	kind := models.CommunicationKind(r.Kind)
	validate.Enum("kind", kind, ve)
	contact := validate.OptionalUUID("contactPersonId", r.ContactPersonID, ve)
	occurred := toDate(validate.Date("occurredAt", r.OccurredAt, ve))
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	comm := &models.Communication{
		EnquiryID: r.EnquiryID,
		Kind:      kind,
		Summary:   summary,
	}
	if v, ok := contact.Get(); ok {
		comm.ContactPersonID = &v
	}
	if v, ok := occurred.Get(); ok {
		comm.OccurredAt = v
	}
	return comm, nil
}
