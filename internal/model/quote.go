package model

import (
	"time"

	"github.com/google/uuid"
)

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "DRAFT"
	QuoteStatusSubmitted QuoteStatus = "SUBMITTED"
	QuoteStatusAccepted  QuoteStatus = "ACCEPTED"
	QuoteStatusRejected  QuoteStatus = "REJECTED"
)

// Quote is the persisted record of a calculated maintenance quote: the
// customer, the contract terms, the fleet and the selected services with
// their priced occurrence costs. The schedule itself is not stored; it is
// rebuilt from these inputs on demand.
// QuoteDocument bundles a quote with its computed schedule for the PDF
// and Excel generators.
type QuoteDocument struct {
	Quote    Quote
	Schedule Schedule
}

type Quote struct {
	ID             uuid.UUID
	QuoteNumber    string
	ProjectName    string
	RFPNumber      string
	Customer       Customer
	Contract       Contract
	Units          []Unit
	Assignments    []ServiceAssignment
	AnnualTotal    float64
	Status         QuoteStatus
	CreatedByOrgID uuid.UUID
	CreatedByUser  uuid.UUID
	CreatedAt      time.Time
}
