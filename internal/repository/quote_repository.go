package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/energen/genquote/internal/model"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// CreateQuote stores the quote with its fleet and service assignments in
// one transaction. The schedule is not stored; it is recomputed from
// these rows on read.
func (r *QuoteRepository) CreateQuote(ctx context.Context, quote *model.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(`
			INSERT INTO quotes (
				id, quote_number, project_name, rfp_number,
				customer_company, customer_contact, customer_email, customer_phone,
				customer_address, customer_city, customer_state, customer_zip,
				start_date, crew_size, hours_per_tech, weather_profile,
				annual_total, status, created_by_org_id, created_by_user_id, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			quote.ID, quote.QuoteNumber, quote.ProjectName, quote.RFPNumber,
			quote.Customer.CompanyName, quote.Customer.ContactName, quote.Customer.Email, quote.Customer.Phone,
			quote.Customer.Address, quote.Customer.City, quote.Customer.State, quote.Customer.Zip,
			quote.Contract.StartDate, quote.Contract.CrewSize, quote.Contract.HoursPerTech, quote.Contract.WeatherProfile,
			quote.AnnualTotal, string(quote.Status), quote.CreatedByOrgID, quote.CreatedByUser, quote.CreatedAt,
		).Error
		if err != nil {
			return err
		}

		for _, unit := range quote.Units {
			err := tx.Exec(`
				INSERT INTO quote_units (
					id, quote_id, asset_id, manufacturer, model,
					serial_number, building, kw, fuel_type
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				unit.ID, quote.ID, unit.AssetID, unit.Manufacturer, unit.Model,
				unit.SerialNumber, unit.Building, unit.KW, unit.FuelType,
			).Error
			if err != nil {
				return err
			}
		}

		for _, a := range quote.Assignments {
			err := tx.Exec(`
				INSERT INTO quote_services (
					quote_id, unit_id, code, name, frequency, occurrence_cost
				) VALUES (?, ?, ?, ?, ?, ?)
			`,
				quote.ID, a.UnitID, string(a.Code), a.Name, a.Frequency, a.OccurrenceCost,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuoteRepository) GetQuote(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	var row struct {
		ID              uuid.UUID
		QuoteNumber     string
		ProjectName     string
		RFPNumber       string
		CustomerCompany string
		CustomerContact string
		CustomerEmail   string
		CustomerPhone   string
		CustomerAddress string
		CustomerCity    string
		CustomerState   string
		CustomerZip     string
		StartDate       time.Time
		CrewSize        int
		HoursPerTech    float64
		WeatherProfile  string
		AnnualTotal     float64
		Status          string
		CreatedByOrgID  uuid.UUID
		CreatedByUserID uuid.UUID
		CreatedAt       time.Time
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			q.id,
			q.quote_number,
			q.project_name,
			q.rfp_number AS rfp_number,
			q.customer_company,
			q.customer_contact,
			q.customer_email,
			q.customer_phone,
			q.customer_address,
			q.customer_city,
			q.customer_state,
			q.customer_zip,
			q.start_date,
			q.crew_size,
			q.hours_per_tech,
			q.weather_profile,
			q.annual_total,
			q.status,
			q.created_by_org_id,
			q.created_by_user_id,
			q.created_at
		FROM quotes q
		WHERE q.id = ?
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	units, err := r.listUnits(ctx, id)
	if err != nil {
		return nil, err
	}
	assignments, err := r.listAssignments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.Quote{
		ID:          row.ID,
		QuoteNumber: row.QuoteNumber,
		ProjectName: row.ProjectName,
		RFPNumber:   row.RFPNumber,
		Customer: model.Customer{
			CompanyName: row.CustomerCompany,
			ContactName: row.CustomerContact,
			Email:       row.CustomerEmail,
			Phone:       row.CustomerPhone,
			Address:     row.CustomerAddress,
			City:        row.CustomerCity,
			State:       row.CustomerState,
			Zip:         row.CustomerZip,
		},
		Contract: model.Contract{
			StartDate:      row.StartDate,
			CrewSize:       row.CrewSize,
			HoursPerTech:   row.HoursPerTech,
			WeatherProfile: row.WeatherProfile,
		},
		Units:          units,
		Assignments:    assignments,
		AnnualTotal:    row.AnnualTotal,
		Status:         model.QuoteStatus(row.Status),
		CreatedByOrgID: row.CreatedByOrgID,
		CreatedByUser:  row.CreatedByUserID,
		CreatedAt:      row.CreatedAt,
	}, nil
}

func (r *QuoteRepository) listUnits(ctx context.Context, quoteID uuid.UUID) ([]model.Unit, error) {
	var rows []model.Unit
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.asset_id,
			u.manufacturer,
			u.model,
			u.serial_number,
			u.building,
			u.kw,
			u.fuel_type
		FROM quote_units u
		WHERE u.quote_id = ?
		ORDER BY u.asset_id ASC, u.id ASC
	`, quoteID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *QuoteRepository) listAssignments(ctx context.Context, quoteID uuid.UUID) ([]model.ServiceAssignment, error) {
	var rows []struct {
		UnitID         uuid.UUID
		Code           string
		Name           string
		Frequency      int
		OccurrenceCost float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.unit_id,
			s.code,
			s.name,
			s.frequency,
			s.occurrence_cost
		FROM quote_services s
		JOIN quote_units u ON u.id = s.unit_id
		WHERE s.quote_id = ?
		ORDER BY u.asset_id ASC, s.code ASC
	`, quoteID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]model.ServiceAssignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, model.ServiceAssignment{
			UnitID:         row.UnitID,
			Code:           model.ServiceCode(row.Code),
			Name:           row.Name,
			Frequency:      row.Frequency,
			OccurrenceCost: row.OccurrenceCost,
		})
	}
	return assignments, nil
}

// QuoteSummary is one row of the quote listing.
type QuoteSummary struct {
	ID          uuid.UUID
	QuoteNumber string
	ProjectName string
	Customer    string
	AnnualTotal float64
	Status      string
	CreatedAt   time.Time
}

func (r *QuoteRepository) ListQuotes(ctx context.Context, orgID uuid.UUID) ([]QuoteSummary, error) {
	var rows []QuoteSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			q.id,
			q.quote_number,
			q.project_name,
			q.customer_company AS customer,
			q.annual_total,
			q.status,
			q.created_at
		FROM quotes q
		WHERE q.created_by_org_id = ?
		ORDER BY q.created_at DESC
	`, orgID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
