package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/energen/genquote/internal/config"
	"github.com/energen/genquote/internal/model"
	"github.com/energen/genquote/internal/repository"
	"github.com/energen/genquote/internal/scheduler"
)

type PDFGenerator interface {
	Generate(doc model.QuoteDocument) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(doc model.QuoteDocument) ([]byte, error)
}

type QuoteStore interface {
	CreateQuote(ctx context.Context, quote *model.Quote) error
	GetQuote(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	ListQuotes(ctx context.Context, orgID uuid.UUID) ([]repository.QuoteSummary, error)
}

type QuoteService struct {
	repo      QuoteStore
	scheduler *scheduler.Scheduler
	pdf       PDFGenerator
	excel     ExcelGenerator
	cfg       *config.Config
}

func NewQuoteService(repo QuoteStore, sched *scheduler.Scheduler, pdf PDFGenerator, excel ExcelGenerator, cfg *config.Config) *QuoteService {
	return &QuoteService{
		repo:      repo,
		scheduler: sched,
		pdf:       pdf,
		excel:     excel,
		cfg:       cfg,
	}
}

type ScheduleInput struct {
	Contract    model.Contract
	Units       []model.Unit
	Assignments []model.ServiceAssignment
}

type CreateQuoteInput struct {
	QuoteNumber string
	ProjectName string
	RFPNumber   string
	Customer    model.Customer
	Schedule    ScheduleInput
	Principal   model.Principal
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// CalculateSchedule runs the scheduler on an inline payload without
// persisting anything.
func (s *QuoteService) CalculateSchedule(ctx context.Context, input ScheduleInput) (model.Schedule, error) {
	if err := s.prepare(&input); err != nil {
		return model.Schedule{}, err
	}
	return s.scheduler.Build(input.Contract, input.Units, input.Assignments), nil
}

// CreateQuote validates the payload, computes the schedule and stores the
// quote inputs with the resulting annual total.
func (s *QuoteService) CreateQuote(ctx context.Context, input CreateQuoteInput) (*model.Quote, model.Schedule, error) {
	if !input.Principal.CanWrite() {
		return nil, model.Schedule{}, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Customer.CompanyName) == "" {
		return nil, model.Schedule{}, fmt.Errorf("%w: customer company name is required", ErrInvalidInput)
	}
	if err := s.prepare(&input.Schedule); err != nil {
		return nil, model.Schedule{}, err
	}

	sched := s.scheduler.Build(input.Schedule.Contract, input.Schedule.Units, input.Schedule.Assignments)

	number := strings.TrimSpace(input.QuoteNumber)
	if number == "" {
		number = newQuoteNumber(input.Schedule.Contract.StartDate)
	}

	quote := &model.Quote{
		ID:             uuid.New(),
		QuoteNumber:    number,
		ProjectName:    input.ProjectName,
		RFPNumber:      input.RFPNumber,
		Customer:       input.Customer,
		Contract:       input.Schedule.Contract,
		Units:          input.Schedule.Units,
		Assignments:    input.Schedule.Assignments,
		AnnualTotal:    sched.AnnualTotal,
		Status:         model.QuoteStatusDraft,
		CreatedByOrgID: input.Principal.OrgID,
		CreatedByUser:  input.Principal.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.CreateQuote(ctx, quote); err != nil {
		return nil, model.Schedule{}, err
	}
	return quote, sched, nil
}

// GetQuote loads a stored quote and recomputes its schedule from the
// stored inputs. Scheduling is deterministic, so the rebuilt calendar
// matches the one shown at quote time.
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Quote, model.Schedule, error) {
	quote, err := s.loadQuote(ctx, id, principal)
	if err != nil {
		return nil, model.Schedule{}, err
	}
	sched := s.scheduler.Build(quote.Contract, quote.Units, quote.Assignments)
	return quote, sched, nil
}

func (s *QuoteService) ListQuotes(ctx context.Context, principal model.Principal) ([]repository.QuoteSummary, error) {
	return s.repo.ListQuotes(ctx, principal.OrgID)
}

func (s *QuoteService) ExportPDF(ctx context.Context, id uuid.UUID, principal model.Principal) (*ExportResult, error) {
	return s.export(ctx, id, principal, s.pdf.Generate, "pdf")
}

func (s *QuoteService) ExportExcel(ctx context.Context, id uuid.UUID, principal model.Principal) (*ExportResult, error) {
	return s.export(ctx, id, principal, s.excel.Generate, "xlsx")
}

func (s *QuoteService) export(
	ctx context.Context,
	id uuid.UUID,
	principal model.Principal,
	generate func(model.QuoteDocument) ([]byte, error),
	extension string,
) (*ExportResult, error) {
	quote, err := s.loadQuote(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	sched := s.scheduler.Build(quote.Contract, quote.Units, quote.Assignments)

	content, err := generate(model.QuoteDocument{Quote: *quote, Schedule: sched})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildFileName(quote, extension),
		Content:  content,
	}, nil
}

func (s *QuoteService) loadQuote(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Quote, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: quote id is required", ErrInvalidInput)
	}
	quote, err := s.repo.GetQuote(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.IsAdmin() && quote.CreatedByOrgID != principal.OrgID {
		return nil, ErrPermissionDenied
	}
	return quote, nil
}

// prepare validates structural input and fills defaults before the
// scheduler runs. The scheduler itself only warns; malformed business
// structure is rejected here.
func (s *QuoteService) prepare(input *ScheduleInput) error {
	if len(input.Units) == 0 {
		return fmt.Errorf("%w: at least one generator unit is required", ErrInvalidInput)
	}
	if len(input.Assignments) == 0 {
		return fmt.Errorf("%w: at least one service assignment is required", ErrInvalidInput)
	}

	for i := range input.Units {
		if input.Units[i].ID == uuid.Nil {
			input.Units[i].ID = uuid.New()
		}
		if input.Units[i].KW <= 0 {
			return fmt.Errorf("%w: unit %s has non-positive capacity", ErrInvalidInput, input.Units[i].AssetID)
		}
	}

	if input.Contract.CrewSize <= 0 {
		input.Contract.CrewSize = 1
	}
	if input.Contract.HoursPerTech <= 0 {
		input.Contract.HoursPerTech = s.cfg.Scheduler.HoursPerTech
	}
	if input.Contract.WeatherProfile == "" {
		input.Contract.WeatherProfile = s.cfg.Scheduler.DefaultProfile
	}

	unitIDs := make(map[uuid.UUID]struct{}, len(input.Units))
	for _, u := range input.Units {
		unitIDs[u.ID] = struct{}{}
	}
	for i := range input.Assignments {
		a := &input.Assignments[i]
		if _, ok := unitIDs[a.UnitID]; !ok {
			return fmt.Errorf("%w: assignment %s references unknown unit", ErrInvalidInput, a.Code)
		}
		def, known := model.LookupService(a.Code)
		if a.Name == "" {
			if known {
				a.Name = def.Name
			} else {
				a.Name = string(a.Code)
			}
		}
		if a.Frequency == 0 && known {
			a.Frequency = def.DefaultFrequency
		}
	}
	return nil
}

// NormalizeKW converts intake capacity figures to kW. Equipment lists
// mix units: horsepower and megawatt ratings show up alongside kW.
func NormalizeKW(value float64, unit string) float64 {
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "HP":
		return value * 0.746
	case "MW":
		return value * 1000
	default:
		return value
	}
}

func newQuoteNumber(start time.Time) string {
	if start.IsZero() {
		start = time.Now()
	}
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("Q-%s-%s", start.Format("20060102"), suffix)
}

func buildFileName(quote *model.Quote, extension string) string {
	base := sanitizeFileName(quote.QuoteNumber)
	if base == "" {
		base = quote.ID.String()
	}
	return fmt.Sprintf("quote-%s.%s", base, extension)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
