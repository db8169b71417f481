package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/energen/genquote/internal/http/middleware"
	"github.com/energen/genquote/internal/model"
	"github.com/energen/genquote/internal/service"
)

type Handler struct {
	quotes *service.QuoteService
	log    zerolog.Logger
}

func NewHandler(quotes *service.QuoteService, log zerolog.Logger) *Handler {
	return &Handler{quotes: quotes, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/quotes/schedule", h.calculateSchedule)
	protected.POST("/quotes", h.createQuote)
	protected.GET("/quotes", h.listQuotes)
	protected.GET("/quotes/:id", h.getQuote)
	protected.POST("/quotes/:id/export/pdf", h.exportPDF)
	protected.POST("/quotes/:id/export/excel", h.exportExcel)
}

type contractRequest struct {
	StartDate      string  `json:"start_date"`
	CrewSize       int     `json:"crew_size"`
	HoursPerTech   float64 `json:"hours_per_tech"`
	WeatherProfile string  `json:"weather_profile"`
}

type unitServiceRequest struct {
	Code           string  `json:"code" binding:"required"`
	Name           string  `json:"name"`
	Frequency      int     `json:"frequency"`
	OccurrenceCost float64 `json:"occurrence_cost"`
}

type unitRequest struct {
	AssetID      string               `json:"asset_id"`
	Manufacturer string               `json:"manufacturer"`
	Model        string               `json:"model"`
	SerialNumber string               `json:"serial_number"`
	Building     string               `json:"building"`
	KW           float64              `json:"kw" binding:"required"`
	KWUnit       string               `json:"kw_unit"`
	FuelType     string               `json:"fuel_type"`
	Services     []unitServiceRequest `json:"services" binding:"required"`
}

type scheduleRequest struct {
	Contract contractRequest `json:"contract"`
	Units    []unitRequest   `json:"units" binding:"required"`
}

type customerRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

type createQuoteRequest struct {
	QuoteNumber string          `json:"quote_number"`
	ProjectName string          `json:"project_name"`
	RFPNumber   string          `json:"rfp_number"`
	Customer    customerRequest `json:"customer" binding:"required"`
	Contract    contractRequest `json:"contract"`
	Units       []unitRequest   `json:"units" binding:"required"`
}

type quoteResponse struct {
	ID          uuid.UUID      `json:"id"`
	QuoteNumber string         `json:"quote_number"`
	ProjectName string         `json:"project_name,omitempty"`
	RFPNumber   string         `json:"rfp_number,omitempty"`
	Customer    string         `json:"customer"`
	Status      string         `json:"status"`
	AnnualTotal float64        `json:"annual_total"`
	CreatedAt   time.Time      `json:"created_at"`
	Schedule    model.Schedule `json:"schedule"`
}

func (h *Handler) calculateSchedule(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := buildScheduleInput(req.Contract, req.Units)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched, err := h.quotes.CalculateSchedule(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

func (h *Handler) createQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := buildScheduleInput(req.Contract, req.Units)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, sched, err := h.quotes.CreateQuote(c.Request.Context(), service.CreateQuoteInput{
		QuoteNumber: req.QuoteNumber,
		ProjectName: req.ProjectName,
		RFPNumber:   req.RFPNumber,
		Customer: model.Customer{
			CompanyName: req.Customer.CompanyName,
			ContactName: req.Customer.ContactName,
			Email:       req.Customer.Email,
			Phone:       req.Customer.Phone,
			Address:     req.Customer.Address,
			City:        req.Customer.City,
			State:       req.Customer.State,
			Zip:         req.Customer.Zip,
		},
		Schedule:  input,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toQuoteResponse(quote, sched))
}

func (h *Handler) listQuotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	summaries, err := h.quotes.ListQuotes(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": summaries})
}

func (h *Handler) getQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	quote, sched, err := h.quotes.GetQuote(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(quote, sched))
}

func (h *Handler) exportPDF(c *gin.Context) {
	h.export(c, h.quotes.ExportPDF, "application/pdf")
}

func (h *Handler) exportExcel(c *gin.Context) {
	h.export(c, h.quotes.ExportExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *Handler) export(
	c *gin.Context,
	run func(ctx context.Context, id uuid.UUID, principal model.Principal) (*service.ExportResult, error),
	contentType string,
) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	result, err := run(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("quote request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func buildScheduleInput(contract contractRequest, units []unitRequest) (service.ScheduleInput, error) {
	input := service.ScheduleInput{
		Contract: model.Contract{
			CrewSize:       contract.CrewSize,
			HoursPerTech:   contract.HoursPerTech,
			WeatherProfile: contract.WeatherProfile,
		},
	}

	if contract.StartDate != "" {
		start, err := parseDate(contract.StartDate)
		if err != nil {
			return service.ScheduleInput{}, errors.New("invalid start_date")
		}
		input.Contract.StartDate = start
	}

	for _, u := range units {
		unit := model.Unit{
			ID:           uuid.New(),
			AssetID:      u.AssetID,
			Manufacturer: u.Manufacturer,
			Model:        u.Model,
			SerialNumber: u.SerialNumber,
			Building:     u.Building,
			KW:           service.NormalizeKW(u.KW, u.KWUnit),
			FuelType:     u.FuelType,
		}
		input.Units = append(input.Units, unit)

		for _, s := range u.Services {
			input.Assignments = append(input.Assignments, model.ServiceAssignment{
				UnitID:         unit.ID,
				Code:           model.ServiceCode(strings.ToUpper(strings.TrimSpace(s.Code))),
				Name:           s.Name,
				Frequency:      s.Frequency,
				OccurrenceCost: s.OccurrenceCost,
			})
		}
	}
	return input, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func toQuoteResponse(quote *model.Quote, sched model.Schedule) quoteResponse {
	return quoteResponse{
		ID:          quote.ID,
		QuoteNumber: quote.QuoteNumber,
		ProjectName: quote.ProjectName,
		RFPNumber:   quote.RFPNumber,
		Customer:    quote.Customer.CompanyName,
		Status:      string(quote.Status),
		AnnualTotal: quote.AnnualTotal,
		CreatedAt:   quote.CreatedAt,
		Schedule:    sched,
	}
}
