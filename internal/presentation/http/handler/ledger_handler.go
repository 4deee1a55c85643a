package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/application/service"
	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/internal/presentation/http/dto/request"
	"github.com/felixotieno/haraka-api/internal/presentation/http/dto/response"
	"github.com/felixotieno/haraka-api/internal/presentation/http/middleware"
	"github.com/felixotieno/haraka-api/pkg/apperror"
)

// LedgerHandler exposes the driver ledger, balances and settlements
type LedgerHandler struct {
	ledgerService     *service.LedgerService
	settlementService *service.SettlementService
	reportService     *service.ReportService
	driverService     *service.DriverService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(
	ledgerService *service.LedgerService,
	settlementService *service.SettlementService,
	reportService *service.ReportService,
	driverService *service.DriverService,
) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:     ledgerService,
		settlementService: settlementService,
		reportService:     reportService,
		driverService:     driverService,
	}
}

// authorizeDriverAccess lets admins read any driver's ledger and drivers read
// only their own
func (h *LedgerHandler) authorizeDriverAccess(c *gin.Context, driverID uuid.UUID) bool {
	role := middleware.UserRole(c)
	if role == entity.RoleAdmin {
		return true
	}
	if role == entity.RoleDriver {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Forbidden(c, "Access denied")
			return false
		}
		driver, err := h.driverService.GetDriverByUserID(c.Request.Context(), userID)
		if err == nil && driver != nil && driver.ID == driverID {
			return true
		}
	}
	response.Forbidden(c, "You may only access your own ledger")
	return false
}

// ListEntries handles GET /ledger/driver/:driverId
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	driverID, ok := parseUUIDParam(c, "driverId")
	if !ok {
		response.BadRequest(c, "Invalid driver id")
		return
	}
	if !h.authorizeDriverAccess(c, driverID) {
		return
	}

	params := &repository.EntryFilterParams{Pagination: pageParams(c)}

	if raw := c.Query("type"); raw != "" {
		entryType, valid := enum.ParseEntryType(raw)
		if !valid {
			response.BadRequest(c, "Invalid entry type filter")
			return
		}
		params.Type = &entryType
	}
	if raw := c.Query("settled"); raw != "" {
		settled := raw == "true" || raw == "1"
		params.Settled = &settled
	}
	var okDate bool
	if params.StartDate, okDate = parseDateQuery(c, "start_date"); !okDate {
		response.BadRequest(c, "Invalid start_date")
		return
	}
	if params.EndDate, okDate = parseDateQuery(c, "end_date"); !okDate {
		response.BadRequest(c, "Invalid end_date")
		return
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), driverID, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// CreateEntry handles POST /ledger/entry
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	var req request.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entryType, valid := enum.ParseEntryType(req.Type)
	if !valid {
		response.Error(c, apperror.NewValidationError("Invalid entry type"))
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), &service.CreateEntryInput{
		DriverID:    req.DriverID,
		OrderID:     req.OrderID,
		Type:        entryType,
		Amount:      req.Amount,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// GetBalance handles GET /ledger/balance/:driverId
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	driverID, ok := parseUUIDParam(c, "driverId")
	if !ok {
		response.BadRequest(c, "Invalid driver id")
		return
	}
	if !h.authorizeDriverAccess(c, driverID) {
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), driverID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, balance)
}

// CreateSettlement handles POST /ledger/settlement
func (h *LedgerHandler) CreateSettlement(c *gin.Context) {
	var req request.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	settlement, err := h.settlementService.Settle(c.Request.Context(), &service.SettleInput{
		DriverID:         req.DriverID,
		EntryIDs:         req.EntryIDs,
		Amount:           req.Amount,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, settlement)
}

// ListSettlements handles GET /ledger/settlements/:driverId
func (h *LedgerHandler) ListSettlements(c *gin.Context) {
	driverID, ok := parseUUIDParam(c, "driverId")
	if !ok {
		response.BadRequest(c, "Invalid driver id")
		return
	}
	if !h.authorizeDriverAccess(c, driverID) {
		return
	}

	page, err := h.ledgerService.ListSettlements(c.Request.Context(), driverID, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// GetSettlement handles GET /ledger/settlement/:settlementId
func (h *LedgerHandler) GetSettlement(c *gin.Context) {
	id, ok := parseUUIDParam(c, "settlementId")
	if !ok {
		response.BadRequest(c, "Invalid settlement id")
		return
	}

	settlement, err := h.ledgerService.GetSettlement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.authorizeDriverAccess(c, settlement.DriverID) {
		return
	}
	response.OK(c, settlement)
}

// AutoSettle handles POST /ledger/auto-settle/:driverId
func (h *LedgerHandler) AutoSettle(c *gin.Context) {
	driverID, ok := parseUUIDParam(c, "driverId")
	if !ok {
		response.BadRequest(c, "Invalid driver id")
		return
	}

	var req request.AutoSettleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.settlementService.AutoSettle(c.Request.Context(), driverID, req.MinAmount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetSummary handles GET /ledger/summary/all
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	summary, err := h.reportService.GetLedgerSummary(c.Request.Context(), c.DefaultQuery("period", "all"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}
