package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/services"
	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
	"github.com/vitalis-hms/clinic_ledger_app/internal/middleware"
)

// cashRegisterHandler handles HTTP requests related to cash register sessions.
type cashRegisterHandler struct {
	registerService portssvc.CashRegisterSvcFacade
}

func newCashRegisterHandler(registerService portssvc.CashRegisterSvcFacade) *cashRegisterHandler {
	return &cashRegisterHandler{registerService: registerService}
}

// registerCashRegisterRoutes registers cash register specific routes.
func registerCashRegisterRoutes(group *gin.RouterGroup, registerService portssvc.CashRegisterSvcFacade) {
	h := newCashRegisterHandler(registerService)

	registers := group.Group("/cash-registers")
	{
		registers.POST("/open", h.openCashRegister)
		registers.GET("/", h.listCashRegisters)
		registers.GET("/current", h.getOpenRegister)
		registers.GET("/last-closed", h.getLastClosedRegister)
		registers.GET("/:registerID", h.getCashRegister)
		registers.POST("/:registerID/close", h.closeCashRegister)
	}
}

// openCashRegister godoc
// @Summary Open a cash register
// @Description Opens a new drawer session. A clinic can only have one open register at a time.
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param register body dto.OpenCashRegisterRequest true "Opening details"
// @Success 201 {object} dto.CashRegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Clinic already has an open register"
// @Security BearerAuth
// @Router /cash-registers/open [post]
func (h *cashRegisterHandler) openCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	clinicID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	register, err := h.registerService.OpenCashRegister(c.Request.Context(), clinicID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to open cash register")
		return
	}

	logger.Info("Cash register opened", slog.String("register_id", register.ID()))
	c.JSON(http.StatusCreated, dto.ToCashRegisterResponse(register))
}

// closeCashRegister godoc
// @Summary Close a cash register
// @Description Closes an open session, recording the counted and expected amounts and the signed difference.
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param registerID path string true "Register ID"
// @Param closing body dto.CloseCashRegisterRequest true "Closing details"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Register is already closed"
// @Security BearerAuth
// @Router /cash-registers/{registerID}/close [post]
func (h *cashRegisterHandler) closeCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	registerID := c.Param("registerID")

	var req dto.CloseCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	clinicID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	register, err := h.registerService.CloseCashRegister(c.Request.Context(), clinicID, registerID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close cash register")
		return
	}

	logger.Info("Cash register closed", slog.String("register_id", registerID))
	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(register))
}

// getCashRegister godoc
// @Summary Get a cash register
// @Description Retrieves a register session by ID, scoped to the caller's clinic.
// @Tags cash-registers
// @Produce json
// @Param registerID path string true "Register ID"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-registers/{registerID} [get]
func (h *cashRegisterHandler) getCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	registerID := c.Param("registerID")

	clinicID, _, ok := requestScope(c, logger)
	if !ok {
		return
	}

	register, err := h.registerService.GetCashRegisterByID(c.Request.Context(), clinicID, registerID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve cash register")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(register))
}

// listCashRegisters godoc
// @Summary List cash registers
// @Description Lists the clinic's register sessions with optional filters.
// @Tags cash-registers
// @Produce json
// @Param status query string false "ABERTO or FECHADO"
// @Param openedBy query string false "Staff ID that opened the register"
// @Param from query string false "Opened-at lower bound (YYYY-MM-DD)"
// @Param to query string false "Opened-at upper bound (YYYY-MM-DD)"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.CashRegisterResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-registers [get]
func (h *cashRegisterHandler) listCashRegisters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCashRegistersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	clinicID, _, ok := requestScope(c, logger)
	if !ok {
		return
	}

	registers, err := h.registerService.ListCashRegisters(c.Request.Context(), clinicID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list cash registers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCashRegisterResponse(registers))
}

// getOpenRegister godoc
// @Summary Get the open register
// @Description Retrieves the clinic's currently open register session, if any.
// @Tags cash-registers
// @Produce json
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 404 {object} ErrorResponse "No open register"
// @Security BearerAuth
// @Router /cash-registers/current [get]
func (h *cashRegisterHandler) getOpenRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clinicID, _, ok := requestScope(c, logger)
	if !ok {
		return
	}

	register, err := h.registerService.GetOpenRegister(c.Request.Context(), clinicID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve open register")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(register))
}

// getLastClosedRegister godoc
// @Summary Get the last closed register
// @Description Retrieves the clinic's most recently closed register session.
// @Tags cash-registers
// @Produce json
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 404 {object} ErrorResponse "No closed register yet"
// @Security BearerAuth
// @Router /cash-registers/last-closed [get]
func (h *cashRegisterHandler) getLastClosedRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clinicID, _, ok := requestScope(c, logger)
	if !ok {
		return
	}

	register, err := h.registerService.GetLastClosedRegister(c.Request.Context(), clinicID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve last closed register")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(register))
}
