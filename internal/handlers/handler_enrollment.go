package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type enrollmentHandler struct {
	enrollmentService portssvc.EnrollmentSvcFacade
}

func newEnrollmentHandler(es portssvc.EnrollmentSvcFacade) *enrollmentHandler {
	return &enrollmentHandler{enrollmentService: es}
}

func registerEnrollmentRoutes(rg *gin.RouterGroup, enrollmentService portssvc.EnrollmentSvcFacade) {
	h := newEnrollmentHandler(enrollmentService)

	rg.POST("/policies/:policyID/enrollments", h.enroll)
	rg.GET("/policies/:policyID/enrollments/:actorID", h.getEnrollment)

	enrollments := rg.Group("/enrollments")
	{
		enrollments.GET("", h.listEnrollments)
		enrollments.POST("/:enrollmentID/cancel", h.cancelEnrollment)
		enrollments.PUT("/:enrollmentID/payment-status", h.setPaymentStatus)
	}
}

// enroll godoc
// @Summary Enroll in a policy
// @Description Debits the premium and creates the enrollment atomically. The owner may enroll any participant.
// @Tags enrollments
// @Accept  json
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   policyID path string true "Policy ID"
// @Param   enrollment body dto.EnrollRequest false "Actor to enroll, defaults to the caller"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 403 {object} dto.ErrorResponse "Enrolling someone else"
// @Failure 404 {object} dto.ErrorResponse "Policy not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Failure 422 {object} dto.ErrorResponse "Policy inactive or insufficient balance"
// @Security BearerAuth
// @Router /scopes/{joinCode}/policies/{policyID}/enrollments [post]
func (h *enrollmentHandler) enroll(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "request format", err)
			return
		}
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), scope.TenantScope, c.Param("policyID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to enroll")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Enrollment created",
		slog.String("enrollment_id", enrollment.EnrollmentID),
		slog.String("actor_id", enrollment.ActorID))
	c.JSON(http.StatusCreated, dto.ToEnrollmentResponse(enrollment, h.enrollmentService.IsCoverageActive(*enrollment)))
}

// getEnrollment godoc
// @Summary Get an actor's enrollment in a policy
// @Tags enrollments
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   policyID path string true "Policy ID"
// @Param   actorID path string true "Actor ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 403 {object} dto.ErrorResponse "Reading another actor's enrollment"
// @Failure 404 {object} dto.ErrorResponse "Not enrolled"
// @Security BearerAuth
// @Router /scopes/{joinCode}/policies/{policyID}/enrollments/{actorID} [get]
func (h *enrollmentHandler) getEnrollment(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	actorID := c.Param("actorID")
	if actorID != userID && !scope.IsOwner(userID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "participants may only read their own enrollments"})
		return
	}

	enrollment, err := h.enrollmentService.GetEnrollment(c.Request.Context(), scope.TenantScope, actorID, c.Param("policyID"))
	if err != nil {
		respondWithError(c, err, "Failed to get enrollment")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment, h.enrollmentService.IsCoverageActive(*enrollment)))
}

// listEnrollments godoc
// @Summary List enrollments
// @Description Participants only see their own enrollments
// @Tags enrollments
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   actorID query string false "Filter by actor"
// @Success 200 {object} dto.ListEnrollmentsResponse
// @Failure 403 {object} dto.ErrorResponse "Listing another actor's enrollments"
// @Security BearerAuth
// @Router /scopes/{joinCode}/enrollments [get]
func (h *enrollmentHandler) listEnrollments(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var params dto.ListEnrollmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	enrollments, err := h.enrollmentService.ListEnrollments(c.Request.Context(), scope.TenantScope, userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list enrollments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEnrollmentsResponse(enrollments, h.enrollmentService.IsCoverageActive))
}

// cancelEnrollment godoc
// @Summary Cancel an enrollment
// @Tags enrollments
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   enrollmentID path string true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 403 {object} dto.ErrorResponse "Cancelling another actor's enrollment"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Already cancelled"
// @Security BearerAuth
// @Router /scopes/{joinCode}/enrollments/{enrollmentID}/cancel [post]
func (h *enrollmentHandler) cancelEnrollment(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.CancelEnrollment(c.Request.Context(), scope.TenantScope, c.Param("enrollmentID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to cancel enrollment")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment, false))
}

// setPaymentStatus godoc
// @Summary Mark premium payments current or lapsed
// @Tags enrollments
// @Accept  json
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   enrollmentID path string true "Enrollment ID"
// @Param   status body dto.SetPaymentStatusRequest true "Payment status"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Security BearerAuth
// @Router /scopes/{joinCode}/enrollments/{enrollmentID}/payment-status [put]
func (h *enrollmentHandler) setPaymentStatus(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var req dto.SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	enrollment, err := h.enrollmentService.SetPaymentStatus(c.Request.Context(), scope.TenantScope, c.Param("enrollmentID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update payment status")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment, h.enrollmentService.IsCoverageActive(*enrollment)))
}
