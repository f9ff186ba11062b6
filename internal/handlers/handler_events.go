package handlers

import (
	"net/http"

	"github.com/David2024patton/studio4-dance/internal/core/authz"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventHandler handles event listing, registration and staff CRUD.
type eventHandler struct {
	eventService portssvc.EventSvcFacade
}

func newEventHandler(es portssvc.EventSvcFacade) *eventHandler {
	return &eventHandler{eventService: es}
}

// registerEventRoutes registers authenticated event routes.
func registerEventRoutes(rg *gin.RouterGroup, eventService portssvc.EventSvcFacade) {
	h := newEventHandler(eventService)

	events := rg.Group("/events")
	{
		events.GET("", h.listEvents)
		events.GET("/:eventID", h.getEvent)
		events.POST("/:eventID/register/:studentID", h.register)
		events.GET("/:eventID/participants", middleware.RequirePolicy(authz.ResourceEvents, authz.OpParticipants), h.listParticipants)
		events.POST("", middleware.RequirePolicy(authz.ResourceEvents, authz.OpCreate), h.createEvent)
		events.PUT("/:eventID", middleware.RequirePolicy(authz.ResourceEvents, authz.OpUpdate), h.updateEvent)
		events.DELETE("/:eventID", middleware.RequirePolicy(authz.ResourceEvents, authz.OpDelete), h.deleteEvent)
	}
}

// listEvents godoc
// @Summary List active events
// @Tags events
// @Produce json
// @Param eventType query string false "Filter by event type"
// @Param upcomingOnly query bool false "Only events with a future start date"
// @Success 200 {array} dto.EventResponse
// @Security BearerAuth
// @Router /api/v1/events [get]
func (h *eventHandler) listEvents(c *gin.Context) {
	var params dto.ListEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEventResponse(events))
}

// getEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events/{eventID} [get]
func (h *eventHandler) getEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("eventID"))
	if err != nil {
		respondError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// register godoc
// @Summary Register a student for an event
// @Description Fails after the registration deadline or on duplicate registration.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Param studentID path string true "Student ID"
// @Success 201 {object} domain.EventParticipant
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Deadline passed or already registered"
// @Security BearerAuth
// @Router /api/v1/events/{eventID}/register/{studentID} [post]
func (h *eventHandler) register(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	participant, err := h.eventService.RegisterStudent(c.Request.Context(), caller, c.Param("eventID"), c.Param("studentID"))
	if err != nil {
		respondError(c, err, "Event or student not found")
		return
	}
	c.JSON(http.StatusCreated, participant)
}

// listParticipants godoc
// @Summary List an event's registered students
// @Description Staff only. Includes parent contact details.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {array} domain.ParticipantDetail
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events/{eventID}/participants [get]
func (h *eventHandler) listParticipants(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	participants, err := h.eventService.ListParticipants(c.Request.Context(), caller, c.Param("eventID"))
	if err != nil {
		respondError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusOK, participants)
}

// createEvent godoc
// @Summary Create an event
// @Description Owner and admin only.
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.SaveEventRequest true "Event details"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events [post]
func (h *eventHandler) createEvent(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SaveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

// updateEvent godoc
// @Summary Update an event
// @Description Owner and admin only.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param event body dto.SaveEventRequest true "Event details"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events/{eventID} [put]
func (h *eventHandler) updateEvent(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SaveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), caller, c.Param("eventID"), req)
	if err != nil {
		respondError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// deleteEvent godoc
// @Summary Deactivate an event
// @Description Owner only. Soft delete; registrations are kept.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events/{eventID} [delete]
func (h *eventHandler) deleteEvent(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), caller, c.Param("eventID")); err != nil {
		respondError(c, err, "Event not found")
		return
	}
	c.Status(http.StatusNoContent)
}
