package handlers

import (
	"net/http"

	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// classHandler handles class listing and enrollment requests.
type classHandler struct {
	classService portssvc.ClassSvcFacade
}

func newClassHandler(cs portssvc.ClassSvcFacade) *classHandler {
	return &classHandler{classService: cs}
}

// registerClassRoutes registers authenticated class routes.
func registerClassRoutes(rg *gin.RouterGroup, classService portssvc.ClassSvcFacade) {
	h := newClassHandler(classService)

	classes := rg.Group("/classes")
	{
		classes.GET("", h.listClasses)
		classes.GET("/schedule", h.getSchedule)
		classes.GET("/:classID", h.getClass)
		classes.POST("/:classID/enroll/:studentID", h.enroll)
		classes.DELETE("/:classID/enroll/:studentID", h.drop)
	}
}

// listClasses godoc
// @Summary List active classes
// @Tags classes
// @Produce json
// @Param styleID query string false "Filter by style"
// @Param levelID query string false "Filter by level"
// @Param dayOfWeek query int false "Filter by weekday (0=Sunday)"
// @Success 200 {array} dto.ClassResponse
// @Security BearerAuth
// @Router /api/v1/classes [get]
func (h *classHandler) listClasses(c *gin.Context) {
	var params dto.ListClassesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	classes, err := h.classService.ListClasses(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClassResponse(classes))
}

// getSchedule godoc
// @Summary Weekly class schedule
// @Description Joined view with style, level and instructor names.
// @Tags classes
// @Produce json
// @Success 200 {array} domain.ScheduleEntry
// @Security BearerAuth
// @Router /api/v1/classes/schedule [get]
func (h *classHandler) getSchedule(c *gin.Context) {
	entries, err := h.classService.GetSchedule(c.Request.Context())
	if err != nil {
		respondError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// getClass godoc
// @Summary Get a class by ID
// @Tags classes
// @Produce json
// @Param classID path string true "Class ID"
// @Success 200 {object} dto.ClassResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/classes/{classID} [get]
func (h *classHandler) getClass(c *gin.Context) {
	class, err := h.classService.GetClass(c.Request.Context(), c.Param("classID"))
	if err != nil {
		respondError(c, err, "Class not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToClassResponse(class))
}

// enroll godoc
// @Summary Enroll a student into a class
// @Description Parents may enroll their own students; staff any student. Fails when the roster is full or the student is already enrolled.
// @Tags classes
// @Produce json
// @Param classID path string true "Class ID"
// @Param studentID path string true "Student ID"
// @Success 201 {object} domain.Enrollment
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already enrolled or class full"
// @Security BearerAuth
// @Router /api/v1/classes/{classID}/enroll/{studentID} [post]
func (h *classHandler) enroll(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	enrollment, err := h.classService.EnrollStudent(c.Request.Context(), caller, c.Param("classID"), c.Param("studentID"))
	if err != nil {
		respondError(c, err, "Class or student not found")
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// drop godoc
// @Summary Drop a student from a class
// @Tags classes
// @Produce json
// @Param classID path string true "Class ID"
// @Param studentID path string true "Student ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No active enrollment"
// @Security BearerAuth
// @Router /api/v1/classes/{classID}/enroll/{studentID} [delete]
func (h *classHandler) drop(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.classService.DropStudent(c.Request.Context(), caller, c.Param("classID"), c.Param("studentID")); err != nil {
		respondError(c, err, "No active enrollment for student in class")
		return
	}
	c.Status(http.StatusNoContent)
}
