package handlers

import (
	"net/http"

	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the parent home views.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers the parent dashboard routes.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/parent", h.parentDashboard)
		dashboard.GET("/student/:studentID", h.studentDetails)
	}
}

// parentDashboard godoc
// @Summary Parent dashboard
// @Description Profile, students, balance, recent transactions, active enrollments and upcoming events in one response.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 403 {object} ErrorResponse "Caller is not a parent"
// @Security BearerAuth
// @Router /api/v1/dashboard/parent [get]
func (h *dashboardHandler) parentDashboard(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	dashboard, err := h.dashboardService.ParentDashboard(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Parent profile not found")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// studentDetails godoc
// @Summary Student drill-down
// @Description Enrollments and event registrations for one of the caller's students.
// @Tags dashboard
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {object} dto.StudentDetailResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/dashboard/student/{studentID} [get]
func (h *dashboardHandler) studentDetails(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	details, err := h.dashboardService.StudentDetails(c.Request.Context(), caller, c.Param("studentID"))
	if err != nil {
		respondError(c, err, "Student not found")
		return
	}
	c.JSON(http.StatusOK, details)
}
