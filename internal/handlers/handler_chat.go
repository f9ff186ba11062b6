package handlers

import (
	"net/http"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/David2024patton/studio4-dance/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// chatHandler handles the public chat endpoint and authenticated history.
type chatHandler struct {
	chatService portssvc.ChatSvcFacade
}

func newChatHandler(cs portssvc.ChatSvcFacade) *chatHandler {
	return &chatHandler{chatService: cs}
}

// registerChatRoutes registers the public chat endpoint with optional auth and
// per-IP rate limiting.
func registerChatRoutes(r *gin.Engine, cfg *config.Config, chatService portssvc.ChatSvcFacade) {
	h := newChatHandler(chatService)

	rate, err := limiter.NewRateFromFormatted(cfg.ChatRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("30-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	r.POST("/api/chat", limitMiddleware, middleware.OptionalAuthMiddleware(cfg.JWTSecret), h.chat)
}

// registerChatHistoryRoutes registers the authenticated history routes.
func registerChatHistoryRoutes(rg *gin.RouterGroup, chatService portssvc.ChatSvcFacade) {
	h := newChatHandler(chatService)

	chat := rg.Group("/chat")
	{
		chat.GET("/history", h.history)
		chat.DELETE("/history", h.clearHistory)
	}
}

// chat godoc
// @Summary Send a chat message
// @Description Answers a visitor or signed-in parent. Model failures are reported inside the envelope with success=false, never as a 5xx.
// @Tags chat
// @Accept json
// @Produce json
// @Param message body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/chat [post]
func (h *chatHandler) chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	var caller *domain.Caller
	if cl, ok := middleware.GetCallerFromContext(c); ok {
		caller = &cl
	}

	resp := h.chatService.Chat(c.Request.Context(), caller, req)
	c.JSON(http.StatusOK, resp)
}

// history godoc
// @Summary List own chat history
// @Tags chat
// @Produce json
// @Param sessionID query string false "Narrow to one session"
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} dto.ChatHistoryEntry
// @Security BearerAuth
// @Router /api/v1/chat/history [get]
func (h *chatHandler) history(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ChatHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	logs, err := h.chatService.History(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToChatHistory(logs))
}

// clearHistory godoc
// @Summary Delete own chat history
// @Tags chat
// @Produce json
// @Param sessionID query string false "Narrow to one session"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /api/v1/chat/history [delete]
func (h *chatHandler) clearHistory(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.chatService.ClearHistory(c.Request.Context(), caller, c.Query("sessionID")); err != nil {
		respondError(c, err, "Not found")
		return
	}
	c.Status(http.StatusNoContent)
}
