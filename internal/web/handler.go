package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"day-planner/internal/app"
	"day-planner/internal/metrics"
	"day-planner/internal/planner"
	"day-planner/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler serves the JSON API over an App.
type Handler struct {
	app        *app.App
	tokens     *SessionTokens
	adminToken string
	dataPath   string
}

// NewHandler creates a Handler. An empty adminToken disables the admin routes.
func NewHandler(a *app.App, tokens *SessionTokens, adminToken, dataPath string) *Handler {
	return &Handler{app: a, tokens: tokens, adminToken: adminToken, dataPath: dataPath}
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	h.SetupRoutes(r)
	return r
}

func (h *Handler) SetupRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/options", h.Options)
	api.POST("/plan", h.Plan)

	admin := api.Group("/admin", AdminMiddleware(h.adminToken))
	admin.GET("/metrics", h.Metrics)

	s := api.Group("/session", SessionMiddleware(h.tokens))
	s.GET("", h.GetSession)
	s.POST("/home", h.ShowHome)
	s.POST("/book", h.Book)
	s.GET("/checkout", h.Checkout)
	s.POST("/back", h.Back)
	s.POST("/confirm", h.Confirm)
	s.POST("/friends", h.AddFriend)
	s.DELETE("/friends", h.ResetFriends)
	s.POST("/friends/continue", h.ContinueToPreferences)
	s.POST("/best-match", h.GenerateBestMatch)
	s.POST("/best-match/confirm", h.ConfirmBestMatch)
	s.POST("/go-home", h.GoHome)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"system": metrics.GetSysHealth(h.dataPath),
	})
}

func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cities":     planner.Cities,
		"plan_types": planner.PlanTypes,
		"occasions":  planner.Occasions,
		"vibes":      planner.Vibes,
		"food_prefs": planner.FoodPrefs,
		"allergens":  planner.Allergens,
		"people": gin.H{
			"min": planner.MinPeople, "max": planner.MaxPeople, "default": planner.DefaultPeople,
		},
		"walk_dist": gin.H{
			"min": planner.MinWalkMinutes, "max": planner.MaxWalkMinutes, "default": planner.DefaultWalkDist,
		},
		"disclaimer": app.Disclaimer,
	})
}

func (h *Handler) Plan(c *gin.Context) {
	var req planner.Criteria
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	view, err := h.app.Plan(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) Metrics(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	usage, err := h.app.DailyUsage(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "usage": usage})
}

func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.app.Session(c.Request.Context(), sessionID(c))
	h.respond(c, s, err)
}

type homeRequest struct {
	planner.Criteria
	IncludeFriends *bool `json:"include_friends"`
}

func (h *Handler) ShowHome(c *gin.Context) {
	var req homeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	view, err := h.app.ShowHome(c.Request.Context(), sessionID(c), req.Criteria, req.IncludeFriends)
	if err != nil {
		if isGuard(err) {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

type bookRequest struct {
	Index *int `json:"index" binding:"required"`
}

func (h *Handler) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index is required"})
		return
	}
	s, err := h.app.Book(c.Request.Context(), sessionID(c), *req.Index)
	h.respond(c, s, err)
}

func (h *Handler) Checkout(c *gin.Context) {
	view, err := h.app.Checkout(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout": view, "disclaimer": app.Disclaimer})
}

func (h *Handler) Back(c *gin.Context) {
	s, err := h.app.BackToSearch(c.Request.Context(), sessionID(c))
	h.respond(c, s, err)
}

func (h *Handler) Confirm(c *gin.Context) {
	booking, err := h.app.ConfirmBooking(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type friendRequest struct {
	Contact string `json:"contact" binding:"required"`
}

func (h *Handler) AddFriend(c *gin.Context) {
	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contact is required"})
		return
	}

	s, added, err := h.app.AddFriend(c.Request.Context(), sessionID(c), req.Contact)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := gin.H{"session": s, "added": added}
	if added {
		resp["message"] = "📩 Request for preferences sent to " + s.Friends[len(s.Friends)-1]
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ResetFriends(c *gin.Context) {
	s, err := h.app.ResetFriends(c.Request.Context(), sessionID(c))
	h.respond(c, s, err)
}

func (h *Handler) ContinueToPreferences(c *gin.Context) {
	s, err := h.app.ContinueToPreferences(c.Request.Context(), sessionID(c))
	h.respond(c, s, err)
}

func (h *Handler) GenerateBestMatch(c *gin.Context) {
	s, err := h.app.GenerateBestMatch(c.Request.Context(), sessionID(c))
	h.respond(c, s, err)
}

func (h *Handler) ConfirmBestMatch(c *gin.Context) {
	booking, err := h.app.ConfirmBestMatch(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) GoHome(c *gin.Context) {
	s, err := h.app.GoHome(c.Request.Context(), sessionID(c))
	h.respond(c, s, err)
}

func (h *Handler) respond(c *gin.Context, s *session.Session, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

// fail maps guard errors to 409 with the user-facing warning. Anything else
// is logged and reported as a 500.
func (h *Handler) fail(c *gin.Context, err error) {
	if isGuard(err) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "warning": session.WarningFor(err)})
		return
	}
	log.Printf("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func isGuard(err error) bool {
	return errors.Is(err, session.ErrFiltersNotSet) ||
		errors.Is(err, session.ErrNoPlanSelected) ||
		errors.Is(err, session.ErrInvalidTransition) ||
		errors.Is(err, session.ErrUnknownPlan)
}
