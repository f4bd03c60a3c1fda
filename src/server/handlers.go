package server

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campaign-pulse/src/auth"
	"campaign-pulse/src/mockdata"
	"campaign-pulse/src/models"
	"campaign-pulse/src/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Health
// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	snapshot := s.Metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   s.Hub.ConnectionCount(),
		"latestUpdate":  snapshot.LastUpdated,
		"uptimeSeconds": int64(time.Since(s.startedAt).Seconds()),
	})
}

// -----------------------------------------------------------------------------
// Auth Handlers
// -----------------------------------------------------------------------------

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      models.MUser `json:"user"`
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.Auth.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		abortWithError(c, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		s.respondError(c, "register", err)
		return
	}

	s.issueToken(c, http.StatusCreated, user)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		s.respondError(c, "login", err)
		return
	}

	s.issueToken(c, http.StatusOK, user)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) me(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		abortWithError(c, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
		return
	}

	user, err := s.Auth.Store.GetUserByID(c.Request.Context(), claims.Subject)
	if errors.Is(err, storage.ErrUserNotFound) {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.respondError(c, "me", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) issueToken(c *gin.Context, status int, user models.MUser) {
	token, expires, err := s.Auth.Issue(user)
	if err != nil {
		s.respondError(c, "issue token", err)
		return
	}
	c.JSON(status, tokenResponse{Token: token, ExpiresAt: expires, User: user})
}

func (s *DashboardServer) respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("%s failed: %v", op, err)
		abortWithError(c, status, "internal error")
		return
	}
	abortWithError(c, status, err.Error())
}

// -----------------------------------------------------------------------------
// Dashboard Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.Metrics.Snapshot())
}

// getRealTime forces one mutation step and returns the result.
func (s *DashboardServer) getRealTime(c *gin.Context) {
	snapshot := s.Metrics.Tick()
	s.Telemetry.IncMutation()
	c.JSON(http.StatusOK, snapshot)
}

func (s *DashboardServer) getRevenueHistory(c *gin.Context) {
	c.JSON(http.StatusOK, mockdata.RevenueHistory())
}

func (s *DashboardServer) getUserGrowth(c *gin.Context) {
	c.JSON(http.StatusOK, mockdata.UserGrowth())
}

// -----------------------------------------------------------------------------
// Campaign Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) listCampaigns(c *gin.Context) {
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	views := make([]campaignView, 0)
	for _, campaign := range mockdata.Campaigns() {
		if status != "" && campaign.Status != status {
			continue
		}
		views = append(views, newCampaignView(campaign))
	}
	c.JSON(http.StatusOK, views)
}

func (s *DashboardServer) getCampaign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "campaign id must be an integer")
		return
	}

	campaign, ok := mockdata.CampaignByID(id)
	if !ok {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("campaign %d not found", id))
		return
	}
	c.JSON(http.StatusOK, newCampaignView(campaign))
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, mockdata.Analytics())
}

// -----------------------------------------------------------------------------

// defaultAlertLimit caps /api/alerts when no limit is given. Larger limits are
// clamped to the alert history capacity.
const defaultAlertLimit = 20

// getAlerts returns the most recent synthetic alerts, newest first.
func (s *DashboardServer) getAlerts(c *gin.Context) {
	limit := defaultAlertLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	alerts := []models.MAlert{}
	if s.Alerts != nil {
		limit = min(limit, s.Alerts.Capacity())
		alerts = s.Alerts.Latest(limit)
	}
	for i, j := 0, len(alerts)-1; i < j; i, j = i+1, j-1 {
		alerts[i], alerts[j] = alerts[j], alerts[i]
	}
	c.JSON(http.StatusOK, alerts)
}

// -----------------------------------------------------------------------------
// Report Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) buildReport(c *gin.Context) (models.MReport, error) {
	from, to, err := reportPeriod(c, time.Now())
	if err != nil {
		return models.MReport{}, err
	}

	report := models.MReport{
		From:         from,
		To:           to,
		BusinessDays: s.calendar.BusinessDays(from, to),
		Campaigns:    mockdata.Campaigns(),
		Snapshot:     s.Metrics.Snapshot(),
	}
	for _, campaign := range report.Campaigns {
		report.TotalSpent += campaign.Spent
		report.TotalRevenue += campaign.Revenue
		report.TotalImpressions += campaign.Impressions
		report.TotalClicks += campaign.Clicks
		report.TotalConversions += campaign.Conversions
	}
	if report.TotalImpressions > 0 {
		report.AvgCTR = round2(float64(report.TotalClicks) / float64(report.TotalImpressions) * 100)
	}
	if report.TotalSpent > 0 {
		report.ROI = round2((report.TotalRevenue - report.TotalSpent) / report.TotalSpent * 100)
	}
	report.TotalSpent = round2(report.TotalSpent)
	report.TotalRevenue = round2(report.TotalRevenue)
	return report, nil
}

func (s *DashboardServer) getReport(c *gin.Context) {
	report, err := s.buildReport(c)
	if err != nil {
		s.respondError(c, "report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// -----------------------------------------------------------------------------

var csvHeader = []string{"id", "name", "channel", "status", "budget", "spent", "impressions", "clicks", "conversions", "revenue", "ctr", "roi"}

func (s *DashboardServer) exportReportCSV(c *gin.Context) {
	report, err := s.buildReport(c)
	if err != nil {
		s.respondError(c, "report export", err)
		return
	}

	filename := fmt.Sprintf("campaign-report_%s_%s.csv", report.From.Format(dateLayout), report.To.Format(dateLayout))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Write(csvHeader)
	for _, campaign := range report.Campaigns {
		w.Write([]string{
			strconv.Itoa(campaign.ID),
			campaign.Name,
			campaign.Channel,
			campaign.Status,
			formatFloat(campaign.Budget),
			formatFloat(campaign.Spent),
			strconv.Itoa(campaign.Impressions),
			strconv.Itoa(campaign.Clicks),
			strconv.Itoa(campaign.Conversions),
			formatFloat(campaign.Revenue),
			formatFloat(campaign.CTR()),
			formatFloat(campaign.ROI()),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.Logger.Error("CSV export failed: %v", err)
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client, ok := s.Hub.Connect(conn, s.Metrics.Snapshot())
	if !ok {
		conn.Close()
		return
	}

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}
