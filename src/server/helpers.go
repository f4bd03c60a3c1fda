package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campaign-pulse/src/helpers"
	"campaign-pulse/src/models"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// defaultReportDays is the period used when a report request has no "from".
const defaultReportDays = 30

// maxReportDays bounds the span a single report may cover.
const maxReportDays = 366

// -----------------------------------------------------------------------------

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// statusFor maps internal errors to HTTP status codes.
func statusFor(err error) int {
	var authErr *helpers.AuthError
	switch {
	case helpers.IsValidation(err):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// -----------------------------------------------------------------------------

// parseDateParam reads a YYYY-MM-DD query parameter, returning fallback when absent.
func parseDateParam(c *gin.Context, key string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, helpers.NewValidationError("%s must be YYYY-MM-DD, got %q", key, raw)
	}
	return t, nil
}

// reportPeriod resolves the from/to query parameters. Both default relative to today.
func reportPeriod(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	to, err := parseDateParam(c, "to", today)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err := parseDateParam(c, "from", to.AddDate(0, 0, -defaultReportDays))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, helpers.NewValidationError("from (%s) is after to (%s)", from.Format(dateLayout), to.Format(dateLayout))
	}
	if to.Sub(from) > maxReportDays*24*time.Hour {
		return time.Time{}, time.Time{}, helpers.NewValidationError("report period may not exceed %d days", maxReportDays)
	}
	return from, to, nil
}

// -----------------------------------------------------------------------------

// campaignView adds the derived ratios to a campaign row.
type campaignView struct {
	models.MCampaign
	CTR float64 `json:"ctr"`
	ROI float64 `json:"roi"`
}

func newCampaignView(c models.MCampaign) campaignView {
	return campaignView{MCampaign: c, CTR: round2(c.CTR()), ROI: round2(c.ROI())}
}

// -----------------------------------------------------------------------------

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
