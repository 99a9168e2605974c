package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	layoutDate = "2006-01-02"

	errFromInvalid     = "invalid 'from' date; use YYYY-MM-DD"
	errToInvalid       = "invalid 'to' date; use YYYY-MM-DD"
	errLoadSummary     = "failed to load summary analytics"
	errLoadTopCust     = "failed to load top customers"
	errLoadByDateRange = "failed to load date range analytics"
)

const maxTopCustomers = 3

// @Summary      Sales summary
// @Description  Totals over all transactions. An empty store returns zeros plus an informational message.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  models.SalesSummary
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /analytics/summary [get]
// @Security     BearerAuth
func (h *Handler) analyticsSummary(c *gin.Context) {
	summary, err := h.services.Summary(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSummary, "analytics_summary_failed", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Top customers by total sales
// @Tags         analytics
// @Produce      json
// @Param        limit  query  int  false  "Max entries (1-3, default 3)"
// @Success      200  {array}   models.CustomerTotal
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /analytics/top-customers [get]
// @Security     BearerAuth
func (h *Handler) analyticsTopCustomers(c *gin.Context) {
	limit := maxTopCustomers
	if qs := c.Query("limit"); qs != "" {
		if v, err := strconv.Atoi(qs); err == nil && v > 0 && v <= maxTopCustomers {
			limit = v
		}
	}

	rows, err := h.services.TopCustomers(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadTopCust, "analytics_top_customers_failed", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// @Summary      Sales totals for a date range
// @Description  Inclusive [from, to] range over transaction dates. An empty range yields zeros.
// @Tags         analytics
// @Produce      json
// @Param        from  query  string  true  "Start date (YYYY-MM-DD)"  example(2024-01-01)
// @Param        to    query  string  true  "End date (YYYY-MM-DD)"    example(2024-01-31)
// @Success      200  {object}  models.SalesSummary
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /analytics/by-date [get]
// @Security     BearerAuth
func (h *Handler) analyticsByDate(c *gin.Context) {
	from := c.Query("from")
	if _, err := time.Parse(layoutDate, from); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
		return
	}
	to := c.Query("to")
	if _, err := time.Parse(layoutDate, to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
		return
	}

	summary, err := h.services.ByDateRange(c.Request.Context(), from, to)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadByDateRange, "analytics_by_date_failed", err,
			"from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, summary)
}
