package holiday

import (
	"net/http"
	"time"

	"github.com/klokku/agenda/internal/rest"
	"github.com/klokku/agenda/internal/utils"
)

type Handler struct {
	lookup *Lookup
	clock  utils.Clock
}

type holidaysResponse struct {
	Month    string            `json:"month"`
	Holidays map[string]string `json:"holidays"`
}

func NewHandler(lookup *Lookup, clock utils.Clock) *Handler {
	return &Handler{lookup: lookup, clock: clock}
}

// GetHolidays godoc
// @Summary Public holidays of a month
// @Description Holidays keyed by YYYY-MM-DD, the current month when month is missing
// @Tags Holidays
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {object} holidaysResponse
// @Failure 400 {object} rest.ErrorResponse "Invalid month format"
// @Router /api/holidays [get]
func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	month := h.clock.Now()
	if param := r.URL.Query().Get("month"); param != "" {
		parsed, err := time.ParseInLocation("2006-01", param, time.Local)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "'month' must be in YYYY-MM format")
			return
		}
		month = parsed
	}

	rest.WriteJSON(w, http.StatusOK, holidaysResponse{
		Month:    month.Format("2006-01"),
		Holidays: h.lookup.InMonth(month.Year(), month.Month()),
	})
}
