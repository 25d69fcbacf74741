package api

import (
	"net/http"
	"strconv"
	"time"
)

// ===========================
// 統計
// ===========================

// DailyStatistics GET /api/statistics/daily?date=2006-01-02（預設今天）
func (h *Handler) DailyStatistics(w http.ResponseWriter, r *http.Request) {
	date := time.Now().In(h.svc.BusinessZone)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, raw, h.svc.BusinessZone)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: "DATE_INVALID", Message: "日期格式應為 YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	stats, err := h.svc.Statistics.DailyStatistics(date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// MonthlyStatistics GET /api/statistics/monthly?year=2026&month=3（預設本月）
func (h *Handler) MonthlyStatistics(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(h.svc.BusinessZone)
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if raw := q.Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: "YEAR_INVALID", Message: "年份必須是整數"})
			return
		}
		year = v
	}
	if raw := q.Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: "MONTH_INVALID", Message: "月份必須是整數"})
			return
		}
		month = v
	}

	stats, err := h.svc.Statistics.MonthlyStatistics(year, month)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
