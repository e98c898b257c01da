package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pako24/pako24-backend/internal/service"
	"github.com/pako24/pako24-backend/pkg/utils"
)

const reportDateLayout = "2006-01-02"

var downloadFormats = map[string]struct {
	mime string
	ext  string
}{
	"csv":   {mime: "text/csv", ext: "csv"},
	"excel": {mime: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ext: "xlsx"},
	"pdf":   {mime: "application/pdf", ext: "pdf"},
}

// Analytics агрегированный отчёт за период.
// @Summary  Аналитика по заказам
// @Tags     admin-analytics
// @Param    from  query  string  false  "Начало периода (YYYY-MM-DD)"
// @Param    to    query  string  false  "Конец периода (YYYY-MM-DD)"
// @Success  200  {object}  AnalyticsReport
// @Router   /admin/analytics [get]
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.analytics.Aggregate(r.Context(), from, to)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, ReportEntityToJSON(report), http.StatusOK)
}

// DownloadReport выгрузка отчёта файлом. Формат проверяется
// до похода в базу.
// @Summary  Скачать отчёт
// @Tags     admin-analytics
// @Param    format  query  string  true  "csv, excel или pdf"
// @Success  200  {file}  file
// @Router   /admin/analytics/download [get]
func (h *AdminHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	meta, ok := downloadFormats[format]
	if !ok {
		utils.WriteError(w, fmt.Sprintf("unsupported format: %s", format), http.StatusBadRequest)
		return
	}

	from, to, err := parseRange(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	orders, err := h.analytics.OrdersInRange(r.Context(), from, to)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var body []byte
	switch format {
	case "pdf":
		body, err = service.ExportHTML(orders)
	default:
		body, err = service.ExportCSV(orders)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	reportsExported.WithLabelValues(format).Inc()

	filename := fmt.Sprintf("analytics_%s.%s", time.Now().Format(reportDateLayout), meta.ext)
	w.Header().Set("Content-Type", meta.mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// parseRange читает границы периода, пустые значения допустимы:
// по умолчанию подставятся последние 30 дней.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", err)
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", err)
	}
	from, to = service.NormalizeRange(from, to)
	return from, to, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(reportDateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
