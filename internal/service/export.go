package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"

	"github.com/shopspring/decimal"
)

// csvHeader фиксированные колонки выгрузки, всегда первая строка файла.
var csvHeader = []string{
	"Order ID", "Date", "Customer Email", "Customer Phone", "Status",
	"Total EUR", "Total GBP", "Products Count",
}

// ExportCSV сериализует уже загруженные заказы, данных больше не читает.
func ExportCSV(orders []entities.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, o := range orders {
		email, phone := ownerContacts(o)
		row := []string{
			o.ID.String(),
			o.CreatedAt.Format(dateLayout),
			email,
			phone,
			string(o.Status),
			o.TotalPriceEUR.StringFixed(2),
			o.TotalPriceGBP.StringFixed(2),
			strconv.Itoa(len(o.ProductLinks)),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f4f4f4; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.RangeFrom}} — {{.RangeTo}}</p>
<table>
<thead>
<tr><th>Order ID</th><th>Date</th><th>Customer Email</th><th>Status</th><th>Total EUR</th><th>Total GBP</th><th>Products Count</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Date}}</td><td>{{.Email}}</td><td>{{.Status}}</td><td>{{.TotalEUR}}</td><td>{{.TotalGBP}}</td><td>{{.Products}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="4">Total orders: {{.TotalOrders}}</td><td colspan="3">Total revenue: {{.TotalRevenue}} EUR</td></tr>
</tfoot>
</table>
</body>
</html>
`))

type reportRow struct {
	ID       string
	Date     string
	Email    string
	Status   string
	TotalEUR string
	TotalGBP string
	Products int
}

type reportData struct {
	Title        string
	RangeFrom    string
	RangeTo      string
	Rows         []reportRow
	TotalOrders  int
	TotalRevenue string
}

// ExportHTML строит самодостаточный HTML-документ; он же отдаётся
// под видом PDF (осознанное упрощение вместо настоящего рендера).
func ExportHTML(orders []entities.Order) ([]byte, error) {
	data := reportData{
		Title:       "PAKO24 Orders Report",
		TotalOrders: len(orders),
	}

	now := time.Now().Format(dateLayout)
	data.RangeFrom, data.RangeTo = now, now
	if len(orders) > 0 {
		data.RangeFrom = orders[0].CreatedAt.Format(dateLayout)
		data.RangeTo = orders[len(orders)-1].CreatedAt.Format(dateLayout)
	}

	revenue := decimal.Zero
	data.Rows = make([]reportRow, 0, len(orders))
	for _, o := range orders {
		email, _ := ownerContacts(o)
		data.Rows = append(data.Rows, reportRow{
			ID:       o.ID.String(),
			Date:     o.CreatedAt.Format(dateLayout),
			Email:    email,
			Status:   string(o.Status),
			TotalEUR: o.TotalPriceEUR.StringFixed(2),
			TotalGBP: o.TotalPriceGBP.StringFixed(2),
			Products: len(o.ProductLinks),
		})
		revenue = revenue.Add(o.TotalPriceEUR)
	}
	data.TotalRevenue = revenue.Round(2).StringFixed(2)

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func ownerContacts(o entities.Order) (email, phone string) {
	if o.User == nil {
		return "", ""
	}
	return o.User.Email, o.User.PhoneNumber
}
