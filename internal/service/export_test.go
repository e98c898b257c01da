package service_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	header := []string{
		"Order ID", "Date", "Customer Email", "Customer Phone", "Status",
		"Total EUR", "Total GBP", "Products Count",
	}

	t.Run("empty export still has header", func(t *testing.T) {
		data, err := service.ExportCSV(nil)
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, header, records[0])
	})

	t.Run("row per order with fixed precision", func(t *testing.T) {
		orderID := uuid.New()
		orders := []entities.Order{
			{
				ID:            orderID,
				Status:        entities.StatusDelivered,
				TotalPriceEUR: dec("120.5"),
				TotalPriceGBP: dec("100"),
				CreatedAt:     time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
				ProductLinks:  []entities.ProductLink{{}, {}},
				User:          &entities.User{Email: "user@example.com", PhoneNumber: "+37120000000"},
			},
		}

		data, err := service.ExportCSV(orders)
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)

		row := records[1]
		assert.Equal(t, orderID.String(), row[0])
		assert.Equal(t, "2026-03-05", row[1])
		assert.Equal(t, "user@example.com", row[2])
		assert.Equal(t, "+37120000000", row[3])
		assert.Equal(t, "DELIVERED", row[4])
		assert.Equal(t, "120.50", row[5])
		assert.Equal(t, "100.00", row[6])
		assert.Equal(t, "2", row[7])
	})

	t.Run("order without owner keeps empty contacts", func(t *testing.T) {
		data, err := service.ExportCSV([]entities.Order{{ID: uuid.New(), Status: entities.StatusPending}})
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "", records[1][2])
		assert.Equal(t, "", records[1][3])
	})
}

func TestExportHTML(t *testing.T) {
	t.Run("document carries rows and totals", func(t *testing.T) {
		orders := []entities.Order{
			{
				ID:            uuid.New(),
				Status:        entities.StatusShipped,
				TotalPriceEUR: dec("10.00"),
				CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
				User:          &entities.User{Email: "first@example.com"},
			},
			{
				ID:            uuid.New(),
				Status:        entities.StatusDelivered,
				TotalPriceEUR: dec("25.50"),
				CreatedAt:     time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC),
			},
		}

		data, err := service.ExportHTML(orders)
		require.NoError(t, err)

		html := string(data)
		assert.Contains(t, html, "PAKO24 Orders Report")
		assert.Contains(t, html, "2026-03-01")
		assert.Contains(t, html, "2026-03-07")
		assert.Contains(t, html, "first@example.com")
		assert.Contains(t, html, "Total orders: 2")
		assert.Contains(t, html, "Total revenue: 35.50 EUR")
	})

	t.Run("empty export falls back to current date", func(t *testing.T) {
		data, err := service.ExportHTML(nil)
		require.NoError(t, err)

		today := time.Now().Format("2006-01-02")
		assert.Contains(t, string(data), today)
		assert.Contains(t, string(data), "Total orders: 0")
	})
}
