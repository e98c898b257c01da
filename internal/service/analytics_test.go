package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type analyticsAPI interface {
	Aggregate(ctx context.Context, from, to time.Time) (entities.AnalyticsReport, error)
	OrdersInRange(ctx context.Context, from, to time.Time) ([]entities.Order, error)
}

func newAnalyticsService(repo *mockAnalyticsRepo) analyticsAPI {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewAnalyticsService(logger, repo)
}

func TestNormalizeRange(t *testing.T) {
	t.Run("zero values default to last 30 days", func(t *testing.T) {
		from, to := service.NormalizeRange(time.Time{}, time.Time{})

		assert.WithinDuration(t, time.Now(), to, time.Hour)
		assert.Equal(t, 23, to.Hour())
		assert.Equal(t, 59, to.Minute())
		assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), from, time.Hour)
	})

	t.Run("to moves to end of its day", func(t *testing.T) {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

		gotFrom, gotTo := service.NormalizeRange(from, to)

		assert.Equal(t, from, gotFrom)
		assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), gotTo)
	})
}

func TestAnalyticsService_Aggregate(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
	}

	t.Run("empty range gives zero report", func(t *testing.T) {
		repo := new(mockAnalyticsRepo)
		svc := newAnalyticsService(repo)

		repo.On("ListOrdersInRange", mock.Anything, mock.Anything, mock.Anything).
			Return([]entities.Order{}, nil).Once()
		repo.On("CountOrdersByStatus", mock.Anything, mock.Anything, mock.Anything).
			Return(map[entities.OrderStatus]int{}, nil).Once()

		report, err := svc.Aggregate(context.Background(), day(1), day(31))

		require.NoError(t, err)
		assert.Equal(t, 0, report.TotalOrders)
		assert.True(t, report.TotalRevenue.IsZero())
		assert.True(t, report.AverageOrderValue.IsZero())
		assert.Empty(t, report.DailyOrders)
		assert.Empty(t, report.TopProducts)

		// все статусы присутствуют даже без заказов
		assert.Len(t, report.StatusCounts, len(entities.OrderStatuses))
		for _, status := range entities.OrderStatuses {
			assert.Equal(t, 0, report.StatusCounts[status])
		}
	})

	t.Run("aggregates revenue, averages and daily series", func(t *testing.T) {
		repo := new(mockAnalyticsRepo)
		svc := newAnalyticsService(repo)

		orders := []entities.Order{
			{Status: entities.StatusPending, TotalPriceEUR: dec("10.00"), CreatedAt: day(1)},
			{Status: entities.StatusDelivered, TotalPriceEUR: dec("20.00"), CreatedAt: day(1)},
			{Status: entities.StatusDelivered, TotalPriceEUR: dec("5.00"), CreatedAt: day(3)},
		}
		repo.On("ListOrdersInRange", mock.Anything, mock.Anything, mock.Anything).
			Return(orders, nil).Once()
		repo.On("CountOrdersByStatus", mock.Anything, mock.Anything, mock.Anything).
			Return(map[entities.OrderStatus]int{
				entities.StatusPending:   1,
				entities.StatusDelivered: 2,
			}, nil).Once()

		report, err := svc.Aggregate(context.Background(), day(1), day(31))

		require.NoError(t, err)
		assert.Equal(t, 3, report.TotalOrders)
		assert.True(t, report.TotalRevenue.Equal(dec("35.00")))
		assert.True(t, report.AverageOrderValue.Equal(dec("11.67")), "got %s", report.AverageOrderValue)
		assert.Equal(t, 1, report.StatusCounts[entities.StatusPending])
		assert.Equal(t, 2, report.StatusCounts[entities.StatusDelivered])
		assert.Equal(t, 0, report.StatusCounts[entities.StatusCancelled])

		require.Len(t, report.DailyOrders, 2)
		assert.Equal(t, "2026-03-01", report.DailyOrders[0].Date)
		assert.Equal(t, 2, report.DailyOrders[0].Count)
		assert.True(t, report.DailyOrders[0].Revenue.Equal(dec("30.00")))
		assert.Equal(t, "2026-03-03", report.DailyOrders[1].Date)
		assert.Equal(t, 1, report.DailyOrders[1].Count)
	})

	t.Run("top products sum quantities across orders", func(t *testing.T) {
		repo := new(mockAnalyticsRepo)
		svc := newAnalyticsService(repo)

		orders := []entities.Order{
			{CreatedAt: day(1), ProductLinks: []entities.ProductLink{
				{URL: "https://shop.example/a", Quantity: 2},
				{URL: "https://shop.example/b", Quantity: 4},
			}},
			{CreatedAt: day(2), ProductLinks: []entities.ProductLink{
				{URL: "https://shop.example/a", Quantity: 3},
			}},
		}
		repo.On("ListOrdersInRange", mock.Anything, mock.Anything, mock.Anything).
			Return(orders, nil).Once()
		repo.On("CountOrdersByStatus", mock.Anything, mock.Anything, mock.Anything).
			Return(map[entities.OrderStatus]int{}, nil).Once()

		report, err := svc.Aggregate(context.Background(), day(1), day(31))

		require.NoError(t, err)
		require.Len(t, report.TopProducts, 2)
		assert.Equal(t, "https://shop.example/a", report.TopProducts[0].URL)
		assert.Equal(t, 5, report.TopProducts[0].Count)
		assert.Equal(t, "https://shop.example/b", report.TopProducts[1].URL)
		assert.Equal(t, 4, report.TopProducts[1].Count)
	})

	t.Run("top products keep ten entries, ties in discovery order", func(t *testing.T) {
		repo := new(mockAnalyticsRepo)
		svc := newAnalyticsService(repo)

		links := make([]entities.ProductLink, 0, 12)
		for i := 0; i < 12; i++ {
			links = append(links, entities.ProductLink{
				URL:      fmt.Sprintf("https://shop.example/p%02d", i),
				Quantity: 1,
			})
		}
		repo.On("ListOrdersInRange", mock.Anything, mock.Anything, mock.Anything).
			Return([]entities.Order{{CreatedAt: day(1), ProductLinks: links}}, nil).Once()
		repo.On("CountOrdersByStatus", mock.Anything, mock.Anything, mock.Anything).
			Return(map[entities.OrderStatus]int{}, nil).Once()

		report, err := svc.Aggregate(context.Background(), day(1), day(31))

		require.NoError(t, err)
		require.Len(t, report.TopProducts, 10)
		for i, p := range report.TopProducts {
			assert.Equal(t, fmt.Sprintf("https://shop.example/p%02d", i), p.URL)
		}
	})
}
