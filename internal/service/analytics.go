package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRangeDays = 30
	topProductsLimit = 10
	dateLayout       = "2006-01-02"
)

type AnalyticsRepo interface {
	ListOrdersInRange(ctx context.Context, from, to time.Time) ([]entities.Order, error)
	CountOrdersByStatus(ctx context.Context, from, to time.Time) (map[entities.OrderStatus]int, error)
}

type analyticsService struct {
	logger *slog.Logger
	repo   AnalyticsRepo
}

func NewAnalyticsService(logger *slog.Logger, repo AnalyticsRepo) *analyticsService {
	return &analyticsService{
		logger: logger.With(slog.String("service", "analytics")),
		repo:   repo,
	}
}

// NormalizeRange подставляет дефолтный интервал (последние 30 дней)
// и сдвигает верхнюю границу на последний момент её календарного дня.
func NormalizeRange(from, to time.Time) (time.Time, time.Time) {
	now := time.Now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -defaultRangeDays)
	}

	y, m, d := to.Date()
	to = time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), to.Location())

	return from, to
}

// Aggregate строит отчёт за закрытый интервал [from, to].
// Счётчики статусов и выборка заказов — независимые запросы,
// строгой согласованности между ними не требуется.
func (s *analyticsService) Aggregate(ctx context.Context, from, to time.Time) (entities.AnalyticsReport, error) {
	from, to = NormalizeRange(from, to)

	var orders []entities.Order
	statusCounts := make(map[entities.OrderStatus]int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.repo.ListOrdersInRange(gctx, from, to)
		return err
	})
	g.Go(func() error {
		counts, err := s.repo.CountOrdersByStatus(gctx, from, to)
		if err != nil {
			return err
		}
		for status, n := range counts {
			statusCounts[status] = n
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return entities.AnalyticsReport{}, err
	}

	for _, status := range entities.OrderStatuses {
		if _, ok := statusCounts[status]; !ok {
			statusCounts[status] = 0
		}
	}

	report := entities.AnalyticsReport{
		TotalOrders:       len(orders),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		StatusCounts:      statusCounts,
		DailyOrders:       dailySeries(orders),
		TopProducts:       topProducts(orders),
	}

	for _, o := range orders {
		report.TotalRevenue = report.TotalRevenue.Add(o.TotalPriceEUR)
	}
	report.TotalRevenue = report.TotalRevenue.Round(2)

	if report.TotalOrders > 0 {
		count := decimal.NewFromInt(int64(report.TotalOrders))
		report.AverageOrderValue = report.TotalRevenue.Div(count).Round(2)
	}

	return report, nil
}

// OrdersInRange отдаёт заказы периода для выгрузки отчётов,
// с теми же правилами нормализации границ, что и Aggregate.
func (s *analyticsService) OrdersInRange(ctx context.Context, from, to time.Time) ([]entities.Order, error) {
	from, to = NormalizeRange(from, to)
	return s.repo.ListOrdersInRange(ctx, from, to)
}

func dailySeries(orders []entities.Order) []entities.DailyOrders {
	byDate := make(map[string]*entities.DailyOrders)
	dates := make([]string, 0)

	for _, o := range orders {
		date := o.CreatedAt.Format(dateLayout)
		day, ok := byDate[date]
		if !ok {
			day = &entities.DailyOrders{Date: date, Revenue: decimal.Zero}
			byDate[date] = day
			dates = append(dates, date)
		}
		day.Count++
		day.Revenue = day.Revenue.Add(o.TotalPriceEUR)
	}

	sort.Strings(dates)

	series := make([]entities.DailyOrders, 0, len(dates))
	for _, date := range dates {
		day := byDate[date]
		day.Revenue = day.Revenue.Round(2)
		series = append(series, *day)
	}
	return series
}

// topProducts ранжирует URL по суммарному количеству, стабильно
// по порядку первого появления при равенстве.
func topProducts(orders []entities.Order) []entities.TopProduct {
	counts := make(map[string]int)
	urls := make([]string, 0)

	for _, o := range orders {
		for _, l := range o.ProductLinks {
			if _, ok := counts[l.URL]; !ok {
				urls = append(urls, l.URL)
			}
			counts[l.URL] += l.Quantity
		}
	}

	sort.SliceStable(urls, func(i, j int) bool {
		return counts[urls[i]] > counts[urls[j]]
	})

	if len(urls) > topProductsLimit {
		urls = urls[:topProductsLimit]
	}

	top := make([]entities.TopProduct, 0, len(urls))
	for _, url := range urls {
		top = append(top, entities.TopProduct{URL: url, Count: counts[url]})
	}
	return top
}
