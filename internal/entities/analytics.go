package entities

import "github.com/shopspring/decimal"

// DailyOrders одна точка дневного ряда, Date в формате YYYY-MM-DD.
type DailyOrders struct {
	Date    string
	Count   int
	Revenue decimal.Decimal
}

// TopProduct суммарное количество по одинаковым URL за период.
type TopProduct struct {
	URL   string
	Count int
}

// AnalyticsReport срез отчётности за закрытый интервал дат.
type AnalyticsReport struct {
	TotalOrders       int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	StatusCounts      map[OrderStatus]int
	DailyOrders       []DailyOrders
	TopProducts       []TopProduct
}
