// Package stats содержит чистые свертки над выборками расходов: движок не
// ходит в базу и не хранит состояние, текущий момент передается явно.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/riverajefer/gastos-hormiga/internal/category"
	"github.com/riverajefer/gastos-hormiga/internal/models"
)

const (
	maxTopConcepts      = 3
	maxEquivalentItems  = 3
	maxProjections      = 10
	projectionThreshold = 100000
)

type DayTotal struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}

type MaxDay struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

type CategoryTotal struct {
	Category category.ID `json:"category"`
	Total    int64       `json:"total"`
	Count    int         `json:"count"`
}

type ConceptCount struct {
	Concept string `json:"concept"`
	Count   int    `json:"count"`
	Total   int64  `json:"total"`
}

type BudgetStatus struct {
	Limit      int64 `json:"limit"`
	Percentage int64 `json:"percentage"`
}

type MonthlySummary struct {
	TotalSpent   int64           `json:"total_spent"`
	ExpenseCount int             `json:"expense_count"`
	DailyAverage int64           `json:"daily_average"`
	MaxDay       *MaxDay         `json:"max_day"`
	TopConcepts  []ConceptCount  `json:"top_concepts"`
	ByCategory   []CategoryTotal `json:"by_category"`
	ByDay        []DayTotal      `json:"by_day"`
	DaysInMonth  int             `json:"days_in_month"`
	CurrentDay   int             `json:"current_day"`
	Budget       *BudgetStatus   `json:"budget"`
}

type MonthTotal struct {
	Month int   `json:"month"`
	Total int64 `json:"total"`
	Count int   `json:"count"`
}

type CategoryProjection struct {
	Category         category.ID `json:"category"`
	Total            int64       `json:"total"`
	YearlyProjection int64       `json:"yearly_projection"`
}

type ConceptProjection struct {
	Concept          string   `json:"concept"`
	MonthlyAverage   int64    `json:"monthly_average"`
	YearlyProjection int64    `json:"yearly_projection"`
	EquivalentItems  []string `json:"equivalent_items"`
}

type YearlySummary struct {
	TotalSpent     int64                `json:"total_spent"`
	MonthlyAverage int64                `json:"monthly_average"`
	MonthsPassed   int                  `json:"months_passed"`
	ByMonth        []MonthTotal         `json:"by_month"`
	ByCategory     []CategoryProjection `json:"by_category"`
	Projections    []ConceptProjection  `json:"projections"`
}

type PeriodTotal struct {
	Month int   `json:"month"`
	Year  int   `json:"year"`
	Total int64 `json:"total"`
	Count int   `json:"count"`
}

type ComparisonSummary struct {
	Current          PeriodTotal `json:"current"`
	Previous         PeriodTotal `json:"previous"`
	Difference       int64       `json:"difference"`
	PercentageChange int64       `json:"percentage_change"`
}

type WeekdayTotal struct {
	Weekday int    `json:"weekday"`
	Name    string `json:"name"`
	Total   int64  `json:"total"`
	Count   int    `json:"count"`
}

// Индексация недели: 0 — воскресенье, 6 — суббота.
var weekdayNames = [7]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

type referenceItem struct {
	Name  string
	Price int64
}

// Справочник "на что хватило бы за год" для режима проекций.
var referenceItems = []referenceItem{
	{Name: "Netflix (1 año)", Price: 360000},
	{Name: "iPhone SE", Price: 2000000},
	{Name: "Viaje a San Andrés", Price: 1500000},
	{Name: "PlayStation 5", Price: 2500000},
	{Name: "Bicicleta", Price: 800000},
	{Name: "AirPods Pro", Price: 1200000},
	{Name: "Cursos en línea", Price: 500000},
	{Name: "Suscripción gimnasio (1 año)", Price: 1200000},
}

// Monthly строит сводку месяца по уже отфильтрованной выборке. budget может
// быть nil; now нужен, чтобы отличить текущий месяц от завершенного.
func Monthly(expenses []models.Expense, year, month int, budget *models.MonthlyBudget, now time.Time) MonthlySummary {
	days := daysInMonth(year, month)
	currentDay := days
	if now.Year() == year && int(now.Month()) == month {
		currentDay = now.Day()
	}

	summary := MonthlySummary{
		TopConcepts: make([]ConceptCount, 0, maxTopConcepts),
		ByCategory:  make([]CategoryTotal, 0),
		ByDay:       make([]DayTotal, 0),
		DaysInMonth: days,
		CurrentDay:  currentDay,
	}

	for _, e := range expenses {
		summary.TotalSpent += e.Amount
	}
	summary.ExpenseCount = len(expenses)
	summary.DailyAverage = roundDiv(summary.TotalSpent, int64(currentDay))

	summary.ByDay = accumulateByDay(expenses)
	// При равных суммах побеждает более ранняя дата: обход идет по
	// возрастанию, замена только при строгом превышении.
	for _, day := range summary.ByDay {
		if summary.MaxDay == nil || day.Total > summary.MaxDay.Total {
			summary.MaxDay = &MaxDay{Date: day.Date, Total: day.Total}
		}
	}

	summary.ByCategory = accumulateByCategory(expenses)
	summary.TopConcepts = topConcepts(expenses, maxTopConcepts)

	if budget != nil && budget.Limit > 0 {
		summary.Budget = &BudgetStatus{
			Limit:      budget.Limit,
			Percentage: roundDiv(summary.TotalSpent*100, budget.Limit),
		}
	}

	return summary
}

// Yearly строит годовую сводку с проекциями трат на полный год.
func Yearly(expenses []models.Expense, year int, now time.Time) YearlySummary {
	monthsPassed := 12
	if now.Year() == year {
		monthsPassed = int(now.Month())
	}

	summary := YearlySummary{
		MonthsPassed: monthsPassed,
		ByMonth:      make([]MonthTotal, 0),
		ByCategory:   make([]CategoryProjection, 0),
		Projections:  make([]ConceptProjection, 0),
	}

	for _, e := range expenses {
		summary.TotalSpent += e.Amount
	}
	summary.MonthlyAverage = roundDiv(summary.TotalSpent, int64(monthsPassed))

	byMonth := make(map[int]*MonthTotal)
	for _, e := range expenses {
		m := int(e.Date.UTC().Month())
		entry, ok := byMonth[m]
		if !ok {
			entry = &MonthTotal{Month: m}
			byMonth[m] = entry
		}
		entry.Total += e.Amount
		entry.Count++
	}
	for m := 1; m <= 12; m++ {
		if entry, ok := byMonth[m]; ok {
			summary.ByMonth = append(summary.ByMonth, *entry)
		}
	}

	for _, ct := range accumulateByCategory(expenses) {
		summary.ByCategory = append(summary.ByCategory, CategoryProjection{
			Category:         ct.Category,
			Total:            ct.Total,
			YearlyProjection: roundDiv(ct.Total*12, int64(monthsPassed)),
		})
	}

	summary.Projections = conceptProjections(expenses, monthsPassed)

	return summary
}

// Comparison сравнивает две уже отфильтрованные выборки: текущий месяц и
// предшествующий ему календарный месяц.
func Comparison(current, previous []models.Expense, year, month int) ComparisonSummary {
	prevMonth := month - 1
	prevYear := year
	if month == 1 {
		prevMonth = 12
		prevYear = year - 1
	}

	summary := ComparisonSummary{
		Current:  PeriodTotal{Month: month, Year: year, Count: len(current)},
		Previous: PeriodTotal{Month: prevMonth, Year: prevYear, Count: len(previous)},
	}
	for _, e := range current {
		summary.Current.Total += e.Amount
	}
	for _, e := range previous {
		summary.Previous.Total += e.Amount
	}

	summary.Difference = summary.Current.Total - summary.Previous.Total
	// Нулевая база дает 0%, даже если текущие траты велики.
	if summary.Previous.Total > 0 {
		summary.PercentageChange = roundDiv(summary.Difference*100, summary.Previous.Total)
	}

	return summary
}

// ByCategory группирует выборку по категориям, сортировка по убыванию суммы.
func ByCategory(expenses []models.Expense) []CategoryTotal {
	return accumulateByCategory(expenses)
}

// ByWeekday раскладывает выборку по дням недели; всегда ровно 7 строк,
// отсутствующие дни заполняются нулями.
func ByWeekday(expenses []models.Expense) []WeekdayTotal {
	out := make([]WeekdayTotal, 7)
	for i := range out {
		out[i] = WeekdayTotal{Weekday: i, Name: weekdayNames[i]}
	}
	for _, e := range expenses {
		wd := int(e.Date.UTC().Weekday())
		out[wd].Total += e.Amount
		out[wd].Count++
	}
	return out
}

func accumulateByDay(expenses []models.Expense) []DayTotal {
	totals := make(map[string]*DayTotal)
	for _, e := range expenses {
		key := e.Date.UTC().Format("2006-01-02")
		entry, ok := totals[key]
		if !ok {
			entry = &DayTotal{Date: key}
			totals[key] = entry
		}
		entry.Total += e.Amount
		entry.Count++
	}

	out := make([]DayTotal, 0, len(totals))
	for _, entry := range totals {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func accumulateByCategory(expenses []models.Expense) []CategoryTotal {
	totals := make(map[category.ID]*CategoryTotal)
	order := make([]category.ID, 0)
	for _, e := range expenses {
		entry, ok := totals[e.Category]
		if !ok {
			entry = &CategoryTotal{Category: e.Category}
			totals[e.Category] = entry
			order = append(order, e.Category)
		}
		entry.Total += e.Amount
		entry.Count++
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// topConcepts считает повторы описаний (без учета регистра); при равном числе
// повторов сохраняется порядок первого появления, не сумма.
func topConcepts(expenses []models.Expense, limit int) []ConceptCount {
	totals := make(map[string]*ConceptCount)
	order := make([]string, 0)
	for _, e := range expenses {
		key := strings.ToLower(e.Concept)
		entry, ok := totals[key]
		if !ok {
			entry = &ConceptCount{Concept: key}
			totals[key] = entry
			order = append(order, key)
		}
		entry.Count++
		entry.Total += e.Amount
	}

	out := make([]ConceptCount, 0, len(order))
	for _, key := range order {
		out = append(out, *totals[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// conceptProjections экстраполирует траты по каждому описанию на полный год.
// Годовая цифра намеренно считается от уже округленного месячного среднего и
// может чуть расходиться с проекцией по категориям.
func conceptProjections(expenses []models.Expense, monthsPassed int) []ConceptProjection {
	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, e := range expenses {
		key := strings.ToLower(e.Concept)
		if _, ok := totals[key]; !ok {
			order = append(order, key)
		}
		totals[key] += e.Amount
	}

	out := make([]ConceptProjection, 0)
	for _, key := range order {
		monthlyAverage := roundDiv(totals[key], int64(monthsPassed))
		yearlyProjection := monthlyAverage * 12
		if yearlyProjection <= projectionThreshold {
			continue
		}

		items := make([]string, 0, maxEquivalentItems)
		for _, item := range referenceItems {
			if yearlyProjection >= (item.Price*4)/5 {
				items = append(items, item.Name)
				if len(items) == maxEquivalentItems {
					break
				}
			}
		}

		out = append(out, ConceptProjection{
			Concept:          key,
			MonthlyAverage:   monthlyAverage,
			YearlyProjection: yearlyProjection,
			EquivalentItems:  items,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].YearlyProjection > out[j].YearlyProjection
	})
	if len(out) > maxProjections {
		out = out[:maxProjections]
	}
	return out
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// roundDiv округляет num/den до ближайшего целого, половина уходит вверх.
// Ноль в знаменателе дает ноль вместо ошибки.
func roundDiv(num, den int64) int64 {
	if den == 0 {
		return 0
	}
	n := 2*num + den
	d := 2 * den
	q := n / d
	if n%d != 0 && (n < 0) != (d < 0) {
		q--
	}
	return q
}
