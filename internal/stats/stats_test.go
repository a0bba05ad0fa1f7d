package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/riverajefer/gastos-hormiga/internal/category"
	"github.com/riverajefer/gastos-hormiga/internal/models"
)

func expense(concept string, amount int64, cat category.ID, year, month, day int) models.Expense {
	return models.Expense{
		Concept:  concept,
		Amount:   amount,
		Category: cat,
		Date:     time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC),
	}
}

// TestMonthlyCompletedMonth проверяет сводку завершенного месяца.
func TestMonthlyCompletedMonth(t *testing.T) {
	expenses := []models.Expense{
		expense("Almuerzo", 34000, category.Comida, 2026, 1, 2),
		expense("Café", 8000, category.Bebidas, 2026, 1, 3),
		expense("Uber", 10000, category.Transporte, 2026, 1, 3),
		expense("Mercado", 85000, category.Otros, 2026, 1, 4),
	}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	got := Monthly(expenses, 2026, 1, nil, now)

	if got.TotalSpent != 137000 {
		t.Fatalf("expected total 137000, got %d", got.TotalSpent)
	}
	if got.ExpenseCount != 4 {
		t.Fatalf("expected 4 expenses, got %d", got.ExpenseCount)
	}
	if got.DaysInMonth != 31 || got.CurrentDay != 31 {
		t.Fatalf("expected 31/31 days for a past month, got %d/%d", got.DaysInMonth, got.CurrentDay)
	}
	if got.DailyAverage != 4419 {
		t.Fatalf("expected daily average 4419, got %d", got.DailyAverage)
	}
	if len(got.ByDay) != 3 {
		t.Fatalf("expected 3 byDay entries, got %d", len(got.ByDay))
	}
	if got.ByDay[0].Date != "2026-01-02" || got.ByDay[2].Date != "2026-01-04" {
		t.Fatalf("expected byDay sorted ascending, got %+v", got.ByDay)
	}
	if got.MaxDay == nil || got.MaxDay.Date != "2026-01-04" || got.MaxDay.Total != 85000 {
		t.Fatalf("expected max day 2026-01-04/85000, got %+v", got.MaxDay)
	}
	if got.Budget != nil {
		t.Fatalf("expected nil budget, got %+v", got.Budget)
	}
}

// TestMonthlyCurrentMonth проверяет использование текущего дня месяца.
func TestMonthlyCurrentMonth(t *testing.T) {
	expenses := []models.Expense{
		expense("Almuerzo", 70000, category.Comida, 2026, 2, 1),
	}
	now := time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC)

	got := Monthly(expenses, 2026, 2, nil, now)

	if got.CurrentDay != 10 {
		t.Fatalf("expected current day 10, got %d", got.CurrentDay)
	}
	if got.DaysInMonth != 28 {
		t.Fatalf("expected 28 days in Feb 2026, got %d", got.DaysInMonth)
	}
	if got.DailyAverage != 7000 {
		t.Fatalf("expected average 7000, got %d", got.DailyAverage)
	}
}

// TestMonthlyLeapYear проверяет число дней в високосном феврале.
func TestMonthlyLeapYear(t *testing.T) {
	got := Monthly(nil, 2024, 2, nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if got.DaysInMonth != 29 {
		t.Fatalf("expected 29 days in Feb 2024, got %d", got.DaysInMonth)
	}
}

// TestMonthlyEmpty проверяет сводку без расходов.
func TestMonthlyEmpty(t *testing.T) {
	got := Monthly(nil, 2025, 6, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	if got.TotalSpent != 0 || got.ExpenseCount != 0 || got.DailyAverage != 0 {
		t.Fatalf("expected zeroed summary, got %+v", got)
	}
	if got.MaxDay != nil {
		t.Fatalf("expected nil max day, got %+v", got.MaxDay)
	}
	if got.ByDay == nil || got.ByCategory == nil || got.TopConcepts == nil {
		t.Fatal("expected empty slices, not nil")
	}
}

// TestMonthlyMaxDayTie проверяет, что при равенстве побеждает ранняя дата.
func TestMonthlyMaxDayTie(t *testing.T) {
	expenses := []models.Expense{
		expense("Cena", 20000, category.Comida, 2026, 1, 10),
		expense("Cine", 20000, category.Entretenimiento, 2026, 1, 5),
	}
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	got := Monthly(expenses, 2026, 1, nil, now)
	if got.MaxDay == nil || got.MaxDay.Date != "2026-01-05" {
		t.Fatalf("expected earliest tied day 2026-01-05, got %+v", got.MaxDay)
	}
}

// TestMonthlyBudgetPercentage проверяет, что процент бюджета не обрезается.
func TestMonthlyBudgetPercentage(t *testing.T) {
	expenses := []models.Expense{
		expense("Mercado", 150000, category.Otros, 2026, 1, 2),
	}
	budget := &models.MonthlyBudget{Month: 1, Year: 2026, Limit: 100000}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	got := Monthly(expenses, 2026, 1, budget, now)
	if got.Budget == nil || got.Budget.Percentage != 150 {
		t.Fatalf("expected uncapped 150%%, got %+v", got.Budget)
	}

	zeroLimit := &models.MonthlyBudget{Month: 1, Year: 2026, Limit: 0}
	if got := Monthly(expenses, 2026, 1, zeroLimit, now); got.Budget != nil {
		t.Fatalf("expected nil budget for zero limit, got %+v", got.Budget)
	}
}

// TestMonthlyTopConcepts проверяет топ описаний по числу повторов.
func TestMonthlyTopConcepts(t *testing.T) {
	expenses := []models.Expense{
		expense("Café", 5000, category.Bebidas, 2026, 1, 1),
		expense("café", 5000, category.Bebidas, 2026, 1, 2),
		expense("CAFÉ", 5000, category.Bebidas, 2026, 1, 3),
		expense("Uber", 12000, category.Transporte, 2026, 1, 1),
		expense("Uber", 12000, category.Transporte, 2026, 1, 2),
		expense("Almuerzo", 99000, category.Comida, 2026, 1, 1),
		expense("Cine", 30000, category.Entretenimiento, 2026, 1, 1),
	}
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	got := Monthly(expenses, 2026, 1, nil, now).TopConcepts
	if len(got) != 3 {
		t.Fatalf("expected 3 top concepts, got %d", len(got))
	}
	if got[0].Concept != "café" || got[0].Count != 3 || got[0].Total != 15000 {
		t.Fatalf("unexpected leader: %+v", got[0])
	}
	if got[1].Concept != "uber" {
		t.Fatalf("expected uber second, got %+v", got[1])
	}
	// almuerzo и cine по одному разу; almuerzo появился раньше.
	if got[2].Concept != "almuerzo" {
		t.Fatalf("expected insertion-order tie break, got %+v", got[2])
	}
}

// TestMonthlyIdempotent проверяет, что повторный вызов дает тот же результат.
func TestMonthlyIdempotent(t *testing.T) {
	expenses := []models.Expense{
		expense("Café", 5000, category.Bebidas, 2026, 1, 1),
		expense("Uber", 12000, category.Transporte, 2026, 1, 2),
	}
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	first := Monthly(expenses, 2026, 1, nil, now)
	second := Monthly(expenses, 2026, 1, nil, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical summaries, got %+v vs %+v", first, second)
	}
}

// TestYearlyProjections проверяет двухшаговое округление и подбор эквивалентов.
func TestYearlyProjections(t *testing.T) {
	expenses := make([]models.Expense, 0, 6)
	for m := 1; m <= 6; m++ {
		expenses = append(expenses, expense("Domicilios", 100000, category.Comida, 2026, m, 5))
	}
	now := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	got := Yearly(expenses, 2026, now)

	if got.MonthsPassed != 6 {
		t.Fatalf("expected 6 months passed, got %d", got.MonthsPassed)
	}
	if got.TotalSpent != 600000 || got.MonthlyAverage != 100000 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if len(got.Projections) != 1 {
		t.Fatalf("expected one projection, got %d", len(got.Projections))
	}

	p := got.Projections[0]
	if p.MonthlyAverage != 100000 || p.YearlyProjection != 1200000 {
		t.Fatalf("unexpected projection: %+v", p)
	}
	want := []string{"Netflix (1 año)", "Viaje a San Andrés", "Bicicleta"}
	if !reflect.DeepEqual(p.EquivalentItems, want) {
		t.Fatalf("expected items %v, got %v", want, p.EquivalentItems)
	}
	for _, item := range p.EquivalentItems {
		if item == "PlayStation 5" {
			t.Fatal("PlayStation 5 must not qualify at 1200000")
		}
	}
}

// TestYearlyProjectionThreshold проверяет отсев незначительных проекций.
func TestYearlyProjectionThreshold(t *testing.T) {
	expenses := []models.Expense{
		expense("Chicles", 48000, category.Antojos, 2026, 1, 1),
	}
	now := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	got := Yearly(expenses, 2026, now)
	// 48000/6 = 8000 в месяц, 96000 в год — ниже порога.
	if len(got.Projections) != 0 {
		t.Fatalf("expected projection filtered out, got %+v", got.Projections)
	}
}

// TestYearlyRoundingAsymmetry проверяет расхождение двух формул проекции.
func TestYearlyRoundingAsymmetry(t *testing.T) {
	expenses := []models.Expense{
		expense("Gimnasio", 100001, category.Entretenimiento, 2026, 2, 1),
	}
	now := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	got := Yearly(expenses, 2026, now)

	if len(got.ByCategory) != 1 || got.ByCategory[0].YearlyProjection != 200002 {
		t.Fatalf("expected category projection 200002, got %+v", got.ByCategory)
	}
	if len(got.Projections) != 1 || got.Projections[0].YearlyProjection != 200004 {
		t.Fatalf("expected concept projection 200004, got %+v", got.Projections)
	}
}

// TestYearlyByMonth проверяет помесячную разбивку.
func TestYearlyByMonth(t *testing.T) {
	expenses := []models.Expense{
		expense("Café", 4000, category.Bebidas, 2025, 3, 1),
		expense("Café", 4000, category.Bebidas, 2025, 3, 2),
		expense("Uber", 15000, category.Transporte, 2025, 11, 1),
	}
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	got := Yearly(expenses, 2025, now)
	if got.MonthsPassed != 12 {
		t.Fatalf("expected past year to count 12 months, got %d", got.MonthsPassed)
	}
	if len(got.ByMonth) != 2 {
		t.Fatalf("expected 2 months, got %+v", got.ByMonth)
	}
	if got.ByMonth[0].Month != 3 || got.ByMonth[0].Total != 8000 || got.ByMonth[0].Count != 2 {
		t.Fatalf("unexpected march row: %+v", got.ByMonth[0])
	}
	if got.ByMonth[1].Month != 11 {
		t.Fatalf("expected november second, got %+v", got.ByMonth[1])
	}
}

// TestComparisonZeroBase проверяет 0% при нулевой базе сравнения.
func TestComparisonZeroBase(t *testing.T) {
	current := []models.Expense{
		expense("Mercado", 50000, category.Otros, 2026, 2, 3),
	}

	got := Comparison(current, nil, 2026, 2)
	if got.PercentageChange != 0 {
		t.Fatalf("expected 0%% for zero base, got %d", got.PercentageChange)
	}
	if got.Difference != 50000 {
		t.Fatalf("expected difference 50000, got %d", got.Difference)
	}
}

// TestComparisonJanuaryRollover проверяет переход года для января.
func TestComparisonJanuaryRollover(t *testing.T) {
	current := []models.Expense{
		expense("Café", 30000, category.Bebidas, 2026, 1, 3),
	}
	previous := []models.Expense{
		expense("Café", 40000, category.Bebidas, 2025, 12, 3),
	}

	got := Comparison(current, previous, 2026, 1)
	if got.Previous.Month != 12 || got.Previous.Year != 2025 {
		t.Fatalf("expected previous Dec 2025, got %+v", got.Previous)
	}
	if got.Difference != -10000 || got.PercentageChange != -25 {
		t.Fatalf("expected -10000/-25%%, got %d/%d", got.Difference, got.PercentageChange)
	}
}

// TestComparisonNegativeHalfRounding проверяет округление отрицательной половины.
func TestComparisonNegativeHalfRounding(t *testing.T) {
	current := []models.Expense{
		expense("Café", 35000, category.Bebidas, 2026, 3, 3),
	}
	previous := []models.Expense{
		expense("Café", 40000, category.Bebidas, 2026, 2, 3),
	}

	// -5000/40000 = -12.5%; половина округляется вверх, к -12.
	got := Comparison(current, previous, 2026, 3)
	if got.PercentageChange != -12 {
		t.Fatalf("expected -12, got %d", got.PercentageChange)
	}
}

// TestByWeekdayAlwaysSeven проверяет ровно 7 строк с нулевым заполнением.
func TestByWeekdayAlwaysSeven(t *testing.T) {
	// 2026-01-04 — воскресенье, 2026-01-05 — понедельник.
	expenses := []models.Expense{
		expense("Brunch", 45000, category.Comida, 2026, 1, 4),
		expense("Bus", 3000, category.Transporte, 2026, 1, 5),
		expense("Bus", 3000, category.Transporte, 2026, 1, 12),
	}

	got := ByWeekday(expenses)
	if len(got) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(got))
	}

	totalCount := 0
	for i, row := range got {
		if row.Weekday != i {
			t.Fatalf("expected weekday %d at position %d, got %d", i, i, row.Weekday)
		}
		totalCount += row.Count
	}
	if totalCount != len(expenses) {
		t.Fatalf("expected counts to sum to %d, got %d", len(expenses), totalCount)
	}
	if got[0].Name != "Domingo" || got[0].Total != 45000 {
		t.Fatalf("unexpected sunday row: %+v", got[0])
	}
	if got[1].Name != "Lunes" || got[1].Count != 2 || got[1].Total != 6000 {
		t.Fatalf("unexpected monday row: %+v", got[1])
	}
	if got[6].Count != 0 {
		t.Fatalf("expected empty saturday, got %+v", got[6])
	}
}

// TestByWeekdayEmpty проверяет 7 нулевых строк для пустой выборки.
func TestByWeekdayEmpty(t *testing.T) {
	got := ByWeekday(nil)
	if len(got) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(got))
	}
	for _, row := range got {
		if row.Total != 0 || row.Count != 0 {
			t.Fatalf("expected zero row, got %+v", row)
		}
	}
}

// TestByCategorySorted проверяет сортировку по убыванию суммы.
func TestByCategorySorted(t *testing.T) {
	expenses := []models.Expense{
		expense("Café", 5000, category.Bebidas, 2026, 1, 1),
		expense("Almuerzo", 60000, category.Comida, 2026, 1, 1),
		expense("Café", 5000, category.Bebidas, 2026, 1, 2),
	}

	got := ByCategory(expenses)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category != category.Comida || got[0].Total != 60000 {
		t.Fatalf("expected comida first, got %+v", got[0])
	}
	if got[1].Category != category.Bebidas || got[1].Count != 2 {
		t.Fatalf("unexpected bebidas row: %+v", got[1])
	}
}

// TestRoundDiv проверяет округление на граничных значениях.
func TestRoundDiv(t *testing.T) {
	cases := []struct {
		num, den, want int64
	}{
		{7, 2, 4},    // 3.5 -> 4
		{5, 2, 3},    // 2.5 -> 3
		{-25, 2, -12}, // -12.5 -> -12
		{-26, 2, -13},
		{1, 3, 0},
		{2, 3, 1},
		{10, 0, 0}, // защита от деления на ноль
		{0, 5, 0},
	}
	for _, tc := range cases {
		if got := roundDiv(tc.num, tc.den); got != tc.want {
			t.Errorf("roundDiv(%d, %d) = %d, want %d", tc.num, tc.den, got, tc.want)
		}
	}
}
