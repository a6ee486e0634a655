package service

import (
	"testing"
	"time"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func tx(typ string, amount float64, category string, day time.Time) models.Transaction {
	return models.Transaction{Type: typ, Amount: amount, Category: category, Date: day}
}

func TestSummarize(t *testing.T) {
	// 规格示例：收入 5000，支出 1200 + 300
	list := []models.Transaction{
		tx(models.TransactionTypeIncome, 5000, "Salário", date(2024, 1, 15)),
		tx(models.TransactionTypeExpense, 1200, "Moradia", date(2024, 1, 10)),
		tx(models.TransactionTypeExpense, 300, "Alimentação", date(2024, 1, 12)),
	}

	s := Summarize(list)
	assert.Equal(t, float64(5000), s.TotalIncome)
	assert.Equal(t, float64(1500), s.TotalExpense)
	assert.Equal(t, float64(3500), s.Balance)

	// 结余恒等式与符号
	assert.Equal(t, s.TotalIncome-s.TotalExpense, s.Balance)
	assert.Equal(t, s.TotalIncome >= s.TotalExpense, s.Balance >= 0)

	// 空输入
	empty := Summarize(nil)
	assert.Equal(t, Summary{}, empty)

	// 支出大于收入时结余为负
	neg := Summarize([]models.Transaction{
		tx(models.TransactionTypeIncome, 100, "Salário", date(2024, 1, 1)),
		tx(models.TransactionTypeExpense, 250, "Moradia", date(2024, 1, 2)),
	})
	assert.Equal(t, float64(-150), neg.Balance)
}

func TestFilterTransactions(t *testing.T) {
	now := date(2024, 1, 25)
	list := []models.Transaction{
		tx(models.TransactionTypeIncome, 5000, "Salário", date(2024, 1, 15)),
		tx(models.TransactionTypeExpense, 1200, "Moradia", date(2024, 1, 10)),
		tx(models.TransactionTypeExpense, 300, "Alimentação", date(2024, 1, 12)),
		tx(models.TransactionTypeExpense, 80, "Alimentação", date(2023, 12, 30)),
	}

	// 类型过滤
	expenses := FilterTransactions(list, TransactionFilter{Type: "expense"}, now)
	assert.Len(t, expenses, 3)

	// "all" 与空字符串等价于不过滤
	assert.Len(t, FilterTransactions(list, TransactionFilter{Type: "all"}, now), 4)
	assert.Len(t, FilterTransactions(list, TransactionFilter{}, now), 4)

	// 类别过滤
	food := FilterTransactions(list, TransactionFilter{Category: "Alimentação"}, now)
	assert.Len(t, food, 2)

	// 过滤条件可交换：先类型后类别 == 先类别后类型
	ab := FilterTransactions(FilterTransactions(list, TransactionFilter{Type: "expense"}, now),
		TransactionFilter{Category: "Alimentação"}, now)
	ba := FilterTransactions(FilterTransactions(list, TransactionFilter{Category: "Alimentação"}, now),
		TransactionFilter{Type: "expense"}, now)
	assert.Equal(t, ab, ba)
	// 与组合过滤结果一致
	both := FilterTransactions(list, TransactionFilter{Type: "expense", Category: "Alimentação"}, now)
	assert.Equal(t, both, ab)

	// 空输入返回空结果
	assert.Empty(t, FilterTransactions(nil, TransactionFilter{Type: "expense"}, now))
}

func TestFilterTransactionsPeriod(t *testing.T) {
	// 2024-01-25 是周四，本周从周日 2024-01-21 开始
	now := time.Date(2024, 1, 25, 15, 30, 0, 0, time.Local)
	list := []models.Transaction{
		tx(models.TransactionTypeExpense, 1, "A", date(2024, 1, 22)), // 本周
		tx(models.TransactionTypeExpense, 2, "A", date(2024, 1, 21)), // 本周第一天（周日）
		tx(models.TransactionTypeExpense, 3, "A", date(2024, 1, 20)), // 上周六
		tx(models.TransactionTypeExpense, 4, "A", date(2024, 1, 2)),  // 本月
		tx(models.TransactionTypeExpense, 5, "A", date(2023, 12, 31)), // 去年
	}

	week := FilterTransactions(list, TransactionFilter{Period: PeriodWeek}, now)
	require.Len(t, week, 2)
	assert.Equal(t, float64(1), week[0].Amount)
	assert.Equal(t, float64(2), week[1].Amount)

	month := FilterTransactions(list, TransactionFilter{Period: PeriodMonth}, now)
	assert.Len(t, month, 4)

	year := FilterTransactions(list, TransactionFilter{Period: PeriodYear}, now)
	assert.Len(t, year, 4)

	all := FilterTransactions(list, TransactionFilter{Period: PeriodAll}, now)
	assert.Len(t, all, 5)
}

func TestPeriodStart(t *testing.T) {
	// 周日当天：周起点即当天
	sunday := time.Date(2024, 1, 21, 10, 0, 0, 0, time.Local)
	start, ok := PeriodStart(sunday, PeriodWeek)
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 21), start)

	start, ok = PeriodStart(sunday, PeriodMonth)
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 1), start)

	start, ok = PeriodStart(sunday, PeriodYear)
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 1), start)

	_, ok = PeriodStart(sunday, PeriodAll)
	assert.False(t, ok)
}

func TestPreviousPeriodRange(t *testing.T) {
	// 跨年：1 月的上一个自然月是去年 12 月
	start, end := PreviousPeriodRange(date(2024, 1, 15))
	assert.Equal(t, date(2023, 12, 1), start)
	assert.Equal(t, 2023, end.Year())
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
}

func TestExpensesByCategory(t *testing.T) {
	transactions := []models.Transaction{
		tx(models.TransactionTypeIncome, 5000, "Salário", date(2024, 1, 15)),
		tx(models.TransactionTypeExpense, 1200, "Moradia", date(2024, 1, 10)),
		tx(models.TransactionTypeExpense, 300, "Alimentação", date(2024, 1, 12)),
	}
	categories := []models.Category{
		{Name: "Alimentação", Type: models.TransactionTypeExpense, MonthlyLimit: 800, Color: "#EF4444"},
		{Name: "Moradia", Type: models.TransactionTypeExpense, MonthlyLimit: 0, Color: "#8B5CF6"},
		{Name: "Transporte", Type: models.TransactionTypeExpense, MonthlyLimit: 400, Color: "#F97316"},
		{Name: "Salário", Type: models.TransactionTypeIncome, Color: "#10B981"},
	}

	spends := ExpensesByCategory(transactions, categories)
	// 收入类别不参与统计
	require.Len(t, spends, 3)

	// 规格示例：Alimentação 300/800 = 37.5%
	assert.Equal(t, "Alimentação", spends[0].Category)
	assert.Equal(t, float64(300), spends[0].Spent)
	assert.Equal(t, 37.5, spends[0].Percentage)

	// 限额为 0 时百分比为 0，不产生 NaN/Inf
	assert.Equal(t, float64(1200), spends[1].Spent)
	assert.Equal(t, float64(0), spends[1].Percentage)

	// 无消费的类别保留在结果中，百分比为 0
	assert.Equal(t, "Transporte", spends[2].Category)
	assert.Equal(t, float64(0), spends[2].Spent)
	assert.Equal(t, float64(0), spends[2].Percentage)
}

func TestEvaluateGoal(t *testing.T) {
	now := date(2024, 1, 15)

	// 规格示例：10000 目标、8500 进度 → 85%，未完成
	g := models.Goal{TargetAmount: 10000, CurrentAmount: 8500, Deadline: date(2024, 12, 31)}
	p := EvaluateGoal(g, now)
	assert.Equal(t, float64(85), p.Progress)
	assert.Equal(t, float64(85), p.DisplayProgress)
	assert.False(t, p.Completed)
	assert.False(t, p.Overdue)
	assert.Equal(t, 351, p.DaysLeft)

	// 规格示例：超额完成 104%，渲染宽度封顶 100
	g2 := models.Goal{TargetAmount: 5000, CurrentAmount: 5200, Deadline: date(2024, 12, 31)}
	p2 := EvaluateGoal(g2, now)
	assert.Equal(t, float64(104), p2.Progress)
	assert.Equal(t, float64(100), p2.DisplayProgress)
	assert.True(t, p2.Completed)
	assert.Equal(t, p2.Progress >= 100, p2.Completed)

	// 过期未完成
	g3 := models.Goal{TargetAmount: 1000, CurrentAmount: 100, Deadline: date(2024, 1, 1)}
	p3 := EvaluateGoal(g3, now)
	assert.True(t, p3.Overdue)
	assert.Negative(t, p3.DaysLeft)

	// 已完成的目标即使过期也不标记过期（完成优先）
	g4 := models.Goal{TargetAmount: 1000, CurrentAmount: 1500, Deadline: date(2024, 1, 1)}
	p4 := EvaluateGoal(g4, now)
	assert.True(t, p4.Completed)
	assert.False(t, p4.Overdue)

	// 目标金额为 0 的兜底：视为已完成，不除零
	g5 := models.Goal{TargetAmount: 0, CurrentAmount: 0, Deadline: date(2024, 12, 31)}
	p5 := EvaluateGoal(g5, now)
	assert.True(t, p5.Completed)
	assert.Equal(t, float64(100), p5.DisplayProgress)

	// 剩余天数向上取整：明天截止算 1 天
	g6 := models.Goal{TargetAmount: 1000, CurrentAmount: 0, Deadline: date(2024, 1, 16)}
	p6 := EvaluateGoal(g6, time.Date(2024, 1, 15, 18, 0, 0, 0, time.Local))
	assert.Equal(t, 1, p6.DaysLeft)
}

func TestBuildAlerts(t *testing.T) {
	spends := []CategorySpend{
		{Category: "Alimentação", Limit: 800, Spent: 300, Percentage: 37.5},
		{Category: "Transporte", Limit: 400, Spent: 350, Percentage: 87.5},
		{Category: "Moradia", Limit: 0, Spent: 1200, Percentage: 0},
	}

	// 达到 80% 的类别产生 warning；规格示例中 37.5% 不产生
	alerts := BuildAlerts(spends, 1850, 0, false, 80, 20)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertLevelWarning, alerts[0].Level)
	assert.Contains(t, alerts[0].Message, "Transporte")

	// 有上月数据且超出 20% 时产生 danger
	alerts = BuildAlerts(nil, 1300, 1000, true, 80, 20)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertLevelDanger, alerts[0].Level)

	// 恰好等于阈值不触发
	alerts = BuildAlerts(nil, 1200, 1000, true, 80, 20)
	assert.Empty(t, alerts)

	// 无上月数据时不产生环比预警
	alerts = BuildAlerts(nil, 99999, 0, false, 80, 20)
	assert.Empty(t, alerts)
}

func TestSortByDateDesc(t *testing.T) {
	list := []models.Transaction{
		tx(models.TransactionTypeExpense, 1, "A", date(2024, 1, 10)),
		tx(models.TransactionTypeExpense, 2, "A", date(2024, 1, 20)),
		tx(models.TransactionTypeExpense, 3, "A", date(2024, 1, 15)),
	}
	SortByDateDesc(list)
	assert.Equal(t, float64(2), list[0].Amount)
	assert.Equal(t, float64(3), list[1].Amount)
	assert.Equal(t, float64(1), list[2].Amount)
}
