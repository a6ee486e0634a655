package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fintrack/models"
)

// 时间范围常量
const (
	PeriodAll   = "all"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// TransactionFilter 交易筛选条件
// 各字段取 "all" 或空字符串时表示该条件不生效；所有生效的条件必须同时满足
type TransactionFilter struct {
	Type          string // income / expense
	Category      string // 类别名称精确匹配
	PaymentMethod string // 支付方式精确匹配
	Period        string // all / week / month / year
}

// PeriodStart 计算时间范围的起点（自然周期边界）
// week 以周日为一周开始，month 为当月 1 日，year 为当年 1 月 1 日
// 返回 false 表示不限制时间范围
func PeriodStart(now time.Time, period string) (time.Time, bool) {
	switch period {
	case PeriodWeek:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return day.AddDate(0, 0, -int(day.Weekday())), true
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case PeriodYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// PreviousPeriodRange 计算上一个自然月的起止时间，用于支出环比
func PreviousPeriodRange(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// matches 判断单个筛选值是否命中，空或 "all" 视为不过滤
func matches(filter, value string) bool {
	return filter == "" || filter == "all" || filter == value
}

// FilterTransactions 按筛选条件过滤交易列表，保持输入顺序
// 各条件相互独立，过滤顺序不影响结果；空输入返回空结果
func FilterTransactions(list []models.Transaction, f TransactionFilter, now time.Time) []models.Transaction {
	start, bounded := PeriodStart(now, f.Period)

	result := make([]models.Transaction, 0, len(list))
	for _, t := range list {
		if !matches(f.Type, t.Type) ||
			!matches(f.Category, t.Category) ||
			!matches(f.PaymentMethod, t.PaymentMethod) {
			continue
		}
		if bounded && t.Date.Before(start) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// SortByDateDesc 按日期倒序排列（同日期保持原有顺序）
func SortByDateDesc(list []models.Transaction) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
}

// Summary 收支汇总
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"` // 收入减支出，可为负
}

// Summarize 汇总交易列表的收入、支出与结余
func Summarize(list []models.Transaction) Summary {
	var s Summary
	for _, t := range list {
		switch t.Type {
		case models.TransactionTypeIncome:
			s.TotalIncome += t.Amount
		case models.TransactionTypeExpense:
			s.TotalExpense += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// CategorySpend 单个支出类别的消费情况
type CategorySpend struct {
	Category   string  `json:"category"`
	Color      string  `json:"color"`
	Limit      float64 `json:"limit"`      // 月度限额，0 表示未设置
	Spent      float64 `json:"spent"`      // 该类别支出合计
	Percentage float64 `json:"percentage"` // 已用限额百分比，未设置限额时为 0
}

// ExpensesByCategory 按类别统计支出与限额使用率
// 只统计支出类别；无消费的类别也会出现在结果中（Spent=0、Percentage=0）；
// 限额为 0 时百分比为 0，不产生除零
func ExpensesByCategory(transactions []models.Transaction, categories []models.Category) []CategorySpend {
	spentByName := make(map[string]float64)
	for _, t := range transactions {
		if t.IsExpense() {
			spentByName[t.Category] += t.Amount
		}
	}

	result := make([]CategorySpend, 0, len(categories))
	for _, c := range categories {
		if c.Type != models.TransactionTypeExpense {
			continue
		}
		spend := CategorySpend{
			Category: c.Name,
			Color:    c.Color,
			Limit:    c.MonthlyLimit,
			Spent:    spentByName[c.Name],
		}
		if c.MonthlyLimit > 0 {
			spend.Percentage = spend.Spent / c.MonthlyLimit * 100
		}
		result = append(result, spend)
	}
	return result
}

// GoalProgress 目标进度评估结果
type GoalProgress struct {
	models.Goal
	Progress        float64 `json:"progress"`        // 完成百分比，可超过 100
	DisplayProgress float64 `json:"displayProgress"` // 渲染用百分比，封顶 100
	Completed       bool    `json:"completed"`
	DaysLeft        int     `json:"daysLeft"` // 距截止日期天数，已过期为负
	Overdue         bool    `json:"overdue"`  // 已过期且未完成
}

// EvaluateGoal 评估单个目标的完成进度与剩余天数
// 目标金额小于等于 0 时视为已完成（创建接口已拒绝该输入，此处兜底防止除零）
func EvaluateGoal(g models.Goal, now time.Time) GoalProgress {
	p := GoalProgress{Goal: g}

	if g.TargetAmount > 0 {
		p.Progress = g.CurrentAmount / g.TargetAmount * 100
	} else {
		p.Progress = 100
	}
	p.DisplayProgress = math.Min(p.Progress, 100)
	p.Completed = p.Progress >= 100

	p.DaysLeft = int(math.Ceil(g.Deadline.Sub(now).Hours() / 24))
	// 已完成的目标不再标记过期
	p.Overdue = !p.Completed && p.DaysLeft <= 0

	return p
}

// 预警级别常量
const (
	AlertLevelWarning = "warning"
	AlertLevelDanger  = "danger"
)

// Alert 预警信息
type Alert struct {
	Level   string `json:"level"` // warning / danger
	Message string `json:"message"`
}

// BuildAlerts 根据类别消费情况和支出环比生成预警
// 类别已用限额达到 warnPercent 时产生 warning；
// 本期支出超过上期支出 trendPercent 以上时产生 danger，无上期数据时不产生环比预警
func BuildAlerts(spends []CategorySpend, totalExpense, prevExpense float64, hasPrev bool, warnPercent, trendPercent float64) []Alert {
	var alerts []Alert

	for _, s := range spends {
		if s.Limit > 0 && s.Percentage >= warnPercent {
			alerts = append(alerts, Alert{
				Level:   AlertLevelWarning,
				Message: fmt.Sprintf("类别 %s 已使用限额的 %.0f%%", s.Category, s.Percentage),
			})
		}
	}

	if hasPrev && prevExpense > 0 && totalExpense > prevExpense*(1+trendPercent/100) {
		increase := (totalExpense/prevExpense - 1) * 100
		alerts = append(alerts, Alert{
			Level:   AlertLevelDanger,
			Message: fmt.Sprintf("本月支出较上月增加 %.0f%%", increase),
		})
	}

	return alerts
}
