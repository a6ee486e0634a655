package api

import (
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct{}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardResponse 仪表盘返回
type DashboardResponse struct {
	Period            string                  `json:"period"`
	Summary           service.Summary         `json:"summary"`
	CategoryBreakdown []service.CategorySpend `json:"categoryBreakdown"`
	Goals             []service.GoalProgress  `json:"goals"`
	Alerts            []service.Alert         `json:"alerts"`
}

// alertThresholds 获取预警阈值配置，未加载配置时使用默认值
func alertThresholds() (warn, trend float64) {
	warn, trend = 80, 20
	if cfg := config.GlobalConfig; cfg != nil {
		if cfg.Alert.WarnPercent > 0 {
			warn = cfg.Alert.WarnPercent
		}
		if cfg.Alert.TrendPercent > 0 {
			trend = cfg.Alert.TrendPercent
		}
	}
	return warn, trend
}

// GetDashboard 获取仪表盘数据
// @Summary 获取仪表盘数据
// @Description 按时间范围返回收支汇总、各支出类别的限额使用率、目标进度和预警信息。
// @Description
// @Description 预警规则：
// @Description - 某支出类别本期消费达到限额的 80%（可配置）时产生 warning；
// @Description - 本自然月支出超过上自然月 20%（可配置）以上时产生 danger，无上月数据则不产生该预警。
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param period query string false "时间范围 all/week/month/year" default(month)
// @Success 200 {object} Response{data=DashboardResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	period := c.DefaultQuery("period", service.PeriodMonth)
	now := time.Now()

	// 加载当前用户全部数据，计算在内存中完成
	var transactions []models.Transaction
	if err := database.DB.Where("user_id = ?", userID).Order("date DESC").Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询交易记录失败"))
		return
	}
	var categories []models.Category
	if err := database.DB.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询类别失败"))
		return
	}
	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Order("deadline ASC").Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询目标失败"))
		return
	}

	// 时间范围过滤 + 汇总 + 类别统计
	periodTransactions := service.FilterTransactions(transactions, service.TransactionFilter{Period: period}, now)
	summary := service.Summarize(periodTransactions)
	breakdown := service.ExpensesByCategory(periodTransactions, categories)

	// 目标进度
	goalProgress := make([]service.GoalProgress, 0, len(goals))
	for _, g := range goals {
		goalProgress = append(goalProgress, service.EvaluateGoal(g, now))
	}

	// 支出环比固定按自然月比较，与所选时间范围无关
	monthTransactions := service.FilterTransactions(transactions, service.TransactionFilter{Period: service.PeriodMonth}, now)
	monthExpense := service.Summarize(monthTransactions).TotalExpense
	prevExpense, hasPrev := h.previousMonthExpense(userID, now)

	warn, trend := alertThresholds()
	alerts := service.BuildAlerts(breakdown, monthExpense, prevExpense, hasPrev, warn, trend)

	Success(c, DashboardResponse{
		Period:            period,
		Summary:           summary,
		CategoryBreakdown: breakdown,
		Goals:             goalProgress,
		Alerts:            alerts,
	})
}

// previousMonthExpense 查询上一个自然月的支出总和
// 上月没有任何支出记录时返回 hasPrev=false，调用方不产生环比预警
func (h *DashboardHandler) previousMonthExpense(userID uint, now time.Time) (total float64, hasPrev bool) {
	start, end := service.PreviousPeriodRange(now)

	var count int64
	database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, models.TransactionTypeExpense, start, end).
		Count(&count)
	if count == 0 {
		return 0, false
	}

	database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, models.TransactionTypeExpense, start, end).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total, true
}
