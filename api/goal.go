package api

import (
	"strings"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// GoalHandler 财务目标处理器
type GoalHandler struct{}

// NewGoalHandler 创建目标处理器
func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// CreateGoalRequest 创建目标请求
// 目标金额必须大于 0，进度计算不会出现除零
type CreateGoalRequest struct {
	Title         string  `json:"title" binding:"required,min=1,max=100" example:"Reserva de Emergência"`
	TargetAmount  float64 `json:"targetAmount" binding:"required,gt=0" example:"10000"`
	CurrentAmount float64 `json:"currentAmount" binding:"omitempty,gte=0" example:"3500"`
	Deadline      string  `json:"deadline" binding:"required" example:"2024-12-31"`
	Type          string  `json:"type" binding:"omitempty,oneof=save spend" example:"save"`
}

// UpdateGoalRequest 更新目标请求（所有字段可选）
type UpdateGoalRequest struct {
	Title         string   `json:"title" binding:"omitempty,min=1,max=100"`
	TargetAmount  *float64 `json:"targetAmount" binding:"omitempty,gt=0"`
	CurrentAmount *float64 `json:"currentAmount" binding:"omitempty,gte=0"`
	Deadline      string   `json:"deadline"`
	Type          string   `json:"type" binding:"omitempty,oneof=save spend"`
}

// List 获取目标列表
// @Summary 获取目标列表
// @Description 获取当前用户的财务目标，按截止日期升序排列，每个目标附带进度评估（完成百分比、剩余天数、是否完成/过期）
// @Tags 财务目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.GoalProgress} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Order("deadline ASC").Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	now := time.Now()
	result := make([]service.GoalProgress, 0, len(goals))
	for _, g := range goals {
		result = append(result, service.EvaluateGoal(g, now))
	}
	Success(c, result)
}

// Create 创建目标
// @Summary 创建财务目标
// @Description 创建新的储蓄或消费预算目标
// @Tags 财务目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.Goal} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		BadRequest(c, "标题不能为空")
		return
	}

	deadline, err := time.ParseInLocation(dateLayout, req.Deadline, time.Local)
	if err != nil {
		BadRequest(c, "截止日期格式错误，应为: 2006-01-02")
		return
	}

	goalType := req.Type
	if goalType == "" {
		goalType = models.GoalTypeSave
	}

	goal := models.Goal{
		UserID:        userID,
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
		Type:          goalType,
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建目标失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", goal)
}

// Update 更新目标
// @Summary 更新财务目标
// @Description 更新指定目标，仅修改传入的字段，常用于累加当前进度金额
// @Tags 财务目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "目标ID"
// @Param request body UpdateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=service.GoalProgress} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		title := strings.TrimSpace(req.Title)
		if title == "" {
			BadRequest(c, "标题不能为空")
			return
		}
		updates["title"] = title
	}
	if req.TargetAmount != nil {
		updates["target_amount"] = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		updates["current_amount"] = *req.CurrentAmount
	}
	if req.Deadline != "" {
		deadline, err := time.ParseInLocation(dateLayout, req.Deadline, time.Local)
		if err != nil {
			BadRequest(c, "截止日期格式错误，应为: 2006-01-02")
			return
		}
		updates["deadline"] = deadline
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}

	if len(updates) == 0 {
		SuccessWithMessage(c, "无需更新", service.EvaluateGoal(goal, time.Now()))
		return
	}

	if err := database.DB.Model(&goal).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.Where("id = ?", goal.ID).First(&goal)
	SuccessWithMessage(c, "更新成功", service.EvaluateGoal(goal, time.Now()))
}

// Delete 删除目标
// @Summary 删除财务目标
// @Description 删除指定的财务目标，目标不存在时返回 404
// @Tags 财务目标
// @Produce json
// @Security BearerAuth
// @Param id path string true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}
	if err := database.DB.Delete(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
