package api

import (
	"strings"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 收支类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryCreateRequest 创建类别请求
type CategoryCreateRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=50" example:"Alimentação"`
	Type  string  `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Limit float64 `json:"limit" binding:"omitempty,gt=0" example:"800"` // 月度限额，仅支出类别可设置
	Color string  `json:"color" binding:"omitempty,max=20" example:"#EF4444"`
}

// CategoryUpdateRequest 更新类别请求
type CategoryUpdateRequest struct {
	Name  string   `json:"name" binding:"omitempty,min=1,max=50"`
	Limit *float64 `json:"limit" binding:"omitempty,gte=0"`
	Color *string  `json:"color" binding:"omitempty,max=20"`
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 获取当前用户的收支类别，按名称升序排列，可按类型筛选
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param type query string false "类型筛选 income/expense"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if typ := c.Query("type"); typ != "" && typ != "all" {
		query = query.Where("type = ?", typ)
	}

	var list []models.Category
	if err := query.Order("name ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Create 创建类别
// @Summary 创建类别
// @Description 创建新的收支类别。同一类型下名称唯一；月度限额仅支出类别可设置。
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "参数错误或类别名称已存在"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "名称不能为空")
		return
	}

	// 限额仅对支出类别有意义
	if req.Type == models.TransactionTypeIncome && req.Limit > 0 {
		BadRequest(c, "收入类别不能设置月度限额")
		return
	}

	// 同一用户、同一类型下名称唯一
	var existing models.Category
	if err := database.DB.Where("user_id = ? AND type = ? AND name = ?", userID, req.Type, req.Name).
		First(&existing).Error; err == nil {
		BadRequest(c, "类别名称已存在")
		return
	}

	color := req.Color
	if color == "" {
		color = "#6B7280" // 默认灰色
	}
	cat := models.Category{
		UserID:       userID,
		Name:         req.Name,
		Type:         req.Type,
		MonthlyLimit: req.Limit,
		Color:        color,
	}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", cat)
}

// Update 更新类别
// @Summary 更新类别
// @Description 更新指定类别。重命名类别不会同步修改引用旧名称的交易记录。
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "类别ID"
// @Param request body CategoryUpdateRequest true "更新的类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 400 {object} Response "参数错误或类别名称已存在"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var cat models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			BadRequest(c, "名称不能为空")
			return
		}
		var existing models.Category
		if err := database.DB.Where("user_id = ? AND type = ? AND name = ? AND id != ?",
			userID, cat.Type, name, cat.ID).First(&existing).Error; err == nil {
			BadRequest(c, "类别名称已存在")
			return
		}
		updates["name"] = name
	}
	if req.Limit != nil {
		if cat.Type == models.TransactionTypeIncome && *req.Limit > 0 {
			BadRequest(c, "收入类别不能设置月度限额")
			return
		}
		updates["limit_amount"] = *req.Limit
	}
	if req.Color != nil {
		color := *req.Color
		if color == "" {
			color = "#6B7280" // 默认灰色
		}
		updates["color"] = color
	}
	if len(updates) == 0 {
		SuccessWithMessage(c, "无需更新", cat)
		return
	}

	if err := database.DB.Model(&cat).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.Where("id = ?", cat.ID).First(&cat)
	SuccessWithMessage(c, "更新成功", cat)
}

// Delete 删除类别
// @Summary 删除类别
// @Description 软删除指定类别。不级联删除交易记录，引用该名称的交易保留原类别字符串。
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path string true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var cat models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}
	if err := database.DB.Delete(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
