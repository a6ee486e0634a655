package api

import (
	"log"
	"strings"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// 日期参数格式
const dateLayout = "2006-01-02"

// TransactionHandler 交易记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// CreateTransactionRequest 创建交易请求
type CreateTransactionRequest struct {
	Type          string  `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Amount        float64 `json:"amount" binding:"required,gt=0" example:"99.90"`
	Description   string  `json:"description" example:"Supermercado"`
	Category      string  `json:"category" binding:"required" example:"Alimentação"`
	Date          string  `json:"date" binding:"required" example:"2024-01-15"`
	PaymentMethod string  `json:"paymentMethod" example:"PIX"`
}

// UpdateTransactionRequest 更新交易请求（所有字段可选）
type UpdateTransactionRequest struct {
	Type          string   `json:"type" binding:"omitempty,oneof=income expense"`
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
	Description   *string  `json:"description"`
	Category      string   `json:"category"`
	Date          string   `json:"date"`
	PaymentMethod *string  `json:"paymentMethod"`
}

// TransactionListRequest 交易列表请求
type TransactionListRequest struct {
	Page          int    `form:"page" example:"1"`
	PageSize      int    `form:"page_size" example:"10"`
	Type          string `form:"type" example:"expense"`
	Category      string `form:"category" example:"Alimentação"`
	PaymentMethod string `form:"payment_method" example:"PIX"`
	Period        string `form:"period" example:"month"` // all / week / month / year
}

// lookupCategory 校验类别存在（按当前用户与交易类型）
func lookupCategory(userID uint, typ, name string) (*models.Category, bool) {
	var cat models.Category
	err := database.DB.Where("user_id = ? AND type = ? AND name = ?", userID, typ, name).First(&cat).Error
	if err != nil {
		return nil, false
	}
	return &cat, true
}

// Create 创建交易记录
// @Summary 创建交易记录
// @Description 创建一条收入或支出记录。支出记录创建后会检查所属类别的月度限额，达到限额时向用户邮箱发送提醒（邮件服务启用时）。
// @Tags 交易记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 校验类别是否存在（来源于数据库，按名称引用）
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		BadRequest(c, "类别不能为空")
		return
	}
	if _, ok := lookupCategory(userID, req.Type, req.Category); !ok {
		BadRequest(c, "无效的类别，请先创建该类别")
		return
	}

	// 解析日期（只保留日期，不含时间）
	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	transaction := models.Transaction{
		UserID:        userID,
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Date:          date,
		PaymentMethod: req.PaymentMethod,
	}

	if err := database.DB.Create(&transaction).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建交易记录失败"))
		return
	}

	// 支出记录创建后检查类别限额，达到限额时发送提醒邮件（失败仅记录日志，不影响写入）
	if transaction.IsExpense() {
		h.notifyLimitReached(userID, transaction)
	}

	SuccessWithMessage(c, "创建成功", transaction)
}

// notifyLimitReached 检查类别本月消费是否达到限额并发送提醒邮件
func (h *TransactionHandler) notifyLimitReached(userID uint, t models.Transaction) {
	cfg := config.GlobalConfig
	if cfg == nil || !cfg.Email.Enabled {
		return
	}

	cat, ok := lookupCategory(userID, models.TransactionTypeExpense, t.Category)
	if !ok || !cat.HasLimit() {
		return
	}

	monthStart, _ := service.PeriodStart(time.Now(), service.PeriodMonth)
	var spent float64
	database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND category = ? AND date >= ?",
			userID, models.TransactionTypeExpense, t.Category, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&spent)

	if spent < cat.MonthlyLimit {
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil || user.Email == "" {
		return
	}

	spend := service.CategorySpend{
		Category:   cat.Name,
		Limit:      cat.MonthlyLimit,
		Spent:      spent,
		Percentage: spent / cat.MonthlyLimit * 100,
	}
	if err := service.NewEmailService(&cfg.Email).SendLimitAlertEmail(user.Email, user.Username, spend); err != nil {
		log.Printf("发送限额提醒邮件失败: %v", err)
	}
}

// List 获取交易记录列表
// @Summary 获取交易记录列表
// @Description 获取当前用户的交易记录列表，支持按类型、类别、支付方式和时间范围筛选，按日期倒序分页返回。period 取 week/month/year 时分别表示本自然周（周日起）、本自然月、本自然年。
// @Tags 交易记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param type query string false "类型筛选 income/expense/all"
// @Param category query string false "类别名称筛选"
// @Param payment_method query string false "支付方式筛选"
// @Param period query string false "时间范围 all/week/month/year" default(all)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)

	// 类型/类别/支付方式筛选，"all" 等同于不过滤
	if req.Type != "" && req.Type != "all" {
		query = query.Where("type = ?", req.Type)
	}
	if req.Category != "" && req.Category != "all" {
		query = query.Where("category = ?", req.Category)
	}
	if req.PaymentMethod != "" && req.PaymentMethod != "all" {
		query = query.Where("payment_method = ?", req.PaymentMethod)
	}

	// 时间范围筛选（自然周期边界）
	if start, ok := service.PeriodStart(time.Now(), req.Period); ok {
		query = query.Where("date >= ?", start)
	}

	// 获取总数
	var total int64
	query.Count(&total)

	// 获取列表，按日期倒序
	var transactions []models.Transaction
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC, created_at DESC").Offset(offset).Limit(req.PageSize).Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     transactions,
	})
}

// Get 获取单条交易记录
// @Summary 获取单条交易记录
// @Description 根据ID获取交易记录详情
// @Tags 交易记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "交易记录ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, transaction)
}

// Update 更新交易记录
// @Summary 更新交易记录
// @Description 更新指定的交易记录，仅修改传入的字段
// @Tags 交易记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "交易记录ID"
// @Param request body UpdateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 更新字段
	updates := make(map[string]interface{})
	newType := transaction.Type
	if req.Type != "" {
		newType = req.Type
		updates["type"] = req.Type
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != "" {
		category := strings.TrimSpace(req.Category)
		if category == "" {
			BadRequest(c, "类别不能为空")
			return
		}
		if _, ok := lookupCategory(userID, newType, category); !ok {
			BadRequest(c, "无效的类别，请先创建该类别")
			return
		}
		updates["category"] = category
	} else if newType != transaction.Type {
		// 仅修改类型时，原类别必须在新类型下存在
		if _, ok := lookupCategory(userID, newType, transaction.Category); !ok {
			BadRequest(c, "当前类别不适用于新的交易类型，请同时指定类别")
			return
		}
	}
	if req.Date != "" {
		date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		updates["date"] = date
	}
	if req.PaymentMethod != nil {
		updates["payment_method"] = *req.PaymentMethod
	}

	if len(updates) == 0 {
		SuccessWithMessage(c, "无需更新", transaction)
		return
	}

	if err := database.DB.Model(&transaction).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	// 重新获取更新后的记录
	database.DB.Where("id = ?", transaction.ID).First(&transaction)
	SuccessWithMessage(c, "更新成功", transaction)
}

// Delete 删除交易记录
// @Summary 删除交易记录
// @Description 删除指定的交易记录，记录不存在时返回 404
// @Tags 交易记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "交易记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if err := database.DB.Delete(&transaction).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// GetPaymentMethods 获取支付方式列表
// @Summary 获取支付方式列表
// @Description 获取内置的支付方式选项，创建交易时也允许传入自定义值
// @Tags 交易记录
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/payment-methods [get]
func (h *TransactionHandler) GetPaymentMethods(c *gin.Context) {
	Success(c, models.GetPaymentMethods())
}
