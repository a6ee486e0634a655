package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category 收支类别模型
// 同一用户、同一类型下名称唯一；月度限额仅对支出类别有意义，0 表示未设置限额
type Category struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	UserID       uint           `json:"-" gorm:"index;not null;uniqueIndex:uniq_user_type_name"`
	Name         string         `json:"name" gorm:"size:50;not null;uniqueIndex:uniq_user_type_name"`
	Type         string         `json:"type" gorm:"size:10;not null;index;uniqueIndex:uniq_user_type_name"` // income / expense
	MonthlyLimit float64        `json:"limit" gorm:"column:limit_amount;type:decimal(10,2);default:0"`      // 月度限额，仅支出类别
	Color        string         `json:"color" gorm:"size:20;default:#6B7280"`                               // 颜色代码，如 #EF4444
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate 创建前生成 UUID 主键
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// HasLimit 是否设置了有效限额
func (c *Category) HasLimit() bool {
	return c.Type == TransactionTypeExpense && c.MonthlyLimit > 0
}

// DefaultCategory 默认类别定义（首次启动时写入）
type DefaultCategory struct {
	Name  string
	Type  string
	Limit float64
	Color string
}

// GetDefaultCategories 获取默认类别列表
func GetDefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		// 收入
		{Name: "Salário", Type: TransactionTypeIncome, Color: "#10B981"},
		{Name: "Freelance", Type: TransactionTypeIncome, Color: "#059669"},
		{Name: "Investimentos", Type: TransactionTypeIncome, Color: "#047857"},
		{Name: "Outros", Type: TransactionTypeIncome, Color: "#065F46"},
		// 支出
		{Name: "Alimentação", Type: TransactionTypeExpense, Limit: 800, Color: "#EF4444"},
		{Name: "Transporte", Type: TransactionTypeExpense, Limit: 400, Color: "#F97316"},
		{Name: "Moradia", Type: TransactionTypeExpense, Limit: 1500, Color: "#8B5CF6"},
		{Name: "Saúde", Type: TransactionTypeExpense, Limit: 300, Color: "#06B6D4"},
		{Name: "Educação", Type: TransactionTypeExpense, Limit: 200, Color: "#84CC16"},
		{Name: "Lazer", Type: TransactionTypeExpense, Limit: 500, Color: "#F59E0B"},
		{Name: "Compras", Type: TransactionTypeExpense, Limit: 600, Color: "#EC4899"},
		{Name: "Outros", Type: TransactionTypeExpense, Limit: 300, Color: "#6B7280"},
	}
}
