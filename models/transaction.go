package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 交易类型常量
const (
	TransactionTypeIncome  = "income"  // 收入
	TransactionTypeExpense = "expense" // 支出
)

// Transaction 交易记录模型
// 对外 JSON 使用驼峰命名（paymentMethod），数据库列使用下划线命名（payment_method），
// 字段名转换只发生在这一层，业务计算层不感知存储列名
type Transaction struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	UserID        uint           `json:"-" gorm:"index;not null"`
	Type          string         `json:"type" gorm:"size:10;not null;index"` // income / expense
	Amount        float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description   string         `json:"description" gorm:"size:255"`
	Category      string         `json:"category" gorm:"size:50;not null;index"` // 按名称引用类别，类别删除后保留原字符串
	Date          time.Time      `json:"date" gorm:"type:date;not null;index"`
	PaymentMethod string         `json:"paymentMethod" gorm:"column:payment_method;size:50"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate 创建前生成 UUID 主键
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsIncome 是否为收入
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense 是否为支出
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// 支付方式常量（表单下拉选项，允许自定义值）
const (
	PaymentCash         = "Dinheiro"
	PaymentDebitCard    = "Cartão de Débito"
	PaymentCreditCard   = "Cartão de Crédito"
	PaymentPix          = "PIX"
	PaymentBankTransfer = "Transferência"
)

// GetPaymentMethods 获取内置支付方式列表
func GetPaymentMethods() []string {
	return []string{
		PaymentCash,
		PaymentDebitCard,
		PaymentCreditCard,
		PaymentPix,
		PaymentBankTransfer,
	}
}
