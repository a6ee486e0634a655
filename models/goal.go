package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 目标类型常量
const (
	GoalTypeSave  = "save"  // 储蓄目标
	GoalTypeSpend = "spend" // 消费预算目标
)

// Goal 财务目标模型
// 对外 JSON 使用驼峰命名（targetAmount/currentAmount），数据库列使用下划线命名
type Goal struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	UserID        uint           `json:"-" gorm:"index;not null"`
	Title         string         `json:"title" gorm:"size:100;not null"`
	TargetAmount  float64        `json:"targetAmount" gorm:"column:target_amount;type:decimal(10,2);not null"`
	CurrentAmount float64        `json:"currentAmount" gorm:"column:current_amount;type:decimal(10,2);default:0"`
	Deadline      time.Time      `json:"deadline" gorm:"type:date;not null;index"`
	Type          string         `json:"type" gorm:"size:10;not null;default:save"` // save / spend
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Goal) TableName() string {
	return "goals"
}

// BeforeCreate 创建前生成 UUID 主键
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
