package database

import (
	"fmt"
	"log"

	"fintrack/config"
	"fintrack/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Category{},
		&models.Goal{},
	); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// SeedDefaultCategories 为指定用户初始化默认类别（仅当该用户没有任何类别时）
// 类别删除不会级联到交易记录，交易通过名称字符串引用类别
func SeedDefaultCategories(userID uint) error {
	var count int64
	if err := DB.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var cats []models.Category
	for _, def := range models.GetDefaultCategories() {
		cats = append(cats, models.Category{
			UserID:       userID,
			Name:         def.Name,
			Type:         def.Type,
			MonthlyLimit: def.Limit,
			Color:        def.Color,
		})
	}
	return DB.Create(&cats).Error
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
