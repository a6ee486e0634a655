package main

import (
	"flag"
	"log"
	"strings"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/router"
)

// @title 个人记账 API
// @version 1.0
// @description 个人财务管理 API，支持收支记录、类别限额、财务目标、仪表盘统计与数据导出
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，覆盖配置文件中的设置")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "打印版本号后退出")
	flag.BoolVar(&showVersion, "v", false, "打印版本号后退出（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Printf("fintrack %s", version)
		return
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行端口优先于配置文件
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	middleware.InitJWT(cfg)

	r := router.SetupRouter(cfg)

	log.Printf("fintrack %s 启动，监听 %s", version, cfg.Server.Port)
	log.Printf("接口文档: http://localhost%s/swagger/index.html", cfg.Server.Port)

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
