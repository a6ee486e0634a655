package service

import (
	"fmt"

	"fintrack/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendLimitAlertEmail 发送类别限额超支提醒邮件
// 当某笔支出使类别月度消费达到或超过限额时调用
func (s *EmailService) SendLimitAlertEmail(toEmail, username string, spend CategorySpend) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 FINTRACK_EMAIL_ENABLED=true")
	}

	subject := fmt.Sprintf("【记账助手】类别 %s 已超出月度限额", spend.Category)
	body := s.generateLimitAlertBody(username, spend)

	return s.sendEmail(toEmail, subject, body)
}

// generateLimitAlertBody 生成限额提醒邮件内容
func (s *EmailService) generateLimitAlertBody(username string, spend CategorySpend) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #dc2626, #b91c1c); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .stat { background: #fef2f2; border-left: 4px solid #dc2626; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .stat p { margin: 0 0 6px; color: #7f1d1d; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>⚠️ 月度限额提醒</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>您在类别 <strong>%s</strong> 的本月消费已达到设置的月度限额：</p>
            <div class="stat">
                <p>本月已消费：<strong>%.2f</strong></p>
                <p>月度限额：<strong>%.2f</strong></p>
                <p>限额使用率：<strong>%.0f%%</strong></p>
            </div>
            <p>建议您关注该类别的后续支出，合理安排预算。</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 记账助手 - 您的个人财务管理工具</p>
        </div>
    </div>
</body>
</html>
`, username, spend.Category, spend.Spent, spend.Limit, spend.Percentage)
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【记账助手】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— 记账助手</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
