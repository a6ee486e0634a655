package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// parseExportRange 解析导出时间范围参数
func parseExportRange(c *gin.Context) (start, end time.Time, ok bool) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")

	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始日期和结束日期")
		return start, end, false
	}

	var err error
	start, err = time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
		return start, end, false
	}
	end, err = time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return start, end, false
	}
	// 包含结束日期当天
	end = end.Add(24*time.Hour - time.Second)
	return start, end, true
}

// queryExportTransactions 查询导出范围内的交易记录，按日期倒序
func queryExportTransactions(userID uint, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := database.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&transactions).Error
	return transactions, err
}

// typeLabel 交易类型中文名
func typeLabel(typ string) string {
	if typ == models.TransactionTypeIncome {
		return "收入"
	}
	return "支出"
}

// ExportCSV 导出交易记录为 CSV
// @Summary 导出交易记录为 CSV
// @Description 根据日期范围导出当前用户的交易记录为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := parseExportRange(c)
	if !ok {
		return
	}

	transactions, err := queryExportTransactions(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	// 生成 CSV
	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	// 写入表头
	headers := []string{"ID", "类型", "金额", "类别", "描述", "支付方式", "日期", "创建时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 写入数据
	for _, t := range transactions {
		row := []string{
			t.ID,
			typeLabel(t.Type),
			fmt.Sprintf("%.2f", t.Amount),
			t.Category,
			t.Description,
			t.PaymentMethod,
			t.Date.Format(dateLayout),
			t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 设置响应头
	filename := fmt.Sprintf("transactions_%s_%s.csv", c.Query("start_date"), c.Query("end_date"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出交易记录为 Excel
// @Summary 导出交易记录为 Excel
// @Description 根据日期范围导出当前用户的交易记录为 xlsx 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := parseExportRange(c)
	if !ok {
		return
	}

	transactions, err := queryExportTransactions(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "交易记录"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 8)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 16)
	f.SetColWidth(sheetName, "E", "E", 30)
	f.SetColWidth(sheetName, "F", "F", 18)
	f.SetColWidth(sheetName, "G", "G", 12)

	// 写入表头
	headers := []string{"ID", "类型", "金额", "类别", "描述", "支付方式", "日期"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	for row, t := range transactions {
		values := []interface{}{
			t.ID,
			typeLabel(t.Type),
			t.Amount,
			t.Category,
			t.Description,
			t.PaymentMethod,
			t.Date.Format(dateLayout),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", c.Query("start_date"), c.Query("end_date"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
