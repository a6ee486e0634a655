package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(userID))
	h := NewCategoryHandler()
	router.GET("/categories", h.List)
	router.POST("/categories", h.Create)
	router.PUT("/categories/:id", h.Update)
	router.DELETE("/categories/:id", h.Delete)
	return router
}

func TestCategoryHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 重名检查：无记录
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(1), "expense", "Viagem").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `categories`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := setupCategoryRouter(1)
	body := `{"name":"Viagem","type":"expense","limit":1000,"color":"#3B82F6"}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Viagem", data["name"])
	assert.Equal(t, float64(1000), data["limit"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_CreateDuplicateName(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 重名检查：已存在
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(1), "expense", "Alimentação").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "type"}).
			AddRow("cat-1", 1, "Alimentação", "expense"))

	router := setupCategoryRouter(1)
	body := `{"name":"Alimentação","type":"expense"}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "类别名称已存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_CreateIncomeWithLimit(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := setupCategoryRouter(1)
	body := `{"name":"Bônus","type":"income","limit":500}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 收入类别不能设置月度限额
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "收入类别不能设置月度限额")
}

func TestCategoryHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "type", "limit_amount", "color"}).
			AddRow("cat-1", 1, "Alimentação", "expense", 800.0, "#EF4444").
			AddRow("cat-2", 1, "Transporte", "expense", 400.0, "#F59E0B"))

	router := setupCategoryRouter(1)
	req := httptest.NewRequest("GET", "/categories?type=expense", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	assert.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "type"}).
			AddRow("cat-1", 1, "Lazer", "expense"))
	// 软删除为 UPDATE deleted_at
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `categories`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := setupCategoryRouter(1)
	req := httptest.NewRequest("DELETE", "/categories/cat-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "删除成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_DeleteNotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := setupCategoryRouter(1)
	req := httptest.NewRequest("DELETE", "/categories/no-such-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "类别不存在")
	require.NoError(t, mock.ExpectationsWereMet())
}
