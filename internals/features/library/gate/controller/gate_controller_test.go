package controller_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "github.com/TilakCSE/Smart-Library-System/internals/databases"
	"github.com/TilakCSE/Smart-Library-System/internals/features/library/gate/controller"
	gateModel "github.com/TilakCSE/Smart-Library-System/internals/features/library/gate/model"
	userModel "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
)

var dbSeq int

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:gate_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	ctrl := controller.NewGateController(db)
	app := fiber.New()
	app.Post("/api/v1/gate/log", ctrl.Record)
	app.Get("/api/v1/gate/logs", ctrl.List)

	return app, db
}

func postLog(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gate/log", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp, out
}

func Test_GateRecord_Granted(t *testing.T) {
	app, db := newTestApp(t)

	user := userModel.UserModel{Email: "reader@example.com", FullName: "Test Reader", Role: "student", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	resp, body := postLog(t, app, `{"user_email":"reader@example.com","access_type":"entry"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, "granted", data["status"])
	assert.Equal(t, "entry", data["access_type"])
	assert.Equal(t, user.ID.String(), data["user_id"])
	assert.Nil(t, data["denial_reason"])
}

func Test_GateRecord_DeniedUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postLog(t, app, `{"user_email":"ghost@example.com","access_type":"entry"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, "denied", data["status"])
	assert.Equal(t, "unknown_user", data["denial_reason"])
	assert.Nil(t, data["user_id"])
}

func Test_GateRecord_DeniedInactiveUser(t *testing.T) {
	app, db := newTestApp(t)

	user := userModel.UserModel{Email: "frozen@example.com", FullName: "Frozen", Role: "student", IsActive: false}
	require.NoError(t, db.Create(&user).Error)

	resp, body := postLog(t, app, `{"user_email":"frozen@example.com","access_type":"exit"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, "denied", data["status"])
	assert.Equal(t, "user_inactive", data["denial_reason"])
	assert.Equal(t, user.ID.String(), data["user_id"])
}

func Test_GateRecord_InvalidAccessType(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := postLog(t, app, `{"user_email":"reader@example.com","access_type":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_GateList_FilterByStatus(t *testing.T) {
	app, db := newTestApp(t)

	user := userModel.UserModel{Email: "reader@example.com", FullName: "Test Reader", Role: "student", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	_, _ = postLog(t, app, `{"user_email":"reader@example.com","access_type":"entry"}`)
	_, _ = postLog(t, app, `{"user_email":"ghost@example.com","access_type":"entry"}`)

	var total int64
	require.NoError(t, db.Model(&gateModel.GateLogModel{}).Count(&total).Error)
	require.Equal(t, int64(2), total)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gate/logs?status=denied", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	rows := out["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "denied", rows[0].(map[string]any)["status"])
}
