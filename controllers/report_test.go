package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"parfumnotebook-backend/config"
	"parfumnotebook-backend/models"
	"parfumnotebook-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const scenarioPayload = `{
	"date": "2024-01-01",
	"department": "Main",
	"seller": "Ann",
	"prevDayBalance": 150,
	"cashless": 200.5,
	"remaining": 75,
	"safeCashless": 300,
	"safeTerminal": 120,
	"items": [
		{"position_no": 1, "volume": "50ml", "bottle": "glass", "color": "red", "quantity": 2, "price": 10, "remark": "", "carry_from_prev": false}
	],
	"tasks": [],
	"testerWriteOffItems": []
}`

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.DailyReport{},
		&models.ReportItem{},
		&models.Task{},
		&models.TesterWriteOffItem{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	config.DB = db

	return routes.SetupRouter()
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	router.ServeHTTP(w, req)
	return w
}

type saveResponse struct {
	Success bool               `json:"success"`
	Report  models.DailyReport `json:"report"`
}

type aggregateResponse struct {
	Report              models.DailyReport          `json:"report"`
	Items               []models.ReportItem         `json:"items"`
	Tasks               []models.Task               `json:"tasks"`
	TesterWriteOffItems []models.TesterWriteOffItem `json:"testerWriteOffItems"`
}

func TestSaveAndFetchRoundTrip(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/reports", scenarioPayload)
	if w.Code != http.StatusOK {
		t.Fatalf("save: status %d, body %s", w.Code, w.Body.String())
	}

	var saved saveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("save: bad response body: %v", err)
	}
	if !saved.Success {
		t.Error("save: success flag not set")
	}
	if saved.Report.ID == 0 {
		t.Error("save: no report id assigned")
	}

	w = doJSON(router, http.MethodGet, "/api/reports?date=2024-01-01", "")
	if w.Code != http.StatusOK {
		t.Fatalf("fetch: status %d, body %s", w.Code, w.Body.String())
	}

	var agg aggregateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &agg); err != nil {
		t.Fatalf("fetch: bad response body: %v", err)
	}

	if agg.Report.Date != "2024-01-01" || agg.Report.Department != "Main" || agg.Report.Seller != "Ann" {
		t.Errorf("fetch: header mismatch: %+v", agg.Report)
	}
	if agg.Report.PrevDayBalance != 150 || agg.Report.Cashless != 200.5 ||
		agg.Report.Remaining != 75 || agg.Report.SafeCashless != 300 || agg.Report.SafeTerminal != 120 {
		t.Errorf("fetch: money fields mismatch: %+v", agg.Report)
	}
	if len(agg.Items) != 1 {
		t.Fatalf("fetch: expected 1 item, got %d", len(agg.Items))
	}
	it := agg.Items[0]
	if it.PositionNo != 1 || it.Volume != "50ml" || it.Bottle != "glass" ||
		it.Color != "red" || it.Quantity != 2 || it.Price != 10 || it.CarryFromPrev {
		t.Errorf("fetch: item mismatch: %+v", it)
	}
	if len(agg.Tasks) != 0 || len(agg.TesterWriteOffItems) != 0 {
		t.Errorf("fetch: expected empty tasks/testers, got %d/%d", len(agg.Tasks), len(agg.TesterWriteOffItems))
	}
}

func TestSaveReplacesPreviousReport(t *testing.T) {
	router := setupRouter(t)

	first := `{
		"date": "2024-02-02",
		"department": "Old",
		"seller": "Ann",
		"items": [
			{"position_no": 1, "volume": "30ml", "bottle": "glass", "color": "green", "quantity": 1, "price": 5},
			{"position_no": 2, "volume": "50ml", "bottle": "glass", "color": "red", "quantity": 2, "price": 10}
		],
		"tasks": [{"text": "call supplier", "done": false}],
		"testerWriteOffItems": [{"text": "musk 2ml", "quantity": 1}]
	}`
	if w := doJSON(router, http.MethodPost, "/api/reports", first); w.Code != http.StatusOK {
		t.Fatalf("first save: status %d, body %s", w.Code, w.Body.String())
	}

	second := `{
		"date": "2024-02-02",
		"department": "New",
		"seller": "Olha",
		"items": [
			{"position_no": 1, "volume": "100ml", "bottle": "plastic", "color": "blue", "quantity": 3, "price": 7}
		],
		"tasks": [],
		"testerWriteOffItems": []
	}`
	if w := doJSON(router, http.MethodPost, "/api/reports", second); w.Code != http.StatusOK {
		t.Fatalf("second save: status %d, body %s", w.Code, w.Body.String())
	}

	w := doJSON(router, http.MethodGet, "/api/reports?date=2024-02-02", "")
	if w.Code != http.StatusOK {
		t.Fatalf("fetch: status %d", w.Code)
	}
	var agg aggregateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &agg); err != nil {
		t.Fatalf("fetch: bad response body: %v", err)
	}

	if agg.Report.Department != "New" || agg.Report.Seller != "Olha" {
		t.Errorf("header still carries first save: %+v", agg.Report)
	}
	if len(agg.Items) != 1 || agg.Items[0].Volume != "100ml" {
		t.Errorf("items not fully replaced: %+v", agg.Items)
	}
	if len(agg.Tasks) != 0 || len(agg.TesterWriteOffItems) != 0 {
		t.Errorf("children of the first save survived: %d tasks, %d testers",
			len(agg.Tasks), len(agg.TesterWriteOffItems))
	}

	// no orphaned rows from the discarded report
	var reports, items, tasks, testers int64
	config.DB.Model(&models.DailyReport{}).Count(&reports)
	config.DB.Model(&models.ReportItem{}).Count(&items)
	config.DB.Model(&models.Task{}).Count(&tasks)
	config.DB.Model(&models.TesterWriteOffItem{}).Count(&testers)
	if reports != 1 || items != 1 || tasks != 0 || testers != 0 {
		t.Errorf("orphaned rows left behind: %d reports, %d items, %d tasks, %d testers",
			reports, items, tasks, testers)
	}
}

func TestSaveKeepsTasksAndTesters(t *testing.T) {
	router := setupRouter(t)

	payload := `{
		"date": "2024-03-03",
		"department": "Main",
		"seller": "Ann",
		"items": [],
		"tasks": [
			{"text": "clean shelves", "done": true},
			{"text": "order boxes", "done": false}
		],
		"testerWriteOffItems": [
			{"text": "rose 5ml", "quantity": 2},
			{"text": "musk 2ml"}
		]
	}`
	if w := doJSON(router, http.MethodPost, "/api/reports", payload); w.Code != http.StatusOK {
		t.Fatalf("save: status %d, body %s", w.Code, w.Body.String())
	}

	w := doJSON(router, http.MethodGet, "/api/reports?date=2024-03-03", "")
	var agg aggregateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &agg); err != nil {
		t.Fatalf("fetch: bad response body: %v", err)
	}

	if len(agg.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(agg.Tasks))
	}
	if agg.Tasks[0].Text != "clean shelves" || !agg.Tasks[0].Done {
		t.Errorf("first task mismatch: %+v", agg.Tasks[0])
	}
	if agg.Tasks[1].Text != "order boxes" || agg.Tasks[1].Done {
		t.Errorf("second task mismatch: %+v", agg.Tasks[1])
	}

	if len(agg.TesterWriteOffItems) != 2 {
		t.Fatalf("expected 2 tester rows, got %d", len(agg.TesterWriteOffItems))
	}
	if agg.TesterWriteOffItems[0].Quantity != 2 {
		t.Errorf("tester quantity mismatch: %+v", agg.TesterWriteOffItems[0])
	}
	// quantity absent from input defaults to 0
	if agg.TesterWriteOffItems[1].Text != "musk 2ml" || agg.TesterWriteOffItems[1].Quantity != 0 {
		t.Errorf("tester default mismatch: %+v", agg.TesterWriteOffItems[1])
	}
}

func TestFetchUnknownDateNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/reports?date=2099-12-31", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
	if w.Body.String() != `{"error":"Not found"}` {
		t.Errorf("body %q, want {\"error\":\"Not found\"}", w.Body.String())
	}
}

func TestSaveRejectsBadPayload(t *testing.T) {
	router := setupRouter(t)

	// missing date
	if w := doJSON(router, http.MethodPost, "/api/reports", `{"department":"Main"}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing date: status %d, want 400", w.Code)
	}
	// not a calendar day
	if w := doJSON(router, http.MethodPost, "/api/reports", `{"date":"2024-13-99"}`); w.Code != http.StatusBadRequest {
		t.Errorf("invalid date: status %d, want 400", w.Code)
	}
	// malformed body
	if w := doJSON(router, http.MethodPost, "/api/reports", `{"date":`); w.Code != http.StatusBadRequest {
		t.Errorf("malformed json: status %d, want 400", w.Code)
	}
}

func TestExportCSV(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/reports", scenarioPayload)
	if w.Code != http.StatusOK {
		t.Fatalf("save: status %d", w.Code)
	}
	var saved saveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("save: bad response body: %v", err)
	}

	w = doJSON(router, http.MethodGet,
		"/api/reports/"+strconv.FormatUint(uint64(saved.Report.ID), 10)+"/export/csv", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export: status %d, body %s", w.Code, w.Body.String())
	}

	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=report_2024-01-01.csv" {
		t.Errorf("Content-Disposition %q", cd)
	}

	body := w.Body.String()
	if !strings.HasPrefix(body, "Дата,2024-01-01\n") {
		t.Errorf("export does not start with the date line:\n%s", body)
	}
	if !strings.Contains(body, "Загальна сума,,,,,20.00\n") {
		t.Errorf("export total line missing or wrong:\n%s", body)
	}
}

func TestExportCSVUnknownID(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/reports/9999/export/csv", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
	if w.Body.String() != "Не знайдено" {
		t.Errorf("body %q, want plain not-found text", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "№") {
		t.Error("404 body must not contain CSV structure")
	}
}
