package controller_test

import (
	"context"
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
	"github.com/TilakCSE/Smart-Library-System/internals/features/library/books/controller"
	bookModel "github.com/TilakCSE/Smart-Library-System/internals/features/library/books/model"
	lendingModel "github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/model"
	lendingService "github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/service"
	userModel "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
)

var dbSeq int

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:books_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	ctrl := controller.NewBookController(db)
	app := fiber.New()
	app.Get("/api/v1/books/", ctrl.Search)
	app.Post("/api/v1/books/add", ctrl.Add)
	app.Get("/api/v1/books/:id", ctrl.GetByID)
	app.Post("/api/v1/books/:id/copies", ctrl.AddCopy)
	app.Patch("/api/v1/copies/:id", ctrl.UpdateCopy)

	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func Test_AddBook_DuplicateISBN(t *testing.T) {
	app, db := newTestApp(t)

	body := `{"title":"Some Book","author":"Someone","isbn":"111","category":"Fiction"}`
	resp := postJSON(t, app, "/api/v1/books/add", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var ok map[string]any
	decodeBody(t, resp, &ok)
	assert.Equal(t, "success", ok["status"])
	assert.NotEmpty(t, ok["book_id"])

	// second registration with the same ISBN must fail and write nothing
	resp = postJSON(t, app, "/api/v1/books/add", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&bookModel.BookModel{}).Where("isbn = ?", "111").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func Test_AddBook_MissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/books/add", `{"title":"No ISBN"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_Search(t *testing.T) {
	app, db := newTestApp(t)

	seed := []bookModel.BookModel{
		{Title: "Introduction to Algorithms", Author: "Thomas H. Cormen", ISBN: "9780262033848", Category: "CS"},
		{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", Category: "CS"},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", ISBN: "9780201616224", Category: "CS"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	get := func(path string) []map[string]any {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var out []map[string]any
		decodeBody(t, resp, &out)
		return out
	}

	// no query: everything (within the first page)
	assert.Len(t, get("/api/v1/books/"), 3)

	// title substring, case-insensitive
	results := get("/api/v1/books/?query=clean")
	require.Len(t, results, 1)
	assert.Equal(t, "Clean Code", results[0]["title"])

	// author substring
	results = get("/api/v1/books/?query=Cormen")
	require.Len(t, results, 1)
	assert.Equal(t, "Introduction to Algorithms", results[0]["title"])

	// no match: empty sequence
	assert.Len(t, get("/api/v1/books/?query=zzzzzz"), 0)

	// pagination caps the page size
	assert.Len(t, get("/api/v1/books/?per_page=2"), 2)
}

func Test_AddCopy_And_DuplicateRFID(t *testing.T) {
	app, db := newTestApp(t)

	book := bookModel.BookModel{Title: "Dune", Author: "Frank Herbert", ISBN: "222", Category: "SF"}
	require.NoError(t, db.Create(&book).Error)

	path := "/api/v1/books/" + book.ID.String() + "/copies"
	resp := postJSON(t, app, path, `{"rfid_tag":"TAG_X"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, path, `{"rfid_tag":"TAG_X"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func Test_UpdateCopy_OnlyLostAllowed(t *testing.T) {
	app, db := newTestApp(t)

	book := bookModel.BookModel{Title: "Dune", Author: "Frank Herbert", ISBN: "333", Category: "SF"}
	require.NoError(t, db.Create(&book).Error)
	tag := "TAG_Y"
	copyRow := bookModel.BookCopyModel{BookID: book.ID, RFIDTag: &tag, Status: bookModel.CopyStatusAvailable, Condition: "good"}
	require.NoError(t, db.Create(&copyRow).Error)

	patch := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/copies/"+copyRow.ID.String(), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := patch(`{"status":"issued"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = patch(`{"status":"lost","condition":"water damage"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var reloaded bookModel.BookCopyModel
	require.NoError(t, db.First(&reloaded, "id = ?", copyRow.ID).Error)
	assert.Equal(t, bookModel.CopyStatusLost, reloaded.Status)
	assert.Equal(t, "water damage", reloaded.Condition)
}

// Marking an issued copy lost must close its active loan too; otherwise the
// loan would dangle forever.
func Test_UpdateCopy_LostClosesActiveLoan(t *testing.T) {
	app, db := newTestApp(t)

	user := userModel.UserModel{Email: "reader@example.com", FullName: "Test Reader", Role: "student", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	book := bookModel.BookModel{Title: "Dune", Author: "Frank Herbert", ISBN: "444", Category: "SF"}
	require.NoError(t, db.Create(&book).Error)
	tag := "TAG_Z"
	copyRow := bookModel.BookCopyModel{BookID: book.ID, RFIDTag: &tag, Status: bookModel.CopyStatusAvailable, Condition: "good"}
	require.NoError(t, db.Create(&copyRow).Error)

	svc := lendingService.NewLendingService(db)
	_, err := svc.Issue(context.Background(), "reader@example.com", "TAG_Z", 14)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/copies/"+copyRow.ID.String(), strings.NewReader(`{"status":"lost"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var reloaded bookModel.BookCopyModel
	require.NoError(t, db.First(&reloaded, "id = ?", copyRow.ID).Error)
	assert.Equal(t, bookModel.CopyStatusLost, reloaded.Status)

	var active int64
	require.NoError(t, db.Model(&lendingModel.TransactionModel{}).
		Where("copy_id = ? AND status = ?", copyRow.ID, lendingModel.LoanStatusActive).
		Count(&active).Error)
	assert.Equal(t, int64(0), active)
}
