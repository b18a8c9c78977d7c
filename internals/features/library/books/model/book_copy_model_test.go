package model_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "github.com/TilakCSE/Smart-Library-System/internals/databases"
	"github.com/TilakCSE/Smart-Library-System/internals/features/library/books/model"
)

var dbSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:book_model_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

// The copies table must expose the tag as a literal `rfid_tag` column; every
// raw lookup in the lending ledger addresses it by that name.
func Test_CopyRFIDTagColumnName(t *testing.T) {
	db := openTestDB(t)

	book := model.BookModel{Title: "Dune", Author: "Frank Herbert", ISBN: "555", Category: "SF"}
	require.NoError(t, db.Create(&book).Error)
	tag := "TAG_COL"
	copyRow := model.BookCopyModel{BookID: book.ID, RFIDTag: &tag, Status: model.CopyStatusAvailable, Condition: "good"}
	require.NoError(t, db.Create(&copyRow).Error)

	var stored string
	require.NoError(t, db.Raw("SELECT rfid_tag FROM book_copies WHERE id = ?", copyRow.ID).Scan(&stored).Error)
	assert.Equal(t, "TAG_COL", stored)

	var reloaded model.BookCopyModel
	require.NoError(t, db.Where("rfid_tag = ?", "TAG_COL").First(&reloaded).Error)
	assert.Equal(t, copyRow.ID, reloaded.ID)
}
