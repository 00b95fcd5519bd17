package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if !IsDuplicateKey(fmt.Errorf("insert: %w", dup)) {
		t.Fatalf("expected duplicate key to be detected")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1048}) {
		t.Fatalf("1048 is not a duplicate key error")
	}
	if IsDuplicateKey(errors.New("boom")) {
		t.Fatalf("plain error is not a duplicate key error")
	}
}

func TestHasTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("courses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("courses"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	if !HasTable(context.Background(), db, "courses") {
		t.Fatalf("expected courses table")
	}
	if HasTable(context.Background(), db, "missing") {
		t.Fatalf("did not expect missing table")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNullHelpers(t *testing.T) {
	if NullIfEmpty("") != nil {
		t.Fatalf("empty string should be NULL")
	}
	zero := int64(0)
	if NullInt64(&zero) != nil || NullInt64(nil) != nil {
		t.Fatalf("zero/nil id should be NULL")
	}
	five := int64(5)
	if NullInt64(&five) != int64(5) {
		t.Fatalf("expected 5")
	}
}
