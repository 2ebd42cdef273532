package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpExtractsPgxError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "profiles_email_key",
		TableName:      "profiles",
		Detail:         "Key (email)=(a@b.c) already exists.",
	}
	wrapped := Wrap(CodeConflict, fmt.Errorf("create profile: %w", pgErr), "account exists")

	d := Dump(wrapped)
	if d.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGConstraint != "profiles_email_key" {
		t.Fatalf("pg fields not extracted: %+v", d)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected unwrapped chain, got %v", d.Chain)
	}
}

func TestDumpPlainError(t *testing.T) {
	d := Dump(stdErrors.New("boom"))
	if d.TopMessage != "boom" || d.PGCode != "" {
		t.Fatalf("unexpected dump: %+v", d)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("pgx unique violation not detected")
	}
	if !IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})) {
		t.Fatal("pq unique violation not detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation misclassified")
	}
	if IsUniqueViolation(stdErrors.New("duplicate key value")) {
		t.Fatal("plain errors should not match")
	}
}
