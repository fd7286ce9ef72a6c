package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDumpCollectsChainAndPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key", TableName: "products", Message: "duplicate key value"}
	err := Wrap(CodeConflict, fmt.Errorf("insert product: %w", pgErr), "sku already exists")

	d := Dump(err)
	if d.Code != CodeConflict {
		t.Fatalf("expected CONFLICT, got %s", d.Code)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %v", d.Chain)
	}
	if d.DBDriver != "pgx" || d.DBCode != "23505" || d.DBConstraint != "products_sku_key" {
		t.Fatalf("unexpected db fields %+v", d)
	}

	fields := d.Fields()
	if fields["db_table"] != "products" {
		t.Fatalf("expected db_table in fields, got %v", fields)
	}
	if _, ok := fields["db_column"]; ok {
		t.Fatalf("empty db fields should be omitted")
	}
}

func TestDumpPlainError(t *testing.T) {
	d := Dump(stdErrors.New("boom"))
	if d.Code != CodeInternal || d.DBDriver != "" {
		t.Fatalf("unexpected dump %+v", d)
	}
	if Dump(nil).TopMessage != "" {
		t.Fatalf("nil error should produce an empty dump")
	}
}
