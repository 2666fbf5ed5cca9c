package database

import (
	"context"
	"reflect"
	"testing"
)

func TestInsertBuilderSQL(t *testing.T) {
	t.Parallel()

	query, args := NewInsert("locations").
		Set("name", "Heart Institute").
		Set("city", "Allentown").
		SQL()

	if want := "INSERT INTO locations (name, city) VALUES (?, ?)"; query != want {
		t.Errorf("SQL() = %q, want %q", query, want)
	}
	if want := []any{"Heart Institute", "Allentown"}; !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestInsertBuilderOrIgnore(t *testing.T) {
	t.Parallel()

	query, _ := NewInsert("ibx_profile_searches").OrIgnore().
		Set("ibx_profile_id", 1).
		Set("search_id", 2).
		SQL()

	if want := "INSERT OR IGNORE INTO ibx_profile_searches (ibx_profile_id, search_id) VALUES (?, ?)"; query != want {
		t.Errorf("SQL() = %q, want %q", query, want)
	}
}

func TestInsertBuilderRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := NewInsert("locations").Exec(context.Background(), nil); err == nil {
		t.Fatal("Exec() without columns succeeded")
	}
}
