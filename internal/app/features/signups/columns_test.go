package signups_test

import (
	"testing"

	"github.com/boonebg/unconfirmed/internal/app/features/signups"
	"github.com/boonebg/unconfirmed/internal/app/system/sorting"
)

func TestColumns_Valid(t *testing.T) {
	if err := sorting.Validate(signups.Columns()); err != nil {
		t.Fatalf("column config invalid: %v", err)
	}
}

func TestColumns_DefaultIsRegisteredDesc(t *testing.T) {
	def := sorting.Default(signups.Columns())
	if def.Name != "registered" {
		t.Errorf("default column: got %q, want %q", def.Name, "registered")
	}
	if def.DefaultOrder != sorting.Desc {
		t.Errorf("default order: got %q, want %q", def.DefaultOrder, sorting.Desc)
	}
}

func TestColumns_CSSClasses(t *testing.T) {
	want := map[string]string{
		"user_login":     "login",
		"user_email":     "email",
		"registered":     "registered",
		"activation_key": "activation-key",
	}
	for _, col := range signups.Columns() {
		if cls, ok := want[col.Name]; !ok {
			t.Errorf("unexpected column %q", col.Name)
		} else if col.CSSClass != cls {
			t.Errorf("column %q class: got %q, want %q", col.Name, col.CSSClass, cls)
		}
	}
}
