package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	if a == b {
		t.Fatal("expected distinct ids")
	}

	parsed, err := googleuuid.Parse(a)
	if err != nil {
		t.Fatalf("expected a valid uuid, got %q: %v", a, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
	if b < a {
		t.Errorf("expected time-ordered ids, got %s then %s", a, b)
	}
}
