package i18n

import (
	"strings"
	"testing"
)

func TestTranslateNegotiatesLocale(t *testing.T) {
	tr, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	en := tr.Translate("en-US,en;q=0.9", "error.resume_required", nil)
	if !strings.Contains(en, "resume") {
		t.Fatalf("expected english message, got %q", en)
	}

	es := tr.Translate("es-MX,es;q=0.9,en;q=0.5", "error.resume_required", nil)
	if es == en {
		t.Fatalf("expected spanish message to differ from english")
	}
}

func TestTranslateFallsBackOnUnknownLocale(t *testing.T) {
	tr, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := tr.Translate("zz-ZZ", "error.internal", nil)
	want := tr.Translate("en", "error.internal", nil)
	if got != want {
		t.Fatalf("expected fallback to english, got %q", got)
	}
}

func TestTranslateSubstitutesParams(t *testing.T) {
	tr, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := tr.Translate("en", "error.required_question_missing", map[string]string{"label": "Full name"})
	if !strings.Contains(got, "Full name") {
		t.Fatalf("expected label substitution, got %q", got)
	}
	if strings.Contains(got, "{label}") {
		t.Fatalf("placeholder left unsubstituted: %q", got)
	}
}

func TestTranslateUnknownKeyRendersKey(t *testing.T) {
	tr, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := tr.Translate("en", "error.not_a_key", nil); got != "error.not_a_key" {
		t.Fatalf("expected key echo, got %q", got)
	}
}
