package i18n

import (
	"context"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "fr" {
		t.Fatalf("expected fr")
	}
	if DetectLanguage("") != "en" {
		t.Fatalf("expected default en")
	}
	if DetectLanguage("ja-JP") != "en" {
		t.Fatalf("expected en fallback for unsupported language")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("fr", "required") != "Requis" {
		t.Fatalf("expected Requis")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to en translation
	if T("es", "required") != "Required" {
		t.Fatalf("expected en fallback for es lang")
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for code := range catalog[Default] {
		if _, ok := catalog["fr"][code]; !ok {
			t.Errorf("fr catalog missing %q", code)
		}
	}
}

func TestLangContext(t *testing.T) {
	ctx := WithLang(context.Background(), "fr")
	if LangFromContext(ctx) != "fr" {
		t.Fatalf("expected fr from context")
	}
	if LangFromContext(context.Background()) != "" {
		t.Fatalf("expected empty language without WithLang")
	}
	if !Supported("en") || Supported("de") {
		t.Fatalf("unexpected Supported result")
	}
}
