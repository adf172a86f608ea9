package payloadschema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateTranslateRequest_Valid(t *testing.T) {
	t.Parallel()

	req, err := ValidateTranslateRequest(json.RawMessage(`{"text":"こんにちは、世界"}`))
	if err != nil {
		t.Fatalf("expected request to be valid, got error: %v", err)
	}
	if req.Text != "こんにちは、世界" {
		t.Fatalf("unexpected text: %q", req.Text)
	}
}

func TestValidateTranslateRequest_MissingText(t *testing.T) {
	t.Parallel()

	_, err := ValidateTranslateRequest(json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expected validation to fail for missing text")
	}
}

func TestValidateTranslateRequest_WhitespaceText(t *testing.T) {
	t.Parallel()

	_, err := ValidateTranslateRequest(json.RawMessage(`{"text":"   "}`))
	if err == nil {
		t.Fatal("expected validation to fail for whitespace-only text")
	}
	if !strings.Contains(err.Error(), "text must not be empty") {
		t.Fatalf("expected semantic error, got: %v", err)
	}
}

func TestValidateTranslateRequest_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := ValidateTranslateRequest(json.RawMessage(`{"text":"x","lang":"en"}`))
	if err == nil {
		t.Fatal("expected validation to fail for unknown field")
	}
}

func TestValidateTranslateRequest_TrailingContent(t *testing.T) {
	t.Parallel()

	_, err := ValidateTranslateRequest(json.RawMessage(`{"text":"x"}{"text":"y"}`))
	if err == nil {
		t.Fatal("expected validation to fail for trailing content")
	}
}

func TestValidateTranslateRequest_EmptyBody(t *testing.T) {
	t.Parallel()

	_, err := ValidateTranslateRequest(nil)
	if err == nil {
		t.Fatal("expected validation to fail for empty body")
	}
}
