package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
)

type itemPayload struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"min=1"`
}

type samplePayload struct {
	Name  string        `json:"name" validate:"required,max=10"`
	Items []itemPayload `json:"items" validate:"required,min=1,dive"`
}

func (p *samplePayload) Sanitize() {
	p.Name = SanitizeString(p.Name, 0)
}

func TestDecodeJSONBodySanitizesBeforeValidation(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"  widget  ","items":[{"productId":1,"quantity":2}]}`))

	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "widget" {
		t.Fatalf("expected trimmed name, got %q", payload.Name)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a","items":[{"productId":1,"quantity":1}],"extra":true}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if typed := pkgerrors.As(err); typed == nil || typed.Message() != "request body is required" {
		t.Fatalf("expected missing body error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsNestedFieldPaths(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a","items":[{"productId":1,"quantity":0}]}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if got := details["items[0].quantity"]; got != "must be at least 1" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestParsePage(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=5&cursor="+pagination.EncodeCursor(9), nil)
	page, err := ParsePage(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Limit != 5 || page.Cursor == "" {
		t.Fatalf("unexpected page %+v", page)
	}

	for _, query := range []string{"/?limit=0", "/?limit=101", "/?limit=abc", "/?cursor=not-a-cursor"} {
		if _, err := ParsePage(httptest.NewRequest("GET", query, nil)); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", query, err)
		}
	}

	page, err = ParsePage(httptest.NewRequest("GET", "/", nil))
	if err != nil || page.Enabled() {
		t.Fatalf("expected disabled paging without params, got %+v (%v)", page, err)
	}
}

func TestParseOptionalID(t *testing.T) {
	id, err := ParseOptionalID(httptest.NewRequest("GET", "/?categoryId=7", nil), "categoryId")
	if err != nil || id == nil || *id != 7 {
		t.Fatalf("expected 7, got %v (%v)", id, err)
	}

	id, err = ParseOptionalID(httptest.NewRequest("GET", "/", nil), "categoryId")
	if err != nil || id != nil {
		t.Fatalf("expected nil filter, got %v (%v)", id, err)
	}

	if _, err := ParseOptionalID(httptest.NewRequest("GET", "/?categoryId=-1", nil), "categoryId"); err == nil {
		t.Fatal("expected error for negative id")
	}
}

func TestSanitizeStringTruncatesByCharacter(t *testing.T) {
	if got := SanitizeString("  héllo  ", 2); got != "hé" {
		t.Fatalf("unexpected %q", got)
	}
}
