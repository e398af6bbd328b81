package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentbridge/portal/internal/server/middleware"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

type testValidator struct{ v *validator.Validate }

func (tv *testValidator) Validate(i any) error { return tv.v.Struct(i) }

func newUpdateContext(t *testing.T, body string, user *middleware.AppUser) (*middleware.AppContext, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}

	req := httptest.NewRequest(http.MethodPut, "/api/workflows/wf-1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetPath("/api/workflows/:id")
	c.SetParamNames("id")
	c.SetParamValues("wf-1")

	return &middleware.AppContext{
		Context: c,
		App:     &middleware.App{},
		User:    user,
	}, rec
}

func TestUpdateWorkflowHandlerBindsParamAndBody(t *testing.T) {
	// A structurally incomplete graph: binding must succeed and the
	// request must reach document validation, not fail as a bad body.
	body := `{
		"name": "My Flow",
		"nodes": [{"id": "n1", "label": "Start Here", "type": "start", "position": {"x": 0, "y": 0}}],
		"edges": []
	}`

	ac, rec := newUpdateContext(t, body, &middleware.AppUser{UserID: 1})
	if err := UpdateWorkflowHandler(ac); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(resp.Message, "no end node") {
		t.Errorf("expected a structural validation message, got %q", resp.Message)
	}
}

func TestUpdateWorkflowHandlerMalformedBody(t *testing.T) {
	ac, rec := newUpdateContext(t, `{"name":`, &middleware.AppUser{UserID: 1})
	if err := UpdateWorkflowHandler(ac); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateWorkflowHandlerUnauthorized(t *testing.T) {
	ac, rec := newUpdateContext(t, `{"name": "My Flow", "nodes": [], "edges": []}`, nil)
	if err := UpdateWorkflowHandler(ac); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
