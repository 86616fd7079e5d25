package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, "Course added successfully", gin.H{"code": "SE101"})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	resp := decode(t, w)
	if resp.Code != 0 || resp.Message != "Course added successfully" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestInternalError_PassesDetailsThrough(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	InternalError(c, "Unable to Register Student", errors.New("E11000 duplicate key"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	resp := decode(t, w)
	if resp.Code != CodeInternal {
		t.Errorf("expected code %d, got %d", CodeInternal, resp.Code)
	}
	if resp.Details != "E11000 duplicate key" {
		t.Errorf("expected details to carry the store error, got %q", resp.Details)
	}
	if len(c.Errors) != 1 {
		t.Errorf("expected error recorded on context, got %d", len(c.Errors))
	}
}

func TestAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Attachment(c, "text/csv", "utilization-report.csv", []byte("a,b\n"))

	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="utilization-report.csv"` {
		t.Errorf("unexpected Content-Disposition %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("unexpected Content-Type %q", got)
	}
}
