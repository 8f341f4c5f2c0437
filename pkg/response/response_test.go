package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Success(c, gin.H{"value": 42})
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", w.Code)
	}
	if body.Code != 0 || body.Message != "ok" {
		t.Errorf("envelope = %+v, expected code 0 message ok", body)
	}
	if body.Data == nil {
		t.Error("expected data payload")
	}
}

func TestCreated(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Created(c, gin.H{"id": "abc"})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, expected 201", w.Code)
	}
	if body.Code != 0 || body.Message != "created" {
		t.Errorf("envelope = %+v", body)
	}
}

func TestErrorWithAppError(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Error(c, NewNotFound("project not found"))
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", w.Code)
	}
	if body.Code != 404 || body.Message != "project not found" {
		t.Errorf("envelope = %+v", body)
	}
}

func TestErrorWithWrappedAppError(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), NewConflict("revision conflict"))

	w, body := record(t, func(c *gin.Context) {
		Error(c, wrapped)
	})

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, expected 409", w.Code)
	}
	if body.Code != 409 {
		t.Errorf("code = %d, expected 409", body.Code)
	}
}

func TestErrorWithGenericError(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Error(c, errors.New("disk on fire"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", w.Code)
	}
	if body.Code != 500 || body.Message != "disk on fire" {
		t.Errorf("envelope = %+v", body)
	}
}
