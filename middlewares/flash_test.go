package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestFlashShownOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := gin.New()
	s.Use(Sessions(SessionConfig{Name: "test", Secret: "test-secret"}))
	s.POST("/set", func(c *gin.Context) {
		if err := AddFlash(c, FlashSuccess, "Event Added"); err != nil {
			t.Fatalf("add flash: %v", err)
		}
		c.Redirect(http.StatusFound, "/get")
	})
	s.GET("/get", func(c *gin.Context) {
		msgs, err := Flashes(c, FlashSuccess)
		if err != nil {
			t.Fatalf("flashes: %v", err)
		}
		c.String(http.StatusOK, strings.Join(msgs, ","))
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/set", nil))
	cookie := sessionCookie(w)
	if cookie == "" {
		t.Fatalf("no session cookie set")
	}

	get := func(cookie string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/get", nil)
		req.Header.Set("Cookie", cookie)
		s.ServeHTTP(w, req)
		return w
	}

	w = get(cookie)
	if w.Body.String() != "Event Added" {
		t.Fatalf("want flash, got %q", w.Body.String())
	}
	// the cleared session comes back as a new cookie
	next := sessionCookie(w)
	if next == "" {
		t.Fatalf("reading flashes must save the session")
	}
	if w = get(next); w.Body.String() != "" {
		t.Fatalf("flash shown twice: %q", w.Body.String())
	}
}

// sessionCookie returns the name=value part of the Set-Cookie header.
func sessionCookie(w *httptest.ResponseRecorder) string {
	return strings.SplitN(w.Header().Get("Set-Cookie"), ";", 2)[0]
}
