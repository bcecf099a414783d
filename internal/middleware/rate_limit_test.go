package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func rateLimitedRouter(r rate.Limit, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(IPRateLimitMiddleware(NewIPRateLimiter(r, burst)))
	router.GET("/api/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doRequest(router *gin.Engine, path, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w.Code
}

func TestIPRateLimitBlocksAfterBurst(t *testing.T) {
	// Нулевая скорость пополнения: после burst всё блокируется
	router := rateLimitedRouter(0, 2)

	for i := 0; i < 2; i++ {
		if code := doRequest(router, "/api/test", "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := doRequest(router, "/api/test", "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", code)
	}
}

func TestIPRateLimitIsPerIP(t *testing.T) {
	router := rateLimitedRouter(0, 1)

	if code := doRequest(router, "/api/test", "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first IP: status = %d, want 200", code)
	}
	if code := doRequest(router, "/api/test", "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("first IP repeat: status = %d, want 429", code)
	}
	// Исчерпанный лимит одного IP не трогает другого
	if code := doRequest(router, "/api/test", "10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second IP: status = %d, want 200", code)
	}
}

func TestIPRateLimitSkipsHealth(t *testing.T) {
	router := rateLimitedRouter(0, 1)

	doRequest(router, "/api/test", "10.0.0.1:1234")
	for i := 0; i < 5; i++ {
		if code := doRequest(router, "/api/health", "10.0.0.1:1234"); code != http.StatusOK {
			t.Errorf("health request %d: status = %d, want 200", i+1, code)
		}
	}
}
