package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheServesRepeatedGets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.GET("/cached", Cache(), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	do := func(path string) string {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}

	first := do("/cached")
	second := do("/cached")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)

	// A different query string is a different cache key
	do("/cached?page=2")
	assert.Equal(t, 2, hits)

	PurgeCache()
	do("/cached")
	assert.Equal(t, 3, hits)
}

func TestCacheSkipsNonGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.POST("/write", Cache(), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	for i := 1; i <= 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), strconv.Itoa(i))
	}
	assert.Equal(t, 2, hits)
}

func TestCacheSkipsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.GET("/flaky", Cache(), func(c *gin.Context) {
		hits++
		if hits == 1 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/flaky", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusInternalServerError, do().Code)
	// Error responses are not cached, the next request reaches the handler
	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, 2, hits)
}
