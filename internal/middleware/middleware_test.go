package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallerIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CallerIdentity())

	var gotCaller string
	var gotFromCtx string
	r.GET("/ping", func(c *gin.Context) {
		if v, exists := c.Get("caller_id"); exists {
			gotCaller = v.(string)
		}
		if caller, ok := CallerFromContext(c.Request.Context()); ok {
			gotFromCtx = caller
		}
		c.Status(http.StatusOK)
	})

	req, err := http.NewRequest("GET", "/ping", nil)
	require.NoError(t, err)
	req.Header.Set(CallerHeader, "0xbuyer")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xbuyer", gotCaller)
	assert.Equal(t, "0xbuyer", gotFromCtx)
}

func TestCallerIdentityMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CallerIdentity())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, err := http.NewRequest("GET", "/ping", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())

	req, err := http.NewRequest("OPTIONS", "/anything", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
