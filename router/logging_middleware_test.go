package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/remiges-tech/tally/router"
)

type captureLogger struct {
	infos []router.RequestInfo
}

func (c *captureLogger) Log(info router.RequestInfo) {
	c.infos = append(c.infos, info)
}

func TestLogRequestLogsOneEntryPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	capture := &captureLogger{}
	r := gin.New()
	r.Use(router.LogRequest(capture))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/health?verbose=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Len(t, capture.infos, 1)
	info := capture.infos[0]
	require.Equal(t, http.MethodGet, info.Method)
	require.Equal(t, "/health", info.Path)
	require.Equal(t, http.StatusOK, info.StatusCode)
	require.Equal(t, "verbose=1", info.Query)
	require.NotZero(t, info.ResponseSize)
}
