package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithOutput("debug", "json", &buf)
	t.Cleanup(func() { InitWithOutput("info", "json", &bytes.Buffer{}) })

	Component("store").Debug("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "store", line["component"])
	assert.Contains(t, line, "timestamp")
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	InitWithOutput("loud", "text", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestGinMiddleware(t *testing.T) {
	var buf bytes.Buffer
	InitWithOutput("info", "json", &buf)
	t.Cleanup(func() { InitWithOutput("info", "json", &bytes.Buffer{}) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/missing/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing/7", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/missing/:id", line["path"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, "warning", line["level"])
}
