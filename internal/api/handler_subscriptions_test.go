package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parking-lot-backend/internal/model"
	"parking-lot-backend/internal/registry"
)

func setupSubscriptionRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Slot{}, &model.PushSubscription{}))

	r := gin.Default()
	handler := NewHandler(nil, db, nil)
	r.PUT("/api/subscriptions", handler.PutSubscription)
	r.GET("/api/subscriptions", handler.GetSubscription)
	r.DELETE("/api/subscriptions", handler.DeleteSubscription)
	return r, db
}

func TestPutSubscription_BadRequest(t *testing.T) {
	router, _ := setupSubscriptionRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}

func TestSubscriptionLifecycle(t *testing.T) {
	router, db := setupSubscriptionRouter(t)
	_, err := registry.Initialize(db, 3)
	require.NoError(t, err)

	body := `{"endpoint":"https://example.com/push","p256dh":"key","auth":"secret","subscribed_slots":[1,3]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/subscriptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/subscriptions?endpoint=https://example.com/push", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subscribed_slots":[1,3]}`, w.Body.String())

	// A second PUT for the same endpoint replaces the watched set.
	body = `{"endpoint":"https://example.com/push","p256dh":"key","auth":"secret","subscribed_slots":[2]}`
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PUT", "/api/subscriptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/subscriptions?endpoint=https://example.com/push", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subscribed_slots":[2]}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/subscriptions", strings.NewReader(`{"endpoint":"https://example.com/push"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/subscriptions?endpoint=https://example.com/push", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSubscription_MissingEndpoint(t *testing.T) {
	router, _ := setupSubscriptionRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"endpoint is required"}`, w.Body.String())
}
