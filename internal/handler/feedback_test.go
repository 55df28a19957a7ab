package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"easyhome/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func performFeedback(store *recordingSearchStore, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	searchService := service.NewSearchService(store, service.NewRanker(0.4, 0.2))
	router := gin.New()
	router.POST("/api/v1/feedback", NewFeedbackHandler(searchService).Submit)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFeedbackHandler_Success(t *testing.T) {
	w := performFeedback(&recordingSearchStore{}, `{"search_id":"s1","listing_id":"l1","action":"contact"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"success":true`)
}

func TestFeedbackHandler_InvalidAction(t *testing.T) {
	w := performFeedback(&recordingSearchStore{}, `{"search_id":"s1","listing_id":"l1","action":"purchase"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid action")
}

func TestFeedbackHandler_MissingFields(t *testing.T) {
	w := performFeedback(&recordingSearchStore{}, `{"action":"click"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
