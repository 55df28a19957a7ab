package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"easyhome/internal/model"
	"easyhome/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	result     *service.ChatResult
	err        error
	calls      int
	gotMessage string
	gotHistory []model.ChatMessage
}

func (s *stubChat) Respond(_ context.Context, message string, history []model.ChatMessage) (*service.ChatResult, error) {
	s.calls++
	s.gotMessage = message
	s.gotHistory = history
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func performChat(stub *stubChat, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/chat", NewChatHandler(stub).Chat)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatHandler_Success(t *testing.T) {
	stub := &stubChat{result: &service.ChatResult{
		Response:        "Encontré 2 apartamentos en Chapinero.",
		HasPropertyData: true,
	}}

	w := performChat(stub, `{"message":"busco apartamento en chapinero","history":[{"role":"user","content":"hola"}]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.True(t, resp.HasPropertyData)
	require.Equal(t, "Encontré 2 apartamentos en Chapinero.", resp.Response)

	require.Equal(t, "busco apartamento en chapinero", stub.gotMessage)
	require.Len(t, stub.gotHistory, 1)
}

func TestChatHandler_ValidationError(t *testing.T) {
	stub := &stubChat{err: &service.Error{Code: service.ErrorValidation, Message: service.MsgMessageRequired}}

	w := performChat(stub, `{"message":""}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"Message is required","success":false}`, w.Body.String())
}

func TestChatHandler_ConfigError(t *testing.T) {
	stub := &stubChat{err: &service.Error{Code: service.ErrorConfig, Message: service.MsgAPIKeyMissing}}

	w := performChat(stub, `{"message":"hola"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"API key no configurada","success":false}`, w.Body.String())
}

func TestChatHandler_RateLimited(t *testing.T) {
	stub := &stubChat{err: &service.Error{Code: service.ErrorRateLimited, Message: service.MsgRateLimited}}

	w := performChat(stub, `{"message":"hola"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp model.ChatErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, service.MsgRateLimited, resp.Error)
}

func TestChatHandler_UnknownError(t *testing.T) {
	stub := &stubChat{err: errors.New("boom")}

	w := performChat(stub, `{"message":"hola"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Error al generar respuesta","success":false}`, w.Body.String())
}

func TestChatHandler_MalformedBodyStillReachesService(t *testing.T) {
	// The service decides the error, so the credential check can run before
	// message validation even on a garbage body.
	stub := &stubChat{err: &service.Error{Code: service.ErrorValidation, Message: service.MsgMessageRequired}}

	w := performChat(stub, `not json at all`)

	require.Equal(t, 1, stub.calls)
	require.Empty(t, stub.gotMessage)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
