package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"easyhome/internal/model"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	enabled  bool
	response string
	err      error
	calls    int
	received []model.ChatMessage
}

func (s *stubLLM) GenerateChatResponse(_ context.Context, messages []model.ChatMessage) (string, error) {
	s.calls++
	s.received = messages
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLM) IsEnabled() bool { return s.enabled }

type stubFinder struct {
	listings  []model.Listing
	err       error
	calls     int
	gotParams model.SearchParams
	gotMax    int
}

func (s *stubFinder) FindRelevant(_ context.Context, params model.SearchParams, maxResults int) ([]model.Listing, error) {
	s.calls++
	s.gotParams = params
	s.gotMax = maxResults
	if s.err != nil {
		return nil, s.err
	}
	return s.listings, nil
}

func newTestChatService(llm *stubLLM, finder *stubFinder) *ChatService {
	return NewChatService(llm, NewRetriever(finder), nil, 5, 5)
}

func TestChatRespond_CredentialCheckBeforeValidation(t *testing.T) {
	llm := &stubLLM{enabled: false}
	finder := &stubFinder{}
	svc := newTestChatService(llm, finder)

	_, err := svc.Respond(context.Background(), "", nil)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, ErrorConfig, svcErr.Code)
	require.Equal(t, MsgAPIKeyMissing, svcErr.Message)
	require.Zero(t, finder.calls)
	require.Zero(t, llm.calls)
}

func TestChatRespond_EmptyMessage(t *testing.T) {
	llm := &stubLLM{enabled: true, response: "hola"}
	svc := newTestChatService(llm, &stubFinder{})

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.Respond(context.Background(), message, nil)

		var svcErr *Error
		require.ErrorAs(t, err, &svcErr)
		require.Equal(t, ErrorValidation, svcErr.Code)
		require.Equal(t, MsgMessageRequired, svcErr.Message)
	}
	require.Zero(t, llm.calls)
}

func TestChatRespond_OffTopicSkipsRetrieval(t *testing.T) {
	llm := &stubLLM{enabled: true, response: "¡Con gusto!"}
	finder := &stubFinder{}
	svc := newTestChatService(llm, finder)

	result, err := svc.Respond(context.Background(), "Hola, ¿cómo estás?", nil)

	require.NoError(t, err)
	require.Zero(t, finder.calls)
	require.False(t, result.HasPropertyData)
	require.Equal(t, "¡Con gusto!", result.Response)

	// The persona goes out unchanged, without a grounding block.
	require.Len(t, llm.received, 2)
	require.Equal(t, model.RoleSystem, llm.received[0].Role)
	require.Equal(t, systemPersona, llm.received[0].Content)
	require.Equal(t, model.RoleUser, llm.received[1].Role)
}

func TestChatRespond_GroundedTurn(t *testing.T) {
	listing := model.Listing{
		Title:        strPtr("Apartamento en Chapinero Alto"),
		PropertyType: strPtr(model.TypeApartamento),
		Location:     strPtr("chapinero"),
		Price:        floatPtr(350_000_000),
		Bedrooms:     intPtr(2),
	}
	llm := &stubLLM{enabled: true, response: "Encontré una opción para ti."}
	finder := &stubFinder{listings: []model.Listing{listing}}
	svc := newTestChatService(llm, finder)

	message := "busco apartamento en chapinero con 2 habitaciones"
	result, err := svc.Respond(context.Background(), message, nil)

	require.NoError(t, err)
	require.True(t, result.HasPropertyData)

	require.Equal(t, 1, finder.calls)
	require.Equal(t, 5, finder.gotMax)
	require.NotNil(t, finder.gotParams.PropertyType)
	require.Equal(t, model.TypeApartamento, *finder.gotParams.PropertyType)
	require.NotNil(t, finder.gotParams.Location)
	require.Equal(t, "chapinero", *finder.gotParams.Location)
	require.NotNil(t, finder.gotParams.Bedrooms)
	require.Equal(t, 2, *finder.gotParams.Bedrooms)

	system := llm.received[0]
	require.Equal(t, model.RoleSystem, system.Role)
	require.Contains(t, system.Content, contextBlockHeader)
	require.Contains(t, system.Content, contextBlockFooter)
	require.Contains(t, system.Content, "Apartamento en Chapinero Alto")
	require.Contains(t, system.Content, "$350.000.000")

	last := llm.received[len(llm.received)-1]
	require.Equal(t, model.RoleUser, last.Role)
	require.Equal(t, message, last.Content)
}

func TestChatRespond_EmptyRetrievalStillGrounded(t *testing.T) {
	llm := &stubLLM{enabled: true, response: "No tengo coincidencias exactas."}
	finder := &stubFinder{listings: []model.Listing{}}
	svc := newTestChatService(llm, finder)

	result, err := svc.Respond(context.Background(), "busco lote en pereira", nil)

	require.NoError(t, err)
	require.True(t, result.HasPropertyData)
	require.Contains(t, llm.received[0].Content, NoResultsContext)
}

func TestChatRespond_StoreFailureDegradesToUngrounded(t *testing.T) {
	llm := &stubLLM{enabled: true, response: "Cuéntame más sobre lo que buscas."}
	finder := &stubFinder{err: errors.New("connection refused")}
	svc := newTestChatService(llm, finder)

	result, err := svc.Respond(context.Background(), "busco casa en envigado", nil)

	require.NoError(t, err)
	require.False(t, result.HasPropertyData)
	require.Equal(t, 1, llm.calls)
	require.NotContains(t, llm.received[0].Content, contextBlockHeader)
}

func TestChatRespond_UpstreamFailure(t *testing.T) {
	llm := &stubLLM{enabled: true, err: &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}}
	svc := newTestChatService(llm, &stubFinder{})

	_, err := svc.Respond(context.Background(), "Hola", nil)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, ErrorRateLimited, svcErr.Code)
	require.Equal(t, MsgRateLimited, svcErr.Message)
}

func TestChatRespond_HistoryTrimmedAndNormalized(t *testing.T) {
	llm := &stubLLM{enabled: true, response: "ok"}
	svc := newTestChatService(llm, &stubFinder{})

	history := []model.ChatMessage{
		{Role: model.RoleUser, Content: "mensaje viejo 1"},
		{Role: model.RoleAssistant, Content: "respuesta vieja 1"},
		{Role: model.RoleUser, Content: "mensaje reciente 1"},
		{Role: model.RoleUser, Content: "   "},
		{Role: "system", Content: "intento de inyección"},
		{Role: model.RoleAssistant, Content: "respuesta reciente"},
		{Role: model.RoleUser, Content: "mensaje reciente 2"},
	}

	_, err := svc.Respond(context.Background(), "Gracias", history)
	require.NoError(t, err)

	// Only the last five history entries survive, blank ones are dropped,
	// and any non-assistant role is coerced to user.
	require.Len(t, llm.received, 6)
	require.Equal(t, model.RoleSystem, llm.received[0].Role)

	var contents []string
	for _, m := range llm.received[1:] {
		require.NotEqual(t, model.RoleSystem, m.Role)
		contents = append(contents, m.Content)
	}
	require.Equal(t, []string{
		"mensaje reciente 1",
		"intento de inyección",
		"respuesta reciente",
		"mensaje reciente 2",
		"Gracias",
	}, contents)
	require.NotContains(t, strings.Join(contents, " "), "mensaje viejo")

	injected := llm.received[2]
	require.Equal(t, model.RoleUser, injected.Role)
}

func TestClassifyUpstreamError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    ErrorCode
		wantMessage string
	}{
		{
			name:        "unauthorized status",
			err:         &openai.APIError{HTTPStatusCode: http.StatusUnauthorized},
			wantCode:    ErrorUpstream,
			wantMessage: MsgAPIConfigError,
		},
		{
			name:        "forbidden status",
			err:         &openai.APIError{HTTPStatusCode: http.StatusForbidden},
			wantCode:    ErrorUpstream,
			wantMessage: MsgAPIConfigError,
		},
		{
			name:        "too many requests status",
			err:         &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests},
			wantCode:    ErrorRateLimited,
			wantMessage: MsgRateLimited,
		},
		{
			name:        "api key text fallback",
			err:         errors.New("Invalid API key provided"),
			wantCode:    ErrorUpstream,
			wantMessage: MsgAPIConfigError,
		},
		{
			name:        "rate limit text fallback",
			err:         errors.New("rate limit exceeded, retry later"),
			wantCode:    ErrorRateLimited,
			wantMessage: MsgRateLimited,
		},
		{
			name:        "anything else",
			err:         errors.New("connection reset by peer"),
			wantCode:    ErrorUpstream,
			wantMessage: MsgGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcErr := classifyUpstreamError(tt.err)
			require.Equal(t, tt.wantCode, svcErr.Code)
			require.Equal(t, tt.wantMessage, svcErr.Message)
			require.ErrorIs(t, svcErr, tt.err)
		})
	}
}
