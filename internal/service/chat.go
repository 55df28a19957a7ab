package service

import (
	"context"
	"log"
	"strings"
	"time"

	"easyhome/internal/model"
)

// systemPersona is the fixed instruction block every chat turn starts from
const systemPersona = `Eres un asistente virtual experto en bienes raíces para Easy Home.
Tu trabajo es ayudar a los usuarios a encontrar propiedades que se ajusten a sus necesidades.

IMPORTANTE:
- Responde SIEMPRE basándote en los datos proporcionados de nuestra base de datos
- Si te dan información de propiedades, úsala para responder de forma específica y detallada
- Menciona características específicas como ubicación, precio, número de habitaciones
- Sé amable, profesional y entusiasta
- Si no hay propiedades que coincidan, sugiere alternativas o pide más detalles
- Responde en español de Colombia`

const (
	contextBlockHeader = "--- DATOS ACTUALES DE PROPIEDADES DISPONIBLES ---"
	contextBlockFooter = "--- FIN DE DATOS ---"
)

// ChatLogger records completed chat turns for later analysis
type ChatLogger interface {
	LogChatTurn(ctx context.Context, message string, params *model.SearchParams, resultCount int, grounded bool, responseTimeMs int) error
}

// ChatResult is the outcome of one successful chat turn
type ChatResult struct {
	Response        string
	HasPropertyData bool
}

// ChatService runs the chat-grounding pipeline: relevance gate, intent
// extraction, bounded retrieval, context formatting, and the model call.
type ChatService struct {
	llm         LLMClient
	retriever   *Retriever
	logs        ChatLogger
	maxResults  int
	historySize int
}

// NewChatService creates a new chat service. logs may be nil, in which case
// turns are not recorded.
func NewChatService(llm LLMClient, retriever *Retriever, logs ChatLogger, maxResults, historySize int) *ChatService {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if historySize <= 0 {
		historySize = 5
	}
	return &ChatService{
		llm:         llm,
		retriever:   retriever,
		logs:        logs,
		maxResults:  maxResults,
		historySize: historySize,
	}
}

// Respond runs one chat turn. The credential check short-circuits before any
// other work; retrieval failures degrade the turn to an ungrounded answer
// instead of failing it.
func (s *ChatService) Respond(ctx context.Context, message string, history []model.ChatMessage) (*ChatResult, error) {
	startTime := time.Now()

	if !s.llm.IsEnabled() {
		return nil, newError(ErrorConfig, MsgAPIKeyMissing, nil)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, newError(ErrorValidation, MsgMessageRequired, nil)
	}

	var propertiesContext string
	var params model.SearchParams
	resultCount := 0

	if ShouldConsultStore(message) {
		params = ExtractSearchParams(message)

		listings, err := s.retriever.Retrieve(ctx, params, s.maxResults)
		if err != nil {
			// Retrieval failure is never fatal to the turn; the model
			// answers without grounding data.
			log.Printf("Warning: retrieval failed, answering ungrounded: %v", err)
		} else {
			propertiesContext = FormatListingsContext(listings)
			resultCount = len(listings)
		}
	}

	messages := buildPromptMessages(propertiesContext, history, message, s.historySize)

	response, err := s.llm.GenerateChatResponse(ctx, messages)
	if err != nil {
		return nil, classifyUpstreamError(err)
	}

	grounded := propertiesContext != ""
	took := int(time.Since(startTime).Milliseconds())

	if s.logs != nil {
		loggedParams := params
		go func() {
			if err := s.logs.LogChatTurn(context.Background(), message, &loggedParams, resultCount, grounded, took); err != nil {
				log.Printf("Warning: failed to log chat turn: %v", err)
			}
		}()
	}

	return &ChatResult{
		Response:        response,
		HasPropertyData: grounded,
	}, nil
}

// buildPromptMessages assembles the full prompt: persona block (with the
// grounding data appended when present), the most recent history entries,
// and the current message as the final user turn.
func buildPromptMessages(propertiesContext string, history []model.ChatMessage, message string, historySize int) []model.ChatMessage {
	systemMessage := systemPersona
	if propertiesContext != "" {
		systemMessage += "\n\n" + contextBlockHeader + "\n" + propertiesContext + "\n" + contextBlockFooter +
			"\n\nResponde basándote en estas propiedades reales."
	}

	messages := []model.ChatMessage{
		{Role: model.RoleSystem, Content: systemMessage},
	}

	if len(history) > historySize {
		history = history[len(history)-historySize:]
	}
	for _, msg := range history {
		if msg.Role == "" || strings.TrimSpace(msg.Content) == "" {
			continue
		}
		role := model.RoleUser
		if msg.Role == model.RoleAssistant {
			role = model.RoleAssistant
		}
		messages = append(messages, model.ChatMessage{
			Role:    role,
			Content: strings.TrimSpace(msg.Content),
		})
	}

	messages = append(messages, model.ChatMessage{
		Role:    model.RoleUser,
		Content: message,
	})

	return messages
}
