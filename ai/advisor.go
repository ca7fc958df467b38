package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"

	"petconnect_server_go/config"
)

const advicePrompt = `You are a friendly and knowledgeable pet care expert for the PetConnect app.
Your goal is to provide helpful, safe, and encouraging advice to pet owners.
Always prioritize the pet's safety and well-being.
If a situation sounds urgent or serious, strongly advise the user to contact a veterinarian immediately.
Do not provide medical diagnoses.`

const breedPrompt = `You are an expert in pet breeds. Analyze the description of the pet photo and identify the breed.
Return your answer strictly as a JSON object with two fields:
"identifiedBreed" (string, the breed name) and "confidence" (number between 0 and 1).
Do not include any other text.`

// Advisor отвечает на вопросы о питомцах через DeepSeek API.
type Advisor struct {
	client  deepseek.Client
	model   string
	timeout time.Duration
}

// BreedIdentification — результат определения породы по фотографии.
type BreedIdentification struct {
	IdentifiedBreed string  `json:"identifiedBreed"`
	Confidence      float64 `json:"confidence"`
}

// NewAdvisor создает советника. Возвращает nil без ошибки, если ключ API не задан.
func NewAdvisor(cfg config.DeepSeekConfig) (*Advisor, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	client, err := deepseek.NewClient(cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = deepseek.DEEPSEEK_CHAT_MODEL
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Advisor{client: client, model: model, timeout: timeout}, nil
}

func (a *Advisor) chat(ctx context.Context, system, user string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	chatReq := &request.ChatCompletionsRequest{
		Model: a.model,
		Messages: []*request.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: &temperature,
	}

	resp, err := a.client.CallChatCompletionsChat(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("DeepSeek API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("DeepSeek returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// InstantAdvice отвечает на вопрос владельца о питомце.
func (a *Advisor) InstantAdvice(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is required")
	}
	answer, err := a.chat(ctx, advicePrompt,
		fmt.Sprintf("Please answer the following question from the user: %q", question), 0.7)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("the AI did not return a response")
	}
	return answer, nil
}

// IdentifyBreed определяет породу питомца по фотографии в формате data URI.
func (a *Advisor) IdentifyBreed(ctx context.Context, photoDataURI string) (*BreedIdentification, error) {
	if err := ValidateDataURI(photoDataURI); err != nil {
		return nil, err
	}
	answer, err := a.chat(ctx, breedPrompt,
		"Identify the breed of the pet in this photo: "+photoDataURI, 0.2)
	if err != nil {
		return nil, err
	}
	result, err := parseBreedResponse(answer)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ValidateDataURI проверяет формат "data:<mimetype>;base64,<data>".
func ValidateDataURI(uri string) error {
	if !strings.HasPrefix(uri, "data:") {
		return fmt.Errorf("photo must be a data URI (data:<mimetype>;base64,<data>)")
	}
	rest := uri[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep <= 0 || sep+len(";base64,") >= len(rest) {
		return fmt.Errorf("photo must be a data URI (data:<mimetype>;base64,<data>)")
	}
	return nil
}

// parseBreedResponse извлекает JSON из ответа модели. Модель иногда
// оборачивает JSON в блок кода, поэтому сначала снимаем ограждение.
func parseBreedResponse(answer string) (*BreedIdentification, error) {
	cleaned := stripCodeFence(answer)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("unexpected AI response format")
	}
	var result BreedIdentification
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if result.IdentifiedBreed == "" {
		return nil, fmt.Errorf("AI response missing breed")
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return &result, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl >= 0 {
			s = s[nl+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
