package shopping

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/sashabaranov/go-openai"
)

const defaultParseTimeout = 30 * time.Second

// promptContentLimit bounds how much of the raw text is forwarded to the
// model; anything beyond it adds cost without adding items.
const promptContentLimit = 2000

// OpenAIParser extracts grocery items from shopping text using an OpenAI
// chat completion.
type OpenAIParser struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIParser creates an OpenAIParser for the given API key.
func NewOpenAIParser(apiKey string) *OpenAIParser {
	return &OpenAIParser{
		client:  openai.NewClient(apiKey),
		model:   openai.GPT4o,
		timeout: defaultParseTimeout,
	}
}

// jsonArrayPattern pulls the first JSON array out of a response; the model
// sometimes wraps its answer in prose despite the instructions.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// candidate mirrors the JSON shape the prompt asks the model for. Fields are
// validated defensively; the model's output is never trusted as-is.
type candidate struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text"`
}

// Parse sends the content to the model and converts its JSON answer into
// parsed items. Any failure (timeout, API error, unparseable response) is
// returned to the caller, which is expected to fall back to rule-based
// parsing.
func (p *OpenAIParser) Parse(ctx context.Context, content, sourceType string) ([]ParsedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildPrompt(content, sourceType),
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	return decodeCandidates(resp.Choices[0].Message.Content)
}

// decodeCandidates parses the model's answer, skipping malformed entries
// rather than failing the whole batch.
func decodeCandidates(response string) ([]ParsedItem, error) {
	jsonStr := response
	if match := jsonArrayPattern.FindString(response); match != "" {
		jsonStr = match
	}

	var candidates []candidate
	if err := json.Unmarshal([]byte(jsonStr), &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	items := make([]ParsedItem, 0, len(candidates))
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}
		category := c.Category
		if !ValidCategory(category) {
			category = InferCategory(c.Name)
		}
		raw := c.RawText
		if raw == "" {
			raw = c.Name
		}
		items = append(items, ParsedItem{
			Name:       c.Name,
			Quantity:   c.Quantity,
			Unit:       c.Unit,
			Category:   category,
			Confidence: c.Confidence,
			RawText:    raw,
		})
	}
	return items, nil
}

func buildPrompt(content, sourceType string) string {
	if len(content) > promptContentLimit {
		content = content[:promptContentLimit]
	}

	prompt := fmt.Sprintf(`You are a grocery shopping assistant. Parse this %s content and extract food items.

RULES:
1. Only extract actual food/grocery items (no services, fees, bags, etc.)
2. Determine the best storage location: "freezer", "fridge", or "pantry"
3. Extract quantity and unit when clear
4. Provide confidence score 0.0-1.0 based on clarity
5. Return ONLY a valid JSON array, no other text

OUTPUT FORMAT:
[
  {
    "name": "Chicken Breast",
    "quantity": 2.0,
    "unit": "lbs",
    "category": "freezer",
    "confidence": 0.95,
    "raw_text": "Chicken Breast 2lb"
  }
]

CONTENT TO PARSE:
%s
`, sourceType, content)

	switch sourceType {
	case "hannaford":
		prompt += `
HANNAFORD SPECIFIC:
- Items often have store codes/SKUs - ignore these
- Look for quantity patterns like "2 @ $3.99"
- Fresh items go to fridge, frozen to freezer, shelf-stable to pantry
`
	case "instacart":
		prompt += `
INSTACART SPECIFIC:
- Items may have replacement notes - focus on the actual item purchased
- Quantities often in parentheses
- Check for "Fresh", "Frozen" category indicators
`
	}

	return prompt
}
