package llm

import "strings"

// Price is USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// prices covers the models the factory resolves to. Providers report
// dated or suffixed IDs (claude-haiku-4-5-20251001, gemini-2.0-flash-001),
// so lookup falls back to the longest known prefix.
var prices = map[string]Price{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}

// PriceFor returns the price of model, matching OpenRouter-style
// "vendor/model" names on the model part.
func PriceFor(model string) (Price, bool) {
	if i := strings.LastIndexByte(model, '/'); i >= 0 {
		model = model[i+1:]
	}
	if p, ok := prices[model]; ok {
		return p, true
	}
	best := ""
	for id := range prices {
		if strings.HasPrefix(model, id+"-") && len(id) > len(best) {
			best = id
		}
	}
	if best == "" {
		return Price{}, false
	}
	return prices[best], true
}

// EstimateCost prices a token count in USD. ok is false for unknown models.
func EstimateCost(model string, inputTokens, outputTokens int) (usd float64, ok bool) {
	p, ok := PriceFor(model)
	if !ok {
		return 0, false
	}
	return (float64(inputTokens)*p.Input + float64(outputTokens)*p.Output) / 1e6, true
}
