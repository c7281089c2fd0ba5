package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"loan-sip-planner/domain"
)

const defaultLLMURL = "https://api.openai.com/v1/chat/completions"

type GuidanceConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// GuidanceService turns a projection into the recommendation shown next to
// the numbers. Without an API key it only uses the fixed texts.
type GuidanceService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewGuidanceService(cfg GuidanceConfig) *GuidanceService {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultLLMURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GuidanceService{
		apiKey:  cfg.APIKey,
		apiURL:  apiURL,
		model:   model,
		enabled: cfg.APIKey != "",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Guidance builds the recommendation card for one strategy.
func (s *GuidanceService) Guidance(
	ctx context.Context,
	strategy domain.StrategyTag,
	tenure int,
	result domain.StrategyResult,
) domain.Guidance {

	guidance := fallbackGuidance(strategy, tenure, result.NetPosition)
	if !s.enabled {
		return guidance
	}

	explanation, err := s.callLLM(ctx, s.buildPrompt(strategy, tenure, result))
	if err != nil {
		log.Printf("Error calling LLM for %s guidance: %v", strategy, err)
		return guidance
	}

	guidance.Details = explanation
	return guidance
}

func (s *GuidanceService) buildPrompt(
	strategy domain.StrategyTag,
	tenure int,
	result domain.StrategyResult,
) string {
	return fmt.Sprintf(`Explain this car financing plan to an Indian retail investor.

PLAN:
- Strategy: %s
- Loan tenure: %d months (%.1f years)
- Monthly EMI: ₹%.0f
- Total loan interest: ₹%.0f
- Monthly SIP while the loan runs: ₹%.0f
- Total invested in SIP: ₹%.0f
- SIP returns: ₹%.0f
- Final SIP value: ₹%.0f
- Net position (SIP returns minus loan interest): ₹%.0f

INSTRUCTIONS:
1. Say in plain words whether investing beats prepaying the loan here.
2. Mention the net position and the tenure.
3. Keep it to 2-3 sentences, no bullet points.`,
		strategy, tenure, float64(tenure)/12.0,
		result.EMI, result.TotalInterest, result.MonthlyContribution,
		result.TotalPrincipalInvested, result.TotalInvestmentGrowth,
		result.FinalInvestmentValue, result.NetPosition)
}

func (s *GuidanceService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a personal finance advisor. You explain loan versus SIP trade-offs clearly, in rupees, without giving tax advice.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 200,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response from LLM")
	}
	return content, nil
}

func fallbackGuidance(strategy domain.StrategyTag, tenure int, netPosition float64) domain.Guidance {
	value := fmt.Sprintf("%d months tenure", tenure)

	switch strategy {
	case domain.StrategyBalanced:
		if netPosition >= 0 {
			return domain.Guidance{
				Recommendation: domain.RecommendationPositive,
				Title:          "Balanced Approach",
				Value:          value,
				Description:    "Optimal for wealth creation",
				Details: fmt.Sprintf("With a %d-month tenure, you can balance loan payments with SIP investments, potentially earning ₹%.0fK more over the loan period.",
					tenure, math.Round(math.Abs(netPosition)/1000)),
			}
		}
		return domain.Guidance{
			Recommendation: domain.RecommendationNegative,
			Title:          "Balanced Approach",
			Value:          value,
			Description:    "Consider adjusting parameters",
			Details:        "The current parameters suggest paying off the loan faster might be more beneficial. Consider increasing your monthly budget or adjusting the loan amount.",
		}

	case domain.StrategyAggressiveEMI:
		return domain.Guidance{
			Recommendation: domain.RecommendationNegative,
			Title:          "Aggressive EMI Approach",
			Value:          value,
			Description:    "Minimize total interest paid",
			Details: fmt.Sprintf("By choosing a shorter %d-month tenure, you'll pay off the loan faster and minimize total interest. This approach prioritizes debt freedom over investment returns.",
				tenure),
		}

	case domain.StrategyAggressiveSIP:
		return domain.Guidance{
			Recommendation: domain.RecommendationPositive,
			Title:          "Aggressive SIP Approach",
			Value:          value,
			Description:    "Maximize investment returns",
			Details: fmt.Sprintf("With a longer %d-month tenure, you can invest more in SIP while paying lower EMIs. This approach maximizes your wealth creation potential through compound returns.",
				tenure),
		}
	}

	return domain.Guidance{
		Recommendation: domain.RecommendationPositive,
		Title:          "Strategy Analysis",
		Value:          "Review your options",
		Description:    "Compare different approaches",
		Details:        "Select a strategy to see detailed insights and recommendations.",
	}
}
