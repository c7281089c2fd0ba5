package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loan-sip-planner/domain"
)

func TestGuidance_FallbackTexts(t *testing.T) {

	service := NewGuidanceService(GuidanceConfig{})
	ctx := context.Background()

	positive := service.Guidance(ctx, domain.StrategyBalanced, 60, domain.StrategyResult{NetPosition: 7568.13})
	if positive.Recommendation != domain.RecommendationPositive {
		t.Errorf("expected positive recommendation, got %s", positive.Recommendation)
	}
	if !strings.Contains(positive.Details, "₹8K more") {
		t.Errorf("expected rounded thousands in details, got %q", positive.Details)
	}
	if positive.Value != "60 months tenure" {
		t.Errorf("unexpected value %q", positive.Value)
	}

	negative := service.Guidance(ctx, domain.StrategyBalanced, 60, domain.StrategyResult{NetPosition: -1})
	if negative.Recommendation != domain.RecommendationNegative {
		t.Errorf("expected negative recommendation, got %s", negative.Recommendation)
	}

	emi := service.Guidance(ctx, domain.StrategyAggressiveEMI, 36, domain.StrategyResult{NetPosition: 1e6})
	if emi.Recommendation != domain.RecommendationNegative || emi.Title != "Aggressive EMI Approach" {
		t.Errorf("unexpected aggressive EMI guidance %+v", emi)
	}

	sip := service.Guidance(ctx, domain.StrategyAggressiveSIP, 84, domain.StrategyResult{NetPosition: -1e6})
	if sip.Recommendation != domain.RecommendationPositive || !strings.Contains(sip.Details, "84-month") {
		t.Errorf("unexpected aggressive SIP guidance %+v", sip)
	}
}

func TestGuidance_UsesLLM(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %s", req.Model)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Investing wins here.  "}}]}`))
	}))
	defer server.Close()

	service := NewGuidanceService(GuidanceConfig{APIKey: "test-key", APIURL: server.URL, Model: "test-model"})

	guidance := service.Guidance(context.Background(), domain.StrategyBalanced, 60, domain.StrategyResult{NetPosition: 100})
	if guidance.Details != "Investing wins here." {
		t.Errorf("expected LLM details, got %q", guidance.Details)
	}
	if guidance.Title != "Balanced Approach" {
		t.Errorf("expected fixed title, got %q", guidance.Title)
	}
}

func TestGuidance_LLMErrorFallsBack(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewGuidanceService(GuidanceConfig{APIKey: "k", APIURL: server.URL})

	guidance := service.Guidance(context.Background(), domain.StrategyAggressiveEMI, 36, domain.StrategyResult{})
	expected := fallbackGuidance(domain.StrategyAggressiveEMI, 36, 0)
	if guidance != expected {
		t.Errorf("expected fallback %+v, got %+v", expected, guidance)
	}
}
