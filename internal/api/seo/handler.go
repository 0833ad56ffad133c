package seoapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"campaign-builder/config"

	"github.com/gin-gonic/gin"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "You are an expert SaaS marketing strategist. Given campaign context, produce SEO title, description, and 5-8 keywords."

type SuggestRequest struct {
	Brand    string `json:"brand" binding:"required"`
	Offer    string `json:"offer" binding:"required"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// ------------------------------
// POST /admin/seo/suggest
// ------------------------------
//
// Asks the model for SEO copy for a campaign. When the model answers with
// something that is not JSON, the raw text is passed back for the editor
// to use manually.
func SuggestSEO(c *gin.Context) {
	if config.OPENAI_API_KEY == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OPENAI_API_KEY not configured"})
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audience := req.Audience
	if audience == "" {
		audience = "General B2B marketers"
	}
	tone := req.Tone
	if tone == "" {
		tone = "Confident"
	}
	prompt := fmt.Sprintf(
		"Brand: %s\nOffer: %s\nAudience: %s\nTone: %s\nProvide a JSON object with title, description, keywords.",
		req.Brand, req.Offer, audience, tone,
	)

	body, err := json.Marshal(chatRequest{
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build request"})
		return
	}

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build request"})
		return
	}
	httpReq.Header.Set("Authorization", "Bearer "+config.OPENAI_API_KEY)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "SEO provider unreachable"})
		return
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "SEO provider unreachable"})
		return
	}
	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": string(raw)})
		return
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil || len(chat.Choices) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "SEO provider returned an unexpected response"})
		return
	}

	text := chat.Choices[0].Message.Content
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		c.JSON(http.StatusOK, gin.H{"raw": text})
		return
	}
	c.JSON(http.StatusOK, parsed)
}
