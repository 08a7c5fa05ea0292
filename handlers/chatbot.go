package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var chatbotClient = &http.Client{Timeout: 90 * time.Second}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chatbot forwards the user's message to the configured upstream LLM API and
// streams the response body back unmodified. No conversation state is kept
// server-side.
func Chatbot(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apiURL := os.Getenv("CHATBOT_API_URL")
	if apiURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chatbot not configured"})
		return
	}

	body, err := json.Marshal(gin.H{"message": req.Message})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build request"})
		return
	}

	upstream, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build request"})
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("CHATBOT_API_KEY"); key != "" {
		upstream.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := chatbotClient.Do(upstream)
	if err != nil {
		log.Error().Err(err).Msg("chatbot upstream request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Chatbot unavailable"})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Status(resp.StatusCode)
	c.Header("Content-Type", contentType)

	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := c.Writer.Write(buf[:n]); werr != nil {
				return
			}
			c.Writer.Flush()
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Warn().Err(err).Msg("chatbot stream interrupted")
			return
		}
	}
}
