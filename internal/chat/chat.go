// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package chat answers visitor questions through an OpenAI-compatible chat
// completion endpoint.
package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/yuin/goldmark"
)

// Greeting seeds every new transcript.
const Greeting = "Namaste! 🙏 I am Bharat AI. Ask me anything about Indian culture, festivals, or events near you!"

// Apology replaces the reply whenever the completion call fails.
const Apology = "Sorry, I ran into an error. Please try again in a moment. 🙏"

// SystemPrompt is sent ahead of every transcript.
const SystemPrompt = "You are Bharat AI, a friendly and knowledgeable assistant for Bharat Abroad, " +
	"a platform that helps the Indian diaspora in the US discover Indian cultural events and festivals. " +
	"You help users with questions about Indian festivals, traditions, culture, and events across the US. " +
	"Keep responses concise, warm, and helpful. Use occasional Indian greetings like Namaste. Use relevant emojis."

// Transcript limits.
const (
	MaxTurns         = 20
	MaxMessageLength = 2000
)

// Transcript roles accepted from the browser.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrNoChoices    = errors.New("completion returned no choices")
	ErrDisabled     = errors.New("chat is not configured")
)

// Message is one transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the assistant's answer as plain text and sanitized HTML.
type Reply struct {
	Text string `json:"reply"`
	HTML string `json:"html"`
}

// Config selects the completion endpoint and sampling settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Client sends transcripts to the completion endpoint.
type Client struct {
	api    openai.Client
	cfg    Config
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewClient creates a chat client. Retries are disabled so a failure surfaces
// at once as the apology.
func NewClient(cfg Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:    openai.NewClient(opts...),
		cfg:    cfg,
		md:     goldmark.New(),
		policy: bluemonday.UGCPolicy(),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

// Normalize validates a posted transcript. It drops unknown roles, truncates
// long messages and keeps the most recent MaxTurns entries. The last entry
// must be a non-blank user message.
func Normalize(msgs []Message) ([]Message, error) {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		out = append(out, Message{Role: m.Role, Content: truncate(content, MaxMessageLength)})
	}

	if len(out) == 0 || out[len(out)-1].Role != RoleUser {
		return nil, ErrEmptyMessage
	}
	if last := msgs[len(msgs)-1]; last.Role == RoleUser && strings.TrimSpace(last.Content) == "" {
		return nil, ErrEmptyMessage
	}

	if len(out) > MaxTurns {
		out = out[len(out)-MaxTurns:]
	}
	return out, nil
}

// Reply asks the model to continue msgs. On any failure it returns the
// apology together with the error.
func (c *Client) Reply(ctx context.Context, msgs []Message) (Reply, error) {
	if !c.Enabled() {
		return c.render(Apology), ErrDisabled
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.cfg.Model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs)+1),
	}
	params.Messages = append(params.Messages, openai.SystemMessage(SystemPrompt))
	for _, m := range msgs {
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		} else {
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}
	if c.cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(c.cfg.MaxTokens)
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = openai.Float(c.cfg.Temperature)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return c.render(Apology), fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return c.render(Apology), ErrNoChoices
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return c.render(Apology), ErrNoChoices
	}
	return c.render(text), nil
}

// render converts markdown text to sanitized HTML. Conversion failures fall
// back to the escaped text.
func (c *Client) render(text string) Reply {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(text), &buf); err != nil {
		return Reply{Text: text, HTML: c.policy.Sanitize(text)}
	}
	return Reply{Text: text, HTML: c.policy.SanitizeReader(&buf).String()}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
