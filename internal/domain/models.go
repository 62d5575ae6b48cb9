package domain

import (
	"time"

	"github.com/samvad-hq/mock-interview-client/pkg/interview"
)

// Session is an interview in progress, kept locally between CLI invocations.
type Session struct {
	ID          string                `json:"id"`
	JobTitle    string                `json:"jobTitle"`
	ChatHistory interview.ChatHistory `json:"chatHistory"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// LastQuestion returns the most recent assistant message, if any.
func (s Session) LastQuestion() (string, bool) {
	for i := len(s.ChatHistory) - 1; i >= 0; i-- {
		if s.ChatHistory[i].Role == interview.RoleAssistant {
			return s.ChatHistory[i].Content, true
		}
	}
	return "", false
}
