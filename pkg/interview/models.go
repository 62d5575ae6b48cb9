package interview

// Message roles understood by the backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of an interview conversation.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// ChatHistory is the ordered conversation sent with every interview request.
type ChatHistory []Message

// Append returns a copy of h with msg added at the end.
func (h ChatHistory) Append(msg Message) ChatHistory {
	out := make(ChatHistory, len(h), len(h)+1)
	copy(out, h)
	return append(out, msg)
}

// QuestionResponse is the body returned by the question endpoint.
type QuestionResponse struct {
	Question string `json:"question"`
}

// FeedbackResponse is the body returned by the feedback endpoint.
// Score ranges from 0 to 100.
type FeedbackResponse struct {
	Feedback string `json:"feedback"`
	Score    int    `json:"score"`
	Status   string `json:"status"`
}

// ChatResponse is the body returned by the general chat endpoint.
type ChatResponse struct {
	Response string `json:"response"`
}

// MessageResponse carries the backend's status message for save and delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// Record is a stored interview.
type Record struct {
	ID          string      `json:"id"`
	JobTitle    string      `json:"jobTitle"`
	ChatHistory ChatHistory `json:"chatHistory"`
}

// RecordPage is one page of stored interviews, newest first.
type RecordPage struct {
	Interviews []Record `json:"interviews"`
	TotalCount int      `json:"total_count"`
}

// RecordDetail wraps a single stored interview.
type RecordDetail struct {
	Interview Record `json:"interview"`
}
