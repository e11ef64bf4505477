// Package message defines a single conversation turn.
package message

import "github.com/germanamz/budgetoptimizer/pkg/chats/role"

// Message is one turn of a conversation.
type Message struct {
	Role    role.Role
	Content string
}

// New creates a Message with the given role and text.
func New(r role.Role, text string) Message {
	return Message{Role: r, Content: text}
}

// System is shorthand for New(role.System, text).
func System(text string) Message { return New(role.System, text) }

// User is shorthand for New(role.User, text).
func User(text string) Message { return New(role.User, text) }

// IsZero reports whether m has neither role nor content.
func (m Message) IsZero() bool {
	return m.Role == "" && m.Content == ""
}
