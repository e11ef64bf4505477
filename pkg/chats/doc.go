// Package chats holds the minimal conversation model the completers speak.
//
// Sub-packages:
//   - [github.com/germanamz/budgetoptimizer/pkg/chats/role]: who sent a message (system, user, assistant)
//   - [github.com/germanamz/budgetoptimizer/pkg/chats/message]: a role plus text
//
// Tool calls and multi-modal parts are intentionally absent; the agent handle
// does not run a tool loop.
package chats
