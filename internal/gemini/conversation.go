package gemini

import "context"

// Conversation is one multi-turn chat with the model. The system
// instruction and sampling settings are fixed at creation; every Send
// extends the turn history so the model keeps conversational context.
// A Conversation is not safe for concurrent use; callers serialize access.
type Conversation struct {
	client  *Client
	system  string
	history []content
}

// NewConversation opens a fresh conversation carrying the given system
// instruction. No network traffic happens until the first Send.
func (c *Client) NewConversation(systemInstruction string) *Conversation {
	return &Conversation{client: c, system: systemInstruction}
}

// Send posts text as the next user turn and returns the model's reply.
// Both turns are committed to history only after a successful round trip,
// so a transport failure leaves the conversation exactly as it was.
func (conv *Conversation) Send(ctx context.Context, text string) (string, error) {
	turns := make([]content, 0, len(conv.history)+1)
	turns = append(turns, conv.history...)
	turns = append(turns, content{Role: roleUser, Parts: []part{{Text: text}}})

	reply, err := conv.client.generate(ctx, conv.system, turns)
	if err != nil {
		return "", err
	}

	conv.history = append(turns, content{Role: roleModel, Parts: []part{{Text: reply}}})
	return reply, nil
}

// Turns reports how many turns (user and model combined) the conversation
// has accumulated.
func (conv *Conversation) Turns() int { return len(conv.history) }
