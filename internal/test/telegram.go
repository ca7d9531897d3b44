package test

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPIStub records outgoing Telegram traffic for tests.
type BotAPIStub struct {
	mu       sync.Mutex
	Sent     []tgbotapi.Chattable
	Requests []tgbotapi.Chattable
	SendErr  error
}

// Send records the message.
func (a *BotAPIStub) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SendErr != nil {
		return tgbotapi.Message{}, a.SendErr
	}
	a.Sent = append(a.Sent, c)
	return tgbotapi.Message{}, nil
}

// Request records the API call and reports success.
func (a *BotAPIStub) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Requests = append(a.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// GetUpdatesChan returns a closed channel so polling loops exit immediately.
func (a *BotAPIStub) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}

// StopReceivingUpdates is a no-op.
func (a *BotAPIStub) StopReceivingUpdates() {}

// SentTexts returns the text of every recorded plain message.
func (a *BotAPIStub) SentTexts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var texts []string
	for _, c := range a.Sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}
