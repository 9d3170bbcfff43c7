// internal/infra/telegram/notifier.go
package telegram

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/notifier"
)

// TelebotNotifier implements the notifier.Notifier interface using the
// gopkg.in/telebot.v3 library. All delivery failures are logged and
// swallowed: a dead operator channel must never break a pet cycle.
type TelebotNotifier struct {
	bot    *telebot.Bot
	chatID int64
	logger *logrus.Logger
}

func NewTelebotNotifier(b *telebot.Bot, operatorChatID int64, logger *logrus.Logger) *TelebotNotifier {
	return &TelebotNotifier{bot: b, chatID: operatorChatID, logger: logger}
}

// Notify sends one status message to the operator chat.
func (n *TelebotNotifier) Notify(kind notifier.Kind, text string, txRef string) {
	msg := fmt.Sprintf("[%s] %s", kind, text)
	if txRef != "" {
		msg += "\ntx: " + txRef
	}

	recipient := &telebot.User{ID: n.chatID}
	opts := &telebot.SendOptions{DisableWebPagePreview: true}
	if _, err := n.bot.Send(recipient, msg, opts); err != nil {
		n.logger.Errorf("Failed to deliver %s notification to operator chat %d: %v", kind, n.chatID, err)
	}
}
