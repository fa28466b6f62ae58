package tgbot

import (
	"time"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// menuKeyboard is the fixed two-button main menu.
var menuKeyboard = tg.NewReplyKeyboard(
	tg.NewKeyboardButtonRow(
		tg.NewKeyboardButton(btnCreateReminder),
		tg.NewKeyboardButton(btnMyReminders),
	),
)

// TgNotifier sends replies through the Telegram Bot API with a bounded
// retry. With Async set, sends are fire-and-forget: the call returns nil
// immediately and a delivery failure is only logged.
type TgNotifier struct {
	Bot           *tg.BotAPI
	Logger        *zap.SugaredLogger
	Async         bool
	RetryAttempts int
	RetryDelay    time.Duration
}

func (n *TgNotifier) SendText(usr int64, txt string) error {
	return n.send(tg.NewMessage(usr, txt))
}

func (n *TgNotifier) SendMarkdown(usr int64, txt string) error {
	m := tg.NewMessage(usr, txt)
	m.ParseMode = tg.ModeMarkdown
	return n.send(m)
}

func (n *TgNotifier) SendMenu(usr int64) error {
	m := tg.NewMessage(usr, txtChooseAction)
	m.ReplyMarkup = menuKeyboard
	return n.send(m)
}

func (n *TgNotifier) send(m tg.MessageConfig) error {
	if n.Async {
		go n.request(m)
		return nil
	}
	return n.request(m)
}

func (n *TgNotifier) request(m tg.MessageConfig) error {
	var err error
	robustExecute(n.RetryAttempts, n.RetryDelay, func() bool {
		_, err = n.Bot.Request(m)
		return err == nil
	})
	if err != nil {
		n.Logger.Errorw("failed sending message", "usr", m.ChatID, "err", err)
	}
	return err
}

// robustExecute calls f up to n times with a pause in between, stopping at
// the first success. f runs at least once even when n is zero or negative.
func robustExecute(n int, d time.Duration, f func() bool) bool {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if f() {
			return true
		}
		time.Sleep(d)
	}
	return false
}
