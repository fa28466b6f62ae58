package tgbot

import (
	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const userQueueCapacity = 16

// Run consumes long-poll updates until the channel closes. Only text
// messages are processed; everything else is ignored here.
//
// Messages are dispatched to one buffered queue per user, each drained by a
// single goroutine, so turns for the same user run in arrival order while
// different users proceed concurrently. The queue map is touched only by
// this loop, so it needs no locking.
func (b *TBot) Run() {
	uCfg := tg.NewUpdate(0)
	uCfg.Timeout = 60

	queues := make(map[int64]chan *tg.Message)

	for u := range b.Bot.GetUpdatesChan(uCfg) {
		if u.Message == nil || u.Message.From == nil || u.Message.Text == "" {
			continue
		}

		usr := u.Message.From.ID
		q, ok := queues[usr]
		if !ok {
			q = make(chan *tg.Message, userQueueCapacity)
			queues[usr] = q
			go b.serveUser(q)
		}

		select {
		case q <- u.Message:
		default:
			b.Logger.Warnw("user queue overflow, dropping message", "usr", usr)
		}
	}

	// The update channel closed; let the per-user goroutines drain and exit.
	for _, q := range queues {
		close(q)
	}
}

func (b *TBot) serveUser(q <-chan *tg.Message) {
	for msg := range q {
		b.HandleMessage(msg)
	}
}
