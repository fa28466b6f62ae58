package tgbot

import (
	"testing"
	"time"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuKeyboardLayout(t *testing.T) {
	require.Len(t, menuKeyboard.Keyboard, 1)
	row := menuKeyboard.Keyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, btnCreateReminder, row[0].Text)
	assert.Equal(t, btnMyReminders, row[1].Text)
}

func TestRobustExecuteRunsAtLeastOnce(t *testing.T) {
	for _, attempts := range []int{0, -1, 1} {
		calls := 0
		ok := robustExecute(attempts, 0, func() bool {
			calls++
			return true
		})
		assert.True(t, ok, "attempts=%d", attempts)
		assert.Equal(t, 1, calls, "attempts=%d", attempts)
	}
}

func TestRobustExecuteStopsOnSuccess(t *testing.T) {
	calls := 0
	ok := robustExecute(5, 0, func() bool {
		calls++
		return calls == 2
	})
	assert.True(t, ok)
	assert.Equal(t, 2, calls)
}

func TestRobustExecuteExhaustsAttempts(t *testing.T) {
	calls := 0
	ok := robustExecute(3, 0, func() bool {
		calls++
		return false
	})
	assert.False(t, ok)
	assert.Equal(t, 3, calls)
}

func TestServeUserExitsWhenQueueCloses(t *testing.T) {
	b, us, _, fn := newTestBot(t)
	seedUser(us, usr, "Europe/Moscow")

	q := make(chan *tg.Message, 2)
	q <- &tg.Message{From: &tg.User{ID: usr, UserName: "ivan", FirstName: "Иван"}, Text: "Мои напоминания"}
	close(q)

	done := make(chan struct{})
	go func() {
		b.serveUser(q)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("serveUser did not return after the queue was closed")
	}
	assert.Equal(t, txtNoReminders, fn.lastText())
}
