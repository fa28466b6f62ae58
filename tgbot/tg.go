package tgbot

import (
	"fmt"
	"strings"
	"time"

	"remindbot/config"
	"remindbot/dateparse"
	"remindbot/db"
	"remindbot/session"
	"remindbot/timezone"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmhodges/clock"
	"go.uber.org/zap"
)

const (
	cmdStart          = "/start"
	btnCreateReminder = "Создать напоминание"
	btnMyReminders    = "Мои напоминания"
)

const (
	txtChooseAction    = "Выберите действие:"
	txtBlocked         = "Извините, вы заблокированы в системе. Обратитесь к администратору."
	txtUnknownCommand  = "❓ Неизвестная команда"
	txtAskTitle        = "Введите заголовок напоминания:"
	txtAskText         = "Введите текст напоминания:"
	txtAskDate         = "Введите дату напоминания (например: сегодня, завтра, в понедельник, через 2 дня):"
	txtReminderCreated = "Напоминание успешно создано!"
	txtNoReminders     = "📝 У вас пока нет напоминаний"
	txtRemindersHeader = "*Ваши напоминания:*\n\n"
	txtGenericError    = "Произошла ошибка при обработке сообщения. Пожалуйста, попробуйте еще раз."

	fmtWelcome = "Добро пожаловать, %s! Это бот для напоминаний.\n \nПожалуйста, укажите ваш город для установки правильного часового пояса."
	fmtCitySet = "Отлично! Ваш город установлен: %s\nЧасовой пояс: %s\n\nТеперь вы можете создавать напоминания! Используйте команду /start для вызова меню."

	fmtReminderLine = "*%d)* %s - %s\n"
	fmtReminderDue  = "⏰ *%s*\n"
)

const numAssumedAvgReminder = 100

// UserStore persists user records.
type UserStore interface {
	UserExists(usr int64) (bool, error)
	GetUser(usr int64) (*db.User, error)
	CreateUser(u *db.User) error
	UpdateUser(u *db.User) error
	SetCity(usr int64, city string, tz string) error
}

// ReminderStore persists finished reminders.
type ReminderStore interface {
	AddReminder(usr int64, title string, text string, createdAt string, remindAt string) error
	GetAllReminders(usr int64) ([]db.Reminder, error)
}

// Notifier delivers replies. Delivery is best-effort: the state machine
// never retries a failed send and never changes course because of one.
type Notifier interface {
	SendText(usr int64, txt string) error
	SendMarkdown(usr int64, txt string) error
	SendMenu(usr int64) error
}

// TBot drives the conversation: onboarding, the main menu and the
// multi-step reminder dialogue. All collaborators are injected.
type TBot struct {
	Bot       *tg.BotAPI
	Users     UserStore
	Reminders ReminderStore
	Notifier  Notifier
	Sessions  *session.Store
	Logger    *zap.SugaredLogger

	clk clock.Clock
}

func NewTBot(cfg *config.Config, d *db.Database, l *zap.SugaredLogger) (*TBot, error) {
	b, err := tg.NewBotAPI(cfg.TgToken)
	if err != nil {
		l.Errorw("failed to initialize Telegram Bot", "err", err)
		return nil, err
	}

	b.Debug = false

	l.Infof("authorized on account %q (%q, %d)", b.Self.FirstName, b.Self.UserName, b.Self.ID)

	return &TBot{
		Bot:       b,
		Users:     d,
		Reminders: d,
		Notifier: &TgNotifier{
			Bot:           b,
			Logger:        l,
			Async:         cfg.SendAsync,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
		},
		Sessions: session.NewStore(),
		Logger:   l,
		clk:      clock.New(),
	}, nil
}

// HandleMessage processes one inbound text message.
func (b *TBot) HandleMessage(msg *tg.Message) {
	b.processTurn(msg.From.ID, msg.From.UserName, msg.From.FirstName, msg.Text)
}

// processTurn runs a single turn for a user. Unexpected panics are the last
// line of defense here: logged, answered with a generic apology, and the
// menu is shown again. The session is deliberately left as it was.
func (b *TBot) processTurn(usr int64, username string, firstName string, text string) {
	defer func() {
		if r := recover(); r != nil {
			b.Logger.Errorw("panic while processing message", "usr", usr, "panic", r)
			b.Notifier.SendText(usr, txtGenericError)
			b.Notifier.SendMenu(usr)
		}
	}()

	exists, err := b.Users.UserExists(usr)
	if err != nil {
		b.turnFailed(usr, err, "failed checking user")
		return
	}

	// First contact: register and ask for the city. The message itself is
	// not interpreted as a command.
	if !exists {
		u := &db.User{
			ID:        usr,
			Username:  username,
			FirstName: firstName,
			TimeZone:  db.DefaultTimeZone,
		}
		if err := b.Users.CreateUser(u); err != nil {
			b.turnFailed(usr, err, "failed creating user")
			return
		}

		b.Logger.Infow("new user registered", "usr", usr)
		b.Notifier.SendText(usr, fmt.Sprintf(fmtWelcome, firstName))
		return
	}

	u, err := b.Users.GetUser(usr)
	if err != nil || u == nil {
		b.turnFailed(usr, err, "failed fetching user")
		return
	}

	// Until the city is set every message is a city answer, never a command.
	if !u.HasSetCity {
		b.handleCityInput(u, text)
		return
	}

	if u.IsBanned {
		b.Notifier.SendText(usr, txtBlocked)
		return
	}

	switch text {
	case cmdStart:
		// /start always returns to the menu; an in-progress draft is dropped.
		b.Sessions.Clear(usr)
		b.Notifier.SendMenu(usr)

	case btnCreateReminder:
		b.startDraft(usr)

	case btnMyReminders:
		b.listReminders(usr)

	default:
		b.handleStepInput(u, text)
	}
}

// turnFailed recovers a turn from a store error: log, apologize, re-show the
// menu. The session is left untouched so the user can retry the same step.
func (b *TBot) turnFailed(usr int64, err error, msg string) {
	b.Logger.Errorw(msg, "usr", usr, "err", err)
	b.Notifier.SendText(usr, txtGenericError)
	b.Notifier.SendMenu(usr)
}

// handleCityInput finishes onboarding. A failed resolution replies with
// suggestions and mutates nothing, so the attempt can be repeated freely.
func (b *TBot) handleCityInput(u *db.User, text string) {
	tz, ok := timezone.FindZoneByCity(text)
	if !ok {
		b.Notifier.SendText(u.ID, timezone.SuggestMessage(text))
		return
	}

	city := strings.TrimSpace(text)
	if err := b.Users.SetCity(u.ID, city, tz); err != nil {
		b.turnFailed(u.ID, err, "failed setting city")
		return
	}

	b.Logger.Infow("city set", "usr", u.ID, "city", city, "tz", tz)
	b.Notifier.SendText(u.ID, fmt.Sprintf(fmtCitySet, city, tz))
}

// startDraft begins reminder creation, replacing any draft in progress.
func (b *TBot) startDraft(usr int64) {
	b.Sessions.Put(usr, session.Session{
		Step:  session.StepTitle,
		Draft: session.Draft{Owner: usr},
	})
	b.Notifier.SendText(usr, txtAskTitle)
}

func (b *TBot) listReminders(usr int64) {
	reminders, err := b.Reminders.GetAllReminders(usr)
	if err != nil {
		b.turnFailed(usr, err, "failed listing reminders")
		return
	}

	if len(reminders) == 0 {
		b.Notifier.SendText(usr, txtNoReminders)
	} else {
		b.Notifier.SendMarkdown(usr, formatReminders(reminders))
	}
	b.Notifier.SendMenu(usr)
}

// handleStepInput advances the reminder dialogue by one step.
func (b *TBot) handleStepInput(u *db.User, text string) {
	usr := u.ID
	sess := b.Sessions.Get(usr)

	switch sess.Step {
	case session.StepTitle:
		b.Sessions.Put(usr, session.Session{Step: session.StepText, Draft: sess.Draft.WithTitle(text)})
		b.Notifier.SendText(usr, txtAskText)

	case session.StepText:
		b.Sessions.Put(usr, session.Session{Step: session.StepDate, Draft: sess.Draft.WithText(text)})
		b.Notifier.SendText(usr, txtAskDate)

	case session.StepDate:
		b.finishDraft(u, sess, text)

	default:
		b.Notifier.SendText(usr, txtUnknownCommand)
		b.Notifier.SendMenu(usr)
	}
}

// finishDraft parses the date answer and commits the reminder. A parse
// failure keeps the session and the draft exactly as they were; the error
// text is the guidance shown to the user.
func (b *TBot) finishDraft(u *db.User, sess session.Session, text string) {
	usr := u.ID
	loc := b.userLocation(u)
	now := b.clk.Now().In(loc)

	due, err := dateparse.Parse(text, loc, now)
	if err != nil {
		b.Logger.Infow("rejected date input", "usr", usr, "err", err)
		b.Notifier.SendText(usr, err.Error())
		return
	}

	createdAt := now.Format(dateparse.Layout)
	remindAt := due.Format(dateparse.Layout)
	if err := b.Reminders.AddReminder(usr, sess.Draft.Title, sess.Draft.Text, createdAt, remindAt); err != nil {
		b.turnFailed(usr, err, "failed adding reminder")
		return
	}

	b.Sessions.Clear(usr)
	b.Logger.Infow("reminder created", "usr", usr, "remindAt", remindAt)
	b.Notifier.SendText(usr, txtReminderCreated)
}

// userLocation loads the user's time zone, falling back to UTC.
func (b *TBot) userLocation(u *db.User) *time.Location {
	loc, err := time.LoadLocation(u.TimeZone)
	if err != nil {
		b.Logger.Errorw("failed loading location; using UTC time zone", "usr", u.ID, "tz", u.TimeZone, "err", err)
		return time.UTC
	}
	return loc
}

func formatReminders(reminders []db.Reminder) string {
	var sb strings.Builder
	sb.Grow(len(txtRemindersHeader) + numAssumedAvgReminder*len(reminders))

	sb.WriteString(txtRemindersHeader)
	for i, r := range reminders {
		sb.WriteString(fmt.Sprintf(fmtReminderLine, i+1, r.Title, r.Text))
		sb.WriteString(fmt.Sprintf(fmtReminderDue, r.RemindAt))
		sb.WriteString("\n")
	}

	return sb.String()
}
