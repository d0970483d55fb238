package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/dvogel/gatewarden/internal/captcha"
	"github.com/dvogel/gatewarden/internal/gate"
	"github.com/dvogel/gatewarden/internal/store"
)

const genericFailure = "Something went wrong, please try again."

// Sender is the slice of the Telegram client the bot needs. *tgbotapi.BotAPI
// satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api        Sender
	users      *store.UserStore
	messages   *store.MessageLogStore
	challenger *captcha.Challenger
	pending    *gate.PendingSessions
	auth       Authorizer
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func New(
	api Sender,
	users *store.UserStore,
	messages *store.MessageLogStore,
	challenger *captcha.Challenger,
	pending *gate.PendingSessions,
	auth Authorizer,
	logger *slog.Logger,
) *Bot {
	return &Bot{
		api:        api,
		users:      users,
		messages:   messages,
		challenger: challenger,
		pending:    pending,
		auth:       auth,
		// Human-paced traffic; anything past this is a flood, not a user.
		limiter: rate.NewLimiter(rate.Limit(20), 40),
		logger:  logger,
	}
}

// Run consumes updates until the context is cancelled or the channel closes.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if !b.limiter.Allow() {
				b.logger.Warn("update dropped by flood limiter", "update_id", u.UpdateID)
				continue
			}
			b.HandleUpdate(u)
		}
	}
}

func (b *Bot) HandleUpdate(u tgbotapi.Update) {
	switch in := Classify(u).(type) {
	case Command:
		b.handleCommand(in)
	case TextMessage:
		// A pending challenge claims the user's next text reply as an
		// answer; without one the text is ordinary gated content.
		if sessionID, ok := b.pending.Get(in.Msg.From.ID); ok {
			b.handleAnswer(in, sessionID)
			return
		}
		b.gateMessage(in.Msg, in.Text)
	case OtherMessage:
		b.gateMessage(in.Msg, "")
	case Callback:
		// Nothing is keyed off callbacks yet; just stop the client spinner.
		if _, err := b.api.Request(tgbotapi.NewCallback(in.Query.ID, "")); err != nil {
			b.logger.Warn("ack callback", "error", err)
		}
	}
}

// gateMessage applies the per-message policy: verified users pass through
// with an allowed log entry, everyone else gets their message suppressed,
// logged as blocked, and a pointer at /start.
func (b *Bot) gateMessage(msg *tgbotapi.Message, text string) {
	user, err := b.users.Upsert(msg.From.ID, displayName(msg.From))
	if err != nil {
		b.logger.Error("gate user lookup", "error", err, "telegram_id", msg.From.ID)
		return
	}

	if gate.Resolve(user) == gate.Allowed {
		if _, err := b.messages.Record(user.ID, text, false); err != nil {
			b.logger.Error("record allowed message", "error", err, "user_id", user.ID)
		}
		return
	}

	// Best effort: the bot may lack delete rights or the message may be
	// gone already. Either way the block decision stands.
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID)); err != nil {
		b.logger.Warn("delete blocked message", "error", err, "telegram_id", msg.From.ID)
	}

	if _, err := b.messages.Record(user.ID, text, true); err != nil {
		b.logger.Error("record blocked message", "error", err, "user_id", user.ID)
	}

	b.reply(msg, "You need to verify before chatting here. Send /start to get a challenge.")
}

func (b *Bot) handleAnswer(in TextMessage, sessionID string) {
	msg := in.Msg
	user, err := b.users.Upsert(msg.From.ID, displayName(msg.From))
	if err != nil {
		b.logger.Error("answer user lookup", "error", err, "telegram_id", msg.From.ID)
		b.reply(msg, genericFailure)
		return
	}

	res, err := b.challenger.Verify(sessionID, in.Text)
	if err != nil {
		b.logger.Error("verify challenge", "error", err, "session_id", sessionID)
		b.reply(msg, genericFailure)
		return
	}

	switch {
	case res.OK:
		b.pending.Delete(msg.From.ID)
		if err := b.users.SetVerified(user.ID, true); err != nil {
			b.logger.Error("set verified", "error", err, "user_id", user.ID)
			b.reply(msg, genericFailure)
			return
		}
		b.reply(msg, "Verified! You can chat now.")
	case res.Reason == captcha.ReasonWrongAnswer:
		b.reply(msg, "Incorrect answer, try again.")
	default:
		b.pending.Delete(msg.From.ID)
		b.reply(msg, "That challenge is invalid or expired. Send /start for a new one.")
	}
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(out); err != nil {
		b.logger.Error("send reply", "error", err, "chat_id", msg.Chat.ID)
	}
}
