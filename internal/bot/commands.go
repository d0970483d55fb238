package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dvogel/gatewarden/internal/captcha"
	"github.com/dvogel/gatewarden/internal/gate"
)

func (b *Bot) handleCommand(cmd Command) {
	switch cmd.Name {
	case "start":
		b.handleStart(cmd)
	case "stats":
		b.handleStats(cmd)
	case "reset_user":
		b.handleResetUser(cmd)
	}
}

// handleStart reports existing verification, enforces the issuance cooldown,
// and otherwise mints a challenge and sends the image.
func (b *Bot) handleStart(cmd Command) {
	msg := cmd.Msg
	user, err := b.users.Upsert(msg.From.ID, displayName(msg.From))
	if err != nil {
		b.logger.Error("start user lookup", "error", err, "telegram_id", msg.From.ID)
		b.reply(msg, genericFailure)
		return
	}

	if user.VerificationPassed {
		b.reply(msg, "You are already verified.")
		return
	}

	if secs, waiting := gate.CooldownRemaining(user, time.Now()); waiting {
		b.reply(msg, fmt.Sprintf("Please wait %d seconds before requesting a new challenge.", secs))
		return
	}

	ch, err := b.challenger.Issue(user.ID)
	if err != nil {
		b.logger.Error("issue challenge", "error", err, "user_id", user.ID)
		b.reply(msg, genericFailure)
		return
	}

	if err := b.users.RecordChallenge(user.ID); err != nil {
		b.logger.Error("record challenge", "error", err, "user_id", user.ID)
		b.reply(msg, genericFailure)
		return
	}

	b.pending.Put(msg.From.ID, ch.SessionID, captcha.SessionTTL)

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "captcha.png", Bytes: ch.PNG})
	photo.Caption = "Reply with the text in the image. You have 5 minutes."
	photo.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("send challenge photo", "error", err, "user_id", user.ID)
		b.reply(msg, genericFailure)
	}
}

func (b *Bot) handleStats(cmd Command) {
	msg := cmd.Msg
	if !b.auth.IsAdmin(msg.From.ID) {
		b.reply(msg, "Sorry, this command is for admins only.")
		return
	}

	stats, err := b.users.Stats()
	if err != nil {
		b.logger.Error("user stats", "error", err)
		b.reply(msg, genericFailure)
		return
	}
	blocked, err := b.messages.CountBlockedSince(24 * time.Hour)
	if err != nil {
		b.logger.Error("blocked message count", "error", err)
		b.reply(msg, genericFailure)
		return
	}

	b.reply(msg, fmt.Sprintf(
		"Users: %d\nVerified: %d\nChallenges issued: %d\nBlocked in last 24h: %d",
		stats.TotalUsers, stats.VerifiedUsers, stats.TotalChallenges, blocked,
	))
}

// handleResetUser forces a subject back to unverified. The target comes from
// the command argument or from the replied-to message.
func (b *Bot) handleResetUser(cmd Command) {
	msg := cmd.Msg
	if !b.auth.IsAdmin(msg.From.ID) {
		b.reply(msg, "Sorry, this command is for admins only.")
		return
	}

	targetID, ok := resetTarget(cmd)
	if !ok {
		b.reply(msg, "Usage: /reset_user <telegram id>, or reply to a message from the user.")
		return
	}

	user, err := b.users.GetByTelegramID(targetID)
	if err != nil {
		b.logger.Error("reset user lookup", "error", err, "telegram_id", targetID)
		b.reply(msg, genericFailure)
		return
	}
	if user == nil {
		b.reply(msg, "No such user.")
		return
	}

	if err := b.users.ResetVerification(user.ID); err != nil {
		b.logger.Error("reset verification", "error", err, "user_id", user.ID)
		b.reply(msg, genericFailure)
		return
	}
	b.pending.Delete(targetID)

	b.logger.Info("user reset", "user_id", user.ID, "by", msg.From.ID)
	b.reply(msg, fmt.Sprintf("User %d reset to unverified.", targetID))
}

func resetTarget(cmd Command) (int64, bool) {
	if args := strings.TrimSpace(cmd.Args); args != "" {
		id, err := strconv.ParseInt(args, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	if reply := cmd.Msg.ReplyToMessage; reply != nil && reply.From != nil {
		return reply.From.ID, true
	}
	return 0, false
}
