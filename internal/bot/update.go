package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Inbound is the tagged-variant view of a Telegram update. The shape of an
// update is decided exactly once here, at the transport boundary; everything
// downstream dispatches on the variant instead of probing fields.
type Inbound interface {
	inbound()
}

// Command is a message carrying a bot command ("/start", "/stats", ...).
type Command struct {
	Name string
	Args string
	Msg  *tgbotapi.Message
}

// TextMessage is an ordinary text message with no command entity.
type TextMessage struct {
	Text string
	Msg  *tgbotapi.Message
}

// OtherMessage is any non-text message content (stickers, photos, joins).
type OtherMessage struct {
	Msg *tgbotapi.Message
}

// Callback is an inline-keyboard callback query.
type Callback struct {
	Query *tgbotapi.CallbackQuery
}

func (Command) inbound()      {}
func (TextMessage) inbound()  {}
func (OtherMessage) inbound() {}
func (Callback) inbound()     {}

// Classify maps a raw update to its variant. Updates the bot does not handle
// (edits, channel posts, polls) classify to nil, as do messages without a
// sender identity.
func Classify(u tgbotapi.Update) Inbound {
	if u.CallbackQuery != nil {
		return Callback{Query: u.CallbackQuery}
	}
	if u.Message == nil || u.Message.From == nil {
		return nil
	}
	msg := u.Message
	if msg.IsCommand() {
		return Command{Name: msg.Command(), Args: msg.CommandArguments(), Msg: msg}
	}
	if msg.Text != "" {
		return TextMessage{Text: msg.Text, Msg: msg}
	}
	return OtherMessage{Msg: msg}
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
