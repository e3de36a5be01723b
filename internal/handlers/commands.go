package handlers

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"meowbot/internal/models"
)

// HandleStart greets an authorized sender by first name. No state changes.
func (d *Dispatcher) HandleStart(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	if _, ok := d.authorize(ctx, msg); !ok {
		return
	}

	d.reply(ctx, msg.Chat.ID, greetingReply(firstName(msg)))
}

// HandleNewChat truncates the sender's transcript. The model selection stays.
func (d *Dispatcher) HandleNewChat(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	username, ok := d.authorize(ctx, msg)
	if !ok {
		return
	}

	d.store.Clear(username)
	log.Printf("New chat created for %s", username)
	d.reply(ctx, msg.Chat.ID, newChatReply)
}

// HandleSetModel shows the model keyboard. The options are exactly the
// catalog labels, so every selection routes back through HandleModelSelection.
func (d *Dispatcher) HandleSetModel(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	if _, ok := d.authorize(ctx, msg); !ok {
		return
	}

	labels := models.Labels()
	rows := make([][]tgmodels.KeyboardButton, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []tgmodels.KeyboardButton{{Text: string(label)}})
	}

	if _, err := d.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   selectModelPrompt,
		ReplyMarkup: &tgmodels.ReplyKeyboardMarkup{
			Keyboard:        rows,
			OneTimeKeyboard: true,
			ResizeKeyboard:  true,
		},
	}); err != nil {
		log.Printf("Failed to send model keyboard: %v", err)
	}
}

// HandleModelSelection stores the picked label. SetModel clears the
// transcript as a side effect so histories of different models never mix.
func (d *Dispatcher) HandleModelSelection(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	username, ok := d.authorize(ctx, msg)
	if !ok {
		return
	}
	if username == "" {
		d.reply(ctx, msg.Chat.ID, whoAreYouReply)
		return
	}

	label := models.ModelLabel(msg.Text)
	d.store.SetModel(username, label)
	log.Printf("Selected model %q for %s", label, username)
	d.reply(ctx, msg.Chat.ID, modelSelectedReply(label))
}
