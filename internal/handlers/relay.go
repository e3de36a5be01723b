package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"meowbot/internal/models"
	"meowbot/internal/services"
)

// HandleText relays free-form text: append to the transcript, send the
// placeholder, then either chat-complete and edit it in place, or generate
// an image and replace it.
func (d *Dispatcher) HandleText(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	username, ok := d.authorize(ctx, msg)
	if !ok {
		return
	}
	if username == "" {
		// Unreachable after authorize, kept as a guard.
		log.Printf("Cannot find username on text message %d", msg.ID)
		d.reply(ctx, msg.Chat.ID, whoAreYouReply)
		return
	}

	eventID := uuid.NewString()[:8]

	// One completion turn per user at a time: a later message waits instead
	// of interleaving its appends with an earlier in-flight one.
	lock := d.store.UserLock(username)
	lock.Lock()
	defer lock.Unlock()

	label := d.store.Model(username)
	entry := models.Resolve(label)
	log.Printf("[%s] Got a message from %s (model: %s)", eventID, username, label)

	if entry.Modality == models.ModalityImage {
		// Image prompts are not conversation history.
		placeholderID, ok := d.sendPlaceholder(ctx, eventID, msg)
		if !ok {
			return
		}
		d.relayImage(ctx, eventID, username, msg, placeholderID, entry.BackendID)
		return
	}

	// The question becomes durable history even if the completion fails.
	d.store.Append(username, models.RoleUser, msg.Text)

	placeholderID, ok := d.sendPlaceholder(ctx, eventID, msg)
	if !ok {
		return
	}
	d.relayChat(ctx, eventID, username, msg, placeholderID, entry.BackendID)
}

func (d *Dispatcher) sendPlaceholder(ctx context.Context, eventID string, msg *tgmodels.Message) (int, bool) {
	placeholder, err := d.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            placeholderText,
		ReplyParameters: &tgmodels.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		log.Printf("[%s] Failed to send placeholder: %v", eventID, err)
		return 0, false
	}
	return placeholder.ID, true
}

func (d *Dispatcher) relayChat(ctx context.Context, eventID, username string, msg *tgmodels.Message, placeholderID int, backendID string) {
	response, err := d.gateway.CompleteChat(ctx, backendID, d.store.Transcript(username))
	switch {
	case errors.Is(err, services.ErrEmptyResponse):
		log.Printf("[%s] Could not generate a response to %s", eventID, username)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, emptyResponseReply)
	case err != nil:
		log.Printf("[%s] Error generating response: %v", eventID, err)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, upstreamErrorReply(err))
	default:
		d.store.Append(username, response.Role, response.Content)
		text := response.Content
		if text == "" {
			text = emptyContentFallback
		}
		d.editMessage(ctx, msg.Chat.ID, placeholderID, text)
		log.Printf("[%s] Responded to %s", eventID, username)
	}
}

func (d *Dispatcher) relayImage(ctx context.Context, eventID, username string, msg *tgmodels.Message, placeholderID int, backendID string) {
	imageURL, err := d.gateway.GenerateImage(ctx, backendID, msg.Text)
	switch {
	case errors.Is(err, services.ErrEmptyResponse):
		log.Printf("[%s] Could not generate an image response to %s", eventID, username)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, emptyImageReply)
	case err != nil:
		log.Printf("[%s] Error generating image: %v", eventID, err)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, upstreamErrorReply(err))
	default:
		if _, err := d.tg.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:          msg.Chat.ID,
			Photo:           &tgmodels.InputFileString{Data: imageURL},
			ReplyParameters: &tgmodels.ReplyParameters{MessageID: msg.ID},
		}); err != nil {
			log.Printf("[%s] Failed to send image: %v", eventID, err)
			d.editMessage(ctx, msg.Chat.ID, placeholderID, upstreamErrorReply(err))
			return
		}
		// Message edits cannot swap text for media, so the placeholder goes.
		if _, err := d.tg.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    msg.Chat.ID,
			MessageID: placeholderID,
		}); err != nil {
			log.Printf("[%s] Failed to delete placeholder %d: %v", eventID, placeholderID, err)
		}
		log.Printf("[%s] Responded with an image to %s", eventID, username)
	}
}
