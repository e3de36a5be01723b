package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"meowbot/internal/services"
)

// HandlePhoto relays an inbound photo through the fixed vision model. The
// exchange is single-turn and never touches the conversation transcript.
func (d *Dispatcher) HandlePhoto(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
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
		log.Printf("Cannot find username on photo message %d", msg.ID)
		d.reply(ctx, msg.Chat.ID, whoAreYouReply)
		return
	}

	eventID := uuid.NewString()[:8]
	log.Printf("[%s] Got a photo from %s", eventID, username)

	placeholderID, ok := d.sendPlaceholder(ctx, eventID, msg)
	if !ok {
		return
	}

	// Telegram delivers several resolutions; the last one is the largest.
	var fileID string
	if len(msg.Photo) > 0 {
		fileID = msg.Photo[len(msg.Photo)-1].FileID
	}
	if fileID == "" {
		log.Printf("[%s] Photo message carried no file reference", eventID)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, badPhotoReply)
		return
	}

	file, err := d.tg.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		log.Printf("[%s] Could not get photo url: %v", eventID, err)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, noPhotoURLReply)
		return
	}
	link := d.tg.FileDownloadLink(file)
	if link == "" {
		log.Printf("[%s] Could not get photo url", eventID)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, noPhotoURLReply)
		return
	}

	caption := msg.Caption
	if caption == "" {
		caption = defaultCaption
	}

	response, err := d.gateway.CompleteVision(ctx, link, caption)
	switch {
	case errors.Is(err, services.ErrEmptyResponse):
		log.Printf("[%s] Could not generate a response to %s", eventID, username)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, emptyResponseReply)
	case err != nil:
		log.Printf("[%s] Error in getting photo or generating response: %v", eventID, err)
		d.editMessage(ctx, msg.Chat.ID, placeholderID, upstreamErrorReply(err))
	default:
		text := response.Content
		if text == "" {
			text = emptyContentFallback
		}
		d.editMessage(ctx, msg.Chat.ID, placeholderID, text)
		log.Printf("[%s] Responded to %s", eventID, username)
	}
}
