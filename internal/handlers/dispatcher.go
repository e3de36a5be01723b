package handlers

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"meowbot/internal/models"
	"meowbot/internal/registry"
	"meowbot/internal/store"
)

// transport is the slice of the Telegram client the dispatcher needs.
// *bot.Bot satisfies it.
type transport interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*tgmodels.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*tgmodels.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*tgmodels.Message, error)
	GetFile(ctx context.Context, params *bot.GetFileParams) (*tgmodels.File, error)
	FileDownloadLink(f *tgmodels.File) string
}

// completionGateway is the slice of the OpenAI service the dispatcher needs.
type completionGateway interface {
	CompleteChat(ctx context.Context, backendID string, transcript []models.ChatMessage) (models.ChatMessage, error)
	GenerateImage(ctx context.Context, backendID, prompt string) (string, error)
	CompleteVision(ctx context.Context, imageURL, caption string) (models.ChatMessage, error)
}

// Dispatcher routes inbound Telegram events: it authorizes the sender,
// mutates the conversation store, calls the completion gateway and manages
// the placeholder-message lifecycle. It holds no per-event state of its own.
type Dispatcher struct {
	registry *registry.Registry
	store    *store.ConversationStore
	gateway  completionGateway
	tg       transport
}

func NewDispatcher(reg *registry.Registry, st *store.ConversationStore, gw completionGateway, tg transport) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		store:    st,
		gateway:  gw,
		tg:       tg,
	}
}

// Register wires the command and model-selection handlers into the bot.
// Free-form text and photos fall through to HandleDefault.
func (d *Dispatcher) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, d.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/newchat", bot.MatchTypeExact, d.HandleNewChat)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/setmodel", bot.MatchTypeExact, d.HandleSetModel)
	for _, label := range models.Labels() {
		b.RegisterHandler(bot.HandlerTypeMessageText, string(label), bot.MatchTypeExact, d.HandleModelSelection)
	}
}

// HandleDefault catches everything the registered handlers did not match:
// free-form text enters the chat/image path, photos enter the vision path.
func (d *Dispatcher) HandleDefault(ctx context.Context, b *bot.Bot, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	if len(update.Message.Photo) > 0 {
		d.HandlePhoto(ctx, b, update)
		return
	}
	if update.Message.Text != "" {
		d.HandleText(ctx, b, update)
	}
}

// authorize runs the allow-list check that guards every event kind. On
// rejection it sends the fixed reply and the caller must stop processing.
func (d *Dispatcher) authorize(ctx context.Context, msg *tgmodels.Message) (string, bool) {
	var username, first string
	if msg.From != nil {
		username = msg.From.Username
		first = msg.From.FirstName
	}

	if !d.registry.IsAuthorized(username) {
		log.Printf("User %q is not registered", username)
		d.reply(ctx, msg.Chat.ID, rejectionReply(first))
		return "", false
	}
	return username, true
}

func firstName(msg *tgmodels.Message) string {
	if msg.From == nil {
		return ""
	}
	return msg.From.FirstName
}

// reply is best effort: a failed send has nowhere else to go.
func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) {
	if _, err := d.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

func (d *Dispatcher) editMessage(ctx context.Context, chatID int64, messageID int, text string) {
	if _, err := d.tg.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}); err != nil {
		log.Printf("Failed to edit message %d: %v", messageID, err)
	}
}
