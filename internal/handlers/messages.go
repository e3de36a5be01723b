package handlers

import (
	"fmt"

	"meowbot/internal/models"
)

// User-visible replies. The cat persona is part of the bot's contract; keep
// the strings byte-identical when touching this file.
const (
	placeholderText      = "🐈🤔‍Mrrrrrrr..."
	newChatReply         = "Meow! 🐈 New chat created!"
	selectModelPrompt    = "Meow! 😸 Select the model"
	emptyResponseReply   = "Meow! 😿 I cannot generate a response"
	emptyImageReply      = "Meow! 😿 I cannot generate an image"
	noPhotoURLReply      = "Meow! 😿 could not get photo url"
	badPhotoReply        = "Meow! 😿 could not read the photo"
	whoAreYouReply       = "😾 Who are you?!"
	defaultCaption       = "Describe this image"
	emptyContentFallback = "-"
)

func greetingReply(first string) string {
	return fmt.Sprintf("Meowello 😺 %s!", first)
}

func rejectionReply(first string) string {
	return fmt.Sprintf("👿 %s, you are not registered", first)
}

func modelSelectedReply(label models.ModelLabel) string {
	return fmt.Sprintf("Meow! 😸 Selected model: %s", label)
}

func upstreamErrorReply(err error) string {
	return "Meow! 😿 An error happened:\n" + err.Error()
}
