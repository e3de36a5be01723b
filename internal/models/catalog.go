package models

// Modality says whether a catalog entry targets the chat-completion endpoint
// or the image-generation endpoint.
type Modality string

const (
	ModalityChat  Modality = "chat"
	ModalityImage Modality = "image"
)

// ModelLabel is the human-facing model name shown on the selection keyboard.
type ModelLabel string

const (
	ModelGPT35     ModelLabel = "gpt-3.5"
	ModelGPT4Turbo ModelLabel = "gpt-4-turbo"
	ModelDALLE3    ModelLabel = "image (dall-e-3)"
)

// DefaultModel is what a user gets before their first /setmodel.
const DefaultModel = ModelGPT35

// CatalogEntry maps a label to the backend model id sent upstream.
type CatalogEntry struct {
	BackendID string
	Modality  Modality
}

var catalog = map[ModelLabel]CatalogEntry{
	ModelGPT35:     {BackendID: "gpt-3.5-turbo", Modality: ModalityChat},
	ModelGPT4Turbo: {BackendID: "gpt-4-1106-preview", Modality: ModalityChat},
	ModelDALLE3:    {BackendID: "dall-e-3", Modality: ModalityImage},
}

var labelOrder = []ModelLabel{ModelGPT35, ModelGPT4Turbo, ModelDALLE3}

// Labels returns the catalog labels in declaration order.
func Labels() []ModelLabel {
	out := make([]ModelLabel, len(labelOrder))
	copy(out, labelOrder)
	return out
}

// Resolve looks up a label. Labels only ever come from the catalog's own key
// set (the selection keyboard), so an unknown label falls back to the default
// entry instead of erroring.
func Resolve(label ModelLabel) CatalogEntry {
	if e, ok := catalog[label]; ok {
		return e
	}
	return catalog[DefaultModel]
}
