package store

import (
	"sync"

	"meowbot/internal/models"
)

// ConversationStore owns the per-user transcripts and model selections.
// Everything lives in memory for the process lifetime only; nothing is
// persisted across restarts.
type ConversationStore struct {
	mu          sync.Mutex
	transcripts map[string][]models.ChatMessage
	selections  map[string]models.ModelLabel
	userLocks   map[string]*sync.Mutex
}

func New() *ConversationStore {
	return &ConversationStore{
		transcripts: make(map[string][]models.ChatMessage),
		selections:  make(map[string]models.ModelLabel),
		userLocks:   make(map[string]*sync.Mutex),
	}
}

// Append adds one entry to the user's transcript, creating the transcript on
// first use. There is no size limit.
func (s *ConversationStore) Append(username, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcripts[username] = append(s.transcripts[username], models.ChatMessage{
		Role:    role,
		Content: content,
	})
}

// Clear truncates the user's transcript to empty. The model selection is
// untouched. No-op when the user has no transcript yet.
func (s *ConversationStore) Clear(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.transcripts[username]; ok {
		s.transcripts[username] = t[:0]
	}
}

// Transcript returns a copy of the user's current transcript.
func (s *ConversationStore) Transcript(username string) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.transcripts[username]
	out := make([]models.ChatMessage, len(t))
	copy(out, t)
	return out
}

// Model returns the user's stored selection, or the catalog default before
// the first SetModel.
func (s *ConversationStore) Model(username string) models.ModelLabel {
	s.mu.Lock()
	defer s.mu.Unlock()

	if label, ok := s.selections[username]; ok {
		return label
	}
	return models.DefaultModel
}

// SetModel stores the selection and clears the user's transcript. Switching
// models discards prior context so two models never share one history.
func (s *ConversationStore) SetModel(username string, label models.ModelLabel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections[username] = label
	if t, ok := s.transcripts[username]; ok {
		s.transcripts[username] = t[:0]
	}
}

// UserLock returns the mutex serializing one user's completion turns, so a
// later message cannot interleave its appends with an earlier in-flight one.
// Created lazily per username and kept for the process lifetime.
func (s *ConversationStore) UserLock(username string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.userLocks[username]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[username] = l
	}
	return l
}
