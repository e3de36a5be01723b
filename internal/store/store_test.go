package store

import (
	"fmt"
	"sync"
	"testing"

	"meowbot/internal/models"
)

func TestAppendAndTranscript(t *testing.T) {
	s := New()

	s.Append("alice", models.RoleUser, "hello")
	s.Append("alice", models.RoleAssistant, "hi there")

	got := s.Transcript("alice")
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].Role != models.RoleUser || got[0].Content != "hello" {
		t.Errorf("Unexpected first entry: %+v", got[0])
	}
	if got[1].Role != models.RoleAssistant || got[1].Content != "hi there" {
		t.Errorf("Unexpected second entry: %+v", got[1])
	}
}

func TestTranscript_ReturnsCopy(t *testing.T) {
	s := New()
	s.Append("alice", models.RoleUser, "hello")

	got := s.Transcript("alice")
	got[0].Content = "mutated"

	if s.Transcript("alice")[0].Content != "hello" {
		t.Error("Mutating the returned transcript leaked into the store")
	}
}

func TestClear(t *testing.T) {
	s := New()

	s.Append("alice", models.RoleUser, "one")
	s.Append("alice", models.RoleAssistant, "two")
	s.Clear("alice")

	if got := s.Transcript("alice"); len(got) != 0 {
		t.Errorf("Expected empty transcript after Clear, got %d entries", len(got))
	}

	// Clearing a user without a transcript is a no-op.
	s.Clear("bob")
	if got := s.Transcript("bob"); len(got) != 0 {
		t.Errorf("Expected empty transcript for bob, got %d entries", len(got))
	}
}

func TestModel_DefaultBeforeSet(t *testing.T) {
	s := New()

	if got := s.Model("alice"); got != models.DefaultModel {
		t.Errorf("Expected default model %q, got %q", models.DefaultModel, got)
	}
}

func TestSetModel_StoresSelection(t *testing.T) {
	s := New()

	s.SetModel("alice", models.ModelGPT4Turbo)

	if got := s.Model("alice"); got != models.ModelGPT4Turbo {
		t.Errorf("Expected %q, got %q", models.ModelGPT4Turbo, got)
	}
}

func TestSetModel_ClearsTranscript(t *testing.T) {
	s := New()

	for i := 0; i < 4; i++ {
		s.Append("alice", models.RoleUser, fmt.Sprintf("msg %d", i))
	}
	s.SetModel("alice", models.ModelDALLE3)

	if got := s.Transcript("alice"); len(got) != 0 {
		t.Errorf("Expected empty transcript after SetModel, got %d entries", len(got))
	}
	if got := s.Model("alice"); got != models.ModelDALLE3 {
		t.Errorf("Expected selection to survive the clear, got %q", got)
	}
}

func TestClear_KeepsSelection(t *testing.T) {
	s := New()

	s.SetModel("alice", models.ModelGPT4Turbo)
	s.Append("alice", models.RoleUser, "hello")
	s.Clear("alice")

	if got := s.Model("alice"); got != models.ModelGPT4Turbo {
		t.Errorf("Expected selection %q after Clear, got %q", models.ModelGPT4Turbo, got)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Append("alice", models.RoleUser, fmt.Sprintf("msg %d", n))
		}(i)
	}
	wg.Wait()

	if got := s.Transcript("alice"); len(got) != 50 {
		t.Errorf("Expected 50 entries, got %d", len(got))
	}
}

func TestUserLock_SameMutexPerUser(t *testing.T) {
	s := New()

	if s.UserLock("alice") != s.UserLock("alice") {
		t.Error("Expected the same mutex for the same username")
	}
	if s.UserLock("alice") == s.UserLock("bob") {
		t.Error("Expected distinct mutexes for distinct usernames")
	}
}
