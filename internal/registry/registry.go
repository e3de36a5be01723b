package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

// Registry holds the set of usernames allowed to talk to the bot. It is
// loaded once at startup and never reloaded.
type Registry struct {
	users map[string]struct{}
}

type usersFile struct {
	Users []string `json:"users"`
}

// Load reads the allow-list file, a JSON object of the form
// {"users": ["alice", "bob"]}. A missing or malformed file is a startup
// error; the process must not serve events without an allow-list.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registered users file: %w", err)
	}

	var f usersFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse registered users file: %w", err)
	}

	users := make(map[string]struct{}, len(f.Users))
	for _, u := range f.Users {
		users[u] = struct{}{}
	}

	return &Registry{users: users}, nil
}

// IsAuthorized reports whether username is on the allow-list. Lookups are
// case-sensitive exact matches; an empty username is never authorized.
func (r *Registry) IsAuthorized(username string) bool {
	if username == "" {
		return false
	}
	_, ok := r.users[username]
	return ok
}
