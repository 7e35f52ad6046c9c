// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Keyed workspace storage

package workspace

// Store abstracts the keyed workspace storage so the in-memory map can be
// swapped for a persistent store without touching registry logic. Stores are
// not required to be thread-safe; the registry serializes access.
type Store interface {
	Put(ws *Workspace)
	Get(id string) (*Workspace, bool)
	Delete(id string)
	List() []*Workspace
	Len() int
	Clear()
}

type memoryStore struct {
	byID map[string]*Workspace
}

// NewMemoryStore returns the default in-memory store
func NewMemoryStore() Store {
	return &memoryStore{byID: make(map[string]*Workspace)}
}

func (s *memoryStore) Put(ws *Workspace) {
	s.byID[ws.ID] = ws
}

func (s *memoryStore) Get(id string) (*Workspace, bool) {
	ws, ok := s.byID[id]
	return ws, ok
}

func (s *memoryStore) Delete(id string) {
	delete(s.byID, id)
}

func (s *memoryStore) List() []*Workspace {
	out := make([]*Workspace, 0, len(s.byID))
	for _, ws := range s.byID {
		out = append(out, ws)
	}
	return out
}

func (s *memoryStore) Len() int {
	return len(s.byID)
}

func (s *memoryStore) Clear() {
	s.byID = make(map[string]*Workspace)
}
