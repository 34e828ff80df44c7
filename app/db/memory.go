package db

import "sync"

type InMemoryStorage struct {
	sessions map[string]Session
	mx       sync.RWMutex
}

func (d *InMemoryStorage) GetSession(id string) (Session, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	s, ok := d.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (d *InMemoryStorage) SaveSession(s Session) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.sessions[s.ID] = s
	return nil
}

func (d *InMemoryStorage) DeleteSession(id string) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	delete(d.sessions, id)
	return nil
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{sessions: make(map[string]Session)}
}
