package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"flyer/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrFlyerNotFound   = errors.New("flyer not found")
	ErrUnknownSlot     = errors.New("unknown slot")
	ErrInvalidFontSize = errors.New("font size must be positive")
)

// Store keeps flyer sessions in memory and, when a file is configured,
// mirrors them to disk as JSON after every write.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]models.FlyerSession
	file     string
	now      func() time.Time
}

// New opens a store. An empty file keeps sessions in memory only.
func New(file string) (*Store, error) {
	s := &Store{
		sessions: make(map[string]models.FlyerSession),
		file:     file,
		now:      time.Now,
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if s.file == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.file); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(s.file), 0o755); err != nil {
			return errors.Wrap(err, "create storage dir")
		}
		return os.WriteFile(s.file, []byte("{}"), 0644)
	}

	data, err := os.ReadFile(s.file)
	if err != nil {
		return errors.Wrap(err, "read storage file")
	}

	if len(data) == 0 {
		data = []byte("{}")
	}

	if err := json.Unmarshal(data, &s.sessions); err != nil {
		return errors.Wrap(err, "decode storage file")
	}
	return nil
}

// Save stores a new session for the flyer, assigning an id and creation time
// when missing.
func (s *Store) Save(flyer models.Flyer) (models.FlyerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if flyer.ID == "" {
		flyer.ID = uuid.New().String()
	}
	if flyer.CreatedAt.IsZero() {
		flyer.CreatedAt = s.now()
	}

	session := models.FlyerSession{
		Flyer:     flyer,
		Edits:     map[string]string{},
		FontSizes: map[string]int{},
		UpdatedAt: flyer.CreatedAt,
	}
	if err := s.commit(flyer.ID, &session); err != nil {
		return models.FlyerSession{}, err
	}
	return clone(session), nil
}

func (s *Store) Get(id string) (models.FlyerSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return models.FlyerSession{}, errors.Wrapf(ErrFlyerNotFound, "id %s", id)
	}
	return clone(session), nil
}

// List returns all sessions, newest first.
func (s *Store) List() []models.FlyerSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FlyerSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, clone(session))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Flyer.CreatedAt.After(out[j].Flyer.CreatedAt)
	})
	return out
}

// SetText overrides the text of one slot.
func (s *Store) SetText(id, slot, text string) (models.FlyerSession, error) {
	return s.update(id, slot, func(session *models.FlyerSession) error {
		session.Edits[slot] = text
		return nil
	})
}

// SetFontSize overrides the font size of one slot.
func (s *Store) SetFontSize(id, slot string, size int) (models.FlyerSession, error) {
	return s.update(id, slot, func(session *models.FlyerSession) error {
		if size <= 0 {
			return errors.Wrapf(ErrInvalidFontSize, "got %d", size)
		}
		session.FontSizes[slot] = size
		return nil
	})
}

// Reset drops the text and font size overrides of one slot.
func (s *Store) Reset(id, slot string) (models.FlyerSession, error) {
	return s.update(id, slot, func(session *models.FlyerSession) error {
		delete(session.Edits, slot)
		delete(session.FontSizes, slot)
		return nil
	})
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return errors.Wrapf(ErrFlyerNotFound, "id %s", id)
	}
	return s.commit(id, nil)
}

func (s *Store) update(id, slot string, fn func(*models.FlyerSession) error) (models.FlyerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return models.FlyerSession{}, errors.Wrapf(ErrFlyerNotFound, "id %s", id)
	}
	if _, ok := session.Flyer.Template.Element(slot); !ok {
		return models.FlyerSession{}, errors.Wrapf(ErrUnknownSlot, "%q in template %s", slot, session.Flyer.Template.ID)
	}

	session = clone(session)
	if err := fn(&session); err != nil {
		return models.FlyerSession{}, err
	}
	session.UpdatedAt = s.now()

	if err := s.commit(id, &session); err != nil {
		return models.FlyerSession{}, err
	}
	return clone(session), nil
}

// commit stores next under id, or deletes id when next is nil, and writes the
// file. A failed write restores the previous entry. mu must be held.
func (s *Store) commit(id string, next *models.FlyerSession) error {
	prev, existed := s.sessions[id]
	if next == nil {
		delete(s.sessions, id)
	} else {
		s.sessions[id] = *next
	}

	if err := s.saveToFile(); err != nil {
		if existed {
			s.sessions[id] = prev
		} else {
			delete(s.sessions, id)
		}
		return err
	}
	return nil
}

// saveToFile must be called with mu held.
func (s *Store) saveToFile() error {
	if s.file == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode sessions")
	}
	if err := os.WriteFile(s.file, data, 0644); err != nil {
		return errors.Wrap(err, "write storage file")
	}
	return nil
}

// clone copies the override maps so callers never share them with the store.
func clone(session models.FlyerSession) models.FlyerSession {
	edits := make(map[string]string, len(session.Edits))
	for k, v := range session.Edits {
		edits[k] = v
	}
	sizes := make(map[string]int, len(session.FontSizes))
	for k, v := range session.FontSizes {
		sizes[k] = v
	}
	session.Edits = edits
	session.FontSizes = sizes
	return session
}
