package services

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"guestdesk-backend/models"
)

// ScopeStore is one named storage scope for staff sessions. The panel keeps
// two: a durable scope backing "remember me" logins and an ephemeral scope
// for session-only logins. Callers depend only on this interface.
type ScopeStore interface {
	Get(id string) (*models.StaffSession, error)
	Put(session *models.StaffSession) error
	Delete(id string) error
}

// SessionStore resolves sessions across both scopes, ephemeral first — the
// same precedence the panel always had between session-only and remembered
// credentials.
type SessionStore struct {
	Ephemeral ScopeStore
	Durable   ScopeStore

	log *zap.SugaredLogger
}

func NewSessionStore(ephemeral, durable ScopeStore, log *zap.SugaredLogger) *SessionStore {
	return &SessionStore{Ephemeral: ephemeral, Durable: durable, log: log}
}

// Get returns the session with the given id, checking the ephemeral scope
// before the durable one. Expired sessions are cleared on access and reported
// as missing.
func (s *SessionStore) Get(id string) (*models.StaffSession, error) {
	for _, scope := range []ScopeStore{s.Ephemeral, s.Durable} {
		sess, err := scope.Get(id)
		if err != nil {
			return nil, err
		}
		if sess == nil {
			continue
		}
		if !sess.Valid(time.Now()) {
			s.log.Infow("clearing expired session", "session_id", id, "scope", sess.Scope)
			_ = s.Clear(id)
			return nil, nil
		}
		return sess, nil
	}
	return nil, nil
}

// Put stores the session in the scope named by session.Scope.
func (s *SessionStore) Put(session *models.StaffSession) error {
	if session.Scope == models.ScopeDurable {
		return s.Durable.Put(session)
	}
	session.Scope = models.ScopeEphemeral
	return s.Ephemeral.Put(session)
}

// Clear removes the session from both scopes, mirroring the all-storages
// wipe the panel performs on a 401.
func (s *SessionStore) Clear(id string) error {
	err1 := s.Ephemeral.Delete(id)
	err2 := s.Durable.Delete(id)
	if err1 != nil {
		return err1
	}
	return err2
}

// ---------------------------------------------------------------------------
// Ephemeral scope: in-memory, lost on restart.
// ---------------------------------------------------------------------------

type MemoryScopeStore struct {
	mu       sync.RWMutex
	sessions map[string]models.StaffSession
}

func NewMemoryScopeStore() *MemoryScopeStore {
	return &MemoryScopeStore{sessions: make(map[string]models.StaffSession)}
}

func (m *MemoryScopeStore) Get(id string) (*models.StaffSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := sess
	return &copied, nil
}

func (m *MemoryScopeStore) Put(session *models.StaffSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *MemoryScopeStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// ---------------------------------------------------------------------------
// Durable scope: database-backed, survives restarts.
// ---------------------------------------------------------------------------

type DBScopeStore struct {
	DB *gorm.DB
}

func NewDBScopeStore(db *gorm.DB) *DBScopeStore {
	return &DBScopeStore{DB: db}
}

func (d *DBScopeStore) Get(id string) (*models.StaffSession, error) {
	var sess models.StaffSession
	err := d.DB.Where("id = ?", id).First(&sess).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (d *DBScopeStore) Put(session *models.StaffSession) error {
	return d.DB.Save(session).Error
}

func (d *DBScopeStore) Delete(id string) error {
	return d.DB.Where("id = ?", id).Delete(&models.StaffSession{}).Error
}

// PurgeExpired removes durable sessions whose tokens lapsed before cutoff.
// Run at startup so restarts do not accumulate dead rows.
func (d *DBScopeStore) PurgeExpired(cutoff time.Time) error {
	return d.DB.Where("expires_at < ?", cutoff).Delete(&models.StaffSession{}).Error
}
