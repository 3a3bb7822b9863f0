package businessflow

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alfurqan/academy-admin/models"
	"github.com/alfurqan/academy-admin/utils"
)

// DashboardSession holds one admin's table workspaces. All workspace state
// is mutated under the session lock; store snapshots are copies, so
// derivation passes inside the lock never block other sessions.
type DashboardSession struct {
	ID string

	mu      sync.Mutex
	tutors  *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]
	courses *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]
	users   *models.TableWorkspace[models.UserFilter, models.UserSortKey]

	touchedAt time.Time
}

func newDashboardSession(pageSize int) *DashboardSession {
	return &DashboardSession{
		ID:        uuid.New().String(),
		tutors:    models.NewTableWorkspace(models.NewTutorFilter(), models.TutorSortName, pageSize),
		courses:   models.NewTableWorkspace(models.NewCourseFilter(), models.CourseSortTitle, pageSize),
		users:     models.NewTableWorkspace(models.NewUserFilter(), models.UserSortName, pageSize),
		touchedAt: utils.UTCNow(),
	}
}

// WithTutors runs fn with exclusive access to the tutor workspace.
func (s *DashboardSession) WithTutors(fn func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = utils.UTCNow()
	s.tutors.Touch()
	return fn(s.tutors)
}

// WithCourses runs fn with exclusive access to the course workspace.
func (s *DashboardSession) WithCourses(fn func(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = utils.UTCNow()
	s.courses.Touch()
	return fn(s.courses)
}

// WithUsers runs fn with exclusive access to the user workspace.
func (s *DashboardSession) WithUsers(fn func(w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = utils.UTCNow()
	s.users.Touch()
	return fn(s.users)
}

// SessionRegistry tracks live dashboard sessions and evicts idle ones.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*DashboardSession
	idleTTL  time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionRegistry creates a registry with the given idle TTL and starts
// the background sweep.
func NewSessionRegistry(idleTTL time.Duration) *SessionRegistry {
	if idleTTL <= 0 {
		idleTTL = utils.WorkspaceIdleTTL
	}
	r := &SessionRegistry{
		sessions: make(map[string]*DashboardSession),
		idleTTL:  idleTTL,
		stop:     make(chan struct{}),
	}
	go r.sweep()
	return r
}

// Create registers a new session with the given default page size.
func (r *SessionRegistry) Create(pageSize int) *DashboardSession {
	session := newDashboardSession(pageSize)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return session
}

// Get returns the session with the given id, or ErrSessionNotFound if it
// was never created or has been evicted. Responses for evicted sessions
// are safely discarded by the caller.
func (r *SessionRegistry) Get(id string) (*DashboardSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops the background sweep.
func (r *SessionRegistry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *SessionRegistry) sweep() {
	ticker := time.NewTicker(utils.WorkspaceSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.evictIdle()
		}
	}
}

func (r *SessionRegistry) evictIdle() {
	cutoff := utils.UTCNow().Add(-r.idleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.sessions {
		session.mu.Lock()
		idle := session.touchedAt.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(r.sessions, id)
		}
	}
}
