// Package memory implements an in-memory record store for development and testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
)

// Store keeps every record in maps guarded by one mutex, so each call is
// atomic the way a single row operation is in Postgres.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]model.User
	sessions map[uuid.UUID]model.Session
	projects map[uuid.UUID]model.Project
	todos    map[uuid.UUID]model.Todo
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]model.User),
		sessions: make(map[uuid.UUID]model.Session),
		projects: make(map[uuid.UUID]model.Project),
		todos:    make(map[uuid.UUID]model.Todo),
	}
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("%w: user id %s", model.ErrDuplicate, user.ID)
	}
	for _, u := range s.users {
		if u.Email == user.Email && u.AccountStatus != model.AccountDeleted {
			return fmt.Errorf("%w: email", model.ErrDuplicate)
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email && u.AccountStatus != model.AccountDeleted {
			return &u, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[user.ID]
	if !ok {
		return model.ErrNotFound
	}
	cur.Name = user.Name
	cur.Bio = user.Bio
	cur.Theme = user.Theme
	cur.DefaultSort = user.DefaultSort
	cur.ShowCompletedTodos = user.ShowCompletedTodos
	cur.NotificationsEnabled = user.NotificationsEnabled
	cur.AccountStatus = user.AccountStatus
	cur.UpdatedAt = user.UpdatedAt
	s.users[user.ID] = cur
	return nil
}

func (s *Store) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrNotFound
	}
	u.LastLoginAt = &at
	s.users[userID] = u
	return nil
}

// --- sessions ---

func (s *Store) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return fmt.Errorf("%w: session id %s", model.ErrDuplicate, session.ID)
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Store) GetSession(ctx context.Context, sessionID uuid.UUID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &sess, nil
}

func (s *Store) RevokeSession(ctx context.Context, sessionID uuid.UUID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, model.ErrNotFound
	}
	sess.IsRevoked = true
	s.sessions[sessionID] = sess
	return &sess, nil
}

func (s *Store) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.UserID == userID && !sess.IsRevoked {
			sess.IsRevoked = true
			s.sessions[id] = sess
		}
	}
	return nil
}

// SessionsFor lists a user's sessions, oldest first.
func (s *Store) SessionsFor(userID uuid.UUID) []model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// --- projects ---

func (s *Store) CreateProject(ctx context.Context, project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[project.UserID]; !ok {
		return fmt.Errorf("project owner %s does not exist", project.UserID)
	}
	s.projects[project.ID] = *project
	return nil
}

func (s *Store) ListProjects(ctx context.Context, userID uuid.UUID) ([]model.ProjectWithStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := []model.ProjectWithStats{}
	for _, p := range s.projects {
		if p.UserID == userID && !p.IsArchived {
			list = append(list, s.withStats(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
	return list, nil
}

func (s *Store) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*model.ProjectWithStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, model.ErrNotFound
	}
	stats := s.withStats(p)
	return &stats, nil
}

func (s *Store) FindProjectByName(ctx context.Context, userID uuid.UUID, name string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *model.Project
	for _, p := range s.projects {
		if p.UserID != userID || p.Name != name {
			continue
		}
		if found == nil || p.CreatedAt.Before(found.CreatedAt) {
			p := p
			found = &p
		}
	}
	if found == nil {
		return nil, model.ErrNotFound
	}
	return found, nil
}

func (s *Store) UpdateProject(ctx context.Context, project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[project.ID]
	if !ok || cur.UserID != project.UserID {
		return model.ErrNotFound
	}
	s.projects[project.ID] = *project
	return nil
}

// DeleteProject removes the project and cascades to its todos.
func (s *Store) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return model.ErrNotFound
	}
	delete(s.projects, projectID)
	for id, t := range s.todos {
		if t.ProjectID == projectID {
			delete(s.todos, id)
		}
	}
	return nil
}

func (s *Store) withStats(p model.Project) model.ProjectWithStats {
	out := model.ProjectWithStats{Project: p}
	for _, t := range s.todos {
		if t.ProjectID != p.ID {
			continue
		}
		out.TotalTodos++
		if t.Status == model.TodoStatusDone {
			out.CompletedTodos++
		}
	}
	return out
}

// --- todos ---

func (s *Store) CreateTodo(ctx context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[todo.ProjectID]; !ok {
		return fmt.Errorf("project %s does not exist", todo.ProjectID)
	}
	s.todos[todo.ID] = cloneTodo(*todo)
	return nil
}

func (s *Store) ListTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := []model.Todo{}
	for _, t := range s.todos {
		if t.UserID != filter.UserID || t.IsArchived {
			continue
		}
		if filter.ProjectID != nil && t.ProjectID != *filter.ProjectID {
			continue
		}
		list = append(list, cloneTodo(t))
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		return a.UpdatedAt.After(b.UpdatedAt)
	})
	return list, nil
}

func (s *Store) GetTodo(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[todoID]
	if !ok || t.UserID != userID {
		return nil, model.ErrNotFound
	}
	t = cloneTodo(t)
	return &t, nil
}

func (s *Store) UpdateTodo(ctx context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.todos[todo.ID]
	if !ok || cur.UserID != todo.UserID {
		return model.ErrNotFound
	}
	s.todos[todo.ID] = cloneTodo(*todo)
	return nil
}

func (s *Store) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[todoID]
	if !ok || t.UserID != userID {
		return model.ErrNotFound
	}
	delete(s.todos, todoID)
	return nil
}

func cloneTodo(t model.Todo) model.Todo {
	t.Tags = append([]string{}, t.Tags...)
	return t
}
