// Package todosmemstore keeps todos in process memory. Contents are lost when
// the process exits.
package todosmemstore

import (
	"context"
	"sync"

	"github.com/jrazmi/todos/core/repositories/todosrepo"
	"github.com/jrazmi/todos/sdk/logger"
)

type Store struct {
	log *logger.Logger

	mu     sync.Mutex
	todos  []todosrepo.Todo
	nextID int
}

func NewStore(log *logger.Logger) *Store {
	return &Store{
		log:    log,
		todos:  make([]todosrepo.Todo, 0),
		nextID: 1,
	}
}

func (s *Store) List(ctx context.Context) ([]todosrepo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]todosrepo.Todo, len(s.todos))
	copy(out, s.todos)
	return out, nil
}

func (s *Store) Create(ctx context.Context, input todosrepo.CreateTodo) (todosrepo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := todosrepo.Todo{
		ID:        s.nextID,
		Text:      input.Text,
		Completed: false,
	}
	s.nextID++
	s.todos = append(s.todos, todo)

	s.log.DebugContext(ctx, "todo stored", "id", todo.ID, "count", len(s.todos))

	return todo, nil
}

func (s *Store) SetCompleted(ctx context.Context, id int, completed bool) (todosrepo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return todosrepo.Todo{}, todosrepo.ErrNotFound
	}

	s.todos[i].Completed = completed
	return s.todos[i], nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return todosrepo.ErrNotFound
	}

	s.todos = append(s.todos[:i], s.todos[i+1:]...)

	s.log.DebugContext(ctx, "todo removed", "id", id, "count", len(s.todos))
	return nil
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
