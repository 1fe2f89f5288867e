// Package todosrepo holds the business rules for todos on top of a Storer.
package todosrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrazmi/todos/sdk/logger"
)

var (
	ErrNotFound     = errors.New("todo not found")
	ErrTextRequired = errors.New("text is required")
)

// Storer defines the data storage interface for Todo.
type Storer interface {
	// List returns every todo in insertion order. The slice is never nil.
	List(ctx context.Context) ([]Todo, error)
	// Create appends a todo with a fresh id and Completed set to false.
	Create(ctx context.Context, input CreateTodo) (Todo, error)
	// SetCompleted sets the completed flag, returning ErrNotFound for unknown ids.
	SetCompleted(ctx context.Context, id int, completed bool) (Todo, error)
	// Delete removes a todo, returning ErrNotFound for unknown ids.
	Delete(ctx context.Context, id int) error
}

// Repository provides access to todo storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Todo repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

func (r *Repository) List(ctx context.Context) ([]Todo, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("todo repository list: %w", err)
	}

	return records, nil
}

// Create stores a new todo. Text is kept exactly as given but must contain
// something other than whitespace.
func (r *Repository) Create(ctx context.Context, input CreateTodo) (Todo, error) {
	if strings.TrimSpace(input.Text) == "" {
		return Todo{}, fmt.Errorf("todo repository create: %w", ErrTextRequired)
	}

	record, err := r.storer.Create(ctx, input)
	if err != nil {
		return Todo{}, fmt.Errorf("todo repository create: %w", err)
	}

	r.log.InfoContext(ctx, "created todo", "id", record.ID)
	return record, nil
}

// Toggle sets Completed to the supplied value. It never flips the current
// value; callers send the state they want.
func (r *Repository) Toggle(ctx context.Context, input UpdateTodo) (Todo, error) {
	record, err := r.storer.SetCompleted(ctx, input.ID, input.Completed)
	if err != nil {
		return Todo{}, fmt.Errorf("todo repository toggle id[%d]: %w", input.ID, err)
	}

	r.log.InfoContext(ctx, "toggled todo", "id", record.ID, "completed", record.Completed)
	return record, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("todo repository delete id[%d]: %w", id, err)
	}

	r.log.InfoContext(ctx, "deleted todo", "id", id)
	return nil
}
