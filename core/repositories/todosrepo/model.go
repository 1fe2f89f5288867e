package todosrepo

// Todo is a single task. ID is assigned by the store and never reused;
// Text never changes after creation.
type Todo struct {
	ID        int
	Text      string
	Completed bool
}

// CreateTodo contains fields for creating a new todo.
type CreateTodo struct {
	Text string
}

// UpdateTodo sets the completed flag of an existing todo.
type UpdateTodo struct {
	ID        int
	Completed bool
}
