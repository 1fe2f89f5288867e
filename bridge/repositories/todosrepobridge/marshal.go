package todosrepobridge

import "github.com/jrazmi/todos/core/repositories/todosrepo"

func MarshalToBridge(todo todosrepo.Todo) Todo {
	return Todo{
		ID:        todo.ID,
		Text:      todo.Text,
		Completed: todo.Completed,
	}
}

// MarshalListToBridge converts a list of core models to bridge models. The
// result is never nil so an empty list encodes as [].
func MarshalListToBridge(todos []todosrepo.Todo) []Todo {
	bridgeTodos := make([]Todo, len(todos))
	for i, todo := range todos {
		bridgeTodos[i] = MarshalToBridge(todo)
	}
	return bridgeTodos
}

func MarshalCreateToRepository(input CreateTodoInput) todosrepo.CreateTodo {
	return todosrepo.CreateTodo{
		Text: input.Text,
	}
}

func MarshalUpdateToRepository(input UpdateTodoInput) todosrepo.UpdateTodo {
	return todosrepo.UpdateTodo{
		ID:        input.ID,
		Completed: input.Completed,
	}
}
