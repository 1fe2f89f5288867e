// Package todosrepobridge exposes the todo repository over HTTP.
package todosrepobridge

import (
	"github.com/jrazmi/todos/core/repositories/todosrepo"
	"github.com/jrazmi/todos/sdk/logger"
)

type bridge struct {
	log            *logger.Logger
	todoRepository *todosrepo.Repository
}

func newBridge(log *logger.Logger, todoRepository *todosrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		todoRepository: todoRepository,
	}
}
