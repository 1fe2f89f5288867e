package todosrepobridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownID reports an update body whose id is missing or not an integer,
// so it cannot refer to any todo.
var ErrUnknownID = errors.New("id does not refer to a todo")

// Todo is the wire form of a todo.
type Todo struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// CreateTodoInput is the POST body.
type CreateTodoInput struct {
	Text string `json:"text"`
}

// Decode implements web.Decoder.
func (c *CreateTodoInput) Decode(data []byte) error {
	if err := validateBody(createTodoSchema, data); err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// UpdateTodoInput is the PUT body.
type UpdateTodoInput struct {
	ID        int  `json:"id"`
	Completed bool `json:"completed"`
}

// Decode implements web.Decoder.
func (u *UpdateTodoInput) Decode(data []byte) error {
	if err := validateBody(updateTodoSchema, data); err != nil {
		var se *SchemaError
		if errors.As(err, &se) && validateBody(todoIDSchema, data) != nil {
			return fmt.Errorf("%w: %w", ErrUnknownID, err)
		}
		return err
	}
	return json.Unmarshal(data, u)
}
