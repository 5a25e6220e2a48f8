// Package greet builds the greeting printed by the hello command.
package greet

import (
	"fmt"
	"strings"
)

// DefaultName is greeted when no name is given.
const DefaultName = "World"

// Message returns "Hello <name>!". A blank name greets DefaultName.
func Message(name string) string {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	return fmt.Sprintf("Hello %s!", name)
}
