package command

import (
	"sort"
	"sync"
)

var (
	mu       sync.RWMutex
	commands = make(map[string]Command)
)

// Register adds a command. Called from bot setup.
func Register(c Command) {
	mu.Lock()
	defer mu.Unlock()
	commands[c.Name()] = c
}

// Get returns the command with the given name.
func Get(name string) (Command, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := commands[name]
	return c, ok
}

// All returns all registered commands, sorted by name.
func All() []Command {
	mu.RLock()
	defer mu.RUnlock()

	list := make([]Command, 0, len(commands))
	for _, c := range commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
