package theme

import (
	"slices"
	"sync"
)

var globalManager = &manager{
	themes: make(map[string]Theme),
}

type manager struct {
	mu           sync.RWMutex
	themes       map[string]Theme
	order        []string
	currentName  string
	currentTheme Theme
}

// RegisterTheme adds a theme to the registry, replacing one of the same name.
// The first registered theme becomes the default.
func RegisterTheme(name string, t Theme) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	if _, ok := globalManager.themes[name]; !ok {
		globalManager.order = append(globalManager.order, name)
	}
	globalManager.themes[name] = t
	if globalManager.currentTheme == nil {
		globalManager.currentName = name
		globalManager.currentTheme = t
	}
	if globalManager.currentName == name {
		globalManager.currentTheme = t
	}
}

// SetTheme switches to a registered theme by name.
// Returns true if the theme was found and set.
func SetTheme(name string) bool {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	if t, ok := globalManager.themes[name]; ok {
		globalManager.currentName = name
		globalManager.currentTheme = t
		return true
	}
	return false
}

// Current returns the active theme.
func Current() Theme {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.currentTheme
}

// CurrentName returns the name of the active theme.
func CurrentName() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.currentName
}

// Available returns all registered theme names in registration order.
func Available() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return slices.Clone(globalManager.order)
}

// CycleTheme switches to the next theme in registration order.
// Returns the name of the new active theme.
func CycleTheme() string {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	if len(globalManager.order) == 0 {
		return ""
	}
	currentIdx := max(slices.Index(globalManager.order, globalManager.currentName), 0)
	nextName := globalManager.order[(currentIdx+1)%len(globalManager.order)]
	globalManager.currentName = nextName
	globalManager.currentTheme = globalManager.themes[nextName]
	return nextName
}

// reset clears the registry for tests.
func reset() {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.themes = make(map[string]Theme)
	globalManager.order = nil
	globalManager.currentName = ""
	globalManager.currentTheme = nil
}
