package backend

import (
	"log/slog"
	"sync"
)

var (
	loggerHookMu sync.Mutex
	loggerHooks  []func(*slog.Logger)
	activeLogger *slog.Logger
)

// RegisterLoggerHook installs a callback invoked whenever the
// application configures a logger via the root package. Backend
// packages call this from init() so logging reaches them without the
// root package importing them. The hook is invoked immediately when a
// logger is already configured.
func RegisterLoggerHook(fn func(*slog.Logger)) {
	loggerHookMu.Lock()
	defer loggerHookMu.Unlock()
	loggerHooks = append(loggerHooks, fn)
	if activeLogger != nil {
		fn(activeLogger)
	}
}

// PropagateLogger fans a logger out to every registered hook.
func PropagateLogger(l *slog.Logger) {
	loggerHookMu.Lock()
	defer loggerHookMu.Unlock()
	activeLogger = l
	for _, fn := range loggerHooks {
		fn(l)
	}
}
