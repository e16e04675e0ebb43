// Package hooking lets observers attach to a running simulation without the
// simulation knowing about them. Reporting sinks are hooks.
package hooking

// HookPos names the place in the simulation lifecycle a hook fires from.
type HookPos struct {
	Name string
}

// HookCtx carries everything a hook is told about the site it fires from.
type HookCtx struct {
	// Domain is the hookable object raising the hook.
	Domain Hookable

	// Pos identifies the lifecycle stage.
	Pos *HookPos

	// Item is the subject of the hook, such as a tick snapshot.
	Item any

	// Detail holds optional auxiliary data. It may be nil.
	Detail any
}

// Hookable is an object that accepts hooks.
type Hookable interface {
	// AcceptHook registers a hook. Hooks must be registered before the
	// hookable object starts running and cannot be removed.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns the registered hooks in registration order.
	Hooks() []Hook

	// InvokeHook calls every registered hook with ctx.
	InvokeHook(ctx HookCtx)
}

// A Hook is invoked by a Hookable object.
type Hook interface {
	Func(ctx HookCtx)
}

// FuncHook adapts a function into a Hook.
type FuncHook struct {
	f func(ctx HookCtx)
}

// NewFuncHook wraps f into a Hook.
func NewFuncHook(f func(ctx HookCtx)) *FuncHook {
	return &FuncHook{f: f}
}

// Func implements Hook.
func (h *FuncHook) Func(ctx HookCtx) {
	h.f(ctx)
}

// HookableBase implements Hookable and is meant to be embedded.
type HookableBase struct {
	hookList []Hook
}

// NewHookableBase creates a HookableBase with no hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{hookList: make([]Hook, 0)}
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook. It panics if the same hook is registered
// twice.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, registered := range h.hookList {
		if registered == hook {
			panic("duplicated hook")
		}
	}

	h.hookList = append(h.hookList, hook)
}

// InvokeHook calls the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}

var _ Hookable = (*HookableBase)(nil)
