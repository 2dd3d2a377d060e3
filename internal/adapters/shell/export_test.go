package shell

// ForcePipes disables pseudo-terminals for e.
func ForcePipes(e *Executor) {
	e.probe.Do(func() {})
}

// ResolveEnvironment exposes resolveEnvironment for tests.
var ResolveEnvironment = resolveEnvironment
