// Package engine is the composition root: it loads the YAML configuration,
// builds the model handle, the optional agent and a completer, and exposes
// them to frontends. Building an Engine performs no network I/O.
package engine
