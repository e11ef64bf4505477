// Package llm describes how to reach a language-model deployment.
//
// [Config] is the plain, YAML-friendly description (provider kind, model
// name, verbosity, base URL). [New] validates and normalizes it into an
// immutable [LLM] handle that completers and agents consume. Building a
// handle never contacts the inference server; connectivity problems surface
// only when a completer issues a request.
package llm
