// Package llm provides a provider-neutral abstraction layer for Large Language Model (LLM) APIs.
//
// This package defines the common types, the Provider interface, and the error
// taxonomy shared by the vendor integrations (OpenAI, Anthropic, Cohere, Ollama)
// so the rest of the codebase is not coupled to any specific SDK.
//
// # Core Concepts
//
//  1. Messages: The Message type is a role (user, assistant, system) and a text body.
//     An ordered slice of messages is a conversation.
//
//  2. Options: The Options bag carries the per-call settings every vendor understands
//     (max tokens, temperature). Unset values fall back to the vendor's defaults.
//
//  3. Provider Interface: Complete, Chat and ValidateAPIKey. Each vendor package
//     implements it by delegating to one vendor request per call.
//
//  4. Middleware: The Middleware interface wraps calls with cross-cutting concerns
//     such as logging or advisory rate limiting, see WrapWithMiddleware.
//
//  5. Errors: The Error type collapses vendor failures into one provider error that
//     carries the vendor name and the original error. Empty API keys are reported
//     at construction with an invalid-credential error.
//
// Usage Example
//
//	p, err := openai.NewOpenAIClient(apiKey, "", "gpt-4", "", logger)
//	if err != nil {
//	    return err
//	}
//
//	p = llm.WrapWithMiddleware(p, loggingMiddleware)
//
//	text, err := p.Chat(ctx, []llm.Message{
//	    llm.NewTextMessage(llm.RoleSystem, "You are terse."),
//	    llm.NewTextMessage(llm.RoleUser, "Hello!"),
//	}, llm.Options{})
//
// # Extension Points
//
// To add a new LLM provider:
//  1. Implement the Provider interface
//  2. Reject an empty API key with NewInvalidCredentialError
//  3. Wrap vendor failures with NewProviderError
//  4. Register the provider name in ProviderRegistry and in the ai package factory
package llm
