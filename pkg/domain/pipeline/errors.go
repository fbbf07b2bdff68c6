package pipeline

import "fmt"

// Fatal errors short-circuit an item to the error finalize path. Channel
// errors are recorded in the per-channel status and never abort the item.

// ValidationError means the submission is missing customer identity fields
// required by every downstream step. Never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dados essenciais do cliente ausentes: %s", e.Reason)
}

// ResolutionError wraps a storage failure during customer/cart resolution.
type ResolutionError struct {
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("falha ao resolver cliente/carrinho: %v", e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// RenderError wraps a report rendering failure. Rendering is a precondition
// for every delivery, so this blocks both channels.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("falha ao gerar PDF: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ChannelError wraps a single delivery channel failure.
type ChannelError struct {
	Channel string
	Err     error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("falha no envio via %s: %v", e.Channel, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }
