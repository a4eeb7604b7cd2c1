// Package transport sketches the boundary between the rate engine and a
// chat bot front end. Command parsing, message formatting, and the
// webhook/long-poll plumbing are all external collaborators; this
// package only names the interface the engine expects of them.
package transport

import "context"

// Command is one recognized chat command, resolved by whatever transport
// implementation parses the incoming message (Telegram, Slack, a CLI
// REPL, ...). Name is always lowercase; Arg carries the command's single
// free-form argument, if any (a pair, a source name, a start payload).
type Command struct {
	Name string
	Arg  string
}

// Responder is whatever the transport uses to deliver a reply: a chat
// message send, a CLI stdout write, an HTTP response body.
type Responder interface {
	Reply(ctx context.Context, text string) error
}

// Engine is the surface the core exposes to a transport implementation.
// query.SrcQuery, query.ConvQuery, query.ListSources and query.Info
// satisfy the shape this interface asks for; a transport wires its own
// Command parsing to these four calls.
type Engine interface {
	Source(ctx context.Context, cmd Command) (string, error)
	Conversion(ctx context.Context, cmd Command) (string, error)
	Sources(ctx context.Context) (string, error)
	Info(ctx context.Context) (string, error)
}

// Mode selects how a transport receives updates, per the bot.polling
// config flag: long polling, or a TLS webhook listener bound to
// host:port serving the given certificate.
type Mode int

const (
	ModePolling Mode = iota
	ModeWebhook
)

// WebhookConfig carries the listener settings for ModeWebhook.
type WebhookConfig struct {
	Host string
	Port int
	Cert string
}
