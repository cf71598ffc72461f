// Package transport delivers the extracted config to the host process.
//
// The message is one JSON document followed by a newline. On Windows it is
// written to standard output; everywhere else it goes to the already-open
// descriptor whose number the host passes in NODE_CHANNEL_FD. Either way a
// single write call carries the whole message and nothing is read back.
package transport
