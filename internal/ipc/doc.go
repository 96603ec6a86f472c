// Package ipc exposes the studio engine over JSON-RPC Unix sockets and
// ships the matching client used by the CLI and the desktop front-end.
//
// It owns socket lifecycle management, request/response DTOs, and the
// event tail endpoint the front-end polls for progress streams. The server
// embeds the engine while the client decorates calls with a dial timeout so
// commands fail fast when the daemon is offline.
//
// Reuse these types when adding new RPC endpoints to keep the protocol
// stable and compatible with existing command implementations.
package ipc
