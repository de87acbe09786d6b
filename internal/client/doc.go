// Package client implements the HTTP client for the Skylift manager API.
//
// A Client is opened per command invocation and released when the command
// finishes. Resource operations are grouped into services (images, users,
// scaling groups, resource policies, agents). Mutating operations return an
// envelope whose Ok/Msg pair distinguishes application-level failures from
// transport errors; long-running jobs report progress over a server-sent
// event stream consumed via BackgroundTask.Listen.
package client
