// Package dom implements the engine's render target: a headless,
// in-memory document with the node-creation and mutation primitives the
// reconciler consumes (create, set attribute, set style, insert, replace,
// remove, text update) plus root-container resolution.
//
// Every mutation is reported to registered observers as a Mutation record.
// Observers back both exact-mutation assertions in tests and the live
// patch stream that mirrors the document to a remote client.
package dom
