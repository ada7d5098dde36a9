// Package hooks implements the per-instance hook store backing functional
// components: an ordered list of hook records addressed purely by call
// order within a render.
//
// Hook identity is positional. Every render of an instance must invoke the
// same hooks in the same order; conditional hook calls silently corrupt
// identity, so debug mode validates the hook sequence and panics on
// divergence.
//
// The hook context is explicit: a *Ctx is handed to the component's render
// function rather than living in ambient package state, so a process can
// host multiple independent engines.
package hooks
