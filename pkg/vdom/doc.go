// Package vdom defines the virtual tree model: an immutable-per-render
// description of desired UI structure built from element, text, fragment,
// portal, and component nodes.
//
// Virtual nodes carry no behavior beyond structural comparison. The
// runtime package walks two trees and applies the difference to a live
// dom.Document; this package only describes shape.
package vdom
