// Package app hosts the ebiten window: it wires the simulation controller to
// the grid painter, the control panel and pointer input. The window is only
// built with the ebiten build tag.
package app
