// Package movement implements a precision-platforming character controller.
//
// A Controller is stepped once per fixed physics step. Each step it advances
// its timed effects (dash, wall-jump control lock, landing freeze and
// smoothing), reads ground and wall contact, runs the timer bank and then the
// ordered motion rules, and commands the resulting velocity on its Body.
// Input arrives between steps through Move, JumpPressed, JumpReleased and
// DashPressed.
//
// Vertical axis points up: positive Y velocity is rising.
package movement
