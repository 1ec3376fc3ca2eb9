package movement

import "github.com/jakecoffman/cp"

const wallJumpTaskName = "wall_jump_lock"

// wallJumpLock keeps BlockTowardsWall and IsWallJumping set for the control
// delay. normal is the wall normal at jump time, so steering back into the
// wall stays blocked after the body has left it.
type wallJumpLock struct {
	normal cp.Vector
}

// wallJump launches away from the touched wall and starts the control lock.
func (c *Controller) wallJump() {
	s := &c.state
	dir := sign(s.WallNormal.X)
	c.body.SetVelocity(cp.Vector{X: dir * c.cfg.WallJumpForce, Y: c.cfg.WallJumpForce})
	s.Facing = dir

	if c.wallLock != nil {
		c.tasks.Cancel(c, c.wallLock)
	}
	s.IsWallJumping = true
	s.BlockTowardsWall = true
	s.WallJumpLockRemaining = c.cfg.WallJumpControlDelay

	lock := &wallJumpLock{normal: s.WallNormal}
	c.wallLock = lock
	c.tasks.Start(lock)
}

func (w *wallJumpLock) Name() string { return wallJumpTaskName }

func (w *wallJumpLock) Advance(c *Controller, t Tick) bool {
	decay(&c.state.WallJumpLockRemaining, t.Sim)
	if c.state.WallJumpLockRemaining > 0 {
		return false
	}
	w.release(c)
	return true
}

func (w *wallJumpLock) Abort(c *Controller) {
	c.state.WallJumpLockRemaining = 0
	w.release(c)
}

func (w *wallJumpLock) release(c *Controller) {
	c.state.BlockTowardsWall = false
	c.state.IsWallJumping = false
	if c.wallLock == w {
		c.wallLock = nil
	}
}

// steer filters horizontal input through the control lock: input pushing
// back into the wall is zeroed, input away from it passes unchanged.
func (c *Controller) steer() float64 {
	s := &c.state
	x := s.MoveInput.X
	if !s.BlockTowardsWall || x == 0 {
		return x
	}
	n := s.WallNormal
	if !s.IsTouchingWall && c.wallLock != nil {
		n = c.wallLock.normal
	}
	if n.X != 0 && sign(x) == -sign(n.X) {
		return 0
	}
	return x
}
