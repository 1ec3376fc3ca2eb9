package movement

// MinDuration is the smallest duration a configured window may have. Landing
// smoothing divides elapsed by total, so zero or negative durations are
// clamped up to this value.
const MinDuration = 1e-4

// GroundProbe configures the explicit ground check: a circle overlap at the
// body position plus Offset.
type GroundProbe struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Radius  float64 `yaml:"radius"`
	Mask    uint    `yaml:"mask"`
}

// WallProbe configures the explicit wall check: one ray to the left from the
// left origin and one ray to the right from the right origin.
type WallProbe struct {
	LeftX    float64 `yaml:"left_x"`
	LeftY    float64 `yaml:"left_y"`
	RightX   float64 `yaml:"right_x"`
	RightY   float64 `yaml:"right_y"`
	Distance float64 `yaml:"distance"`
	Mask     uint    `yaml:"mask"`
}

// Config holds every tunable of the controller. Durations are seconds of
// simulated time unless the name says otherwise; freeze durations are real
// time because the freeze itself slows simulated time down.
type Config struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpForce float64 `yaml:"jump_force"`
	Gravity   float64 `yaml:"gravity"`

	GroundAcceleration   float64 `yaml:"ground_acceleration"`
	GroundDeceleration   float64 `yaml:"ground_deceleration"`
	AirAcceleration      float64 `yaml:"air_acceleration"`
	AirDeceleration      float64 `yaml:"air_deceleration"`
	AirControlMultiplier float64 `yaml:"air_control_multiplier"`

	DashSpeed          float64 `yaml:"dash_speed"`
	DashDuration       float64 `yaml:"dash_duration"`
	DashCooldown       float64 `yaml:"dash_cooldown"`
	DashFreezeScale    float64 `yaml:"dash_freeze_scale"`
	DashFreezeDuration float64 `yaml:"dash_freeze_duration"`

	WallJumpForce        float64 `yaml:"wall_jump_force"`
	WallJumpControlDelay float64 `yaml:"wall_jump_control_delay"`
	WallSlideSpeed       float64 `yaml:"wall_slide_speed"`

	CoyoteTime               float64 `yaml:"coyote_time"`
	JumpBufferTime           float64 `yaml:"jump_buffer_time"`
	JumpCutMultiplier        float64 `yaml:"jump_cut_multiplier"`
	FallGravityMultiplier    float64 `yaml:"fall_gravity_multiplier"`
	LowJumpGravityMultiplier float64 `yaml:"low_jump_gravity_multiplier"`

	LandingSmoothingTime  float64 `yaml:"landing_smoothing_time"`
	LandingFallThreshold  float64 `yaml:"landing_fall_threshold"`
	LandingFreezeScale    float64 `yaml:"landing_freeze_scale"`
	LandingFreezeDuration float64 `yaml:"landing_freeze_duration"`

	// Feature toggles unify the controller variants into one state machine.
	AirDash          bool `yaml:"air_dash"`
	VariableJump     bool `yaml:"variable_jump"`
	DashFreeze       bool `yaml:"dash_freeze"`
	LandingSmoothing bool `yaml:"landing_smoothing"`
	LandingFreeze    bool `yaml:"landing_freeze"`
	// GroundJumpBesideWall lets a grounded player jump while touching a
	// wall; only airborne wall contact then blocks the buffered jump.
	GroundJumpBesideWall bool `yaml:"ground_jump_beside_wall"`

	// Nil probes fall back to contact events for that concern.
	GroundProbe *GroundProbe `yaml:"ground_probe"`
	WallProbe   *WallProbe   `yaml:"wall_probe"`
}

// DefaultConfig returns the tuning the controller ships with.
func DefaultConfig() Config {
	return Config{
		MoveSpeed: 5,
		JumpForce: 10,
		Gravity:   9.81,

		GroundAcceleration:   90,
		GroundDeceleration:   60,
		AirAcceleration:      90,
		AirDeceleration:      60,
		AirControlMultiplier: 0.65,

		DashSpeed:          20,
		DashDuration:       0.15,
		DashCooldown:       0.6,
		DashFreezeScale:    0.05,
		DashFreezeDuration: 0.05,

		WallJumpForce:        15,
		WallJumpControlDelay: 0.2,
		WallSlideSpeed:       2,

		CoyoteTime:               0.1,
		JumpBufferTime:           0.1,
		JumpCutMultiplier:        0.5,
		FallGravityMultiplier:    2.5,
		LowJumpGravityMultiplier: 2,

		LandingSmoothingTime:  0.08,
		LandingFallThreshold:  25,
		LandingFreezeScale:    0.05,
		LandingFreezeDuration: 0.03,

		AirDash:          true,
		VariableJump:     true,
		DashFreeze:       true,
		LandingSmoothing: true,
		LandingFreeze:    true,
	}
}

// Sanitize returns a copy with nonsensical values clamped: durations to at
// least MinDuration, multipliers and scales into usable ranges, speeds to
// non-negative values. Nothing is rejected.
func (c Config) Sanitize() Config {
	for _, d := range []*float64{
		&c.DashDuration,
		&c.DashCooldown,
		&c.DashFreezeDuration,
		&c.WallJumpControlDelay,
		&c.CoyoteTime,
		&c.JumpBufferTime,
		&c.LandingSmoothingTime,
		&c.LandingFreezeDuration,
	} {
		if *d < MinDuration {
			*d = MinDuration
		}
	}

	for _, v := range []*float64{
		&c.MoveSpeed,
		&c.JumpForce,
		&c.Gravity,
		&c.GroundAcceleration,
		&c.GroundDeceleration,
		&c.AirAcceleration,
		&c.AirDeceleration,
		&c.AirControlMultiplier,
		&c.DashSpeed,
		&c.WallJumpForce,
		&c.WallSlideSpeed,
		&c.LandingFallThreshold,
	} {
		if *v < 0 {
			*v = 0
		}
	}

	if c.FallGravityMultiplier < 1 {
		c.FallGravityMultiplier = 1
	}
	if c.LowJumpGravityMultiplier < 1 {
		c.LowJumpGravityMultiplier = 1
	}
	if c.JumpCutMultiplier < 0 {
		c.JumpCutMultiplier = 0
	} else if c.JumpCutMultiplier > 1 {
		c.JumpCutMultiplier = 1
	}
	c.DashFreezeScale = clampScale(c.DashFreezeScale)
	c.LandingFreezeScale = clampScale(c.LandingFreezeScale)

	if c.GroundProbe != nil {
		p := *c.GroundProbe
		if p.Radius < 0 {
			p.Radius = 0
		}
		c.GroundProbe = &p
	}
	if c.WallProbe != nil {
		p := *c.WallProbe
		if p.Distance < 0 {
			p.Distance = 0
		}
		c.WallProbe = &p
	}
	return c
}

func clampScale(s float64) float64 {
	if s <= 0 {
		return MinScale
	}
	if s > 1 {
		return 1
	}
	return s
}
