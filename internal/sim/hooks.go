package sim

// Hooks is the capability set a simulation supplies to the driver.
// The driver only provides timing; all domain behaviour lives here.
type Hooks interface {
	// Init prepares the simulation before the first iteration.
	Init() error

	// Shutdown releases what Init acquired. It runs once when the loop ends,
	// whatever the reason.
	Shutdown() error

	// Update advances the simulation by exactly dt seconds.
	// dt is always the driver's fixed timestep.
	Update(dt float64) error

	// Draw renders the current state. Called once per iteration, after
	// every Update of that iteration.
	Draw() error
}

// HookFuncs adapts plain functions to Hooks. Nil fields are no-ops.
type HookFuncs struct {
	InitFunc     func() error
	ShutdownFunc func() error
	UpdateFunc   func(dt float64) error
	DrawFunc     func() error
}

// Init calls InitFunc.
func (h HookFuncs) Init() error {
	if h.InitFunc == nil {
		return nil
	}
	return h.InitFunc()
}

// Shutdown calls ShutdownFunc.
func (h HookFuncs) Shutdown() error {
	if h.ShutdownFunc == nil {
		return nil
	}
	return h.ShutdownFunc()
}

// Update calls UpdateFunc.
func (h HookFuncs) Update(dt float64) error {
	if h.UpdateFunc == nil {
		return nil
	}
	return h.UpdateFunc(dt)
}

// Draw calls DrawFunc.
func (h HookFuncs) Draw() error {
	if h.DrawFunc == nil {
		return nil
	}
	return h.DrawFunc()
}

var _ Hooks = HookFuncs{}
