package game

// Container is the host element the manager sizes its surface to.
// ok is false when the container cannot be measured yet.
type Container interface {
	Bounds() (width, height int, ok bool)
}

// FixedContainer is a Container with constant bounds.
type FixedContainer struct {
	Width, Height int
}

func (c FixedContainer) Bounds() (int, int, bool) {
	return c.Width, c.Height, c.Width > 0 && c.Height > 0
}

// Driver supplies the periodic frame callback. The engine never owns its
// loop; the host (a window, a terminal loop, a test) calls the registered
// functions once per frame.
type Driver interface {
	OnTick(fn func())
}

// ManualDriver is a Driver stepped explicitly, used by tests and the
// headless benchmark.
type ManualDriver struct {
	fns []func()
}

// OnTick registers fn.
func (d *ManualDriver) OnTick(fn func()) {
	if fn != nil {
		d.fns = append(d.fns, fn)
	}
}

// Step runs every registered callback once.
func (d *ManualDriver) Step() {
	for _, fn := range d.fns {
		fn()
	}
}

// Run steps n times.
func (d *ManualDriver) Run(n int) {
	for i := 0; i < n; i++ {
		d.Step()
	}
}
