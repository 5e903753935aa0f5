package tilekit

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Layer is anything App can draw: grids, labels, panels.
type Layer interface {
	Render(dst *ebiten.Image)
}

// mouseInputProcessor is implemented by layers that react to the pointer,
// such as Grid.
type mouseInputProcessor interface {
	ProcessMouseInput(in *PointerInput)
}

// App is an ebiten.Game that draws a stack of layers and owns the resource
// registry they borrow from.
type App struct {
	// ClearColor fills the screen before the layers are drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	registry   *Registry
	input      *PointerInput
	layers     []Layer
	updateFunc func() error
	testRunner *TestRunner

	title         string
	width, height int
	showFPS       bool

	screenshotQueue []string
	stats           frameStats
}

// NewApp creates an app drawing into a cfg.Width×cfg.Height logical screen.
// registry may be nil when no assets are needed.
func NewApp(registry *Registry, cfg RunConfig) *App {
	dir := cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	return &App{
		ScreenshotDir: dir,
		registry:      registry,
		input:         NewPointerInput(),
		title:         cfg.Title,
		width:         cfg.Width,
		height:        cfg.Height,
		showFPS:       cfg.ShowFPS,
	}
}

// Registry returns the registry passed to NewApp.
func (a *App) Registry() *Registry {
	return a.registry
}

// Input returns the pointer state shared by all layers.
func (a *App) Input() *PointerInput {
	return a.input
}

// AddLayer appends l on top of the existing layers.
func (a *App) AddLayer(l Layer) {
	a.layers = append(a.layers, l)
}

// RemoveLayer removes l if present.
func (a *App) RemoveLayer(l Layer) {
	for i, x := range a.layers {
		if x == l {
			a.layers = append(a.layers[:i], a.layers[i+1:]...)
			return
		}
	}
}

// Layers returns the layer stack, bottom first. The returned slice MUST NOT
// be mutated.
func (a *App) Layers() []Layer {
	return a.layers
}

// SetUpdateFunc sets a function called once per tick after input has been
// dispatched. Returning an error stops the game loop.
func (a *App) SetUpdateFunc(fn func() error) {
	a.updateFunc = fn
}

// SetTestRunner attaches a scripted input runner, stepped at the start of
// every Update.
func (a *App) SetTestRunner(r *TestRunner) {
	a.testRunner = r
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	if a.testRunner != nil {
		a.testRunner.step(a)
	}
	a.input.Update()
	for _, l := range a.layers {
		if p, ok := l.(mouseInputProcessor); ok {
			p.ProcessMouseInput(a.input)
		}
	}

	var err error
	if a.updateFunc != nil {
		err = a.updateFunc()
	}

	if globalDebug {
		a.stats.updateTime = time.Since(t0)
		a.stats.events = len(a.input.Events())
	}
	return err
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	if a.ClearColor.A > 0 {
		screen.Fill(a.ClearColor.toRGBA())
	}
	for _, l := range a.layers {
		l.Render(screen)
	}
	if a.showFPS {
		drawFPS(screen)
	}
	a.flushScreenshots(screen)

	if globalDebug {
		a.stats.drawTime = time.Since(t0)
		a.stats.layers = len(a.layers)
		a.stats.log()
	}
}

// Layout implements ebiten.Game with a fixed logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Run opens a window sized and titled from the app's RunConfig and runs the
// game loop until it exits. The registry, if any, is closed afterwards.
func Run(a *App) error {
	ebiten.SetWindowTitle(a.title)
	ebiten.SetWindowSize(a.width, a.height)
	err := ebiten.RunGame(a)
	if a.registry != nil {
		a.registry.Close()
	}
	return err
}
