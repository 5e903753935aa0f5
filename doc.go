// Package tilekit lays out and renders rectangular tiles in anchored
// row/column grids on top of [Ebitengine], and caches the images, fonts and
// sounds those tiles borrow.
//
// # Resources
//
// A [Registry] owns one [ResourceCache] per resource kind. Caches load single
// files or whole directories (one entry per regular file, keyed by the file
// name without extension) and release every entry exactly once:
//
//	reg := tilekit.NewRegistry(os.DirFS("."), audio.NewContext(44100))
//	defer reg.Close()
//	if err := reg.LoadAll(cfg.Assets); err != nil {
//		log.Print(err)
//	}
//	grass, err := reg.Images().Get("grass")
//
// Values handed out by a cache are borrowed. They stay valid until their key
// is unloaded or the cache is closed.
//
// # Placeables
//
// Anything occupying a grid cell implements [Placeable]. [TexturePanel] draws
// an image scaled to fit its size; [Label] draws a text run whose size is
// measured from its font on demand and whose position is interpreted
// relative to its own [AnchorPoint].
//
// # Grids
//
// [Grid] copies a prototype entity into every cell and positions the cells so
// that the grid's anchor lands on a reference point:
//
//	proto, _ := tilekit.NewTexturePanel(grass, tilekit.Pos(32, 32), tilekit.Pos(2, 2))
//	board, err := tilekit.NewGrid(9, 9, proto, tilekit.AnchorMiddle, tilekit.Pos(320, 240))
//
// Grids render row-major, filtered by [Grid.ShouldRender], answer Moore
// neighbourhood queries with [Grid.Neighbours] and turn pointer input into
// [CellEvent]s in [Grid.ProcessMouseInput].
//
// # Running
//
// [App] is an [ebiten.Game] drawing a stack of layers; [Run] opens the window.
// The ecs submodule forwards cell events into a Donburi world.
//
// [Ebitengine]: https://ebitengine.org
package tilekit
