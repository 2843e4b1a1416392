package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/disintegration/imaging"
)

const (
	tileSize = 96
	tileGap  = 8
	tileCols = 4
)

var (
	bgColor = color.NRGBA{0, 0, 32, 255}

	palette = []color.NRGBA{
		{230, 80, 60, 255},
		{240, 180, 40, 255},
		{90, 190, 90, 255},
		{60, 150, 220, 255},
		{160, 100, 210, 255},
		{220, 110, 170, 255},
	}

	wopts []app.Option
)

func setTitle(w *app.Window, msg string, args ...interface{}) {
	wopts[0] = app.Title(fmt.Sprintf(msg, args...))
	w.Option(wopts...)
}

// tileAt returns the index of the tile at p, or -1.
func tileAt(p image.Point, count int) int {
	col, row := p.X/(tileSize+tileGap), p.Y/(tileSize+tileGap)
	if col >= tileCols || p.X%(tileSize+tileGap) >= tileSize || p.Y%(tileSize+tileGap) >= tileSize {
		return -1
	}

	if i := row*tileCols + col; i < count {
		return i
	}

	return -1
}

func gioBoard(b *soundboard) error {
	count := len(b.names)
	cols := tileCols
	if count < cols {
		cols = count
	}
	if cols == 0 {
		cols = 1
	}
	rows := (count + tileCols - 1) / tileCols
	if rows == 0 {
		rows = 1
	}

	ww := cols*(tileSize+tileGap) - tileGap
	wh := rows*(tileSize+tileGap) - tileGap

	tiles := make([]image.Image, count)
	for i := range tiles {
		tiles[i] = imaging.New(tileSize, tileSize, palette[i%len(palette)])
	}

	wopts = []app.Option{
		app.Title("compatsound"), // title is first option
		app.Size(unit.Px(float32(ww)), unit.Px(float32(wh))),
		app.MinSize(unit.Px(float32(ww)), unit.Px(float32(wh))),
	}

	go func() {
		w := app.NewWindow(wopts...)
		os.Exit(closeBoard(b, loop(w, b, tiles, ww, wh)))
	}()
	app.Main()

	return nil
}

// closeBoard releases the player once the window is gone and returns the exit status.
func closeBoard(b *soundboard, err error) int {
	b.player.Destroy()

	if err != nil {
		b.log.Error("window error", "err", err)
		fmt.Fprintln(os.Stderr, "compatsound:", err)
		return 1
	}

	return 0
}

func loop(w *app.Window, b *soundboard, tiles []image.Image, ww, wh int) error {
	var ops op.Ops

	hit := -1

	play := func(i int) {
		if name := b.play(i); name != "" {
			hit = i
			setTitle(w, "%c  %v  (%v)", indexKey(i), name, b.player.Kind())
			w.Invalidate()
		}
	}

	canvas := imaging.New(ww, wh, bgColor)

	for e := range w.Events() {
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err

		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)

			// Handle any input from a pointer.
			for _, ev := range gtx.Events(b) {
				if ev, ok := ev.(pointer.Event); ok && ev.Type == pointer.Press {
					play(tileAt(image.Pt(int(ev.Position.X), int(ev.Position.Y)), len(tiles)))
				}
			}

			// Register to listen for pointer events.
			pointer.Rect(image.Rectangle{Max: e.Size}).Add(gtx.Ops)
			pointer.InputOp{Tag: b, Types: pointer.Press}.Add(gtx.Ops)

			render(gtx, canvas, tiles, hit)
			e.Frame(gtx.Ops)

		case key.Event:
			if e.State != key.Press {
				break
			}

			switch e.Name {
			case key.NameEscape:
				w.Close()

			default:
				if r := []rune(strings.ToLower(e.Name)); len(r) == 1 {
					play(keyIndex(r[0]))
				}
			}
		}
	}

	return nil
}

func render(gtx layout.Context, canvas draw.Image, tiles []image.Image, hit int) layout.Dimensions {
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{bgColor}, image.Point{}, draw.Src)

	for i, im := range tiles {
		if i == hit {
			im = imaging.Invert(im)
		}

		x := (i % tileCols) * (tileSize + tileGap)
		y := (i / tileCols) * (tileSize + tileGap)

		draw.Draw(canvas, im.Bounds().Add(image.Point{x, y}), im, image.Point{}, draw.Over)
	}

	img := widget.Image{Src: paint.NewImageOp(canvas)}
	img.Scale = 1 / float32(gtx.Px(unit.Dp(1)))

	return img.Layout(gtx)
}
