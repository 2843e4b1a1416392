//go:build !ios && !android && !js

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var (
	sx = 2
	sy = 1

	defStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	boxStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	hitStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

func drawText(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style, text string) {
	row := y1
	col := x1
	for _, r := range []rune(text) {
		s.SetContent(col, row, r, nil, style)
		col++
		if col >= x2 {
			row++
			col = x1
		}
		if row > y2 {
			break
		}
	}
}

func boardWidth(b *soundboard) int {
	w := 24
	for _, name := range b.names {
		if l := len(name) + 6; l > w {
			w = l
		}
	}

	return w
}

func drawBoard(s tcell.Screen, b *soundboard, hit int, msg string) {
	x1 := sx
	y1 := sy
	x2 := x1 + boardWidth(b) + 1
	y2 := y1 + len(b.names) + 3
	style := boxStyle

	s.Clear()

	drawText(s, x1+2, y1, x2, y1, style, fmt.Sprintf(" %v ", b.player.Kind()))

	for i, name := range b.names {
		line := fmt.Sprintf(" %c  %-*s", indexKey(i), x2-x1-5, name)
		st := style
		if i == hit {
			st = hitStyle
		}
		drawText(s, x1+1, y1+1+i, x2, y1+1+i, st, line)
	}

	drawText(s, x1+1, y2-1, x2, y2-1, style, fmt.Sprintf(" %-*s", x2-x1-2, msg))

	// Draw borders
	for col := x1 + 1; col < x2; col++ {
		s.SetContent(col, y2, tcell.RuneHLine, nil, style)
	}
	for col := x1 + 1; col < x1+2; col++ {
		s.SetContent(col, y1, tcell.RuneHLine, nil, style)
	}
	for col := x1 + 2 + len(b.player.Kind().String()) + 2; col < x2; col++ {
		s.SetContent(col, y1, tcell.RuneHLine, nil, style)
	}
	for row := y1 + 1; row < y2; row++ {
		s.SetContent(x1, row, tcell.RuneVLine, nil, style)
		s.SetContent(x2, row, tcell.RuneVLine, nil, style)
	}

	s.SetContent(x1, y1, tcell.RuneULCorner, nil, style)
	s.SetContent(x2, y1, tcell.RuneURCorner, nil, style)
	s.SetContent(x1, y2, tcell.RuneLLCorner, nil, style)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)
}

func termBoard(b *soundboard) error {
	// Initialize screen
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	s.SetStyle(defStyle)
	s.EnableMouse()

	hit, msg := -1, "press a key, esc to quit"
	drawBoard(s, b, hit, msg)

	// Event loop
	for {
		s.Show()

		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			s.Sync()
			drawBoard(s, b, hit, msg)

		case *tcell.EventKey:
			ckey, crune := ev.Key(), ev.Rune()

			if ckey == tcell.KeyEscape || ckey == tcell.KeyCtrlC {
				return nil
			} else if ckey == tcell.KeyCtrlL {
				s.Sync()
			} else if ckey == tcell.KeyRune {
				if i := keyIndex(crune); i >= 0 && i < len(b.names) {
					hit = i
					msg = b.play(i)
					drawBoard(s, b, hit, msg)
				}
			}

		case *tcell.EventMouse:
			_, y := ev.Position()
			if ev.Buttons()&tcell.Button1 != 0 {
				if i := y - sy - 1; i >= 0 && i < len(b.names) {
					hit = i
					msg = b.play(i)
					drawBoard(s, b, hit, msg)
				}
			}
		}
	}
}
