package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"cronohash/crono"
)

// newScreen opens the terminal screen for interactive runs.
var newScreen = tcell.NewScreen

// screenPrompter asks through full-screen menus.
type screenPrompter struct {
	s tcell.Screen
}

var (
	titleStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	itemStyle     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	hintStyle     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// menu lets the user pick an item with arrows, digits and Enter.
// Escape or Ctrl-C returns def and false.
func (p *screenPrompter) menu(title string, items []string, def int) (int, bool) {
	selected := def
	for {
		p.s.Clear()
		drawText(p.s, 1, 1, titleStyle, title)
		for i, item := range items {
			style := itemStyle
			if i == selected {
				style = selectedStyle
			}
			drawText(p.s, 3, 3+i, style, fmt.Sprintf("%d. %s", i+1, item))
		}
		drawText(p.s, 1, 4+len(items), hintStyle, "Up/Down:move  1-9:pick  Enter:confirm  Esc:default")
		p.s.Show()

		switch ev := p.s.PollEvent().(type) {
		case nil:
			return def, false
		case *tcell.EventResize:
			p.s.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return def, false
			case tcell.KeyUp:
				selected = (selected - 1 + len(items)) % len(items)
			case tcell.KeyDown:
				selected = (selected + 1) % len(items)
			case tcell.KeyEnter:
				return selected, true
			case tcell.KeyRune:
				if n := int(ev.Rune() - '1'); n >= 0 && n < len(items) {
					return n, true
				}
			}
		}
	}
}

// line edits one line of text. Escape or Ctrl-C returns "".
func (p *screenPrompter) line(prompt string) string {
	var buf []rune
	for {
		p.s.Clear()
		drawText(p.s, 1, 1, titleStyle, prompt)
		drawText(p.s, 3, 3, itemStyle, "> "+string(buf))
		p.s.ShowCursor(5+len(buf), 3)
		p.s.Show()

		switch ev := p.s.PollEvent().(type) {
		case nil:
			return ""
		case *tcell.EventResize:
			p.s.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return ""
			case tcell.KeyEnter:
				p.s.HideCursor()
				return string(buf)
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(buf) > 0 {
					buf = buf[:len(buf)-1]
				}
			case tcell.KeyRune:
				buf = append(buf, ev.Rune())
			}
		}
	}
}

func (p *screenPrompter) Input(def string) (string, error) {
	s := p.line(fmt.Sprintf("Enter the input string (at least %d characters):", minInputLength))
	if s == "" {
		return def, nil
	}
	return s, nil
}

func (p *screenPrompter) Binding(def float64) (float64, error) {
	i, ok := p.menu("Choose the temporal binding option:", presetLabels(), presetIndex(def))
	if !ok {
		return def, nil
	}
	if bindingPresets[i].ms != customBinding {
		return bindingPresets[i].ms, nil
	}
	return parseMillis(p.line("Enter the duration in milliseconds:")), nil
}

func (p *screenPrompter) Mode(def crono.Mode) (crono.Mode, error) {
	i, ok := p.menu("Choose the mode:", modeLabels(), modeIndex(def))
	if !ok {
		return def, nil
	}
	return modeChoices[i], nil
}

func (p *screenPrompter) BitStrength(def crono.BitStrength) (crono.BitStrength, error) {
	i, ok := p.menu("Choose the bit strength:", bitLabels(), bitsIndex(def))
	if !ok {
		return def, nil
	}
	return crono.BitStrengths[i], nil
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
