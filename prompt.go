package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"cronohash/crono"
)

// bindingPreset is one entry of the binding duration menu.
type bindingPreset struct {
	label string
	ms    float64
}

const customBinding = -1

var bindingPresets = []bindingPreset{
	{"One-time login token (500 - 2000 ms)", 1000},
	{"RAM-only secrets / anti-debug (50 - 200 ms)", 100},
	{"Temporary file decryption key (3000 - 5000 ms)", 4000},
	{"Forensic markers (5000 - 10000 ms)", 7500},
	{"Testing/debug mode (60000 ms)", 60000},
	{"Custom", customBinding},
}

var modeChoices = []crono.Mode{crono.Fast, crono.Balanced, crono.Secure, crono.Entropic}

// prompter collects the hash parameters interactively. Each prompt falls
// back to def when the answer is missing or invalid.
type prompter interface {
	Input(def string) (string, error)
	Binding(def float64) (float64, error)
	Mode(def crono.Mode) (crono.Mode, error)
	BitStrength(def crono.BitStrength) (crono.BitStrength, error)
}

// collect runs every prompt in order, with defaults taken from cfg.
func collect(p prompter, cfg Config) (input string, ms float64, mode crono.Mode, bits crono.BitStrength, err error) {
	defMode, _ := crono.ParseMode(cfg.Mode)
	defBits, _ := crono.NormalizeBitStrength(cfg.BitStrength)
	defMs := clampMillis(cfg.BindingMs)

	if input, err = p.Input(cfg.Input); err != nil {
		return
	}
	if ms, err = p.Binding(defMs); err != nil {
		return
	}
	if mode, err = p.Mode(defMode); err != nil {
		return
	}
	bits, err = p.BitStrength(defBits)
	return
}

// presetIndex is the preset matching ms, or 0.
func presetIndex(ms float64) int {
	for i, p := range bindingPresets {
		if p.ms == ms {
			return i
		}
	}
	return 0
}

func modeIndex(m crono.Mode) int {
	for i, c := range modeChoices {
		if c == m {
			return i
		}
	}
	return 0
}

func bitsIndex(b crono.BitStrength) int {
	for i, c := range crono.BitStrengths {
		if c == b {
			return i
		}
	}
	return 0
}

func presetLabels() []string {
	labels := make([]string, len(bindingPresets))
	for i, p := range bindingPresets {
		labels[i] = p.label
	}
	return labels
}

func modeLabels() []string {
	labels := make([]string, len(modeChoices))
	for i, m := range modeChoices {
		labels[i] = m.String()
	}
	return labels
}

func bitLabels() []string {
	labels := make([]string, len(crono.BitStrengths))
	for i, b := range crono.BitStrengths {
		labels[i] = fmt.Sprintf("%d Bit", b)
	}
	return labels
}

// linePrompter asks on a plain text stream, one answer per line.
type linePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewScanner(in), out: out}
}

// readLine returns the next trimmed line, or "" at end of input.
func (p *linePrompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", errors.Wrap(err, "read answer")
		}
		return "", nil
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// choose prints a numbered menu and returns the 0-based pick, or -1.
func (p *linePrompter) choose(title string, items []string) (int, error) {
	fmt.Fprintln(p.out, title)
	for i, item := range items {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, item)
	}
	fmt.Fprintf(p.out, "Your choice (1-%d): ", len(items))
	answer, err := p.readLine()
	if err != nil {
		return -1, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(items) {
		return -1, nil
	}
	return n - 1, nil
}

func (p *linePrompter) Input(def string) (string, error) {
	fmt.Fprintf(p.out, "Enter the input string (at least %d characters): ", minInputLength)
	s, err := p.readLine()
	if err != nil {
		return "", err
	}
	if s == "" {
		fmt.Fprintln(p.out, "No input given. Using the default.")
		return def, nil
	}
	return s, nil
}

func (p *linePrompter) Binding(def float64) (float64, error) {
	i, err := p.choose("Choose the temporal binding option:", presetLabels())
	if err != nil {
		return def, err
	}
	if i < 0 {
		fmt.Fprintf(p.out, "Invalid choice. Using %g.\n", def)
		return def, nil
	}
	if bindingPresets[i].ms != customBinding {
		return bindingPresets[i].ms, nil
	}
	fmt.Fprint(p.out, "Enter the duration in milliseconds: ")
	answer, err := p.readLine()
	if err != nil {
		return 0, err
	}
	return parseMillis(answer), nil
}

func (p *linePrompter) Mode(def crono.Mode) (crono.Mode, error) {
	i, err := p.choose("Choose the mode:", modeLabels())
	if err != nil {
		return def, err
	}
	if i < 0 {
		fmt.Fprintf(p.out, "Invalid choice. Using %s.\n", def)
		return def, nil
	}
	return modeChoices[i], nil
}

func (p *linePrompter) BitStrength(def crono.BitStrength) (crono.BitStrength, error) {
	i, err := p.choose("Choose the bit strength:", bitLabels())
	if err != nil {
		return def, err
	}
	if i < 0 {
		fmt.Fprintf(p.out, "Invalid choice. Using %d Bit.\n", def)
		return def, nil
	}
	return crono.BitStrengths[i], nil
}

// parseMillis accepts a non-negative decimal; anything else means 0.
func parseMillis(s string) float64 {
	ms, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return clampMillis(ms)
}

// clampMillis maps NaN, infinities and negatives to 0.
func clampMillis(ms float64) float64 {
	if !(ms >= 0) || math.IsInf(ms, 0) {
		return 0
	}
	return ms
}
