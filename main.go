package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"git.lost.host/meutraa/rain/internal/config"
	"git.lost.host/meutraa/rain/internal/rain"
	"git.lost.host/meutraa/rain/internal/render"
	"git.lost.host/meutraa/rain/internal/theme"
	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func newTheme() (theme.Theme, error) {
	if *config.NoColor {
		return theme.MonoTheme{}, nil
	}
	return theme.NewDefault(*config.ColorName)
}

func isQuitKey(key keyboard.KeyEvent) bool {
	return key.Key == keyboard.KeyEsc ||
		key.Key == keyboard.KeyCtrlC ||
		key.Rune == 'q'
}

func run() error {
	config.Parse()

	if *config.Density < 0.1 || *config.Density > 1.0 {
		return fmt.Errorf("density out of range 0.1-1.0 (got %v)", *config.Density)
	}
	th, err := newTheme()
	if nil != err {
		return err
	}

	seed := *config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	alphabet := rain.Full
	if *config.AlphabetOnly {
		alphabet = rain.Matrix
	}
	src := rain.NewGlyphSource(alphabet, rng)

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}

	fmt.Println("Digital Rain - Matrix Terminal Animation")
	fmt.Println("Press Ctrl+C to exit")

	keyChannel, err := keyboard.GetKeys(8)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()

	grid := rain.NewGrid(rows, cols, *config.Density, src)

	var r render.Renderer = render.NewRenderer(os.Stdout, int(os.Stdout.Fd()), th)
	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state on every exit path
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal:", err)
		}
	}()
	r.Resize(rows, cols)

	var paintErr error
	r.RenderLoop(*config.FrameDelay, func(now time.Time) bool {
		// Cancellation is observed before any state is mutated, so no
		// frame is ever painted after a quit key arrives
		for i := 0; i < len(keyChannel); i++ {
			if isQuitKey(<-keyChannel) {
				return false
			}
		}

		if c, rw, err := term.GetSize(int(os.Stdout.Fd())); nil == err && (c != cols || rw != rows) {
			cols, rows = c, rw
			grid.Resize(rows, cols)
			r.Resize(rows, cols)
		}

		grid.Tick()

		if err := r.Paint(grid); nil != err {
			paintErr = err
			return false
		}
		return true
	})
	return paintErr
}
