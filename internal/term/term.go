package term

import (
	"context"
	"errors"
	"sync/atomic"

	"snake-grid/internal/session"
	"snake-grid/internal/snake"
	"snake-grid/internal/view"

	"github.com/gdamore/tcell/v2"
)

// Action is what a terminal key press asks for.
type Action int

const (
	ActNone Action = iota
	ActSteer
	ActReset
	ActQuit
)

// Translate maps a tcell key event to an action and, for ActSteer, the key.
func Translate(ev *tcell.EventKey) (Action, snake.Key) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActQuit, snake.KeyNone
	case tcell.KeyEnter:
		return ActReset, snake.KeyNone
	case tcell.KeyUp:
		return ActSteer, snake.KeyUp
	case tcell.KeyDown:
		return ActSteer, snake.KeyDown
	case tcell.KeyLeft:
		return ActSteer, snake.KeyLeft
	case tcell.KeyRight:
		return ActSteer, snake.KeyRight
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			return ActQuit, snake.KeyNone
		case 'r', 'R':
			return ActReset, snake.KeyNone
		default:
			if k := snake.ParseKey(string(r)); k != snake.KeyNone {
				return ActSteer, k
			}
		}
	}
	return ActNone, snake.KeyNone
}

// Frontend connects a screen to a session runner.
type Frontend struct {
	screen   tcell.Screen
	runner   *session.Runner
	gameOver atomic.Bool
}

// New returns a Frontend drawing on an initialized screen.
func New(screen tcell.Screen, runner *session.Runner) *Frontend {
	return &Frontend{screen: screen, runner: runner}
}

// Run plays until the player quits or ctx is cancelled. The caller owns the
// screen and finalizes it afterwards.
func (f *Frontend) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- f.runner.Run(ctx, func(fr view.Frame) {
			f.gameOver.Store(fr.GameOver)
			Draw(f.screen, fr)
		})
	}()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return waitRunner(runErr)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				f.screen.Sync()
			case *tcell.EventKey:
				act, k := Translate(ev)
				var err error
				switch act {
				case ActQuit:
					cancel()
					return waitRunner(runErr)
				case ActReset:
					if f.gameOver.Load() {
						err = f.runner.Reset(ctx)
					}
				case ActSteer:
					err = f.runner.Key(ctx, k)
				}
				if err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
			}
		}
	}
}

func waitRunner(ch <-chan error) error {
	if err := <-ch; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
