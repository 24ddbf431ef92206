package main

import (
	"context"
	"fmt"
	"image"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/swraster/pkg/render"
)

// showPreview draws fb in the alternate screen until a key is pressed or
// ctx is done.
func showPreview(ctx context.Context, fb *render.Framebuffer) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	term.EnterAltScreen()
	term.HideCursor()

	draw := func() error {
		term.Resize(width, height)
		term.Erase()
		p := render.NewPreview(fb, width, height)
		p.Draw(term, uv.Rectangle(image.Rect(0, 0, width, height)))
		return term.Display()
	}
	if err := draw(); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				if err := draw(); err != nil {
					return fmt.Errorf("display: %w", err)
				}
			case uv.KeyPressEvent:
				return nil
			}
		}
	}
}
