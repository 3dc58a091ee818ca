package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/termdesk/app"
	"github.com/lixenwraith/termdesk/audio"
	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
	"github.com/lixenwraith/termdesk/terminal"
	"github.com/lixenwraith/termdesk/views"
)

var configFlag = flag.String("config", "", "Config file (yaml, toml or json)")

const (
	cmdAbout command.ID = command.User + iota
	cmdNewWindow
)

func main() {
	// Terminal must be restored before the stack trace is readable
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMDESK CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdesk: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdesk: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	screen, err := newScreen(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	appCfg := &app.Config{
		PollTimeout: cfg.PollTimeout,
		DoubleClick: cfg.DoubleClick,
		Bell:        cfg.Bell,
		Palette:     cfg.Palette,
		Logger:      logger,
	}
	if cfg.Bell == app.BellAudio {
		bell := audio.NewBell(nil)
		if err := bell.Start(); err != nil {
			logger.Printf("warn: audio bell unavailable: %v", err)
			appCfg.Bell = app.BellTerminal
		} else {
			defer bell.Close()
			appCfg.Beeper = bell
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	// Signals become interrupt events so modal loops unwind on the UI goroutine
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		for {
			select {
			case sig := <-sigCh:
				logger.Printf("info: received %v", sig)
				screen.PostEvent(terminal.Event{Type: terminal.EventInterrupt})
			case <-ctx.Done():
				return nil
			}
		}
	})

	prog := app.NewProgram(screen, appCfg)
	if cfg.PaletteFile != "" {
		table, err := palette.LoadFile(cfg.PaletteFile)
		if err != nil {
			logger.Printf("warn: %v", err)
		} else {
			palette.SetApplication(table)
		}
	}
	setupDemo(prog)

	result := prog.Run()
	logger.Printf("info: program ended with %v", result)

	cancel()
	if err := g.Wait(); err != nil {
		logger.Printf("error: %v", err)
	}
}

// openLog returns a discarding logger when path is empty
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "termdesk: ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

func newScreen(cfg *Config) (terminal.Screen, error) {
	mode, explicit := terminal.ParseColorMode(cfg.ColorMode)
	if !explicit {
		mode = terminal.DetectColorMode()
	}
	if cfg.Backend == "tcell" {
		return terminal.NewTcell(mode, cfg.Mouse)
	}
	return terminal.NewANSI(terminal.ANSIOptions{
		ColorMode: mode,
		Detect:    !explicit,
		Mouse:     cfg.Mouse,
	}), nil
}

// setupDemo opens two windows and binds the demo commands
func setupDemo(p *app.Program) {
	p.StatusLine.Items = append(p.StatusLine.Items,
		views.StatusItem{Text: "~F1~ About", Key: terminal.KeyF1, Command: cmdAbout},
		views.StatusItem{Text: "~F2~ New", Key: terminal.KeyF2, Command: cmdNewWindow},
	)

	windows := 0
	openWindow := func() {
		v := palette.BlueWindow
		if windows%2 == 1 {
			v = palette.CyanWindow
		}
		off := (windows % 8) * 2
		w := views.NewWindow(geom.RectWH(2+off, 1+off, 36, 9), fmt.Sprintf("Window %d", windows+1), v)
		w.Insert(views.NewStaticText(geom.RectWH(1, 1, 32, 3),
			"F6/F7 cycle windows\nF3 closes the active one\nF1 opens a modal dialog"))
		p.Desktop.Insert(w)
		windows++
	}
	openWindow()
	openWindow()

	p.OnCommand = func(ev *event.Event) {
		switch ev.Command {
		case cmdAbout:
			ev.Clear()
			p.ExecView(aboutDialog())
		case cmdNewWindow:
			ev.Clear()
			openWindow()
		}
	}
}

func aboutDialog() *views.Dialog {
	d := views.NewDialog(geom.RectWH(0, 0, 34, 9), "About", palette.GrayDialog)
	d.Insert(views.NewStaticText(geom.RectWH(2, 1, 28, 2), "termdesk\nwindowed text UI runtime"))
	d.Insert(views.NewButton(geom.RectWH(4, 4, 10, 2), "~O~K", command.OK, views.ButtonDefault))
	d.Insert(views.NewButton(geom.RectWH(17, 4, 10, 2), "~C~ancel", command.Cancel, views.ButtonNormal))
	return d
}
