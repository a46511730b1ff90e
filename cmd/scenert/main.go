package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/joho/godotenv"
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/config"
	"github.com/scenert/scenert/internal/coords"
	"github.com/scenert/scenert/internal/core/ecs"
	"github.com/scenert/scenert/internal/core/event"
	"github.com/scenert/scenert/internal/data"
	"github.com/scenert/scenert/internal/glyph"
	"github.com/scenert/scenert/internal/system"
	"github.com/scenert/scenert/internal/textedit"
	"github.com/scenert/scenert/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Environment and config
	envErr := godotenv.Load()
	cfgPath := "config/scenert.toml"
	if p := os.Getenv("SCENERT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	if envErr != nil {
		log.Debug("no .env loaded", zap.Error(envErr))
	}

	// 3. Glyph metrics and terminal collaborator
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	term, err := newTerminal(screen, loadFace(cfg.Text, log))
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer term.close()
	face := term.face()

	// 4. Scene
	design := coords.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height}
	ws := world.NewState(world.Options{
		Capacity:      cfg.Pool.Capacity,
		MaxChildren:   cfg.Pool.MaxChildren,
		MaxLights:     cfg.Pool.MaxLights,
		TextMaxLength: cfg.Text.MaxLength,
	}, design)
	ws.AddCamera(newCamera(cfg.Camera, design))

	opts := textedit.DefaultOptions()
	opts.CaretWidth = cfg.Text.CaretWidth
	opts.BlinkInterval = cfg.Text.BlinkInterval
	session := textedit.NewSession(ws, face, opts, log)
	pipeline := system.NewPipeline(ws, session, log)

	spin, err := spawnDemo(ws, face.LineHeight())
	if err != nil {
		return fmt.Errorf("spawn demo scene: %w", err)
	}
	event.Subscribe(pipeline.Bus, func(c event.Clicked) {
		if n, ok := c.Action.(component.Notify); ok {
			log.Info("button clicked", zap.String("name", n.Name), zap.Int32("entity", int32(c.EntityID)))
		}
	})
	log.Info("scene ready",
		zap.Int("entities", ws.Pool().Len()),
		zap.Int("capacity", ws.Pool().Cap()),
	)

	// 5. The demo is laid out for the configured window; the first resize
	// rescales it onto the terminal.
	v := term.viewport()
	event.Emit(pipeline.Bus, event.Resized{Width: v.Width, Height: v.Height})

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go term.poll(events, quit)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	// 6. Frame loop
	interval := cfg.Window.FrameInterval()
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	var angle float32
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(last)
			last = now

			angle += float32(dt.Seconds())
			ws.SetRotation(spin, mgl32.Vec3{angle / 2, angle, 0})

			pipeline.Frame(dt)
			term.paint(pipeline, time.Since(now))
		case ev := <-events:
			if !term.translate(pipeline.Bus, ev) {
				log.Info("quit requested")
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("received shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// loadFace returns the configured glyph metrics, used to size terminal cells.
func loadFace(cfg config.TextConfig, log *zap.Logger) glyph.Face {
	if cfg.FontMetrics == "" {
		return glyph.Mono{Advance: 8, Height: 16}
	}
	table, err := data.LoadGlyphTable(cfg.FontMetrics)
	if err != nil {
		log.Warn("glyph metrics unavailable, using monospace face", zap.Error(err))
		return glyph.Mono{Advance: 8, Height: 16}
	}
	log.Info("glyph metrics loaded", zap.String("path", cfg.FontMetrics), zap.Int("glyphs", table.Count()))
	return table
}

func newCamera(cfg config.CameraConfig, v coords.Viewport) *component.Camera {
	if cfg.Orthographic {
		h := v.Half()
		return component.NewOrthographicCamera(-h[0], h[0], -h[1], h[1], cfg.Near, cfg.Far)
	}
	return component.NewPerspectiveCamera(
		mgl32.Vec3{0, 2, 8}, mgl32.Vec3{0, -0.25, -1}.Normalize(), mgl32.Vec3{0, 1, 0},
		mgl32.DegToRad(cfg.FovDegrees), v.Width/v.Height, cfg.Near, cfg.Far,
	)
}

// spawnDemo lays out two text fields, a panel whose toggle button hides its
// siblings, and a lit model group. It returns the model to animate.
func spawnDemo(ws *world.State, lineHeight float32) (ecs.EntityID, error) {
	panel, err := ws.SpawnButton(component.Rect{X: 20, Y: 20, W: 560, H: 300}, mgl32.Vec4{0.15, 0.15, 0.25, 1}, nil)
	if err != nil {
		return ecs.None, err
	}

	if _, err := ws.SpawnTextField(component.Rect{X: 40, Y: 40, W: 400, H: lineHeight}, "Hello, scene", mgl32.Vec4{0.25, 0.25, 0.35, 1}, lineHeight); err != nil {
		return ecs.None, err
	}
	toggle, err := ws.SpawnButton(component.Rect{X: 40, Y: 100, W: 160, H: 2 * lineHeight}, mgl32.Vec4{0.2, 0.5, 0.3, 1}, component.ToggleSiblings{})
	if err != nil {
		return ecs.None, err
	}
	info, err := ws.SpawnButton(component.Rect{X: 220, Y: 100, W: 160, H: 2 * lineHeight}, mgl32.Vec4{0.5, 0.3, 0.2, 1}, component.Notify{Name: "info"})
	if err != nil {
		return ecs.None, err
	}
	notes, err := ws.SpawnTextField(component.Rect{X: 40, Y: 180, W: 400, H: lineHeight}, "", mgl32.Vec4{0.25, 0.25, 0.35, 1}, lineHeight)
	if err != nil {
		return ecs.None, err
	}
	for _, child := range []ecs.EntityID{toggle, info, notes} {
		if err := ws.AddChild(panel, child); err != nil {
			return ecs.None, err
		}
	}

	body, err := ws.SpawnModel(component.Mesh{Name: "body"}, mgl32.Vec3{0, 0, 0}, component.UnitBox(), mgl32.Vec4{0.8, 0.8, 0.2, 1})
	if err != nil {
		return ecs.None, err
	}
	wheel, err := ws.SpawnModel(component.Mesh{Name: "wheel"}, mgl32.Vec3{1.5, -0.5, 0}, component.UnitBox(), mgl32.Vec4{0.3, 0.3, 0.3, 1})
	if err != nil {
		return ecs.None, err
	}
	ws.GroupModels(body, "cart", body, wheel)
	if _, err := ws.AddLight(component.Light{Kind: component.LightPoint, Color: mgl32.Vec3{1, 1, 0.9}, Intensity: 1}, mgl32.Vec3{2, 4, 2}); err != nil {
		return ecs.None, err
	}
	return body, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
	}

	return zapCfg.Build()
}
