package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/marionette/pkg/config"
	"github.com/arthur-debert/marionette/pkg/controls"
	"github.com/arthur-debert/marionette/pkg/dispatcher"
	"github.com/arthur-debert/marionette/pkg/events"
	"github.com/arthur-debert/marionette/pkg/imagesub"
	"github.com/arthur-debert/marionette/pkg/scene"
	"github.com/arthur-debert/marionette/pkg/snapshot"
	"github.com/arthur-debert/marionette/pkg/ui"
	"github.com/arthur-debert/marionette/pkg/values"
)

// session bundles the objects every command needs: configuration, a loaded
// scene with its registry, a dispatcher and a renderer on the command's
// output stream.
type session struct {
	cfg      *config.Config
	renderer ui.Renderer
	scene    *scene.Scene
	registry *controls.Registry
	disp     *dispatcher.Dispatcher
	images   *imagesub.Substituter
}

// newSession loads everything for one command invocation. The --format flag
// wins over the configured output format.
func newSession(cmd *cobra.Command, format, scenePath string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	if format == "" {
		format = cfg.Output.Format
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	sc, err := scene.Load(scenePath)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadScene, err)
	}

	images := imagesub.New(imagesub.Options{
		Client:      &http.Client{Timeout: cfg.Images.FetchTimeout},
		MaxBytes:    cfg.Images.MaxBytes,
		UserAgent:   cfg.Images.UserAgent,
		ErrorBuffer: cfg.Images.ErrorBuffer,
	})

	registry := controls.Build(sc)
	return &session{
		cfg:      cfg,
		renderer: renderer,
		scene:    sc,
		registry: registry,
		disp:     dispatcher.New(registry, images),
		images:   images,
	}, nil
}

// finish waits for in-flight image substitutions and reports their failures
func (s *session) finish() error {
	s.images.Close()

	var failed []imagesub.Error
	for err := range s.images.Errors() {
		failed = append(failed, err)
	}
	if len(failed) == 0 {
		return nil
	}

	_ = s.renderer.RenderMessage(MsgImageErrors)
	for _, err := range failed {
		_ = s.renderer.RenderError(err)
	}
	return fmt.Errorf("%d image substitution(s) failed", len(failed))
}

// parseValue turns a command-line literal into a dispatchable value.
// Booleans and numbers (including 0x-prefixed colors) are recognized;
// everything else stays a string, which dispatch accepts for string, enum
// and image-slot controls.
func parseValue(raw string) values.Value {
	switch raw {
	case "true":
		return values.Bool(true)
	case "false":
		return values.Bool(false)
	}
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		if n, err := strconv.ParseUint(raw[2:], 16, 32); err == nil {
			return values.Color(uint32(n))
		}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return values.Number(n)
	}
	return values.String(raw)
}

func newListCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:     "list <scene>",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "controls",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *format, args[0])
			if err != nil {
				return err
			}
			defer s.images.Close()

			return s.renderer.RenderControls(ui.Rows(s.registry))
		},
	}
}

func newGetCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:     "get <scene> <path>",
		Short:   MsgGetShort,
		GroupID: "controls",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *format, args[0])
			if err != nil {
				return err
			}
			defer s.images.Close()

			rows := ui.Rows(s.registry)
			for _, row := range rows {
				if row.Path == args[1] {
					return s.renderer.RenderValue(row.Path, row.Value)
				}
			}
			return fmt.Errorf("no control at %q", args[1])
		},
	}
}

func newSetCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:     "set <scene> <path> <value>",
		Short:   MsgSetShort,
		Long:    MsgSetLong,
		GroupID: "controls",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *format, args[0])
			if err != nil {
				return err
			}

			path, v := args[1], parseValue(args[2])
			if err := s.disp.DispatchErr(path, v); err != nil {
				s.images.Close()
				_ = s.renderer.RenderError(err)
				return fmt.Errorf(MsgErrDispatch, err)
			}

			if err := s.finish(); err != nil {
				return err
			}
			return s.renderer.RenderValue(path, v.Format())
		},
	}
}

func newFireCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:     "fire <scene> <path>",
		Short:   MsgFireShort,
		GroupID: "controls",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *format, args[0])
			if err != nil {
				return err
			}
			defer s.images.Close()

			hub := events.NewHub(s.scene)
			defer hub.Close()
			sub := hub.Subscribe(s.cfg.Events.Buffer)

			if err := s.disp.DispatchErr(args[1], values.TriggerFire()); err != nil {
				_ = s.renderer.RenderError(err)
				return fmt.Errorf(MsgErrDispatch, err)
			}

			// side effects of the trigger are already buffered
			sub.Cancel()
			for evt := range sub.Events() {
				_ = s.renderer.RenderEvent(evt)
			}
			return s.renderer.RenderMessage(MsgDispatched)
		},
	}
}

func newApplyCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:     "apply <scene> <snapshot>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		GroupID: "controls",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *format, args[0])
			if err != nil {
				return err
			}

			snap, err := snapshot.Load(args[1])
			if err != nil {
				s.images.Close()
				return fmt.Errorf(MsgErrLoadSnapshot, err)
			}

			report := s.disp.Apply(snap)
			if err := s.renderer.RenderReport(report); err != nil {
				s.images.Close()
				return err
			}
			return s.finish()
		},
	}
}

func newWatchCmd(format *string) *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:     "watch <scene> <snapshot>",
		Short:   MsgWatchShort,
		GroupID: "controls",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *format, args[0])
			if err != nil {
				return err
			}

			snap, err := snapshot.Load(args[1])
			if err != nil {
				s.images.Close()
				return fmt.Errorf(MsgErrLoadSnapshot, err)
			}

			hub := events.NewHub(s.scene)
			defer hub.Close()
			sub := hub.Subscribe(s.cfg.Events.Buffer)

			report := s.disp.Apply(snap)
			if err := s.renderer.RenderReport(report); err != nil {
				s.images.Close()
				return err
			}

			_ = s.renderer.RenderMessage(MsgWatchWaiting)
			deadline := time.After(duration)
			for {
				select {
				case evt, ok := <-sub.Events():
					if !ok {
						return s.finish()
					}
					_ = s.renderer.RenderEvent(evt)
				case <-deadline:
					return s.finish()
				}
			}
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 2*time.Second, MsgFlagDuration)
	return cmd
}
