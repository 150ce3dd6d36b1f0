package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/zenjiro/pose-game/camera"
	"github.com/zenjiro/pose-game/common/healthcheck"
	"github.com/zenjiro/pose-game/common/metrics"
	"github.com/zenjiro/pose-game/common/utils"
	"github.com/zenjiro/pose-game/game"
	"github.com/zenjiro/pose-game/pipeline"
	"github.com/zenjiro/pose-game/pose"
	"github.com/zenjiro/pose-game/vizserver"
	viztypes "github.com/zenjiro/pose-game/vizserver/types"
)

func main() {
	app := cli.NewApp()
	app.Name = "pose-game"
	app.Usage = "camera-driven two-player motion game"
	app.Version = utils.GetVersion()

	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "device", Value: 0, Usage: "Camera device index"},
		cli.IntFlag{Name: "cameras", Value: 1, Usage: "Number of camera devices to cycle through on SIGHUP"},
		cli.IntFlag{Name: "width", Value: 1280, Usage: "Capture width"},
		cli.IntFlag{Name: "height", Value: 720, Usage: "Capture height"},
		cli.IntFlag{Name: "tps", Value: 60, Usage: "Game ticks per second"},
		cli.IntFlag{Name: "time-limit", Value: 60, Usage: "Round time limit in seconds"},
		cli.IntFlag{Name: "infer-size", Value: 0, Usage: "Downscale short side for inference (0 disables)"},
		cli.BoolFlag{Name: "duplicate", Usage: "Duplicate the center band to simulate two players"},
		cli.StringFlag{Name: "viz-addr", Value: "127.0.0.1:8080", Usage: "Viz server listen address (empty disables)"},
		cli.StringFlag{Name: "health-port", Value: "", Usage: "Healthcheck port (empty disables)"},
		cli.BoolFlag{Name: "profile", Usage: "Enable per-section frame timing"},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		utils.FailWith(err)
	}
}

func run(c *cli.Context) error {
	width := c.Int("width")
	height := c.Int("height")
	tps := c.Int("tps")
	utils.Assert(tps > 0, "tps must be positive")

	metricsClient, err := metrics.NewClient("pose-game")
	utils.Check(err, "Could not initialize metrics client")
	defer metricsClient.TearDown()

	timer := metrics.NewFrameTimer(c.Bool("profile"))

	// Long-lived slots; workers are disposable.
	frames := pipeline.NewFrameSlot()
	poses := pipeline.NewPoseSlot()

	// The in-tree capture backend is synthetic; a real backend implements
	// camera.Provider against the actual device API.
	supervisor := pipeline.NewCameraSupervisor(camera.SyntheticProvider(30), frames, width, height)
	if err := supervisor.Start(c.Int("device")); err != nil {
		return err
	}
	defer supervisor.TearDown()

	detector := pose.NewScriptedDetector()
	inference := pipeline.NewInferenceWorker(detector, frames, poses, pipeline.InferenceConfig{
		InferSize: c.Int("infer-size"),
		Duplicate: c.Bool("duplicate"),
	})
	inference.Start()
	defer inference.Stop(time.Second)

	g := game.NewGame(2, time.Duration(c.Int("time-limit"))*time.Second, game.DefaultPlayerRules())
	hazards := game.NewHazardManager(float64(width), float64(height))
	effects := game.NewEffectsManager()
	cues := game.NewCueDispatcher()

	vizAddr := c.String("viz-addr")
	loop := game.NewLoop(game.LoopConfig{
		Frames:     frames,
		Poses:      poses,
		Game:       g,
		Hazards:    hazards,
		Effects:    effects,
		Cues:       cues,
		Timer:      timer,
		Tps:        tps,
		Width:      width,
		Height:     height,
		PublishViz: vizAddr != "",
	})

	var viz *vizserver.VizService
	if vizAddr != "" {
		viz = vizserver.NewVizService(vizAddr, &viztypes.GameDescription{
			Name:   "pose-game",
			Tps:    tps,
			Width:  width,
			Height: height,
		}, game.VizEvent)

		go func() {
			err := viz.ListenAndServe()
			utils.Check(err, "Failed to serve viz on "+vizAddr)
		}()
	}

	if port := c.String("health-port"); port != "" {
		startHealthcheck(port, frames, poses)
	}

	metricsClient.Loop(func() {
		timer.FlushInto(metricsClient, "frame_sections")

		fields := map[string]interface{}{
			"frames": supervisor.Worker().FramesRead.GetAndReset(),
			"poses":  inference.PosesComputed.GetAndReset(),
		}
		if viz != nil {
			fields["watchers"] = viz.NumberWatchers()
		}

		metricsClient.WriteAppMetric("pipeline", fields)
	})

	// SIGHUP cycles to the next camera; SIGINT/SIGTERM stop the game.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	block := loop.Start()

	go func() {
		cameras := c.Int("cameras")
		for sig := range sigs {
			if sig == syscall.SIGHUP && cameras > 1 {
				next := (supervisor.CurrentIndex() + 1) % cameras
				if err := supervisor.Switch(next); err != nil {
					utils.FailWith(err)
				}
				continue
			}

			utils.Debug("pose-game", "received "+sig.String()+"; stopping")
			loop.Stop()
			return
		}
	}()

	<-block

	return nil
}

func startHealthcheck(port string, frames *pipeline.FrameSlot, poses *pipeline.PoseSlot) {
	server := healthcheck.NewHealthCheckServer(port)

	var lastFrameSeq uint64
	server.Register("frames-advancing", func() (error, bool) {
		_, seq, _ := frames.Get()
		advancing := seq > lastFrameSeq
		lastFrameSeq = seq
		return nil, advancing
	})

	var lastPoseSeq uint64
	server.Register("poses-advancing", func() (error, bool) {
		_, seq, _ := poses.Get()
		advancing := seq > lastPoseSeq
		lastPoseSeq = seq
		return nil, advancing
	})

	go server.Listen()

	utils.Debug("pose-game", "healthcheck listening on :"+port)
}
