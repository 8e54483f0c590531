package cli

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/veracity-pipeline/capture"
	"github.com/maastricht-university/veracity-pipeline/capture/mic"
	"github.com/maastricht-university/veracity-pipeline/capture/opencv"
	"github.com/maastricht-university/veracity-pipeline/config"
	"github.com/maastricht-university/veracity-pipeline/orchestrator"
)

func (a *app) runCmd() *cobra.Command {
	var (
		seconds int
		mock    bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Record from the webcam and microphone, then classify",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seconds > 0 {
				a.cfg.Capture.Duration = config.DurSeconds(seconds)
			}
			if mock {
				a.cfg.Capture.Backend = capture.BackendMock
			}

			opts := []orchestrator.Option{orchestrator.WithLogger(a.log)}
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				opts = append(opts, orchestrator.WithStore(store))
			}

			p := orchestrator.NewPipeline(a.cfg, devices(a.cfg.Capture), opts...)
			s, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().IntVar(&seconds, "duration", 0, "recording length in seconds (default from config)")
	cmd.Flags().BoolVar(&mock, "mock", false, "use synthetic camera and microphone")
	return cmd
}

func devices(c capture.Config) orchestrator.Devices {
	if c.Backend == capture.BackendMock {
		m := capture.NewMockMicrophone(c)
		m.Frequency = 220
		m.Realtime = true
		return orchestrator.Devices{
			Camera:     &capture.MockCamera{},
			Microphone: m,
			Frames:     capture.NewMockFrames(),
		}
	}
	return orchestrator.Devices{
		Camera:     opencv.NewWebcam(c),
		Microphone: mic.New(c),
		Frames:     opencv.Frames{},
	}
}
