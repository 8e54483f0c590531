package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/veracity-pipeline/history"
	"github.com/maastricht-university/veracity-pipeline/scoring"
)

func (a *app) predictCmd() *cobra.Command {
	var (
		emotions    string
		body, audio string
		save        bool
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify precomputed signals without recording",
		Example: `  veracity predict --emotions '{"happy":80,"neutral":10,"sad":5,"angry":5,"fear":0,"surprise":0,"disgust":0}' \
    --body 0.9 --audio 0.9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var facial scoring.EmotionDistribution
			if emotions != "" {
				d, err := scoring.ParseEmotionDistribution(json.RawMessage(emotions))
				if err != nil {
					a.log.WithError(err).Warn("facial emotion data rejected")
				} else {
					facial = d
				}
			}

			b, au := scoring.ParseSignal(body), scoring.ParseSignal(audio)
			if b.Failed() {
				a.log.WithError(b.Err).Warn("body language score is not numeric, using 0")
			}
			if au.Failed() {
				a.log.WithError(au.Err).Warn("audio score is not numeric, using 0")
			}

			res := scoring.NewEngine(scoring.DefaultModel()).Predict(facial, b, au)
			rec := history.NewRecord("predict", res)

			if save {
				store, err := a.openHistory(cmd.Context())
				if err != nil {
					return err
				}
				if store != nil {
					defer store.Close()
					if err := store.Save(cmd.Context(), rec); err != nil {
						return err
					}
				}
			}
			return a.print(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVar(&emotions, "emotions", "", "raw emotion scores as a JSON object")
	cmd.Flags().StringVar(&body, "body", "0", "body-language score in [0,1]")
	cmd.Flags().StringVar(&audio, "audio", "0", "audio energy score in [0,1]")
	cmd.Flags().BoolVar(&save, "save", false, "store the result in history")
	return cmd
}
