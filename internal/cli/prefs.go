package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/tote/internal/app"
)

// NewPrefsCommand creates the prefs command. Without flags it prints the
// current preferences.
func NewPrefsCommand(opts *RootOptions) *cobra.Command {
	var reducedMotion, sound, haptics bool
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change display preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(sess *app.Session) error {
				c := sess.Provider.Cart()
				p := c.Prefs()
				flags := cmd.Flags()
				changed := flags.Changed("reduced-motion") || flags.Changed("sound") || flags.Changed("haptics")
				if flags.Changed("reduced-motion") {
					p.ReducedMotion = reducedMotion
				}
				if flags.Changed("sound") {
					p.SoundEnabled = sound
				}
				if flags.Changed("haptics") {
					p.HapticsEnabled = haptics
				}
				c.SetPrefs(p)
				if changed && c.IsEmpty() {
					sess.Logger.Warn("preferences are only saved while the cart holds items")
				}

				view := newPrefsView(c.Prefs())
				return formatter(opts, cmd).Emit(view, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "reduced motion  %s\nsound           %s\nhaptics         %s\n",
						onOff(view.ReducedMotion), onOff(view.Sound), onOff(view.Haptics))
					return err
				})
			})
		},
	}
	cmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "disable animations")
	cmd.Flags().BoolVar(&sound, "sound", true, "enable sound cues")
	cmd.Flags().BoolVar(&haptics, "haptics", true, "enable haptic cues")
	return cmd
}
