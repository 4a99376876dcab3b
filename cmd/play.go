package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-voicings/audio"
	"go-voicings/config"
	"go-voicings/debug"
	"go-voicings/midi"
	"go-voicings/progression"
	"go-voicings/sequencer"
	"go-voicings/theme"
	"go-voicings/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Open the sequencer",
	Long: `Open the sequencer on a saved sequence, a generated progression, or the
project's autosave when neither is given. Edits are autosaved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, strs, err := voicingFlags(cmd)
		if err != nil {
			return err
		}
		store, err := projectStore()
		if err != nil {
			return err
		}
		project, _ := cmd.Flags().GetString("project")
		if project == "" {
			project = cfg.UI.LastProject
		}
		saver := sequencer.NewAutosaver(store.AutosavePath(project), time.Duration(cfg.UI.AutosaveDelay)*time.Millisecond)

		seq, err := loadPlaySequence(cmd, args, saver)
		if err != nil {
			return err
		}

		kind := cfg.Output.Kind
		if cmd.Flags().Changed("output") {
			name, _ := cmd.Flags().GetString("output")
			kind = config.OutputKind(name)
		}
		port := cfg.Output.PortName
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetString("port")
		}

		var (
			clock   sequencer.Clock
			out     sequencer.Output
			preview tui.Previewer
			cleanup func()
		)
		switch kind {
		case config.OutputAudio:
			engine := audio.NewEngine(cfg.Playback.Volume)
			if err := engine.Start(); err != nil {
				return fmt.Errorf("open audio: %w", err)
			}
			clock, out, preview = engine, engine, engine
			cleanup = engine.Close
		case config.OutputMIDI:
			send, resolved, err := midi.OpenSender(port)
			if err != nil {
				return err
			}
			debug.Log("cmd", "midi output %q", resolved)
			wall := sequencer.NewWallClock()
			mo := midi.NewOutput(send, wall, midiConfig())
			clock, out = wall, mo
			cleanup = func() {
				mo.Panic()
				midi.CloseDriver()
			}
		default:
			return fmt.Errorf("unknown output %q: want audio or midi", kind)
		}
		defer cleanup()

		sched := sequencer.NewScheduler(clock, out, sequencer.Options{})
		sched.SetSequence(seq)
		tempo := cfg.Playback.Tempo
		if cmd.Flags().Changed("tempo") {
			tempo, _ = cmd.Flags().GetInt("tempo")
		}
		sched.SetTempo(tempo)
		if err := sched.SetRhythm(cfg.Playback.Rhythm); err != nil {
			debug.Log("cmd", "config rhythm: %v", err)
		}
		sched.SetMetronome(cfg.Playback.Metronome)
		defer sched.Stop()

		m := tui.NewModel(sched, theme.New(theme.LoadOrDefault(cfg.UI.Palette)), t, strs)
		m.Preview = preview
		m.Saver = saver
		saver.Touch(seq)

		p := tea.NewProgram(m, tea.WithAltScreen())
		_, runErr := p.Run()

		saver.Touch(sched.Sequence())
		if err := saver.Flush(); err != nil {
			fmt.Println("autosave:", err)
		}
		cfg.UI.LastProject = project
		if err := cfg.Save(); err != nil {
			debug.Log("cmd", "save config: %v", err)
		}
		return runErr
	},
}

func init() {
	addVoicingFlags(playCmd)
	playCmd.Flags().String("progression", "", "generate this progression template instead of loading")
	playCmd.Flags().StringP("key", "k", "C", "key for --progression")
	playCmd.Flags().Int("tempo", sequencer.DefaultTempo, "tempo in bpm")
	playCmd.Flags().String("output", "audio", "audio or midi")
	playCmd.Flags().String("port", "", "midi output port name or substring")
	playCmd.Flags().StringP("project", "p", "", "project whose autosave is used")
	rootCmd.AddCommand(playCmd)
}

func loadPlaySequence(cmd *cobra.Command, args []string, saver *sequencer.Autosaver) (sequencer.Sequence, error) {
	if len(args) == 1 {
		return sequencer.ReadSequence(args[0])
	}
	if name, _ := cmd.Flags().GetString("progression"); name != "" {
		t, strs, err := voicingFlags(cmd)
		if err != nil {
			return nil, err
		}
		key, _ := cmd.Flags().GetString("key")
		return progression.GenerateSequenceWith(name, key, t, strs, progression.Options{Strict: cfg.Voicing.Strict})
	}
	return saver.Restore()
}

func midiConfig() midi.OutputConfig {
	return midi.OutputConfig{
		Channel:      uint8(cfg.Output.Channel),
		ClickChannel: uint8(cfg.Output.ClickChannel),
		Velocity:     uint8(cfg.Output.Velocity),
	}
}
