package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/schollz/mdlc/internal/compile"
	"github.com/schollz/mdlc/internal/fixture"
	"github.com/schollz/mdlc/internal/instrument"
	"github.com/schollz/mdlc/internal/midiconnector"
	"github.com/schollz/mdlc/internal/midievent"
	"github.com/schollz/mdlc/internal/midiplayer"
	"github.com/schollz/mdlc/internal/overlay"
	"github.com/schollz/mdlc/internal/telemetry"
	"github.com/schollz/mdlc/internal/textloc"
	"github.com/schollz/mdlc/internal/ui"
)

var (
	debugLog       string
	instrumentFile string
	oscAddr        string
)

func main() {
	root := &cobra.Command{
		Use:   "mdlc",
		Short: "Compile a music notation expression tree into a MIDI event stream",
	}
	root.PersistentFlags().StringVar(&debugLog, "debug", "", "if set, write debug logs to this file; empty disables logging")
	root.PersistentFlags().StringVar(&instrumentFile, "instrument-overlay", "", "JSON file of additional toned/drum instrument entries")

	compileCmd := &cobra.Command{
		Use:   "compile [fixture.json]",
		Short: "Compile a JSON expression tree fixture to the binary wire format on stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompile,
	}
	compileCmd.Flags().StringVar(&oscAddr, "osc-addr", "", "host:port to broadcast optional OSC telemetry to")

	playCmd := &cobra.Command{
		Use:   "play [stream.bin]",
		Short: "Decode a binary TimedMidiEvent stream and play it on a real MIDI output",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().String("device", "", "MIDI output device name (fuzzy-matched); prompts interactively if omitted")

	root.AddCommand(compileCmd, playCmd)

	setupCleanupOnExit()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() func() {
	if debugLog == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("mdlc: could not open debug log %s: %v", debugLog, err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return func() { f.Close() }
}

func loadOverlay() error {
	if instrumentFile == "" {
		return nil
	}
	extra, err := overlay.Load(instrumentFile)
	if err != nil {
		return err
	}
	instrument.LoadOverlay(extra)
	log.Printf("mdlc: loaded %d instrument overlay entries from %s", len(extra), instrumentFile)
	return nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	closeLog := setupLogging()
	defer closeLog()

	if err := loadOverlay(); err != nil {
		return err
	}

	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("mdlc compile: %w", err)
	}

	ids := textloc.NewCounter()
	root, err := fixture.Decode(ids, data)
	if err != nil {
		return fmt.Errorf("mdlc compile: %w", err)
	}

	events, err := compile.Compile(ids, root)
	if err != nil {
		return fmt.Errorf("mdlc compile: %w", err)
	}

	if oscAddr != "" {
		host, port, perr := splitHostPort(oscAddr)
		if perr != nil {
			return fmt.Errorf("mdlc compile: --osc-addr: %w", perr)
		}
		telemetry.New(host, port).Notify(events)
	}

	return midievent.WriteAll(os.Stdout, events)
}

func runPlay(cmd *cobra.Command, args []string) error {
	closeLog := setupLogging()
	defer closeLog()

	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("mdlc play: %w", err)
	}

	var events []midievent.TimedMidiEvent
	events, err = midievent.ReadAll(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("mdlc play: %w", err)
	}

	deviceName, _ := cmd.Flags().GetString("device")
	if deviceName == "" {
		deviceName, err = ui.Pick(midiconnector.Devices())
		if err != nil {
			return fmt.Errorf("mdlc play: %w", err)
		}
	}

	player, err := midiplayer.New(deviceName)
	if err != nil {
		return fmt.Errorf("mdlc play: %w", err)
	}
	defer player.Close()

	return player.Play(context.Background(), events)
}

func splitHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	return host, port, nil
}

func setupCleanupOnExit() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-c
		midiconnector.Close()
		os.Exit(0)
	}()
}
