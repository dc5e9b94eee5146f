// Command vt102run attaches a spawned program to a pseudo-terminal, mirrors
// keystrokes and output between it and the real terminal, and tracks the
// session through a vt102 core the whole time. It exists to exercise the
// terminal package end to end; it is not part of the library.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/deskvt/vt102/terminal"
)

var (
	flagCols    int
	flagRows    int
	flagDump    bool
	flagLogFile string
)

func main() {
	root := &cobra.Command{
		Use:   "vt102run -- program [args...]",
		Short: "Attach a program to a pseudo-terminal tracked by a vt102 core",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}

	root.Flags().IntVar(&flagCols, "cols", 0, "terminal columns (0 = detect from stdout)")
	root.Flags().IntVar(&flagRows, "rows", 0, "terminal rows (0 = detect from stdout)")
	root.Flags().BoolVar(&flagDump, "dump", false, "print the tracked grid after the program exits")
	root.Flags().StringVar(&flagLogFile, "log", "", "write diagnostics to this file instead of discarding them")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	sessionID := uuid.New().String()

	diag, closeDiag, err := openDiagnostics(flagLogFile)
	if err != nil {
		return err
	}
	defer closeDiag()
	diag.Printf("session %s: starting %q", sessionID, strings.Join(args, " "))

	cols, rows := flagCols, flagRows
	if cols == 0 || rows == 0 {
		dc, dr := detectSize()
		if cols == 0 {
			cols = dc
		}
		if rows == 0 {
			rows = dr
		}
	}

	child := exec.Command(args[0], args[1:]...)
	child.Env = append(os.Environ(), "TERM=vt102")

	ptmx, err := pty.Start(child)
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		diag.Printf("unable to set pty size: %v", err)
	}

	core := terminal.NewCore(cols, rows, func(reply []byte) {
		if _, err := ptmx.Write(reply); err != nil {
			diag.Printf("write DA reply to pty: %v", err)
		}
	})
	core.SetDiagnostics(diag)

	stdinFD := int(os.Stdin.Fd())
	var restoreStdin func()
	if oldState, err := term.MakeRaw(stdinFD); err == nil {
		restoreStdin = func() { term.Restore(stdinFD, oldState) }
		defer restoreStdin()
	} else {
		diag.Printf("stdin is not a terminal, running without raw passthrough: %v", err)
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			w, h, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				continue
			}
			if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)}); err != nil {
				diag.Printf("resize pty: %v", err)
				continue
			}
			if err := core.Resize(w, h); err != nil {
				diag.Printf("resize core: %v", err)
			}
		}
	}()

	go io.Copy(ptmx, os.Stdin)

	buf := make([]byte, 4096)
	for {
		n, readErr := ptmx.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			os.Stdout.Write(chunk)
			core.Advance(chunk)
		}
		if readErr != nil {
			break
		}
	}

	if restoreStdin != nil {
		restoreStdin()
	}

	child.Wait()
	diag.Printf("session %s: exited", sessionID)

	if flagDump {
		fmt.Println()
		for _, line := range core.Screen().Snapshot() {
			fmt.Println(line)
		}
		fg, bg := core.Screen().AttrRune(core.Screen().CursorX(), core.Screen().CursorY())
		fmt.Printf("\ncursor (%d, %d) colors fg=%d bg=%d\n", core.Screen().CursorX(), core.Screen().CursorY(), fg, bg)
	}

	return nil
}

// detectSize reads the controlling terminal's size, falling back to a
// conservative default when stdout isn't a terminal.
func detectSize() (cols, rows int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

func openDiagnostics(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), func() { f.Close() }, nil
}
