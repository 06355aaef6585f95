package pty

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	"github.com/pleimann/swipepad/internal/action"
)

// Manager runs the target TUI in a PTY and receives the keys that
// gestures are bound to
type Manager struct {
	command    string
	args       []string
	workingDir string
	mirror     io.Writer

	mu   sync.Mutex
	ptmx *os.File
	cmd  *exec.Cmd
	done chan struct{}

	outputMu     sync.RWMutex
	outputBuffer *RingBuffer
}

// NewManager creates a manager for command. Output is mirrored to
// mirror when it is non-nil.
func NewManager(command string, args []string, workingDir string, mirror io.Writer) (*Manager, error) {
	if command == "" {
		return nil, fmt.Errorf("command is required")
	}

	return &Manager{
		command:      command,
		args:         args,
		workingDir:   workingDir,
		mirror:       mirror,
		outputBuffer: NewRingBuffer(4096),
	}, nil
}

// Start starts the TUI process in a PTY
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd != nil {
		return fmt.Errorf("already started")
	}

	cmd := exec.CommandContext(ctx, m.command, m.args...)
	if m.workingDir != "" {
		cmd.Dir = m.workingDir
	}
	cmd.Env = os.Environ()

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start PTY: %w", err)
	}

	m.ptmx = ptmx
	m.cmd = cmd
	m.done = make(chan struct{})

	go m.readOutput(ptmx)

	go func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			log.Printf("TUI process exited: %v", err)
		}
		close(m.done)
	}()

	return nil
}

// Done is closed when the TUI process exits. It is nil before Start.
func (m *Manager) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// Stop interrupts the TUI process and closes the PTY
func (m *Manager) Stop() {
	m.mu.Lock()
	cmd, done := m.cmd, m.done
	ptmx := m.ptmx
	m.ptmx = nil
	m.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		select {
		case <-done:
		default:
			cmd.Process.Signal(os.Interrupt)
			<-done
		}
	}

	if ptmx != nil {
		ptmx.Close()
	}
}

func (m *Manager) readOutput(ptmx *os.File) {
	buf := make([]byte, 1024)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			m.outputMu.Lock()
			m.outputBuffer.Write(buf[:n])
			m.outputMu.Unlock()

			if m.mirror != nil {
				m.mirror.Write(buf[:n])
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				log.Printf("PTY read error: %v", err)
			}
			return
		}
	}
}

// WriteKey writes a key press to the PTY
func (m *Manager) WriteKey(key action.KeyPress) error {
	data := key.ToBytes()
	if len(data) == 0 {
		return fmt.Errorf("could not convert %s to bytes", key)
	}
	return m.write(data)
}

// WriteString writes raw text to the PTY
func (m *Manager) WriteString(s string) error {
	return m.write([]byte(s))
}

func (m *Manager) write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ptmx == nil {
		return fmt.Errorf("PTY not started")
	}

	_, err := m.ptmx.Write(data)
	return err
}

// RecentOutput returns the last few KB the TUI wrote
func (m *Manager) RecentOutput() string {
	m.outputMu.RLock()
	defer m.outputMu.RUnlock()
	return m.outputBuffer.String()
}

// StatusLine returns the last non-empty line the TUI wrote
func (m *Manager) StatusLine() string {
	m.outputMu.RLock()
	defer m.outputMu.RUnlock()
	return m.outputBuffer.LastLine()
}

// Resize resizes the PTY window
func (m *Manager) Resize(rows, cols uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ptmx == nil {
		return fmt.Errorf("PTY not started")
	}

	return pty.Setsize(m.ptmx, &pty.Winsize{
		Rows: rows,
		Cols: cols,
	})
}

// IsRunning reports whether the TUI process has started and not exited
func (m *Manager) IsRunning() bool {
	done := m.Done()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}
