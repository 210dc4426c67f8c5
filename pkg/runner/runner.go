package runner

import (
	"bytes"
	"os"

	"github.com/dimiro1/banner"
)

// State tracks a runner through its lifecycle.
type State int

const (
	StateNew State = iota
	StateStarting
	StateRunning
	StateStopped
)

// Hooks are invoked around the run.
type Hooks struct {
	OnStart func()
	OnStop  func()
}

const Version = "dev"

// PrintBanner writes the startup banner.
func PrintBanner() {
	tpl := "{{ .Title \"PARLEY\" \"\" 0 }}\nVersion: " + Version + "\n"
	banner.Init(os.Stdout, true, true, bytes.NewBufferString(tpl))
}
