package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

var (
	ErrNoPort       = errors.New("midi output port not found")
	ErrPortsTimeout = errors.New("timed out listing midi ports")
)

// portTimeout bounds driver queries (CoreMIDI can hang)
const portTimeout = 3 * time.Second

func outPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case ports := <-ch:
		return ports, nil
	case <-time.After(portTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, ErrPortsTimeout
	}
}

// OutPorts lists output port names.
func OutPorts() ([]string, error) {
	ports, err := outPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names, nil
}

// matchPort prefers an exact name, then a case-insensitive substring. An
// empty name picks the first port.
func matchPort(names []string, want string) int {
	if len(names) == 0 {
		return -1
	}
	if want == "" {
		return 0
	}
	for i, n := range names {
		if n == want {
			return i
		}
	}
	lw := strings.ToLower(want)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), lw) {
			return i
		}
	}
	return -1
}

// OpenSender opens an output port by name and returns its send function
// together with the resolved port name.
func OpenSender(portName string) (func(gomidi.Message) error, string, error) {
	ports, err := outPorts()
	if err != nil {
		return nil, "", err
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	idx := matchPort(names, portName)
	if idx < 0 {
		return nil, "", fmt.Errorf("%w: %q", ErrNoPort, portName)
	}
	send, err := gomidi.SendTo(ports[idx])
	if err != nil {
		return nil, "", err
	}
	return send, names[idx], nil
}

// CloseDriver releases the MIDI driver.
func CloseDriver() {
	gomidi.CloseDriver()
}
