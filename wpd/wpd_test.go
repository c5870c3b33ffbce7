package wpd

import (
	"errors"
	"snapbooth/models"
	"snapbooth/proc"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubRunner struct {
	res  proc.Result
	err  error
	name string
	args []string
}

func (s *stubRunner) Run(name string, args ...string) (proc.Result, error) {
	s.name, s.args = name, args
	return s.res, s.err
}

func TestParse(t *testing.T) {
	out := "Nikon D750|USB\\VID_04B0&PID_043D\\6004155\r\n" +
		"\r\n" +
		"CANON EOS 90D | USB\\VID_04A9&PID_32EA\\0\r\n" +
		"Sony DSC-RX100|USB\\VID_054C\\1|extra\r\n" +
		"no separator here\r\n" +
		"|USB\\EMPTYNAME\r\n"

	want := []Device{
		{Name: "Nikon D750", InstanceID: `USB\VID_04B0&PID_043D\6004155`, Manufacturer: "Nikon"},
		{Name: "CANON EOS 90D", InstanceID: `USB\VID_04A9&PID_32EA\0`, Manufacturer: "Canon"},
		{Name: "Sony DSC-RX100", InstanceID: `USB\VID_054C\1|extra`, Manufacturer: "Unknown"},
	}
	if diff := cmp.Diff(want, Parse(out)); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestCameras(t *testing.T) {
	r := &stubRunner{res: proc.Result{Stdout: []byte("Nikon DSC D5300|USB\\VID_04B0\\7\n")}}
	got := NewLister(r).Cameras()

	want := []models.CameraInfo{{Model: "Nikon DSC D5300 (Nikon)", Port: `wpd:USB\VID_04B0\7`}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Cameras mismatch (-want +got):\n%s", diff)
	}
	if r.name != Shell {
		t.Errorf("ran %q, want %q", r.name, Shell)
	}
	if diff := cmp.Diff([]string{"-NoProfile", "-NonInteractive", "-Command", Query}, r.args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestCamerasDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    *stubRunner
	}{
		{"shell missing", &stubRunner{err: &proc.ExecError{Name: Shell, Err: errors.New("not found")}}},
		{"shell failed", &stubRunner{res: proc.Result{ExitCode: 1, Stdout: []byte("Nikon|X\n")}}},
		{"no devices", &stubRunner{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLister(tt.r).Cameras(); len(got) != 0 {
				t.Errorf("expected no cameras, got %v", got)
			}
		})
	}
}

func TestManufacturer(t *testing.T) {
	for name, want := range map[string]string{
		"Nikon D850":     "Nikon",
		"nikon z fc":     "Nikon",
		"Canon EOS R5":   "Canon",
		"Generic DSLR":   "Unknown",
		"Sony DSC-HX90V": "Unknown",
	} {
		if got := Manufacturer(name); got != want {
			t.Errorf("Manufacturer(%q) = %q, want %q", name, got, want)
		}
	}
}
