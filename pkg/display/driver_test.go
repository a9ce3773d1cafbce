package display

import (
	"flag"
	"testing"

	"github.com/thelolagemann/onebit/pkg/display/event"
)

type fakeDriver struct{ name string }

func (f *fakeDriver) Initialize(Synth)               {}
func (f *fakeDriver) Start(<-chan event.Event) error { return nil }
func (f *fakeDriver) Stop() error                    { return nil }

// withDrivers runs fn with a fresh driver and flag registry.
func withDrivers(t *testing.T, fn func()) {
	t.Helper()
	drivers, cmd := InstalledDrivers, flag.CommandLine
	InstalledDrivers = nil
	flag.CommandLine = flag.NewFlagSet("test", flag.ContinueOnError)
	defer func() {
		InstalledDrivers, flag.CommandLine = drivers, cmd
	}()
	fn()
}

func TestGetDriver(t *testing.T) {
	withDrivers(t, func() {
		if GetDriver("auto") != nil {
			t.Errorf("expected no driver without installs")
		}

		first, second := &fakeDriver{"first"}, &fakeDriver{"second"}
		Install("first", first, nil)
		Install("second", second, nil)

		if d := GetDriver("auto"); d != first {
			t.Errorf("expected auto to pick the first driver, got %v", d)
		}
		if d := GetDriver("second"); d != second {
			t.Errorf("expected the second driver, got %v", d)
		}
		if d := GetDriver("missing"); d != nil {
			t.Errorf("expected nil for an unknown driver, got %v", d)
		}
	})
}

func TestRegisterFlags(t *testing.T) {
	withDrivers(t, func() {
		var addrA, addrB, only string
		var debug bool
		Install("a", &fakeDriver{}, []DriverOption{
			{Name: "addr", Default: ":1", Value: &addrA, Type: "string"},
			{Name: "debug", Default: false, Value: &debug, Type: "bool"},
		})
		Install("b", &fakeDriver{}, []DriverOption{
			{Name: "addr", Default: ":1", Value: &addrB, Type: "string"},
			{Name: "only", Default: "x", Value: &only, Type: "string"},
		})
		RegisterFlags()

		if err := flag.CommandLine.Parse([]string{"-addr", ":2", "-a-debug", "-b-only", "y"}); err != nil {
			t.Fatal(err)
		}
		if addrA != ":2" || addrB != ":2" {
			t.Errorf("expected a shared option to set both drivers, got %q %q", addrA, addrB)
		}
		if !debug {
			t.Errorf("expected a-debug to be set")
		}
		if only != "y" {
			t.Errorf("expected b-only to be y, got %q", only)
		}
	})
}

func TestRegisterFlags_Shared(t *testing.T) {
	withDrivers(t, func() {
		var scopeA, scopeB bool
		var gain float64
		Install("a", &fakeDriver{}, []DriverOption{
			{Name: "scope", Default: false, Value: &scopeA, Type: "bool"},
			{Name: "gain", Default: 1.0, Value: &gain, Type: "float"},
		})
		Install("b", &fakeDriver{}, []DriverOption{
			{Name: "scope", Default: false, Value: &scopeB, Type: "bool"},
		})
		RegisterFlags()

		if f := flag.CommandLine.Lookup("scope"); f == nil || f.DefValue != "false" {
			t.Fatalf("expected a shared scope flag defaulting to false, got %+v", f)
		}
		if err := flag.CommandLine.Parse([]string{"-scope", "-a-gain", "0.25"}); err != nil {
			t.Fatal(err)
		}
		if !scopeA || !scopeB {
			t.Errorf("expected a bare shared bool to set both drivers, got %t %t", scopeA, scopeB)
		}
		if gain != 0.25 {
			t.Errorf("expected gain 0.25, got %g", gain)
		}
	})
}
