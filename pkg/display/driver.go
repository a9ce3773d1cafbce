package display

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/internal/synth"
	"github.com/thelolagemann/onebit/pkg/control"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/log"
)

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Initialize initializes the display driver by attaching it to
	// the synthesizer that is using it.
	Initialize(s Synth)
	// Start the display driver. It blocks until the driver is
	// closed, either by the user or by an event.Quit.
	Start(events <-chan event.Event) error
	// Stop the display driver.
	Stop() error
}

// Synth is the interface that wraps the methods a synthesizer
// implements in order for a driver to show and control it. The
// synthesizer is passed to the driver during initialization.
type Synth interface {
	// SendCommand sends a command packet to the synthesizer.
	SendCommand(command control.CommandPacket) control.ResponsePacket
	// Status returns the run state of the synthesizer.
	Status() control.Status
	// Knobs returns the raw knob positions.
	Knobs() [adc.NumKnobs]uint16
	// Readout returns the front panel state.
	Readout() synth.Readout
	// Scope returns the most recently rendered samples.
	Scope() []int16
}

var _ Synth = (*synth.Synth)(nil)

// Logging is implemented by drivers that show log output to the
// user. The returned logger may be shared with the synthesizer.
type Logging interface {
	Logger() log.Logger
}

// DriverOption is a setting of one display driver, exposed on the
// command line as -<driver>-<name>. Options that several drivers
// declare under the same name become a single -<name> flag that sets
// all of them.
type DriverOption struct {
	Name        string
	Default     any    // string, bool or float64, matching Type
	Value       any    // *string, *bool or *float64
	Description string
	Type        string // "string", "bool" or "float"
}

// InstalledDriver pairs a driver with the name it is selected by.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers lists the drivers compiled into the binary, in
// install order. Drivers add themselves with Install from init.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver installed as name. "auto" picks the
// first installed driver. It returns nil if there is no match.
func GetDriver(name string) Driver {
	if name == "auto" {
		if len(InstalledDrivers) == 0 {
			return nil
		}
		return InstalledDrivers[0].Driver
	}
	for _, d := range InstalledDrivers {
		if d.Name == name {
			return d.Driver
		}
	}
	return nil
}

// Install registers driver under name.
func Install(name string, driver Driver, options []DriverOption) {
	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// RegisterFlags adds the options of every installed driver to the
// default flag set. It must run before flag.Parse.
func RegisterFlags() {
	type owned struct {
		driver string
		opt    DriverOption
	}
	var names []string
	byName := make(map[string][]owned)
	for _, d := range InstalledDrivers {
		for _, opt := range d.Options {
			if _, ok := byName[opt.Name]; !ok {
				names = append(names, opt.Name)
			}
			byName[opt.Name] = append(byName[opt.Name], owned{d.Name, opt})
		}
	}

	for _, name := range names {
		owners := byName[name]
		if len(owners) == 1 {
			o := owners[0]
			registerOption(o.driver+"-"+name, o.opt)
			continue
		}

		shared := &sharedFlag{kind: owners[0].opt.Type}
		for _, o := range owners {
			setDefault(o.opt)
			shared.targets = append(shared.targets, o.opt.Value)
		}
		flag.Var(shared, name, owners[0].opt.Description)
	}
}

func registerOption(name string, opt DriverOption) {
	switch opt.Type {
	case "string":
		flag.StringVar(opt.Value.(*string), name, opt.Default.(string), opt.Description)
	case "bool":
		flag.BoolVar(opt.Value.(*bool), name, opt.Default.(bool), opt.Description)
	case "float":
		flag.Float64Var(opt.Value.(*float64), name, opt.Default.(float64), opt.Description)
	}
}

func setDefault(opt DriverOption) {
	switch v := opt.Value.(type) {
	case *string:
		*v = opt.Default.(string)
	case *bool:
		*v = opt.Default.(bool)
	case *float64:
		*v = opt.Default.(float64)
	}
}

// sharedFlag is a flag.Value that writes every parsed value to the
// option of each driver that declared it.
type sharedFlag struct {
	kind    string
	targets []any
}

func (f *sharedFlag) String() string {
	if f == nil || len(f.targets) == 0 {
		return ""
	}
	switch v := f.targets[0].(type) {
	case *string:
		return *v
	case *bool:
		return strconv.FormatBool(*v)
	case *float64:
		return strconv.FormatFloat(*v, 'g', -1, 64)
	}
	return ""
}

func (f *sharedFlag) Set(value string) error {
	for _, target := range f.targets {
		switch v := target.(type) {
		case *string:
			*v = value
		case *bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			*v = b
		case *float64:
			x, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			*v = x
		default:
			return fmt.Errorf("display: option of unsupported type %T", target)
		}
	}
	return nil
}

// IsBoolFlag lets a shared bool option be given without a value.
func (f *sharedFlag) IsBoolFlag() bool {
	return f.kind == "bool"
}
