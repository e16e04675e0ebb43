package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sarchlab/zonesim/pid"
	"github.com/sarchlab/zonesim/simulation"
)

// ErrInvalidArgument is wrapped by every positional argument error.
var ErrInvalidArgument = errors.New("invalid argument")

// runParams are the positional parameters of a run.
type runParams struct {
	setpoint float64
	gains    pid.Gains
	duration time.Duration
}

func defaultParams() runParams {
	return runParams{
		setpoint: simulation.DefaultSetpoint,
		gains:    simulation.DefaultGains,
		duration: simulation.DefaultDuration,
	}
}

// parseArgs reads "setpoint kp ki kd duration". Omitted trailing arguments
// keep their defaults.
func parseArgs(args []string) (runParams, error) {
	p := defaultParams()

	floats := []struct {
		name string
		dst  *float64
	}{
		{"setpoint", &p.setpoint},
		{"kp", &p.gains.Kp},
		{"ki", &p.gains.Ki},
		{"kd", &p.gains.Kd},
	}

	for i, f := range floats {
		if i >= len(args) {
			return p, nil
		}

		v, err := parseFloat(f.name, args[i])
		if err != nil {
			return p, err
		}
		*f.dst = v
	}

	if len(args) > len(floats) {
		d, err := parseSeconds("duration", args[len(floats)])
		if err != nil {
			return p, err
		}
		p.duration = d
	}

	return p, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidArgument, name, s)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not finite", ErrInvalidArgument, name, s)
	}

	return v, nil
}

func parseSeconds(name, s string) (time.Duration, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a whole number of seconds",
			ErrInvalidArgument, name, s)
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: %s %q is negative", ErrInvalidArgument, name, s)
	}

	return time.Duration(n) * time.Second, nil
}
