// Package pid provides a discrete PID controller.
package pid

// DerivativeEpsilon is the smallest time step for which a derivative term is
// computed. Steps at or below it contribute a zero derivative.
const DerivativeEpsilon = 1e-6

// Gains holds the proportional, integral, and derivative gains.
type Gains struct {
	Kp float64
	Ki float64
	Kd float64
}

// Terms is the breakdown of a single controller output.
type Terms struct {
	P float64
	I float64
	D float64
}

// Sum returns the controller output that the terms add up to.
func (t Terms) Sum() float64 {
	return t.P + t.I + t.D
}

// A Controller computes a control output from a setpoint and a measured
// value.
//
// The integral accumulates without bound. There is no anti-windup clamp, so a
// controller that saturates its actuator for a long time keeps growing its
// integral term.
type Controller struct {
	gains Gains

	integral  float64
	prevError float64
	last      Terms
}

// NewController creates a controller with the given gains.
func NewController(gains Gains) *Controller {
	return &Controller{gains: gains}
}

// Compute returns the control output for one step of length dt seconds.
func (c *Controller) Compute(setpoint, actual, dt float64) float64 {
	err := setpoint - actual
	c.integral += err * dt

	derivative := 0.0
	if dt > DerivativeEpsilon {
		derivative = (err - c.prevError) / dt
	}

	c.prevError = err

	c.last = Terms{
		P: c.gains.Kp * err,
		I: c.gains.Ki * c.integral,
		D: c.gains.Kd * derivative,
	}

	return c.last.Sum()
}

// Gains returns the controller gains.
func (c *Controller) Gains() Gains {
	return c.gains
}

// Integral returns the accumulated error·dt.
func (c *Controller) Integral() float64 {
	return c.integral
}

// PreviousError returns the error seen by the latest Compute call.
func (c *Controller) PreviousError() float64 {
	return c.prevError
}

// LastTerms returns the P, I, and D contributions of the latest Compute call.
func (c *Controller) LastTerms() Terms {
	return c.last
}
