package zone

// HeatFraction returns the heater duty derived from the commanded output,
// clamped to [0, 1].
func (z *Zone) HeatFraction() float64 {
	return DutyFromOutput(z.commanded)
}

// DutyFromOutput saturates a controller output into the actuator duty range.
// Values outside the range are clamped silently.
func DutyFromOutput(output float64) float64 {
	return max(0.0, min(1.0, output/FullScaleOutput))
}

// ApplyHeat advances the true temperature by one tick: heater contribution,
// passive cooling toward ambient, and the coupling term from other zones.
func (z *Zone) ApplyHeat(ambient, coupling float64) {
	z.temperature += z.HeatFraction() * MaxHeatPerTick
	z.temperature -= PassiveCooling(z.temperature, ambient)
	z.temperature += coupling
}

// PassiveCooling returns the temperature lost in one tick at temperature t.
func PassiveCooling(t, ambient float64) float64 {
	return BaseCooling + CoolingCoefficient*(t-ambient)
}
