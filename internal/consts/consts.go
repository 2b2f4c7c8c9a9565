package consts

const (
	CHARGE    = 1.6021918e-19 // Elementary charge (C)
	BOLTZMANN = 1.3806226e-23 // Boltzmann constant (J/K)
	KELVIN    = 273.15        // Kelvin temperature (K)
	PLANCK    = 6.6260755e-34 // Planck constant (J s)

	CONDUCTANCE_QUANTUM = CHARGE * CHARGE / PLANCK   // e^2/h (S)
	RESISTANCE_QUANTUM  = PLANCK / (CHARGE * CHARGE) // h/e^2 (ohm)
)

// Decimation defaults for lead surface Green's functions.
const (
	ETA         = 1e-10 // Imaginary part added to the energy
	DECIM_TOL   = 1e-12 // Coupling magnitude below which decimation stops
	DECIM_ITERS = 200
)

// ThermalEnergy returns k_B*T in eV for a temperature in Kelvin.
func ThermalEnergy(temp float64) float64 {
	return BOLTZMANN * temp / CHARGE
}
