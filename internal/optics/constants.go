package optics

// Physical constants, SI units. These are process-wide and immutable;
// types that need a different value (e.g. [Spectrum], the Lorentz
// oscillator material) take a per-instance override field instead of
// mutating anything global.
const (
	// SpeedOfLight in vacuum, m/s.
	SpeedOfLight = 2.99792458e8

	// VacuumPermittivity, F/m.
	VacuumPermittivity = 8.854e-12

	// ElectronCharge, C.
	ElectronCharge = 1.6022e-19

	// ElectronMass, kg.
	ElectronMass = 9.109e-31
)
