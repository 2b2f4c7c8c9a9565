package system

import "errors"

var (
	ErrEmpty         = errors.New("system: no sites")
	ErrDisconnected  = errors.New("system: scattering region is disconnected")
	ErrLeadMismatch  = errors.New("system: lead does not match the scattering region")
	ErrLeadHopping   = errors.New("system: lead hopping spans more than one period")
	ErrLeadOverlap   = errors.New("system: scattering region overlaps an attached lead")
	ErrNoConvergence = errors.New("system: lead decimation did not converge")
	ErrLeadIndex     = errors.New("system: lead index out of range")
)
