package fit

// Settings bounds the Levenberg-Marquardt solver. The zero value of any
// field means "use the default"; negative values are treated the same.
type Settings struct {
	// MaxIterations caps the number of LM iterations.
	MaxIterations int
	// ObjectiveTol stops the solver once the sum of squared residuals falls
	// below this value.
	ObjectiveTol float64
	// Tau scales the initial damping parameter.
	Tau float64
	// GradientTol is the gradient-norm convergence threshold (eps1).
	GradientTol float64
	// StepTol is the step-size convergence threshold (eps2).
	StepTol float64
}

func defaultSettings() *Settings {
	return &Settings{
		MaxIterations: 200,
		ObjectiveTol:  1e-16,
		Tau:           1e-3,
		GradientTol:   1e-8,
		StepTol:       1e-8,
	}
}

// withDefaults merges s over the defaults. Only positive fields override.
func (s *Settings) withDefaults() Settings {
	base := defaultSettings()
	if s == nil {
		return *base
	}
	merged := *base
	if s.MaxIterations > 0 {
		merged.MaxIterations = s.MaxIterations
	}
	if s.ObjectiveTol > 0 {
		merged.ObjectiveTol = s.ObjectiveTol
	}
	if s.Tau > 0 {
		merged.Tau = s.Tau
	}
	if s.GradientTol > 0 {
		merged.GradientTol = s.GradientTol
	}
	if s.StepTol > 0 {
		merged.StepTol = s.StepTol
	}
	return merged
}
