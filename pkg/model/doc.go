// Package model defines the catalog of creep model functions and the logic
// around them: partial binding of known constants before regression, and
// recalculation of fitted EVP parameters into final material constants.
//
// Overview
//
//   - Catalog (model.go):
//     A closed set of model families, each a pure function f(t, theta) of
//     time and a full parameter vector:
//
//     power_law      def(t) = C * t^n
//     nutting_law    def(t) = e0 + C * t^n
//     evp_s_d_Nkv    def(t) = const * (B0 + Cv*t - sum_i Di*exp(-t/tau_i))
//
//     with N in {1,2,3} Kelvin-Voigt elements. Get returns the Spec for a
//     Family; ByName resolves catalog names used on the command line.
//
//   - Binding (bind.go):
//     Bind fixes the constants the regression must not vary: the EVP
//     multiplicative constant (taken from the experiment descriptor), and
//     optionally the retardation times. The resulting BoundModel evaluates
//     the reduced free-parameter vector by expanding it to the full vector
//     and calling the catalog function. Empirical families bind nothing.
//
//   - Recalculation (recalc.go):
//     Recalculate maps fitted EVP parameters into final compliances and
//     retardation times, applying the ramp correction factor
//     rho(tau) = (tau/tR)*(exp(tR/tau)-1) for indentation experiments
//     (Mencik, Polymer Testing 30 (2011) 101-109).
//
//   - Errors (errs.go):
//     ErrUnknownModel      : name outside the catalog
//     ErrRetardationCount  : fixed retardation times do not match the model
//     ErrNotEVP            : recalculation requested for an empirical family
//
// Numeric semantics: the catalog functions are total for t >= 0 and any real
// parameter vector; tau_i = 0 divides by zero inside exp and propagates as a
// non-finite value, surfacing as a fitting failure rather than being
// special-cased here.
package model
