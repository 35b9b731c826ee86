package graph

import "fmt"

// Fixed string constants shared by every collaborator that produces or
// consumes gradient variable names. Changing any of these is a breaking
// change for every gradient recipe registered against this package.
const (
	// GradSuffix is appended to a forward variable name to form its
	// gradient name.
	GradSuffix = "@GRAD"
	// ZeroSuffix is appended to form a variable's zero-filled-like alias.
	ZeroSuffix = "@ZERO"
	// RenameTag infixes a disambiguation alias assigned to one of several
	// writers of the same gradient variable. It never appears in a
	// user-provided name.
	RenameTag = "@RENAME@"
	// EmptyName is the sentinel "no variable here" name. Gradient machinery
	// treats it as a no-op placeholder rather than a real slot value.
	EmptyName = ""
)

// Well-known operator kinds that every collaborator recognizes by name.
const (
	// NOPKind marks a composite that does nothing.
	NOPKind = "@NOP@"
	// GeneratedBackwardKind marks a composite synthesized by this package.
	GeneratedBackwardKind = "@generated-backward@"
	// RecurrentKind is the forward leaf kind that owns a step-net.
	RecurrentKind = "recurrent"
	// RecurrentGradKind is the gradient counterpart of RecurrentKind.
	RecurrentGradKind = "recurrent_grad"
	// FillZerosLikeKind is the bookkeeping op the No-Grad Propagator
	// schedules to materialize a missing upstream gradient as zeros.
	FillZerosLikeKind = "fill-zeros-like"
	// AccumulateKind is the bookkeeping op the Builder inserts to sum the
	// renamed outputs of multiple writers of the same gradient variable.
	AccumulateKind = "accumulate"
)

// GradName returns the gradient name of a forward variable.
func GradName(v string) string {
	return v + GradSuffix
}

// ZeroName returns the zero-filled-like alias of a forward variable.
func ZeroName(v string) string {
	return v + ZeroSuffix
}

// StripGrad returns the forward name a gradient name was derived from. A
// name that does not end in GradSuffix is returned unchanged.
func StripGrad(g string) string {
	if len(g) < len(GradSuffix) || g[len(g)-len(GradSuffix):] != GradSuffix {
		return g
	}
	return g[:len(g)-len(GradSuffix)]
}

// RenameAlias returns a synthetic name disambiguating the i-th of several
// writers of v within the composite scope identified by uid. Aliases minted
// within one Backward invocation never collide, because uid is unique per
// composite scope and i is unique per writer within that scope.
func RenameAlias(v string, uid, i int) string {
	return fmt.Sprintf("%s%s%d@%d", v, RenameTag, uid, i)
}
