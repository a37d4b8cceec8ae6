// Package status defines the structured error space shared by every
// moriarty subsystem.
//
// Five error kinds are distinguished, each with a stable payload tag that
// prefixes the rendered message:
//
//	Misconfigured           - a required collaborator is missing in the Universe.
//	UnsatisfiedConstraint   - a value fails its variable's constraints.
//	ValueNotFound           - the variable is known but carries no value.
//	VariableNotFound        - the name refers to no variable at all.
//	RetryableGeneration     - a stochastic generation attempt failed but may
//	                          succeed on retry.
//	NonRetryableGeneration  - generation failed and retrying cannot help.
//
// Callers MUST branch with errors.Is against the exported sentinels
// (ErrMisconfigured, ErrValueNotFound, ...) or with the predicates
// (IsMoriartyError, IsRetryable, ...), never by parsing the rendered text.
// The tag encoding exists only so that logs stay greppable; it is not an API.
//
// Generic errors produced by collaborators pass through this package
// unchanged and are NOT part of the moriarty error space: IsMoriartyError
// reports false for them.
package status
