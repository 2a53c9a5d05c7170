// Package options is the functional-options helper used across this
// module's constructors, copied from the teacher's x/options verbatim:
// a single Option func type plus ApplyOptions to fold them onto a
// pointer to the target config struct.
package options

type Option func(cfg interface{})

// ApplyOptions applies each opt to optionsStructPtr in order.
func ApplyOptions(optionsStructPtr interface{}, opts ...Option) {
	for _, opt := range opts {
		opt(optionsStructPtr)
	}
}
