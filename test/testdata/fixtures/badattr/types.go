// Package badattr holds a fixture whose field directive is invalid so the
// end-to-end tests can verify that nothing is written on a diagnostic.
package badattr

//destructure:derive Destructure
type Widget struct {
	serial string `destructure:"hide"`
}
