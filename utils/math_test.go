package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestClamp(t *testing.T) {
	test.That(t, Clamp(5, 6, 10), test.ShouldEqual, 6.)
	test.That(t, Clamp(12, 6, 10), test.ShouldEqual, 10.)
	test.That(t, Clamp(7.5, 6, 10), test.ShouldEqual, 7.5)
	// An inverted range resolves to the lower bound.
	test.That(t, Clamp(7.5, 10, 6), test.ShouldEqual, 10.)
}

func TestSquare(t *testing.T) {
	test.That(t, Square(-3), test.ShouldEqual, 9.)
	test.That(t, Square(0.5), test.ShouldEqual, 0.25)
}
