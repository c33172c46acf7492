package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestGetenvInt(t *testing.T) {
	const name = "GRIDPLAN_TEST_INT"

	test.That(t, GetenvInt(name, 7), test.ShouldEqual, 7)

	t.Setenv(name, "42")
	test.That(t, GetenvInt(name, 7), test.ShouldEqual, 42)

	t.Setenv(name, "lots")
	test.That(t, GetenvInt(name, 7), test.ShouldEqual, 7)
}
