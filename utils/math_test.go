package utils

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestIntHelpers(t *testing.T) {
	test.That(t, MaxInt(2, 7), test.ShouldEqual, 7)
	test.That(t, MaxInt(7, 2), test.ShouldEqual, 7)
}

func TestSaturatingPowInt(t *testing.T) {
	test.That(t, SaturatingPowInt(2, 10), test.ShouldEqual, 1024)
	test.That(t, SaturatingPowInt(0, 10), test.ShouldEqual, 0)
	test.That(t, SaturatingPowInt(0, 0), test.ShouldEqual, 1)
	test.That(t, SaturatingPowInt(1, 1000), test.ShouldEqual, 1)
	test.That(t, SaturatingPowInt(50, 10), test.ShouldEqual, 97656250000000000)
	test.That(t, SaturatingPowInt(80, 10), test.ShouldEqual, math.MaxInt)
	test.That(t, SaturatingPowInt(-2, 3), test.ShouldEqual, 0)
}

func TestSampleRandomIntRange(t *testing.T) {
	//nolint:gosec
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := SampleRandomIntRange(3, 5, r)
		test.That(t, v, test.ShouldBeBetweenOrEqual, 3, 5)
	}
}
