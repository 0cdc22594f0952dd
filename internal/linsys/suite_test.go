package linsys_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLinsysSpecs(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Linsys Suite")
}
