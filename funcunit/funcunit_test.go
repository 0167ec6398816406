package funcunit_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/procsim/funcunit"
)

func TestFuncUnit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FuncUnit Suite")
}

var _ = Describe("Pool", func() {
	var pool *funcunit.Pool

	BeforeEach(func() {
		pool = funcunit.New(1, 2, 3)
	})

	It("reports the configured size per class", func() {
		Expect(pool.Size(0)).To(Equal(1))
		Expect(pool.Size(1)).To(Equal(2))
		Expect(pool.Size(2)).To(Equal(3))
	})

	It("acquires up to the class size and then fails", func() {
		Expect(pool.Acquire(0)).To(BeTrue())
		Expect(pool.Acquire(0)).To(BeFalse())
		Expect(pool.OccupiedCount(0)).To(Equal(1))
	})

	It("allows a slot to be reused after release", func() {
		pool.Acquire(1)
		pool.Acquire(1)
		Expect(pool.Acquire(1)).To(BeFalse())

		pool.Release(1)
		Expect(pool.Acquire(1)).To(BeTrue())
		Expect(pool.OccupiedCount(1)).To(Equal(2))
	})

	It("tracks classes independently", func() {
		pool.Acquire(0)
		Expect(pool.OccupiedCount(1)).To(Equal(0))
		Expect(pool.OccupiedCount(2)).To(Equal(0))
	})

	It("is a no-op to release an idle class", func() {
		pool.Release(2)
		Expect(pool.OccupiedCount(2)).To(Equal(0))
	})
})
