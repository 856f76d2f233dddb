package node_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/abhinvv1/Van-Emde-Boas-tree/node"
)

// state reports which of the three states described in the package spec's
// "state machine" design note (§4.8) a tree is currently in.
func state(tr *node.Tree) string {
	if tr.Empty() {
		return "Empty"
	}
	min, _ := tr.Min()
	max, _ := tr.Max()
	if min == max {
		return "Singleton"
	}
	return "Populated"
}

var _ = Describe("Tree state machine", func() {
	DescribeTable("transitions through Empty -> Singleton -> Populated -> Singleton -> Empty",
		func(universe uint64, a, b uint64) {
			tr, err := node.New(universe)
			Expect(err).NotTo(HaveOccurred())
			Expect(state(tr)).To(Equal("Empty"))

			ok, err := tr.Insert(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(state(tr)).To(Equal("Singleton"))
			Expect(tr.Check()).To(Succeed())

			ok, err = tr.Insert(b)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(state(tr)).To(Equal("Populated"))
			Expect(tr.Check()).To(Succeed())

			Expect(tr.Remove(b)).To(BeTrue())
			Expect(state(tr)).To(Equal("Singleton"))
			Expect(tr.Check()).To(Succeed())

			Expect(tr.Remove(a)).To(BeTrue())
			Expect(state(tr)).To(Equal("Empty"))
			Expect(tr.Check()).To(Succeed())
		},
		Entry("base case, U=2", uint64(2), uint64(0), uint64(1)),
		Entry("small recursive, U=16", uint64(16), uint64(3), uint64(12)),
		Entry("large recursive, U=2^16", uint64(1<<16), uint64(0), uint64(65535)),
	)

	Context("a Singleton", func() {
		var tr *node.Tree

		BeforeEach(func() {
			var err error
			tr, err = node.New(16)
			Expect(err).NotTo(HaveOccurred())
			ok, err := tr.Insert(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("holds its only key in both min and max", func() {
			min, _ := tr.Min()
			max, _ := tr.Max()
			Expect(min).To(Equal(uint64(7)))
			Expect(max).To(Equal(uint64(7)))
		})

		It("reports no cluster as populated", func() {
			_, clusters := tr.Children()
			for _, c := range clusters {
				Expect(c).To(BeNil())
			}
		})
	})

	Context("a Populated node", func() {
		var tr *node.Tree

		BeforeEach(func() {
			var err error
			tr, err = node.New(16)
			Expect(err).NotTo(HaveOccurred())
			for _, k := range []uint64{2, 3, 4, 5, 7, 14, 15} {
				_, err := tr.Insert(k)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("keeps max stored in a cluster, not just in the max slot", func() {
			max, _ := tr.Max()
			_, clusters := tr.Children()
			h := max / 4 // sqrtSize for U=16 is 4
			Expect(clusters[h]).NotTo(BeNil())
			Expect(clusters[h].Contains(max % 4)).To(BeTrue())
		})

		It("never stores min redundantly in a cluster", func() {
			Expect(tr.Check()).To(Succeed())
		})
	})
})
