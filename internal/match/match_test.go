package match_test

import (
	"github.com/frahmantamala/skill-exchange/internal/match"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Terms", func() {
	It("should lower-case, trim and dedupe titles", func() {
		Expect(match.Terms([]string{" Guitar ", "guitar", "PIANO"})).To(Equal([]string{"guitar", "piano"}))
	})

	It("should drop blank titles", func() {
		Expect(match.Terms([]string{"", "   ", "\t"})).To(BeEmpty())
	})
})

var _ = Describe("ContainsPattern", func() {
	DescribeTable("escapes LIKE wildcards",
		func(term, pattern string) {
			Expect(match.ContainsPattern(term)).To(Equal(pattern))
		},
		Entry("plain", "guitar", "%guitar%"),
		Entry("percent", "50%", `%50\%%`),
		Entry("underscore", "a_b", `%a\_b%`),
		Entry("backslash", `c:\`, `%c:\\%`),
	)
})
