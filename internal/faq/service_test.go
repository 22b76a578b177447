// internal/faq/service_test.go
package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFAQs() []FAQ {
	return []FAQ{
		{ID: 1, Category: CategoryStudents, Question: "How do I find hostels?", Answer: "Use the search screen."},
		{ID: 2, Category: CategoryLandlords, Question: "How do I list my hostel?", Answer: "Create a listing."},
		{ID: 3, Category: CategoryPayments, Question: "Does UniStay handle rent?", Answer: "No, pay the landlord directly."},
		{ID: 4, Category: CategorySafety, Question: "What does the verified badge mean?", Answer: "Documents were reviewed."},
	}
}

func TestFilterFAQs(t *testing.T) {
	t.Run("Should return everything for All Questions", func(t *testing.T) {
		assert.Len(t, filterFAQs(sampleFAQs(), CategoryAll, ""), 4)
		assert.Len(t, filterFAQs(sampleFAQs(), "", ""), 4)
	})

	t.Run("Should filter by category", func(t *testing.T) {
		matched := filterFAQs(sampleFAQs(), CategoryLandlords, "")

		require.Len(t, matched, 1)
		assert.Equal(t, int64(2), matched[0].ID)
	})

	t.Run("Should match query against question and answer", func(t *testing.T) {
		matched := filterFAQs(sampleFAQs(), CategoryAll, "HOSTEL")
		assert.Len(t, matched, 2)

		matched = filterFAQs(sampleFAQs(), CategoryAll, "reviewed")
		require.Len(t, matched, 1)
		assert.Equal(t, int64(4), matched[0].ID)
	})

	t.Run("Should combine category and query", func(t *testing.T) {
		matched := filterFAQs(sampleFAQs(), CategoryStudents, "hostel")

		require.Len(t, matched, 1)
		assert.Equal(t, int64(1), matched[0].ID)
	})

	t.Run("Should return empty when nothing matches", func(t *testing.T) {
		assert.Empty(t, filterFAQs(sampleFAQs(), CategoryPayments, "badge"))
	})

	t.Run("Should preserve input order", func(t *testing.T) {
		matched := filterFAQs(sampleFAQs(), CategoryAll, "hostel")

		require.Len(t, matched, 2)
		assert.Equal(t, int64(1), matched[0].ID)
		assert.Equal(t, int64(2), matched[1].ID)
	})
}
