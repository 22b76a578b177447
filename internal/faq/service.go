// internal/faq/service.go
package faq

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Service interface
type Service interface {
	Search(ctx context.Context, category, query string) ([]FAQ, error)
	SeedDefaults(ctx context.Context) error
}

type service struct {
	repo Repository
}

// NewService creates a new FAQ service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Search returns the FAQ entries matching a category chip and an
// optional free-text query. Matching mirrors the help screen: category
// "All Questions" (or empty) means everything, and the text query is a
// case-insensitive substring match on question and answer.
func (s *service) Search(ctx context.Context, category, query string) ([]FAQ, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return filterFAQs(items, category, query), nil
}

func filterFAQs(items []FAQ, category, query string) []FAQ {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]FAQ, 0, len(items))
	for _, item := range items {
		if category != "" && category != CategoryAll && item.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Question), query) &&
			!strings.Contains(strings.ToLower(item.Answer), query) {
			continue
		}
		matched = append(matched, item)
	}

	return matched
}

// SeedDefaults inserts the built-in help entries on first boot. An
// already-populated table is left alone.
func (s *service) SeedDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("📚 Seeding default FAQ entries...")

	for i, f := range defaultFAQs() {
		f.SortOrder = i + 1
		if err := s.repo.Insert(ctx, &f); err != nil {
			return fmt.Errorf("failed to seed FAQ %q: %w", f.Question, err)
		}
	}

	return nil
}

func defaultFAQs() []FAQ {
	return []FAQ{
		{
			Category: CategoryStudents,
			Question: "How do I find hostels near my university?",
			Answer:   "Pick your university in your profile, then open Find Hostels. The map centres on your campus and the filters let you narrow results by price, distance and gender preference.",
		},
		{
			Category: CategoryStudents,
			Question: "How do I request a booking?",
			Answer:   "Open a listing, choose a room type and your move-in date, and send the request. The landlord will accept or decline it and you will be notified by email.",
		},
		{
			Category: CategoryStudents,
			Question: "Can I cancel a booking request?",
			Answer:   "A pending request can simply be left to expire; once accepted, contact the landlord directly to arrange changes.",
		},
		{
			Category: CategoryLandlords,
			Question: "How do I list my hostel?",
			Answer:   "Create a landlord account, then add a listing with photos, monthly price, location and amenities. Your listing appears in student searches as soon as it is active.",
		},
		{
			Category: CategoryLandlords,
			Question: "How do I manage booking requests?",
			Answer:   "Your dashboard shows pending requests. Accept or decline each one; the student is notified automatically.",
		},
		{
			Category: CategoryPayments,
			Question: "Does UniStay handle rent payments?",
			Answer:   "No. UniStay connects students and landlords; rent and deposits are agreed and paid directly between you.",
		},
		{
			Category: CategorySafety,
			Question: "What does the verified badge mean?",
			Answer:   "Verified users have submitted their NIC (and student ID for students) and our team has reviewed the documents. Prefer dealing with verified accounts.",
		},
		{
			Category: CategorySafety,
			Question: "How do I report a suspicious listing?",
			Answer:   "Use the report option on the listing or email support@unistay.lk with the listing title. We review every report within 48 hours.",
		},
	}
}
