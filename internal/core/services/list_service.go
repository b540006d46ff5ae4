package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/ports"
)

// ListService handles listing and looking up registered designers
type ListService struct {
	registry ports.RegistryStore
	datasets ports.DatasetStore
}

// NewListService creates a new list service
func NewListService(registry ports.RegistryStore, datasets ports.DatasetStore) *ListService {
	return &ListService{
		registry: registry,
		datasets: datasets,
	}
}

// ListRequest represents a request to list designers
type ListRequest struct {
	SortBy  string // "name", "images", "hash" (default: name)
	Reverse bool   // Reverse sort order
}

// ListResponse represents the response from listing designers
type ListResponse struct {
	Designers []domain.Designer
	Total     int
}

// Execute lists every registered designer with its image count
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	designers, err := s.loadDesigners(ctx)
	if err != nil {
		return nil, err
	}

	designers = s.sortDesigners(designers, req.SortBy, req.Reverse)

	return &ListResponse{
		Designers: designers,
		Total:     len(designers),
	}, nil
}

func (s *ListService) loadDesigners(ctx context.Context) ([]domain.Designer, error) {
	registry, err := s.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	designers := make([]domain.Designer, 0, registry.Count())
	for hash, name := range registry {
		count := 0
		if files, err := s.datasets.List(ctx, hash); err == nil {
			count = len(files)
		}
		designers = append(designers, domain.Designer{
			Hash:       hash,
			Name:       name,
			ImageCount: count,
		})
	}
	return designers, nil
}

func (s *ListService) sortDesigners(designers []domain.Designer, sortBy string, reverse bool) []domain.Designer {
	domain.SortDesigners(designers)

	switch sortBy {
	case "images":
		sort.SliceStable(designers, func(i, j int) bool {
			return designers[i].ImageCount < designers[j].ImageCount
		})
	case "hash":
		sort.SliceStable(designers, func(i, j int) bool {
			return designers[i].Hash < designers[j].Hash
		})
	}

	if reverse {
		for i, j := 0, len(designers)-1; i < j; i, j = i+1, j-1 {
			designers[i], designers[j] = designers[j], designers[i]
		}
	}
	return designers
}

// Get returns one dataset by exact hash or exact (trimmed) designer name
func (s *ListService) Get(ctx context.Context, key string) (*domain.Dataset, error) {
	registry, err := s.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	key = domain.NormalizeName(key)
	hash := key
	name, ok := registry[key]
	if !ok {
		hash, ok = registry.HashForName(key)
		if !ok {
			return nil, fmt.Errorf("designer not found: %s: %w", key, os.ErrNotExist)
		}
		name = key
	}

	files, err := s.datasets.List(ctx, hash)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read dataset %s: %w", hash, err)
	}

	return &domain.Dataset{
		Designer: domain.Designer{
			Hash:       hash,
			Name:       name,
			ImageCount: len(files),
		},
		Images: files,
	}, nil
}

// SearchRequest represents a search query
type SearchRequest struct {
	Query string
}

// SearchResponse represents search results
type SearchResponse struct {
	Designers []domain.Designer
	Total     int
}

// Search performs fuzzy search on designer names and hashes
func (s *ListService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	designers, err := s.loadDesigners(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortDesigners(designers)

	if strings.TrimSpace(req.Query) == "" {
		return &SearchResponse{
			Designers: designers,
			Total:     len(designers),
		}, nil
	}

	matches := s.fuzzySearch(designers, req.Query)

	return &SearchResponse{
		Designers: matches,
		Total:     len(matches),
	}, nil
}

// fuzzyMatch represents a scored match
type fuzzyMatch struct {
	designer domain.Designer
	score    int
}

// fuzzySearch scores names first, then hash prefixes
func (s *ListService) fuzzySearch(designers []domain.Designer, query string) []domain.Designer {
	query = strings.TrimSpace(query)

	var matches []fuzzyMatch
	for _, d := range designers {
		if score := fuzzyMatchScore(d.Name, query); score > 0 {
			matches = append(matches, fuzzyMatch{designer: d, score: score + 1000})
			continue
		}
		if strings.HasPrefix(d.Hash, strings.ToLower(query)) {
			matches = append(matches, fuzzyMatch{designer: d, score: 500})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.Designer, len(matches))
	for i, m := range matches {
		result[i] = m.designer
	}
	return result
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text
// Returns 0 if no match, higher scores for better matches
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	// Exact match gets highest score
	if text == query {
		return 10000
	}

	// Case-insensitive exact match
	if textLower == queryLower {
		return 9000
	}

	// Substring match (contains)
	if strings.Contains(textLower, queryLower) {
		score := 5000
		// Bonus for match at start
		if strings.HasPrefix(textLower, queryLower) {
			score += 2000
		}
		return score
	}

	// Fuzzy character-by-character matching
	score := 0
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	queryIdx := 0
	consecutiveMatches := 0
	lastMatchIdx := -1

	for textIdx := 0; textIdx < len(textRunes) && queryIdx < len(queryRunes); textIdx++ {
		if textRunes[textIdx] == queryRunes[queryIdx] {
			// Base score for each matched character
			score += 100

			// Bonus for consecutive matches
			if textIdx == lastMatchIdx+1 {
				consecutiveMatches++
				score += consecutiveMatches * 50 // Increasing bonus for consecutive chars
			} else {
				consecutiveMatches = 0
			}

			// Bonus for matching at word boundary
			if textIdx == 0 || unicode.IsSpace(textRunes[textIdx-1]) || textRunes[textIdx-1] == '-' || textRunes[textIdx-1] == '_' {
				score += 200
			}

			// Bonus for matching at start of string
			if textIdx == 0 {
				score += 300
			}

			lastMatchIdx = textIdx
			queryIdx++
		}
	}

	// All query characters must be matched
	if queryIdx != len(queryRunes) {
		return 0
	}

	// Penalty for gaps between matches
	if lastMatchIdx >= 0 {
		matchSpan := lastMatchIdx + 1
		penalty := (matchSpan - len(queryRunes)) * 10
		score -= penalty
	}

	return score
}
