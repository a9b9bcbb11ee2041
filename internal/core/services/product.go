package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// Ensure ProductService implements the interface.
var _ driving.ProductService = (*ProductService)(nil)

const missingValue = "not specified"

// ProductService aggregates card metadata, prices and keywords.
type ProductService struct {
	catalog   driven.Catalog
	extractor driven.KeywordExtractor
}

// NewProductService creates a new product service.
// extractor may be nil, in which case no keywords are derived.
func NewProductService(catalog driven.Catalog, extractor driven.KeywordExtractor) *ProductService {
	return &ProductService{
		catalog:   catalog,
		extractor: extractor,
	}
}

// Get resolves a product link or id into aggregated product info.
// Only the card is required; missing prices or keywords are logged.
func (s *ProductService) Get(ctx context.Context, ref string) (*domain.ProductInfo, error) {
	id, err := domain.ParseProductID(ref)
	if err != nil {
		return nil, err
	}

	card, err := s.catalog.FetchCard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch card %d: %w", id, err)
	}

	info := &domain.ProductInfo{
		Card:        *card,
		Photos:      s.catalog.PhotoURLs(*card),
		Composition: compositionOf(*card),
		Country:     optionOr(*card, domain.OptionCountry, missingValue),
	}

	prices, err := s.catalog.FetchPrices(ctx, id)
	if err != nil {
		logger.Warn("Prices unavailable for %d: %v", id, err)
	} else {
		info.Prices = prices
	}

	info.Keywords = s.keywords(ctx, *card)
	return info, nil
}

func (s *ProductService) keywords(ctx context.Context, card domain.ProductCard) []string {
	if s.extractor == nil {
		return nil
	}

	keywords, err := s.extractor.Extract(ctx, card)
	if err != nil {
		if !errors.Is(err, domain.ErrNoKeywords) {
			logger.Warn("Keyword extraction (%s) failed for %d: %v", s.extractor.Name(), card.ID, err)
		}
		return nil
	}

	logger.Debug("Extracted %d keywords for %d using %s", len(keywords), card.ID, s.extractor.Name())
	return keywords
}

// compositionOf prefers the composition option and falls back to the
// composition component list.
func compositionOf(card domain.ProductCard) string {
	if value, ok := card.Option(domain.OptionComposition); ok && value != "" {
		return value
	}
	if len(card.Compositions) > 0 {
		return strings.Join(card.Compositions, ", ")
	}
	return missingValue
}

func optionOr(card domain.ProductCard, name, fallback string) string {
	if value, ok := card.Option(name); ok && value != "" {
		return value
	}
	return fallback
}
