package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"musafir/internal/domains/property/model"
	"musafir/internal/domains/property/model/dto"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
)

func TestBuildSearchFilter(t *testing.T) {
	t.Run("empty request filters to active listings only", func(t *testing.T) {
		filter := BuildSearchFilter(dto.SearchPropertiesRequest{})

		assert.Len(t, filter.Filters, 1)
		assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
	})

	t.Run("same request builds the same group", func(t *testing.T) {
		minPrice := 1000.0
		bedrooms := 3
		req := dto.SearchPropertiesRequest{
			City:     "Jeddah",
			Purpose:  model.PurposeRent,
			MinPrice: &minPrice,
			Bedrooms: &bedrooms,
		}

		first := BuildSearchFilter(req)
		second := BuildSearchFilter(req)

		assert.Equal(t, first, second)

		firstWhere, firstArgs := first.GetWhereClause()
		secondWhere, secondArgs := second.GetWhereClause()
		assert.Equal(t, firstWhere, secondWhere)
		assert.Equal(t, firstArgs, secondArgs)
	})

	t.Run("all panel fields add constraints", func(t *testing.T) {
		minPrice, maxPrice := 500.0, 2500.0
		bedrooms := 2
		req := dto.SearchPropertiesRequest{
			City:         "Riyadh",
			PropertyType: "apartment",
			Purpose:      model.PurposeSale,
			MinPrice:     &minPrice,
			MaxPrice:     &maxPrice,
			Bedrooms:     &bedrooms,
		}

		filter := BuildSearchFilter(req)

		assert.Len(t, filter.Filters, 7)

		_, args := filter.GetWhereClause()
		assert.Equal(t, minPrice, args["min_price"])
		assert.Equal(t, maxPrice, args["max_price"])
	})
}

func TestPropertySortKeys(t *testing.T) {
	t.Run("known keys map to whitelisted columns", func(t *testing.T) {
		params := gDto.QueryParams{}
		params.ResolveSortKey("price_asc", dto.PropertySortKeys)

		assert.Equal(t, model.FieldPrice, params.SortBy)
		assert.Equal(t, gDto.SortDirAsc, params.SortDir)
	})

	t.Run("unknown keys fall back to default ordering", func(t *testing.T) {
		params := gDto.QueryParams{}
		params.ResolveSortKey("price; DROP TABLE properties", dto.PropertySortKeys)

		assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
		assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)
	})
}
