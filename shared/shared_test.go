package shared_test

import (
	"reflect"
	"testing"

	"musafir/shared"
	"musafir/shared/constant"
	"musafir/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "negative limit returns 1",
			total:    100,
			limit:    -5,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "division with remainder",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "limit greater than total",
			total:    5,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name        string
		page        int
		limit       int
		expectedLen int
		expectedAt0 int
	}{
		{
			name:        "first page",
			page:        1,
			limit:       10,
			expectedLen: 10,
			expectedAt0: 0,
		},
		{
			name:        "last partial page",
			page:        3,
			limit:       10,
			expectedLen: 3,
			expectedAt0: 20,
		},
		{
			name:        "page past the end clamps to last page",
			page:        99,
			limit:       10,
			expectedLen: 3,
			expectedAt0: 20,
		},
		{
			name:        "page below one clamps to first page",
			page:        0,
			limit:       10,
			expectedLen: 10,
			expectedAt0: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.Paginate(items, tt.page, tt.limit)
			if len(result) != tt.expectedLen {
				t.Fatalf("expected %d items, got %d", tt.expectedLen, len(result))
			}
			if result[0] != tt.expectedAt0 {
				t.Errorf("expected first item %d, got %d", tt.expectedAt0, result[0])
			}
		})
	}

	t.Run("zero limit returns everything", func(t *testing.T) {
		result := shared.Paginate(items, 1, 0)
		if len(result) != len(items) {
			t.Errorf("expected %d items, got %d", len(items), len(result))
		}
	})

	t.Run("empty input returns empty page", func(t *testing.T) {
		result := shared.Paginate([]int{}, 1, 10)
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})
}

func TestCleanTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "trims and drops blanks",
			input:    "pool, , spa ,gym",
			expected: []string{"pool", "spa", "gym"},
		},
		{
			name:     "only separators",
			input:    ", ,  ,",
			expected: []string{},
		},
		{
			name:     "single tag",
			input:    "wifi",
			expected: []string{"wifi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CleanTags(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type record struct {
		Name  string `db:"name"`
		Phone string `db:"phone"`
		Skip  string
	}

	result := shared.TransformFields(record{Name: "Musafir Hotel", Skip: "ignored"}, "admin@musafir.dev")

	if result["name"] != "Musafir Hotel" {
		t.Errorf("expected name to be set, got %v", result["name"])
	}
	if _, ok := result["phone"]; ok {
		t.Error("expected zero field to be skipped")
	}
	if _, ok := result["Skip"]; ok {
		t.Error("expected untagged field to be skipped")
	}
	if result[constant.FieldModifiedBy] != "admin@musafir.dev" {
		t.Errorf("expected modified_by to be set, got %v", result[constant.FieldModifiedBy])
	}
	if _, ok := result[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{
			name:     "no parts returns prefix",
			prefix:   "hotel:get",
			parts:    nil,
			expected: "hotel:get",
		},
		{
			name:     "parts joined with colons",
			prefix:   "hotel:get",
			parts:    []string{"abc", "def"},
			expected: "hotel:get:abc:def",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.BuildCacheKey(tt.prefix, tt.parts...)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "name", SortDir: "ASC"}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "city", Value: "Makkah", Operator: dto.FilterOperatorEq, Table: "hotels"},
		},
	}

	first := shared.BuildCacheKeyWithQuery("hotel:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("hotel:gets", params, filter)

	if first != second {
		t.Errorf("expected stable keys, got %q and %q", first, second)
	}

	other := shared.BuildCacheKeyWithQuery("hotel:gets", dto.QueryParams{Page: 3, Limit: 10}, filter)
	if first == other {
		t.Error("expected different params to produce different keys")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
