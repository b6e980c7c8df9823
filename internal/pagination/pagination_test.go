package pagination

import "testing"

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("first_page", func(t *testing.T) {
		got := Slice(items, PageRequest{Page: 1, PageSize: 2})
		if len(got.Data) != 2 || got.Data[0] != 1 || got.Data[1] != 2 {
			t.Errorf("unexpected data: %v", got.Data)
		}
		if got.TotalItems != 5 {
			t.Errorf("expected 5 total items, got %d", got.TotalItems)
		}
		if got.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", got.TotalPages)
		}
	})

	t.Run("last_partial_page", func(t *testing.T) {
		got := Slice(items, PageRequest{Page: 3, PageSize: 2})
		if len(got.Data) != 1 || got.Data[0] != 5 {
			t.Errorf("unexpected data: %v", got.Data)
		}
	})

	t.Run("past_the_end", func(t *testing.T) {
		got := Slice(items, PageRequest{Page: 10, PageSize: 2})
		if got.Data == nil || len(got.Data) != 0 {
			t.Errorf("expected empty non-nil data, got %v", got.Data)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		got := Slice(items, PageRequest{})
		if got.Page != 1 || got.PageSize != 20 {
			t.Errorf("expected defaults 1/20, got %d/%d", got.Page, got.PageSize)
		}
		if len(got.Data) != 5 {
			t.Errorf("expected 5 items, got %d", len(got.Data))
		}
	})

	t.Run("does_not_alias_input", func(t *testing.T) {
		src := []int{1, 2, 3}
		got := Slice(src, PageRequest{Page: 1, PageSize: 3})
		got.Data[0] = 99
		if src[0] != 1 {
			t.Error("page data should be a copy of the input slice")
		}
	})
}

func TestNewPageResponse_NilData(t *testing.T) {
	resp := NewPageResponse[string](nil, 1, 20, 0)
	if resp.Data == nil {
		t.Fatal("expected non-nil empty data")
	}
	if resp.TotalPages != 0 {
		t.Errorf("expected 0 pages, got %d", resp.TotalPages)
	}
}
