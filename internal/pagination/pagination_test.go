package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	p := PageRequest{}
	p.Defaults()
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("expected %d/0, got %d/%d", DefaultLimit, p.Limit, p.Offset)
	}

	p = PageRequest{Limit: 10, Offset: 20}
	p.Defaults()
	if p.Limit != 10 || p.Offset != 20 {
		t.Errorf("explicit values should be kept, got %d/%d", p.Limit, p.Offset)
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, PageRequest{Limit: 10, Offset: 20}, 42)
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", resp.Data)
	}
	if resp.Pagination.Total != 42 || resp.Pagination.Count != 0 {
		t.Errorf("unexpected meta %+v", resp.Pagination)
	}

	resp = NewPageResponse([]int{1, 2, 3}, PageRequest{Limit: 3}, 3)
	if resp.Pagination.Count != 3 || resp.Pagination.Limit != 3 {
		t.Errorf("unexpected meta %+v", resp.Pagination)
	}
}
