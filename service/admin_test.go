package service

import (
	"testing"

	"base97/models"
)

func TestMergeAffiliateUsage(t *testing.T) {
	users := []*models.User{
		{ID: 1, Name: "a", Email: "a@x.com"},
		{ID: 2, Name: "b", Email: "b@x.com", IsAdmin: true},
		{ID: 3, Name: "c", Email: "c@x.com"},
	}
	usage := map[uint]int64{1: 4, 3: 1}

	got := MergeAffiliateUsage(users, usage)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].AffiliateUseCount != 4 {
		t.Errorf("user 1 usage = %d, want 4", got[0].AffiliateUseCount)
	}
	if got[1].AffiliateUseCount != 0 {
		t.Errorf("user 2 usage = %d, want 0", got[1].AffiliateUseCount)
	}
	if !got[1].IsAdmin || got[2].AffiliateUseCount != 1 {
		t.Errorf("unexpected merge: %+v", got)
	}
}

func TestMergeAffiliateUsageEmpty(t *testing.T) {
	if got := MergeAffiliateUsage(nil, nil); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}
